// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// DetectTables runs the detection pipeline over page using the default
// configuration, mutating the page's block tree in place.
func DetectTables(page *StructuredPage) error {
	return DetectTablesWithConfig(page, DefaultConfig())
}

// DetectTablesWithConfig runs the detection pipeline over page with an
// explicit configuration. A nil cfg is treated as DefaultConfig().
func DetectTablesWithConfig(page *StructuredPage, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setDebug(cfg.Debug)
	_, err := detect(page, cfg)
	return err
}

// detect recurses into pre-existing structural children first, then
// decides whether enough content remains at this level to attempt table
// detection, and if so runs the pipeline.
func detect(container blockContainer, cfg *Config) (bool, error) {
	children := container.childBlocks()
	if len(children) == 0 {
		return false, nil
	}

	for _, c := range children {
		if c.Kind == BlockStruct {
			if _, err := detect(c, cfg); err != nil {
				return false, err
			}
		}
	}

	interesting := 0
	for _, c := range children {
		if c.Kind == BlockText || c.Kind == BlockStruct {
			interesting++
		}
	}
	if interesting <= 1 {
		return false, nil
	}

	_, ok, err := runPipeline(container, cfg)
	return ok, err
}

// runPipeline runs the projection builder through the table transcriber
// at a single level (descend=false: only this subtree's direct blocks),
// per the control flow in the system overview. Returns the created Table
// block and true on success, or (nil, false, nil) on any of the
// degenerate-input conditions, which are not errors.
func runPipeline(container blockContainer, cfg *Config) (*Block, bool, error) {
	xs, ys := buildProjections(container)
	xPositions, _ := buildGridPositions(xs.entries)
	yPositions, _ := buildGridPositions(ys.entries)

	if len(xPositions) < 3 || len(yPositions) < 3 {
		log.Debug().Msg("fewer than 3 dividers on an axis, no table")
		return nil, false, nil
	}

	if err := cfg.checkBudget(len(xPositions), len(yPositions)); err != nil {
		return nil, false, wrapStageError("divider", err)
	}

	xAxis := &Axis{Positions: xPositions}
	yAxis := &Axis{Positions: yPositions}
	grid := newCellGrid(len(xPositions), len(yPositions))

	harvestGridLines(container, xAxis, yAxis, grid, cfg)

	envelope := Rect{
		Min: Point{xAxis.Positions[0].Pos, yAxis.Positions[0].Pos},
		Max: Point{xAxis.Positions[len(xAxis.Positions)-1].Pos, yAxis.Positions[len(yAxis.Positions)-1].Pos},
	}
	recordCrossings(container, envelope, xAxis, yAxis, grid)
	grid.erasePadding()

	simplifyColumns(grid, xAxis)
	simplifyRows(grid, yAxis)

	if grid.W < 3 || grid.H < 3 {
		log.Debug().Msg("simplification collapsed grid below 3x3, no table")
		return nil, false, nil
	}

	originalChildren := append([]*Block(nil), container.childBlocks()...)

	table := transcribeTable(container, xAxis, yAxis, grid)
	attachGridAnnotation(table, xAxis, yAxis)
	insertTable(container, table, originalChildren, envelope)

	log.Info().Int("rows", grid.H-1).Int("cols", grid.W-1).Msg("table detected")
	return table, true, nil
}

// attachGridAnnotation clones the final divider positions into a new
// Grid block and prepends it to the table's children.
func attachGridAnnotation(table *Block, xAxis, yAxis *Axis) {
	annotation := stampID(&Block{
		Kind:       BlockGrid,
		XPositions: append([]GridPosition(nil), xAxis.Positions...),
		YPositions: append([]GridPosition(nil), yAxis.Positions...),
	})
	table.Children = append([]*Block{annotation}, table.Children...)
	renumberStructSiblings(table.Children)
}
