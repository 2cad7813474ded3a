// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// columnSpan computes how many grid columns, starting at x, the cell at
// (x, y) extends over: it grows rightward while the candidate column's
// left edge carries no ruling, its divider has positive uncertainty, and
// content actually straddles it.
func columnSpan(grid *cellGrid, xAxis *Axis, x, y int) int {
	cellw := 1
	for x+cellw < grid.W {
		nx := x + cellw
		c := grid.at(nx, y)
		if c.VLine != 0 || xAxis.Positions[nx].Uncertainty <= 0 || c.VCrossed <= 0 {
			break
		}
		cellw++
	}
	return cellw
}

// rowSpan computes how many grid rows, starting at y, the cell spanning
// columns [x, x+cellw) extends over: it grows downward while the
// candidate row's divider has positive uncertainty, no cell in the
// column strip carries a ruled top edge, no internal vertical ruling or
// zero-uncertainty column break interrupts the strip, and some cell in
// the strip actually has content straddling its top edge.
func rowSpan(grid *cellGrid, xAxis, yAxis *Axis, x, y, cellw int) int {
	cellh := 1
	for y+cellh < grid.H {
		ny := y + cellh
		if yAxis.Positions[ny].Uncertainty <= 0 {
			break
		}

		ok, anyCrossed := true, false
		for k := x; k < x+cellw; k++ {
			c := grid.at(k, ny)
			if c.HLine != 0 {
				ok = false
				break
			}
			if c.HCrossed > 0 {
				anyCrossed = true
			}
		}
		if ok {
			for k := x + 1; k < x+cellw; k++ {
				if grid.at(k, ny).VLine != 0 || xAxis.Positions[k].Uncertainty == 0 {
					ok = false
					break
				}
			}
		}
		if !ok || !anyCrossed {
			break
		}
		cellh++
	}
	return cellh
}

// transcribeTable walks the simplified grid in row-major order, creating
// one Row struct per occupied row and one Cell struct per span, migrating
// content into each cell as it is created, and returns the finished Table
// struct. It does not insert the table into any parent; see insertTable.
func transcribeTable(container blockContainer, xAxis, yAxis *Axis, grid *cellGrid) *Block {
	realW := grid.W - 1
	realH := grid.H - 1

	sent := make([][]bool, realW)
	for i := range sent {
		sent[i] = make([]bool, realH)
	}

	table := stampID(&Block{Kind: BlockStruct, Role: RoleTable})

	for y := 0; y < realH; y++ {
		var row *Block
		for x := 0; x < realW; x++ {
			if sent[x][y] {
				continue
			}

			cellw := columnSpan(grid, xAxis, x, y)
			cellh := rowSpan(grid, xAxis, yAxis, x, y, cellw)

			if row == nil {
				row = stampID(&Block{Kind: BlockStruct, Role: RoleTableRow})
			}

			cellRect := Rect{
				Min: Point{xAxis.Positions[x].Pos, yAxis.Positions[y].Pos},
				Max: Point{xAxis.Positions[x+cellw].Pos, yAxis.Positions[y+cellh].Pos},
			}
			moved := migrateInto(cellRect, container)
			renumberStructSiblings(moved)

			cell := stampID(&Block{Kind: BlockStruct, Role: RoleTableCell, Children: moved})
			row.Children = append(row.Children, cell)

			for j := y; j < y+cellh; j++ {
				for i := x; i < x+cellw; i++ {
					sent[i][j] = true
				}
			}
		}
		if row != nil {
			renumberStructSiblings(row.Children)
			table.Children = append(table.Children, row)
		}
	}

	return table
}

// insertTable splices table into container's child list immediately
// after the last block that, before any migration took place, had
// bounds intersecting envelope, preserving strictly increasing Struct
// sibling indices.
func insertTable(container blockContainer, table *Block, originalChildren []*Block, envelope Rect) {
	origIndex := make(map[*Block]int, len(originalChildren))
	anchorIdx := -1
	for i, b := range originalChildren {
		origIndex[b] = i
		if b.Bounds().Intersects(envelope) {
			anchorIdx = i
		}
	}

	remaining := container.childBlocks()
	insertAt := 0
	for i, b := range remaining {
		if oi, ok := origIndex[b]; ok && oi <= anchorIdx {
			insertAt = i + 1
		}
	}

	spliced := make([]*Block, 0, len(remaining)+1)
	spliced = append(spliced, remaining[:insertAt]...)
	spliced = append(spliced, table)
	spliced = append(spliced, remaining[insertAt:]...)
	renumberStructSiblings(spliced)
	container.setChildBlocks(spliced)
}
