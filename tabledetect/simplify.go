// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// colCellsMergeable reports whether the shared edge between a (left/above)
// and b (right/below, carrying the shared v_line) permits folding the two
// columns (or rows) together at this one cell pair.
func colCellsMergeable(a, b *cellState) bool {
	if b.VLine != 0 {
		return false
	}
	if a.Full == 0 || b.Full == 0 {
		return true
	}
	return (a.HLine != 0) == (b.HLine != 0) && b.VCrossed > 0
}

// columnsMergeable reports whether every real row (excluding the
// bottommost padding row) is pairwise mergeable between columns x and x+1.
func columnsMergeable(g *cellGrid, x int) bool {
	for y := 0; y < g.H-1; y++ {
		if !colCellsMergeable(g.at(x, y), g.at(x+1, y)) {
			return false
		}
	}
	return true
}

// fuseColumns folds column x+1 into column x: Full and HCrossed are
// summed (truthiness-preserving, diagnostic-preserving, per the "compare
// by truthiness, accumulate as counts" design note extended through
// merges); HLine is kept from the left (equal by the mergeability rule);
// VCrossed and VLine are kept from the left column.
func fuseColumns(g *cellGrid, x int) {
	for y := 0; y < g.H; y++ {
		left, right := g.at(x, y), g.at(x+1, y)
		left.Full += right.Full
		left.HCrossed += right.HCrossed
	}
}

// simplifyColumns repeatedly merges adjacent mergeable columns,
// right-to-left, until a full pass produces no further merge (a fixpoint
// loop, since merging can cascade: a merge at x may make x-1/x newly
// mergeable on the next pass). The rightmost padding column is never a
// merge partner.
func simplifyColumns(g *cellGrid, xAxis *Axis) {
	for {
		merged := false
		for x := g.W - 3; x >= 0; x-- {
			if x+1 >= g.W {
				continue
			}
			if !columnsMergeable(g, x) {
				continue
			}
			fuseColumns(g, x)
			g.removeColumn(x + 1)
			xAxis.Positions = append(xAxis.Positions[:x+1], xAxis.Positions[x+2:]...)
			merged = true
		}
		if !merged {
			return
		}
	}
}

func rowCellsMergeable(a, b *cellState) bool {
	if b.HLine != 0 {
		return false
	}
	if a.Full == 0 || b.Full == 0 {
		return true
	}
	return (a.VLine != 0) == (b.VLine != 0) && b.HCrossed > 0
}

// rowsMergeable reports whether every real column (excluding the
// rightmost padding column) is pairwise mergeable between rows y and y+1.
func rowsMergeable(g *cellGrid, y int) bool {
	for x := 0; x < g.W-1; x++ {
		if !rowCellsMergeable(g.at(x, y), g.at(x, y+1)) {
			return false
		}
	}
	return true
}

// fuseRows folds row y+1 into row y, symmetric to fuseColumns with H/V
// swapped.
func fuseRows(g *cellGrid, y int) {
	for x := 0; x < g.W; x++ {
		top, bottom := g.at(x, y), g.at(x, y+1)
		top.Full += bottom.Full
		top.VCrossed += bottom.VCrossed
	}
}

// simplifyRows is the row-merge symmetric counterpart of simplifyColumns;
// the bottommost padding row is never a merge partner.
func simplifyRows(g *cellGrid, yAxis *Axis) {
	for {
		merged := false
		for y := g.H - 3; y >= 0; y-- {
			if y+1 >= g.H {
				continue
			}
			if !rowsMergeable(g, y) {
				continue
			}
			fuseRows(g, y)
			g.removeRow(y + 1)
			yAxis.Positions = append(yAxis.Positions[:y+1], yAxis.Positions[y+2:]...)
			merged = true
		}
		if !merged {
			return
		}
	}
}
