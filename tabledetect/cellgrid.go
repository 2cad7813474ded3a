// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// cellState is one cell's ruled-line/crossing/content counters. The cell
// at (x, y) owns the top edge (HLine, HCrossed) and the left edge (VLine,
// VCrossed) of the rectangle whose top-left corner is grid position
// (x, y). All fields are non-negative counters, compared by truthiness at
// decision time but accumulated as counts through merges.
type cellState struct {
	HLine    int
	VLine    int
	HCrossed int
	VCrossed int
	Full     int
}

// cellGrid is the W x H matrix of cell descriptors, stored column-major
// so that removing a column during simplification is a single slice
// delete rather than an O(W*H) shuffle.
type cellGrid struct {
	W, H int
	cols [][]cellState
}

// newCellGrid allocates a W x H grid. The rightmost column and bottommost
// row are padding carrying the right/bottom edges of the real cells; they
// are never marked Full.
func newCellGrid(w, h int) *cellGrid {
	cols := make([][]cellState, w)
	for i := range cols {
		cols[i] = make([]cellState, h)
	}
	return &cellGrid{W: w, H: h, cols: cols}
}

// at returns a pointer to the cell at (x, y) for in-place mutation.
func (g *cellGrid) at(x, y int) *cellState {
	return &g.cols[x][y]
}

// removeColumn deletes column x1 from the grid, shrinking W by one.
func (g *cellGrid) removeColumn(x1 int) {
	g.cols = append(g.cols[:x1], g.cols[x1+1:]...)
	g.W--
}

// removeRow deletes row y1 from every column, shrinking H by one.
func (g *cellGrid) removeRow(y1 int) {
	for x := range g.cols {
		g.cols[x] = append(g.cols[x][:y1], g.cols[x][y1+1:]...)
	}
	g.H--
}

// erasePadding zeroes Full on the padding column and row. Crossing
// recording marks a cell Full over the closed index range [x0_idx,x1_idx]
// x [y0_idx,y1_idx]; when a char's bounds touch the table envelope's
// outer edge exactly, that range legitimately includes the padding
// index. This erase phase restores the "rightmost column / bottommost
// row never full" invariant without changing the ruled-line state the
// padding lane exists to carry.
func (g *cellGrid) erasePadding() {
	for y := 0; y < g.H; y++ {
		g.at(g.W-1, y).Full = 0
	}
	for x := 0; x < g.W; x++ {
		g.at(x, g.H-1).Full = 0
	}
}
