// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "testing"

func dummyPositions(n int) []GridPosition {
	out := make([]GridPosition, n)
	for i := range out {
		out[i] = GridPosition{Pos: float64(i * 10)}
	}
	return out
}

// TestSimplifyColumnsMergesEmptyOverSegmentedColumns models scenario 4: a
// projection that over-segmented into more columns than the content
// actually needs. Column 1 and 2 are empty (no content ever landed
// there), so they should merge into their non-empty neighbours, and the
// table-right-border ruling at the padding column must survive.
func TestSimplifyColumnsMergesEmptyOverSegmentedColumns(t *testing.T) {
	g := newCellGrid(5, 2) // 4 real columns + 1 padding, 1 real row + 1 padding row
	g.at(0, 0).Full = 5    // content "A"
	g.at(1, 0).Full = 0    // empty
	g.at(2, 0).Full = 0    // empty
	g.at(3, 0).Full = 5    // content "B"

	g.at(1, 0).VLine = 1 // ruled divider between col0 and col1: must survive
	g.at(2, 0).VLine = 0 // no divider between col1 and col2: mergeable
	g.at(3, 0).VLine = 0 // no divider between col2 and col3: mergeable
	g.at(4, 0).VLine = 1 // table's right border: must survive

	xAxis := &Axis{Positions: dummyPositions(5)}
	simplifyColumns(g, xAxis)

	if g.W != 3 {
		t.Fatalf("want W collapsed to 3, got %d", g.W)
	}
	if len(xAxis.Positions) != 3 {
		t.Fatalf("want 3 x-positions after simplification, got %d", len(xAxis.Positions))
	}
	if g.at(0, 0).Full != 5 {
		t.Errorf("want column 0 (content A) untouched, got Full=%d", g.at(0, 0).Full)
	}
	if g.at(1, 0).Full != 5 {
		t.Errorf("want merged column to carry content B's Full count, got %d", g.at(1, 0).Full)
	}
	if g.at(1, 0).VLine != 1 {
		t.Errorf("want the surviving ruled divider preserved on the merged column, got VLine=%d", g.at(1, 0).VLine)
	}
	if g.at(2, 0).VLine != 1 {
		t.Errorf("want the table's right border preserved, got VLine=%d", g.at(2, 0).VLine)
	}
	if g.at(2, 0).Full != 0 {
		t.Errorf("padding column must keep Full == 0, got %d", g.at(2, 0).Full)
	}
}

func TestColumnsMergeableBlockedByRuling(t *testing.T) {
	g := newCellGrid(2, 2) // 1 real row + 1 padding row
	g.at(1, 0).VLine = 1
	if columnsMergeable(g, 0) {
		t.Errorf("want columns not mergeable when a ruling divides them")
	}
}

func TestColumnsMergeableCompetingContentBlocksMerge(t *testing.T) {
	g := newCellGrid(2, 2)
	g.at(0, 0).Full = 1
	g.at(1, 0).Full = 1
	g.at(0, 0).HLine = 0
	g.at(1, 0).HLine = 1 // differing h_line truthiness
	g.at(1, 0).VCrossed = 1
	if columnsMergeable(g, 0) {
		t.Errorf("want columns with differing h_line truthiness not mergeable")
	}
}

func TestColumnsMergeableSameHLineAndCrossed(t *testing.T) {
	g := newCellGrid(2, 2)
	g.at(0, 0).Full = 1
	g.at(1, 0).Full = 1
	g.at(0, 0).HLine = 1
	g.at(1, 0).HLine = 1
	g.at(1, 0).VCrossed = 1
	if !columnsMergeable(g, 0) {
		t.Errorf("want columns with matching h_line and a crossed edge to be mergeable")
	}
}

// TestSimplifyRowsMergesEmptyOverSegmentedRows mirrors the column test
// with the axes swapped.
func TestSimplifyRowsMergesEmptyOverSegmentedRows(t *testing.T) {
	g := newCellGrid(2, 5)
	g.at(0, 0).Full = 5
	g.at(0, 1).Full = 0
	g.at(0, 2).Full = 0
	g.at(0, 3).Full = 5

	g.at(0, 1).HLine = 1
	g.at(0, 2).HLine = 0
	g.at(0, 3).HLine = 0
	g.at(0, 4).HLine = 1

	yAxis := &Axis{Positions: dummyPositions(5)}
	simplifyRows(g, yAxis)

	if g.H != 3 {
		t.Fatalf("want H collapsed to 3, got %d", g.H)
	}
	if len(yAxis.Positions) != 3 {
		t.Fatalf("want 3 y-positions after simplification, got %d", len(yAxis.Positions))
	}
}
