// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "testing"

func TestNewCellGridDimensions(t *testing.T) {
	g := newCellGrid(4, 5)
	if g.W != 4 || g.H != 5 {
		t.Fatalf("want W=4,H=5, got W=%d,H=%d", g.W, g.H)
	}
	if len(g.cols) != 4 || len(g.cols[0]) != 5 {
		t.Fatalf("want cols sized 4x5, got %dx%d", len(g.cols), len(g.cols[0]))
	}
}

func TestCellGridAtIsAddressable(t *testing.T) {
	g := newCellGrid(3, 3)
	g.at(1, 1).Full = 7
	if g.cols[1][1].Full != 7 {
		t.Errorf("mutation through at() did not persist, got %d", g.cols[1][1].Full)
	}
}

func TestCellGridRemoveColumn(t *testing.T) {
	g := newCellGrid(3, 2)
	g.at(0, 0).Full = 1
	g.at(1, 0).Full = 2
	g.at(2, 0).Full = 3

	g.removeColumn(1)

	if g.W != 2 {
		t.Fatalf("want W=2 after removal, got %d", g.W)
	}
	if g.at(0, 0).Full != 1 || g.at(1, 0).Full != 3 {
		t.Errorf("want columns [0,2] to remain in order, got Full=%d,%d", g.at(0, 0).Full, g.at(1, 0).Full)
	}
}

func TestCellGridRemoveRow(t *testing.T) {
	g := newCellGrid(2, 3)
	g.at(0, 0).Full = 1
	g.at(0, 1).Full = 2
	g.at(0, 2).Full = 3

	g.removeRow(1)

	if g.H != 2 {
		t.Fatalf("want H=2 after removal, got %d", g.H)
	}
	if g.at(0, 0).Full != 1 || g.at(0, 1).Full != 3 {
		t.Errorf("want rows [0,2] to remain in order, got Full=%d,%d", g.at(0, 0).Full, g.at(0, 1).Full)
	}
}
