// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "testing"

func TestMigrateIntoSkipsNonIntersectingBlocks(t *testing.T) {
	page := &StructuredPage{Blocks: []*Block{
		{Kind: BlockText, Lines: []*Line{{Chars: []Char{charAt('A', 100, 101)}}}},
	}}
	moved := migrateInto(Rect{Min: Point{0, 0}, Max: Point{10, 10}}, page)
	if len(moved) != 0 {
		t.Fatalf("want nothing migrated, got %d blocks", len(moved))
	}
	if len(page.Blocks) != 1 {
		t.Fatalf("want the source block left untouched, got %d blocks remaining", len(page.Blocks))
	}
}

func TestMigrateIntoMovesFullyContainedBlock(t *testing.T) {
	block := &Block{Kind: BlockText, Lines: []*Line{{Chars: []Char{charAt('A', 1, 2)}}}}
	page := &StructuredPage{Blocks: []*Block{block}}

	moved := migrateInto(Rect{Min: Point{0, 0}, Max: Point{10, 10}}, page)
	if len(moved) != 1 || moved[0] != block {
		t.Fatalf("want the fully-contained block moved, got %+v", moved)
	}
	if len(page.Blocks) != 0 {
		t.Fatalf("want source emptied, got %d blocks remaining", len(page.Blocks))
	}
}

func TestMigrateIntoSplitsPartiallyOverlappingTextByCharCenter(t *testing.T) {
	// "AB" straddles x=5: A's centre (0.5) is outside R, B's centre (5.5) is inside.
	line := &Line{Chars: []Char{
		charAt('A', 0, 1),
		charAt('B', 5, 6),
	}}
	block := &Block{Kind: BlockText, Lines: []*Line{line}}
	page := &StructuredPage{Blocks: []*Block{block}}

	moved := migrateInto(Rect{Min: Point{4, 0}, Max: Point{10, 10}}, page)
	if len(moved) != 1 {
		t.Fatalf("want one extracted Text block, got %d", len(moved))
	}
	if moved[0].Kind != BlockText {
		t.Fatalf("extracted block must be a Text block")
	}
	if len(moved[0].Lines) != 1 || len(moved[0].Lines[0].Chars) != 1 || moved[0].Lines[0].Chars[0].Rune != 'B' {
		t.Fatalf("want only 'B' migrated, got %+v", moved[0].Lines)
	}

	if len(page.Blocks) != 1 {
		t.Fatalf("want the retained remainder left in source, got %d blocks", len(page.Blocks))
	}
	remainder := page.Blocks[0]
	if len(remainder.Lines) != 1 || len(remainder.Lines[0].Chars) != 1 || remainder.Lines[0].Chars[0].Rune != 'A' {
		t.Fatalf("want only 'A' retained, got %+v", remainder.Lines)
	}
}

func TestMigrateIntoLeavesNonTextPartialOverlapInPlace(t *testing.T) {
	block := &Block{Kind: BlockVector, VectorRect: Rect{Min: Point{0, 0}, Max: Point{10, 10}}}
	page := &StructuredPage{Blocks: []*Block{block}}

	moved := migrateInto(Rect{Min: Point{5, 5}, Max: Point{15, 15}}, page)
	if len(moved) != 0 {
		t.Fatalf("want a partially-overlapping Vector block left in place, got %d migrated", len(moved))
	}
	if len(page.Blocks) != 1 {
		t.Fatalf("want the block retained in source")
	}
}
