// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import "github.com/geekdoc/pdftable/tabledetect"

// BuildStructuredPage converts a page's already-extracted Content (the
// flat Text/Rect runs produced by this package's extraction pipeline)
// into the tabledetect engine's StructuredPage tree. This is the call
// site that wires this library into the table-detection engine it does
// not itself implement.
func BuildStructuredPage(content *Content) *tabledetect.StructuredPage {
	page := &tabledetect.StructuredPage{}
	for _, t := range content.Text {
		if block := textToBlock(t); block != nil {
			page.Blocks = append(page.Blocks, block)
		}
	}
	for _, r := range content.Rect {
		page.Blocks = append(page.Blocks, &tabledetect.Block{
			Kind:       tabledetect.BlockVector,
			VectorRect: rectToTableRect(r),
		})
	}
	return page
}

func rectToTableRect(r Rect) tabledetect.Rect {
	return tabledetect.Rect{
		Min: tabledetect.Point{X: r.Min.X, Y: r.Min.Y},
		Max: tabledetect.Point{X: r.Max.X, Y: r.Max.Y},
	}
}

// textToBlock approximates one extracted text run as a single Line of
// Chars, distributing the run's declared width evenly across its runes,
// since this package's extraction pipeline does not retain a per-glyph
// quad, only a run-level X/Y/W.
func textToBlock(t Text) *tabledetect.Block {
	runes := []rune(t.S)
	if len(runes) == 0 {
		return nil
	}
	charW := t.W / float64(len(runes))
	if charW <= 0 {
		charW = t.FontSize
	}

	chars := make([]tabledetect.Char, 0, len(runes))
	for i, r := range runes {
		x0 := t.X + float64(i)*charW
		x1 := x0 + charW
		y0 := t.Y
		y1 := t.Y + t.FontSize
		chars = append(chars, tabledetect.Char{
			Rune: r,
			Quad: tabledetect.Quad{
				LL: tabledetect.Point{X: x0, Y: y0},
				LR: tabledetect.Point{X: x1, Y: y0},
				UR: tabledetect.Point{X: x1, Y: y1},
				UL: tabledetect.Point{X: x0, Y: y1},
			},
		})
	}

	direction := 0
	if t.Vertical {
		direction = 1
	}
	return &tabledetect.Block{
		Kind:  tabledetect.BlockText,
		Lines: []*tabledetect.Line{{Chars: chars, Direction: direction}},
	}
}
