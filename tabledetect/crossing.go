// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// recordCrossings walks every Text block in the subtree whose bounding
// rectangle intersects envelope, descending into Struct children, and
// marks cells "full" and edges "crossed" where a character straddles a
// candidate divider.
func recordCrossings(container blockContainer, envelope Rect, xAxis, yAxis *Axis, grid *cellGrid) {
	for _, b := range container.childBlocks() {
		switch b.Kind {
		case BlockText:
			if !b.Bounds().Intersects(envelope) {
				continue
			}
			recordTextCrossings(b, xAxis, yAxis, grid)
		case BlockStruct:
			recordCrossings(b, envelope, xAxis, yAxis, grid)
		}
	}
}

func recordTextCrossings(b *Block, xAxis, yAxis *Axis, grid *cellGrid) {
	for _, line := range b.Lines {
		for _, c := range line.Chars {
			if c.Rune == ' ' {
				continue
			}
			cb := c.Bounds()
			x0i, ok := xAxis.findCell(cb.Min.X)
			if !ok {
				continue
			}
			x1i, ok := xAxis.findCell(cb.Max.X)
			if !ok {
				continue
			}
			y0i, ok := yAxis.findCell(cb.Min.Y)
			if !ok {
				continue
			}
			y1i, ok := yAxis.findCell(cb.Max.Y)
			if !ok {
				continue
			}

			if x0i < x1i {
				for y := y0i; y <= y1i; y++ {
					for x := x0i + 1; x <= x1i; x++ {
						grid.at(x, y).VCrossed++
					}
				}
			}
			if y0i < y1i {
				for y := y0i + 1; y <= y1i; y++ {
					for x := x0i; x <= x1i; x++ {
						grid.at(x, y).HCrossed++
					}
				}
			}
			for y := y0i; y <= y1i; y++ {
				for x := x0i; x <= x1i; x++ {
					grid.at(x, y).Full++
				}
			}
		}
	}
}
