// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// rectFullyInside reports whether inner lies entirely within outer.
func rectFullyInside(outer, inner Rect) bool {
	return inner.Min.X >= outer.Min.X && inner.Max.X <= outer.Max.X &&
		inner.Min.Y >= outer.Min.Y && inner.Max.Y <= outer.Max.Y
}

// migrateInto moves every block from source whose bounds fall, wholly or
// partially, inside r into the returned slice, leaving source holding
// only what remains. Partial overlaps are only legal for Text blocks and
// are split line-by-line, then char-by-char, on centre-containment.
func migrateInto(r Rect, source blockContainer) []*Block {
	var moved, remaining []*Block
	for _, b := range source.childBlocks() {
		bb := b.Bounds()
		switch {
		case !bb.Intersects(r):
			remaining = append(remaining, b)
		case rectFullyInside(r, bb):
			moved = append(moved, b)
		case b.Kind == BlockText:
			kept, extracted := splitTextBlock(b, r)
			if kept != nil {
				remaining = append(remaining, kept)
			}
			if extracted != nil {
				moved = append(moved, extracted)
			}
		default:
			// Partial overlap on a non-Text block has no defined split;
			// leave it where it is rather than truncate it silently.
			remaining = append(remaining, b)
		}
	}
	source.setChildBlocks(remaining)
	return moved
}

// splitTextBlock partitions b's lines between what stays outside r and
// what belongs inside it, splitting any line that straddles the boundary
// character-by-character on its centre point. Returns nil for either side
// that ends up empty.
func splitTextBlock(b *Block, r Rect) (kept, extracted *Block) {
	var keptLines, newLines []*Line
	for _, line := range b.Lines {
		lb := line.Bounds()
		switch {
		case !lb.Intersects(r):
			keptLines = append(keptLines, line)
		case rectFullyInside(r, lb):
			newLines = append(newLines, line)
		default:
			var keptChars, movedChars []Char
			for _, c := range line.Chars {
				if r.Contains(c.Bounds().Center()) {
					movedChars = append(movedChars, c)
				} else {
					keptChars = append(keptChars, c)
				}
			}
			if len(keptChars) > 0 {
				keptLines = append(keptLines, &Line{
					Chars: keptChars, Direction: line.Direction, WritingMode: line.WritingMode,
				})
			}
			if len(movedChars) > 0 {
				newLines = append(newLines, &Line{
					Chars: movedChars, Direction: line.Direction, WritingMode: line.WritingMode,
				})
			}
		}
	}
	if len(keptLines) > 0 {
		kept = &Block{Kind: BlockText, Lines: keptLines}
	}
	if len(newLines) > 0 {
		extracted = &Block{Kind: BlockText, Lines: newLines}
	}
	return kept, extracted
}
