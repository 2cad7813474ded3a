// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabledetect finds rectangular regions of a structured-text page
// that visually constitute tables, infers their row/column structure, and
// rewrites the page's block tree with an explicit Table/Row/Cell hierarchy.
package tabledetect

import "math"

// Point is a single coordinate in page space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min, Max Point
}

// Width reports the rectangle's extent along the x-axis.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height reports the rectangle's extent along the y-axis.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Intersects reports whether r and o share any area or boundary.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Contains reports whether p lies within r, inclusive of the boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func unionRect(a, b Rect) Rect {
	return Rect{
		Min: Point{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y)},
		Max: Point{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y)},
	}
}

// Quad is the four-corner bounding box of a glyph, in lower-left,
// lower-right, upper-right, upper-left order.
type Quad struct {
	LL, LR, UR, UL Point
}

// bounds reduces the quad to the axis-aligned rectangle the engine
// reasons about everywhere downstream of the crossing recorder.
func (q Quad) bounds() Rect {
	minX := math.Min(math.Min(q.LL.X, q.LR.X), math.Min(q.UR.X, q.UL.X))
	maxX := math.Max(math.Max(q.LL.X, q.LR.X), math.Max(q.UR.X, q.UL.X))
	minY := math.Min(math.Min(q.LL.Y, q.LR.Y), math.Min(q.UR.Y, q.UL.Y))
	maxY := math.Max(math.Max(q.LL.Y, q.LR.Y), math.Max(q.UR.Y, q.UL.Y))
	return Rect{Point{minX, minY}, Point{maxX, maxY}}
}

// leftX is the leftmost x-coordinate of the glyph: the minimum of the
// lower-left and upper-left quad corners.
func (q Quad) leftX() float64 { return math.Min(q.LL.X, q.UL.X) }

// rightX is the rightmost x-coordinate of the glyph: the maximum of the
// lower-right and upper-right quad corners.
func (q Quad) rightX() float64 { return math.Max(q.LR.X, q.UR.X) }

// Char is a single code point with its quadrilateral bounding box.
type Char struct {
	Quad Quad
	Rune rune
}

// Bounds is the char's axis-aligned bounding rectangle.
func (c Char) Bounds() Rect { return c.Quad.bounds() }

// Line is an ordered run of chars sharing a writing direction.
type Line struct {
	Chars       []Char
	Direction   int
	WritingMode int
}

// Bounds is the union of the line's chars' bounding rectangles.
func (l *Line) Bounds() Rect {
	if len(l.Chars) == 0 {
		return Rect{}
	}
	r := l.Chars[0].Bounds()
	for _, c := range l.Chars[1:] {
		r = unionRect(r, c.Bounds())
	}
	return r
}

// BlockKind distinguishes the four kinds of block the engine reasons about.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockVector
	BlockStruct
	BlockGrid
)

func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "Text"
	case BlockVector:
		return "Vector"
	case BlockStruct:
		return "Struct"
	case BlockGrid:
		return "Grid"
	default:
		return "Unknown"
	}
}

// Role is the structural role carried by a Struct block.
type Role int

const (
	RoleUnknown Role = iota
	RoleTable
	RoleTableRow
	RoleTableCell
	RoleUpstream
)

func (r Role) String() string {
	switch r {
	case RoleTable:
		return "Table"
	case RoleTableRow:
		return "TableRow"
	case RoleTableCell:
		return "TableCell"
	case RoleUpstream:
		return "Upstream"
	default:
		return "Unknown"
	}
}

// Block is a tagged union of {Text, Vector, Struct, Grid}, the single node
// type of the StructuredPage tree.
type Block struct {
	Kind BlockKind

	// Text blocks.
	Lines []*Line

	// Vector blocks: a single axis-aligned rectangle.
	VectorRect Rect

	// Struct blocks.
	Role     Role
	ID       string
	Index    int
	Children []*Block

	// Grid annotation blocks: the cloned final divider positions.
	XPositions []GridPosition
	YPositions []GridPosition
}

// Bounds is the block's declared bounding rectangle: the quad union for
// Text, the rectangle itself for Vector, the union of children for Struct,
// and the envelope of its positions for Grid. Recomputed on every call:
// Struct children are mutated directly by the transcriber, so a cached
// value would need invalidating at every append site rather than just one.
func (b *Block) Bounds() Rect {
	var r Rect
	switch b.Kind {
	case BlockText:
		first := true
		for _, l := range b.Lines {
			if len(l.Chars) == 0 {
				continue
			}
			lb := l.Bounds()
			if first {
				r = lb
				first = false
			} else {
				r = unionRect(r, lb)
			}
		}
	case BlockVector:
		r = b.VectorRect
	case BlockStruct:
		first := true
		for _, c := range b.Children {
			cb := c.Bounds()
			if first {
				r = cb
				first = false
			} else {
				r = unionRect(r, cb)
			}
		}
	case BlockGrid:
		r = gridEnvelope(b.XPositions, b.YPositions)
	}
	return r
}

func gridEnvelope(xs, ys []GridPosition) Rect {
	if len(xs) == 0 || len(ys) == 0 {
		return Rect{}
	}
	return Rect{
		Min: Point{xs[0].Pos, ys[0].Pos},
		Max: Point{xs[len(xs)-1].Pos, ys[len(ys)-1].Pos},
	}
}

// StructuredPage is the root of the tree the engine consumes and mutates.
type StructuredPage struct {
	Blocks []*Block
}

// blockContainer is implemented by both *StructuredPage and *Block so the
// driver and transcriber can operate on either the page root or a Struct
// block's children uniformly.
type blockContainer interface {
	childBlocks() []*Block
	setChildBlocks([]*Block)
}

func (p *StructuredPage) childBlocks() []*Block { return p.Blocks }
func (p *StructuredPage) setChildBlocks(b []*Block) { p.Blocks = b }

func (b *Block) childBlocks() []*Block { return b.Children }
func (b *Block) setChildBlocks(c []*Block) { b.Children = c }

// renumberStructSiblings assigns a strictly increasing Index to every
// Struct block in children, in order. Non-Struct blocks are left alone.
func renumberStructSiblings(children []*Block) {
	idx := 0
	for _, c := range children {
		if c.Kind == BlockStruct {
			c.Index = idx
			idx++
		}
	}
}
