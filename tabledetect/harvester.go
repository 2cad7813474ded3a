// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "math"

// mergeEps is DefaultConfig's tolerance, in page units, for treating two
// candidate rules as abutting on their fixed axis when the first fails to
// snap. Callers that want a different tolerance set Config.RuleMergeEpsilon.
const mergeEps = 0.5

// gapTolerance is DefaultConfig's maximum gap, on the span axis, two
// candidate rules may leave between them and still be considered part of
// the same drawn ruling. Callers that want a different tolerance set
// Config.RuleGapTolerance.
const gapTolerance = 1.0

// pendingRule is a horizontal or vertical rule awaiting a snap attempt.
// horizontal rules span [a, b] on x at fixed = y; vertical rules span
// [a, b] on y at fixed = x.
type pendingRule struct {
	horizontal bool
	a, b       float64
	fixed      float64
}

// classifyRect turns one vector rectangle into the rule(s) it represents,
// per the three cases in the grid-line harvester.
func classifyRect(r Rect) []pendingRule {
	w, h := r.Width(), r.Height()
	switch {
	case h < 1 && w > h:
		return []pendingRule{{horizontal: true, a: r.Min.X, b: r.Max.X, fixed: (r.Min.Y + r.Max.Y) / 2}}
	case w < 1 && h > w:
		return []pendingRule{{horizontal: false, a: r.Min.Y, b: r.Max.Y, fixed: (r.Min.X + r.Max.X) / 2}}
	default:
		return []pendingRule{
			{horizontal: true, a: r.Min.X, b: r.Max.X, fixed: r.Min.Y},
			{horizontal: true, a: r.Min.X, b: r.Max.X, fixed: r.Max.Y},
			{horizontal: false, a: r.Min.Y, b: r.Max.Y, fixed: r.Min.X},
			{horizontal: false, a: r.Min.Y, b: r.Max.Y, fixed: r.Max.X},
		}
	}
}

// collectVectorRects gathers every Vector block's rectangle in the
// subtree, descending into Struct children (unlike the projection
// builder, the harvester does descend).
func collectVectorRects(container blockContainer) []Rect {
	var rects []Rect
	for _, b := range container.childBlocks() {
		switch b.Kind {
		case BlockVector:
			rects = append(rects, b.VectorRect)
		case BlockStruct:
			rects = append(rects, collectVectorRects(b)...)
		}
	}
	return rects
}

// tryAddRule attempts to snap and stamp a single rule onto the grid.
// Horizontal rules snap both x endpoints with expand=true and the fixed y
// with expand=false; vertical rules are symmetric. The fixed coordinate is
// snapped first, so a rule rejected there reinforces no position on
// either axis. Returns false (without mutating the grid) if any endpoint
// fails to snap.
func tryAddRule(r pendingRule, xAxis, yAxis *Axis, grid *cellGrid) bool {
	if r.horizontal {
		yIdx, ok := yAxis.snap(r.fixed, false)
		if !ok {
			return false
		}
		xStart, ok := xAxis.snap(r.a, true)
		if !ok {
			return false
		}
		xEnd, ok := xAxis.snap(r.b, true)
		if !ok {
			return false
		}
		if xStart >= xEnd {
			return true
		}
		for i := xStart; i < xEnd; i++ {
			grid.at(i, yIdx).HLine++
		}
		return true
	}

	xIdx, ok := xAxis.snap(r.fixed, false)
	if !ok {
		return false
	}
	yStart, ok := yAxis.snap(r.a, true)
	if !ok {
		return false
	}
	yEnd, ok := yAxis.snap(r.b, true)
	if !ok {
		return false
	}
	if yStart >= yEnd {
		return true
	}
	for j := yStart; j < yEnd; j++ {
		grid.at(xIdx, j).VLine++
	}
	return true
}

// abuts reports whether b is a plausible continuation of a: same
// orientation, fixed axis within epsilon, and a span-axis gap no larger
// than gapTolerance. This repairs rule drawings composed of many short
// strokes.
func abuts(a, b pendingRule, epsilon, gapTolerance float64) bool {
	if a.horizontal != b.horizontal {
		return false
	}
	if math.Abs(a.fixed-b.fixed) > epsilon {
		return false
	}
	gap := b.a - a.b
	if gap < 0 {
		gap = a.a - b.b
	}
	return gap <= gapTolerance
}

// unionRule merges two abutting rules into their spanning union.
func unionRule(a, b pendingRule) pendingRule {
	lo, hi := a.a, a.b
	if b.a < lo {
		lo = b.a
	}
	if b.b > hi {
		hi = b.b
	}
	return pendingRule{horizontal: a.horizontal, a: lo, b: hi, fixed: (a.fixed + b.fixed) / 2}
}

// harvestGridLines classifies every vector rectangle in the subtree into
// pending rules, attempts to snap and stamp each, and for a rule that
// fails to snap retries after merging it with subsequent same-orientation
// candidates that abut it (within cfg.RuleMergeEpsilon/RuleGapTolerance).
// Rules left unresolved after retrying are dropped silently, per the
// snap-failure error kind.
func harvestGridLines(container blockContainer, xAxis, yAxis *Axis, grid *cellGrid, cfg *Config) {
	var rules []pendingRule
	for _, r := range collectVectorRects(container) {
		rules = append(rules, classifyRect(r)...)
	}

	used := make([]bool, len(rules))
	for i := range rules {
		if used[i] {
			continue
		}
		candidate := rules[i]
		if tryAddRule(candidate, xAxis, yAxis, grid) {
			used[i] = true
			continue
		}
		for j := i + 1; j < len(rules); j++ {
			if used[j] || rules[j].horizontal != candidate.horizontal {
				continue
			}
			if !abuts(candidate, rules[j], cfg.RuleMergeEpsilon, cfg.RuleGapTolerance) {
				continue
			}
			merged := unionRule(candidate, rules[j])
			if tryAddRule(merged, xAxis, yAxis, grid) {
				used[i] = true
				used[j] = true
				break
			}
		}
	}
}
