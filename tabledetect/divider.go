// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

// sanitise accumulates the frequency of consecutive same-side entries into
// the first entry of each run, zeroing the rest, then compacts the zeroed
// entries out. The result strictly alternates start/end/start/end.
func sanitise(entries []projEntry) []projEntry {
	if len(entries) == 0 {
		return entries
	}
	out := make([]projEntry, len(entries))
	copy(out, entries)

	head := 0
	for i := 1; i < len(out); i++ {
		if out[i].side == out[head].side {
			out[head].freq += out[i].freq
			out[i].freq = 0
		} else {
			head = i
		}
	}

	compact := out[:0]
	for _, e := range out {
		if e.freq > 0 {
			compact = append(compact, e)
		}
	}
	return compact
}

// GridPosition is one inferred divider along an axis.
type GridPosition struct {
	Pos           float64
	Min, Max      float64
	Uncertainty   int
	Reinforcement int
}

// buildGridPositions compresses a sanitised projection into the axis's
// grid-position list, returning the positions and the highest wind value
// reached anywhere in the trace (max_uncertainty).
func buildGridPositions(rawEntries []projEntry) ([]GridPosition, int) {
	entries := sanitise(rawEntries)
	if len(entries) == 0 {
		return nil, 0
	}

	positions := make([]GridPosition, 0, len(entries)/2+2)
	positions = append(positions, GridPosition{
		Pos: entries[0].pos, Min: entries[0].pos, Max: entries[0].pos,
	})

	wind := 0
	maxUncertainty := 0
	sawEnd := false
	var prevEndPos float64

	for _, e := range entries {
		switch e.side {
		case sideEnd:
			wind -= e.freq
			prevEndPos = e.pos
			sawEnd = true
		case sideStart:
			if sawEnd {
				positions = append(positions, GridPosition{
					Pos:         (prevEndPos + e.pos) / 2,
					Min:         prevEndPos,
					Max:         e.pos,
					Uncertainty: wind,
				})
			}
			wind += e.freq
			if wind > maxUncertainty {
				maxUncertainty = wind
			}
		}
	}

	last := entries[len(entries)-1]
	positions = append(positions, GridPosition{
		Pos: last.pos, Min: last.pos, Max: last.pos,
	})

	return positions, maxUncertainty
}

// Axis wraps a finished grid-position list with the snap/lookup operations
// the downstream pipeline stages use.
type Axis struct {
	Positions []GridPosition
}

// snap returns the index of the position whose [min, max] interval
// contains x, reinforcing it (running-mean pull toward x). If no interval
// contains x and expand is true, it splits the surrounding gap at its
// midpoint and snaps to the position on x's side of it (or to the first
// or last position when x lies outside the whole range), returning that
// existing position's index; no new position is created. If expand is
// false and no interval contains x, ok is false.
func (a *Axis) snap(x float64, expand bool) (idx int, ok bool) {
	for i := range a.Positions {
		p := &a.Positions[i]
		if x >= p.Min && x <= p.Max {
			a.reinforce(i, x)
			return i, true
		}
	}
	if !expand {
		return 0, false
	}

	if len(a.Positions) == 0 {
		return 0, false
	}
	if x < a.Positions[0].Min {
		a.reinforce(0, x)
		return 0, true
	}
	if x > a.Positions[len(a.Positions)-1].Max {
		last := len(a.Positions) - 1
		a.reinforce(last, x)
		return last, true
	}

	for i := 0; i+1 < len(a.Positions); i++ {
		cur, next := &a.Positions[i], &a.Positions[i+1]
		if x > cur.Max && x < next.Min {
			var target int
			if x-cur.Max <= next.Min-x {
				target = i
			} else {
				target = i + 1
			}
			a.reinforce(target, x)
			return target, true
		}
	}
	return 0, false
}

// reinforce folds x into position i's running mean and bumps its
// reinforcement counter. This is a cheap running-mean hook, not a
// probabilistic model, and is implemented exactly as the trace calls for.
func (a *Axis) reinforce(i int, x float64) {
	p := &a.Positions[i]
	r := p.Reinforcement
	p.Pos = (p.Pos*float64(r) + x) / float64(r+1)
	p.Reinforcement = r + 1
}

// findCell returns the largest index i with Positions[i].Pos < v, or the
// last index if v equals the last position's Pos exactly, or index 0 if v
// equals the first position's Pos exactly (the table envelope's own left
// or top edge is always touched by some real content, by construction of
// how that position was derived, and must resolve to a real cell rather
// than being dropped). If v is less than every position's Pos, it reports
// not-found.
func (a *Axis) findCell(v float64) (idx int, ok bool) {
	n := len(a.Positions)
	if n == 0 {
		return 0, false
	}
	if v == a.Positions[n-1].Pos {
		return n - 1, true
	}
	if v == a.Positions[0].Pos {
		return 0, true
	}
	found := -1
	for i := 0; i < n; i++ {
		if a.Positions[i].Pos < v {
			found = i
		} else {
			break
		}
	}
	if found < 0 {
		return 0, false
	}
	return found, true
}
