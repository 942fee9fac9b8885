// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"github.com/pkg/errors"
)

var ErrSpanOverflow = errors.New("solid span list overflow")

// Span is an inclusive range of solid columns.
type Span struct {
	First, Last int
}

// sentinel bounds, far outside any screen but safe from overflow on +-1
const (
	minCol = -1 << 30
	maxCol = 1 << 30
)

// SpanTracker is the horizontal occlusion list of one (sub)render. The
// spans are sorted, disjoint and never touch: adjacent spans are merged.
// The first and last span are sentinels covering everything outside the
// tracked columns.
type SpanTracker struct {
	spans    []Span
	first    int
	last     int
	capacity int
}

func NewSpanTracker(width int) *SpanTracker {
	t := &SpanTracker{}
	t.Reset(0, width-1)
	return t
}

// Reset marks all columns in [first, last] open and everything else solid.
func (t *SpanTracker) Reset(first, last int) {
	width := last - first + 1
	if width < 0 {
		width = 0
	}
	t.first, t.last = first, last
	t.capacity = width/2 + 4
	if cap(t.spans) < t.capacity {
		t.spans = make([]Span, 0, t.capacity)
	}
	t.spans = append(t.spans[:0],
		Span{First: minCol, Last: first - 1},
		Span{First: last + 1, Last: maxCol})
	if width == 0 {
		t.spans = append(t.spans[:0], Span{First: minCol, Last: maxCol})
	}
}

// Spans returns a copy of the list including both sentinels.
func (t *SpanTracker) Spans() []Span {
	return append([]Span(nil), t.spans...)
}

// Full reports whether no open column is left.
func (t *SpanTracker) Full() bool {
	return len(t.spans) == 1
}

// Occluded reports whether all columns in [x1, x2] are solid.
func (t *SpanTracker) Occluded(x1, x2 int) bool {
	if x1 > x2 {
		return true
	}
	for _, s := range t.spans {
		if s.Last >= x1 {
			return s.First <= x1 && s.Last >= x2
		}
	}
	return false
}

// MarkSolid marks [x1, x2] solid without reporting anything.
func (t *SpanTracker) MarkSolid(x1, x2 int) error {
	return t.ClipSolid(x1, x2, nil)
}

func (t *SpanTracker) find(x int) int {
	i := 0
	for t.spans[i].Last < x-1 {
		i++
	}
	return i
}

func (t *SpanTracker) overflow() error {
	return errors.Wrapf(ErrSpanOverflow, "width %d, %d spans", t.last-t.first+1, len(t.spans))
}

// ClipSolid calls emit for every open run in [x1, x2], in order, and marks
// the whole range solid.
func (t *SpanTracker) ClipSolid(x1, x2 int, emit func(first, last int) error) error {
	if x1 > x2 {
		return nil
	}
	if emit == nil {
		emit = func(int, int) error { return nil }
	}
	start := t.find(x1)
	if x1 < t.spans[start].First {
		if x2 < t.spans[start].First-1 {
			// entirely visible, insert a new span
			if err := emit(x1, x2); err != nil {
				return err
			}
			if len(t.spans) >= t.capacity {
				return t.overflow()
			}
			t.spans = append(t.spans, Span{})
			copy(t.spans[start+1:], t.spans[start:])
			t.spans[start] = Span{First: x1, Last: x2}
			return nil
		}
		if err := emit(x1, t.spans[start].First-1); err != nil {
			return err
		}
		t.spans[start].First = x1
	}
	if x2 <= t.spans[start].Last {
		return nil
	}
	next := start
	for x2 >= t.spans[next+1].First-1 {
		if err := emit(t.spans[next].Last+1, t.spans[next+1].First-1); err != nil {
			return err
		}
		next++
		if x2 <= t.spans[next].Last {
			t.spans[start].Last = t.spans[next].Last
			t.crunch(start, next)
			return nil
		}
	}
	if err := emit(t.spans[next].Last+1, x2); err != nil {
		return err
	}
	t.spans[start].Last = x2
	t.crunch(start, next)
	return nil
}

// crunch removes the spans (start, next] swallowed by start.
func (t *SpanTracker) crunch(start, next int) {
	if next == start {
		return
	}
	t.spans = append(t.spans[:start+1], t.spans[next+1:]...)
}

// ClipPass calls emit for every open run in [x1, x2] and leaves the list
// alone.
func (t *SpanTracker) ClipPass(x1, x2 int, emit func(first, last int) error) error {
	if x1 > x2 {
		return nil
	}
	start := t.find(x1)
	if x1 < t.spans[start].First {
		if x2 < t.spans[start].First-1 {
			return emit(x1, x2)
		}
		if err := emit(x1, t.spans[start].First-1); err != nil {
			return err
		}
	}
	if x2 <= t.spans[start].Last {
		return nil
	}
	for x2 >= t.spans[start+1].First-1 {
		if err := emit(t.spans[start].Last+1, t.spans[start+1].First-1); err != nil {
			return err
		}
		start++
		if x2 <= t.spans[start].Last {
			return nil
		}
	}
	return emit(t.spans[start].Last+1, x2)
}
