/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package window

import (
	"math"

	"github.com/numaproj/stlmon/pkg/shared/queue"
)

// segment is an input segment [start, end) held by the window as a candidate extreme.
type segment[R any] struct {
	start float64
	end   float64
	value R
}

// Window is the monotone edge set of a SlidingWindow. It is rebuilt on every Apply and never shared.
type Window[R comparable] struct {
	op       func(x, y R) R
	segments *queue.Deque[segment[R]]
}

func newWindow[R comparable](op func(x, y R) R) *Window[R] {
	return &Window[R]{
		op:       op,
		segments: queue.NewDeque[segment[R]](16),
	}
}

// tryAdd admits the segment [start, end) folding it against the tail of the queue: every candidate the new value
// dominates is dropped, the first one dominating it stops the fold.
func (w *Window[R]) tryAdd(start, end float64, value R) {
	for {
		last, ok := w.segments.Back()
		if !ok {
			break
		}
		if w.op(last.value, value) != value {
			// the tail dominates, or a tie of a non selective aggregator produced a third value: keep both.
			break
		}
		_, _ = w.segments.PopBack()
	}
	w.segments.PushBack(segment[R]{start: start, end: end, value: value})
}

// shift moves the left edge of the window to x, dropping the candidates that ended at or before x.
func (w *Window[R]) shift(x float64) {
	for {
		first, ok := w.segments.Front()
		if !ok || first.end > x {
			return
		}
		_, _ = w.segments.PopFront()
	}
}

// first returns the dominating candidate.
func (w *Window[R]) first() (segment[R], bool) {
	return w.segments.Front()
}

// nextExpiry returns the time the dominating candidate leaves the window.
func (w *Window[R]) nextExpiry() float64 {
	if first, ok := w.segments.Front(); ok {
		return first.end
	}
	return math.Inf(1)
}
