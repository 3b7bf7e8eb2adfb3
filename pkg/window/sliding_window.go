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

	"github.com/numaproj/stlmon/pkg/signal"
)

// SlidingWindow aggregates a signal over a fixed relative horizon [a, b].
//
// The aggregator must be commutative, associative and selective (op(x, y) is x or y), e.g. min, max, and, or.
type SlidingWindow[R comparable] struct {
	a          float64
	b          float64
	aggregator func(x, y R) R
	isFuture   bool
}

// New returns a sliding window over [a, b]. When isFuture is false the window looks at the past.
func New[R comparable](a, b float64, aggregator func(x, y R) R, isFuture bool) *SlidingWindow[R] {
	return &SlidingWindow[R]{
		a:          a,
		b:          b,
		aggregator: aggregator,
		isFuture:   isFuture,
	}
}

// Size returns the width b - a of the horizon.
func (sw *SlidingWindow[R]) Size() float64 {
	return sw.b - sw.a
}

// IsFuture tells the direction of the sliding.
func (sw *SlidingWindow[R]) IsFuture() bool {
	return sw.isFuture
}

// Apply slides the window over s and returns the aggregated signal.
func (sw *SlidingWindow[R]) Apply(s *signal.Signal[R]) *signal.Signal[R] {
	result := signal.New[R]()
	// NOTE: offline usage, the signal is complete, so a window that does not fit yields nothing.
	if s.IsEmpty() || s.End()-s.Start() < sw.Size() {
		return result
	}
	lo, hi := sw.scanBounds(s)
	if hi < lo {
		return result
	}

	points := s.Points()
	size := sw.Size()
	w := newWindow(sw.aggregator)
	next := 0
	// admit adds every segment whose start is reached by the right edge of the window [x, x+size].
	admit := func(x float64) {
		for next < len(points) && points[next].Time-size <= x {
			w.tryAdd(points[next].Time, segmentEnd(points, next), points[next].Value)
			next++
		}
	}

	x := lo
	admit(x)
	for {
		w.shift(x)
		first, ok := w.first()
		if !ok {
			// unreachable on a well formed signal: the segment covering x is always a candidate.
			break
		}
		result.Add(sw.timeOf(x), first.value)

		enter := math.Inf(1)
		if next < len(points) {
			enter = points[next].Time - size
		}
		x = math.Min(enter, w.nextExpiry())
		if x > hi {
			break
		}
		admit(x)
	}
	result.EndAt(sw.timeOf(hi))
	return result
}

// scanBounds returns the range of left edges x of the window [x, x+size] the output is computed for.
func (sw *SlidingWindow[R]) scanBounds(s *signal.Signal[R]) (float64, float64) {
	if sw.isFuture {
		return s.Start() + sw.a, s.End() - sw.Size()
	}
	return s.Start(), s.End() - sw.b
}

// timeOf maps the left edge of the window to the output instant it aggregates for.
func (sw *SlidingWindow[R]) timeOf(x float64) float64 {
	if sw.isFuture {
		return x - sw.a
	}
	return x + sw.b
}

// segmentEnd returns the exclusive end of the i-th segment, +Inf for the last one which holds up to the end.
func segmentEnd[R any](points []signal.Point[R], i int) float64 {
	if i+1 < len(points) {
		return points[i+1].Time
	}
	return math.Inf(1)
}
