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

package signal

import "math"

// Cursor is a read-only, time-seekable position on a Signal. The current position is a segment plus an instant
// inside it, which is either the segment start or, for the last segment, the end of the signal.
type Cursor[V any] struct {
	s       *Signal[V]
	forward bool
	index   int
	time    float64
	// previous position, restored by Revert
	prevIndex int
	prevTime  float64
	hasPrev   bool
}

func newCursor[V any](s *Signal[V], forward bool) *Cursor[V] {
	c := &Cursor[V]{s: s, forward: forward, index: -1, time: math.NaN()}
	if s.IsEmpty() {
		return c
	}
	if forward {
		c.index = 0
		c.time = s.points[0].Time
	} else {
		c.index = len(s.points) - 1
		c.time = s.end
	}
	return c
}

// Time returns the current instant, NaN when the cursor is completed.
func (c *Cursor[V]) Time() float64 {
	return c.time
}

// Value returns the value of the current segment.
func (c *Cursor[V]) Value() V {
	if c.Completed() {
		var zero V
		return zero
	}
	return c.s.points[c.index].Value
}

// Completed returns true once the cursor moved past the signal.
func (c *Cursor[V]) Completed() bool {
	return c.index < 0
}

// IsForward returns the direction the cursor was created with.
func (c *Cursor[V]) IsForward() bool {
	return c.forward
}

func (c *Cursor[V]) save() {
	c.prevIndex, c.prevTime, c.hasPrev = c.index, c.time, true
}

func (c *Cursor[V]) complete() {
	c.index = -1
	c.time = math.NaN()
}

// Forward moves to the next boundary and returns its time. The end of a right-closed last segment is a boundary.
func (c *Cursor[V]) Forward() float64 {
	if c.Completed() {
		return c.time
	}
	c.save()
	last := len(c.s.points) - 1
	switch {
	case c.index < last:
		c.index++
		c.time = c.s.points[c.index].Time
	case c.time < c.s.end:
		c.time = c.s.end
	default:
		c.complete()
	}
	return c.time
}

// Backward moves to the previous boundary and returns its time.
func (c *Cursor[V]) Backward() float64 {
	if c.Completed() {
		return c.time
	}
	c.save()
	switch {
	case c.time > c.s.points[c.index].Time:
		c.time = c.s.points[c.index].Time
	case c.index > 0:
		c.index--
		c.time = c.s.points[c.index].Time
	default:
		c.complete()
	}
	return c.time
}

// Revert restores the position held before the last move and returns its time, NaN if there is nothing to revert.
func (c *Cursor[V]) Revert() float64 {
	if !c.hasPrev {
		return math.NaN()
	}
	c.index, c.time = c.prevIndex, c.prevTime
	c.hasPrev = false
	return c.time
}

// Move seeks the segment covering t. Seeking outside of the signal completes the cursor.
func (c *Cursor[V]) Move(t float64) {
	if c.Completed() {
		return
	}
	c.save()
	if i := c.s.segmentIndex(t); i >= 0 {
		c.index = i
		c.time = t
		return
	}
	c.complete()
}

// Seek moves to t stepping over the segments in between, unlike Move which searches the whole signal.
// A sequence of monotone seeks is linear in the number of segments. Seeking outside of the signal completes the
// cursor.
func (c *Cursor[V]) Seek(t float64) {
	if c.Completed() {
		return
	}
	c.save()
	if !c.s.Contains(t) {
		c.complete()
		return
	}
	last := len(c.s.points) - 1
	for c.index < last && c.s.points[c.index+1].Time <= t {
		c.index++
	}
	for c.index > 0 && c.s.points[c.index].Time > t {
		c.index--
	}
	c.time = t
}

// NextTime returns the first boundary after the current instant, NaN if there is none.
func (c *Cursor[V]) NextTime() float64 {
	if c.Completed() {
		return math.NaN()
	}
	if c.index < len(c.s.points)-1 {
		return c.s.points[c.index+1].Time
	}
	if c.time < c.s.end {
		return c.s.end
	}
	return math.NaN()
}

// PreviousTime returns the last boundary before the current instant, NaN if there is none.
func (c *Cursor[V]) PreviousTime() float64 {
	if c.Completed() {
		return math.NaN()
	}
	if start := c.s.points[c.index].Time; start < c.time {
		return start
	}
	if c.index > 0 {
		return c.s.points[c.index-1].Time
	}
	return math.NaN()
}

// HasNext returns true if a segment follows the current one.
func (c *Cursor[V]) HasNext() bool {
	return !c.Completed() && c.index < len(c.s.points)-1
}

// HasPrevious returns true if a segment precedes the current one.
func (c *Cursor[V]) HasPrevious() bool {
	return !c.Completed() && c.index > 0
}
