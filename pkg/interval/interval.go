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

// Package interval implements the time bounds carried by temporal operators.
package interval

import (
	"fmt"
	"math"
)

// Interval is a numeric range of non-negative relative times. Offline monitoring treats both bounds as
// closed, the open flags only matter to Contains and IsEmpty.
type Interval struct {
	Start     float64 `json:"start" mapstructure:"start"`
	End       float64 `json:"end" mapstructure:"end"`
	OpenLeft  bool    `json:"openLeft,omitempty" mapstructure:"openLeft"`
	OpenRight bool    `json:"openRight,omitempty" mapstructure:"openRight"`
}

// New returns the closed interval [start, end].
func New(start, end float64) (Interval, error) {
	if math.IsNaN(start) || math.IsNaN(end) {
		return Interval{}, fmt.Errorf("interval bounds must be numbers, got [%v, %v]", start, end)
	}
	if start < 0 {
		return Interval{}, fmt.Errorf("interval start must not be negative, got %v", start)
	}
	if end < start {
		return Interval{}, fmt.Errorf("interval end %v precedes its start %v", end, start)
	}
	return Interval{Start: start, End: end}, nil
}

// MustNew is like New but panics on invalid bounds.
func MustNew(start, end float64) Interval {
	i, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return i
}

// Point returns the punctual interval [t, t].
func Point(t float64) Interval {
	return Interval{Start: t, End: t}
}

// Unbounded returns [0, +Inf).
func Unbounded() Interval {
	return Interval{Start: 0, End: math.Inf(1), OpenRight: true}
}

// IsUnbounded reports whether the interval has no finite right bound.
func (i Interval) IsUnbounded() bool {
	return math.IsInf(i.End, 1)
}

// Size returns End - Start.
func (i Interval) Size() float64 {
	return i.End - i.Start
}

// Contains checks whether v belongs to the interval.
func (i Interval) Contains(v float64) bool {
	return (v > i.Start && v < i.End) ||
		(v == i.Start && !i.OpenLeft) ||
		(v == i.End && !i.OpenRight)
}

// IsEmpty is true for a punctual interval with an open bound.
func (i Interval) IsEmpty() bool {
	return i.Start == i.End && (i.OpenLeft || i.OpenRight)
}

// Combine returns the interval whose bounds are the sum of the bounds of i and o.
func (i Interval) Combine(o Interval) Interval {
	return Interval{
		Start:     i.Start + o.Start,
		End:       i.End + o.End,
		OpenLeft:  i.OpenLeft || o.OpenLeft,
		OpenRight: i.OpenRight || o.OpenRight,
	}
}

// Hull returns the smallest interval containing both i and o.
func (i Interval) Hull(o Interval) Interval {
	h := i
	if o.Start < h.Start || (o.Start == h.Start && !o.OpenLeft) {
		h.Start, h.OpenLeft = o.Start, o.OpenLeft
	}
	if o.End > h.End || (o.End == h.End && !o.OpenRight) {
		h.End, h.OpenRight = o.End, o.OpenRight
	}
	return h
}

func (i Interval) String() string {
	left, right := "[", "]"
	if i.OpenLeft {
		left = "("
	}
	if i.OpenRight {
		right = ")"
	}
	return fmt.Sprintf("%s%v,%v%s", left, i.Start, i.End, right)
}
