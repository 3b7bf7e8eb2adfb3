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

// Package monitoring compiles formulas into monitors, executable trees that turn a trace signal into the signal of
// the satisfaction of the formula over a domain.
package monitoring

import (
	"github.com/numaproj/stlmon/pkg/algorithms"
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/interval"
	"github.com/numaproj/stlmon/pkg/signal"
)

// Monitor evaluates a property over a trace of T, giving the satisfaction signal in R.
//
// A monitor keeps no state between calls, a call only reads its input.
type Monitor[T any, R comparable] interface {
	Monitor(s *signal.Signal[T]) *signal.Signal[R]
}

// Func adapts a function to the Monitor interface.
type Func[T any, R comparable] func(s *signal.Signal[T]) *signal.Signal[R]

// Monitor calls f(s).
func (f Func[T, R]) Monitor(s *signal.Signal[T]) *signal.Signal[R] {
	return f(s)
}

// Atomic maps every sample of the trace through atom.
func Atomic[T any, R comparable](atom func(T) R) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ApplyUnary(s, atom)
	})
}

// Not negates the output of m.
func Not[T any, R comparable](d domain.Domain[R], m Monitor[T, R]) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ApplyUnary(m.Monitor(s), d.Negation)
	})
}

// And is the conjunction of the outputs of left and right.
func And[T any, R comparable](d domain.Domain[R], left, right Monitor[T, R]) Monitor[T, R] {
	return binary(left, d.Conjunction, right)
}

// Or is the disjunction of the outputs of left and right.
func Or[T any, R comparable](d domain.Domain[R], left, right Monitor[T, R]) Monitor[T, R] {
	return binary(left, d.Disjunction, right)
}

// Implies is the material implication of the outputs of left and right.
func Implies[T any, R comparable](d domain.Domain[R], left, right Monitor[T, R]) Monitor[T, R] {
	return binary(left, func(x, y R) R { return domain.Implies(d, x, y) }, right)
}

func binary[T any, R comparable](left Monitor[T, R], op func(x, y R) R, right Monitor[T, R]) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ApplyBinary(left.Monitor(s), op, right.Monitor(s))
	})
}

// Eventually is the disjunction of m over the future interval itv, nil meaning up to the end of the trace.
func Eventually[T any, R comparable](d domain.Domain[R], m Monitor[T, R], itv *interval.Interval) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputeFuture(m.Monitor(s), itv, d.Disjunction, d.Min())
	})
}

// Globally is the conjunction of m over the future interval itv.
func Globally[T any, R comparable](d domain.Domain[R], m Monitor[T, R], itv *interval.Interval) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputeFuture(m.Monitor(s), itv, d.Conjunction, d.Max())
	})
}

// Once is the disjunction of m over the past interval itv, nil meaning since the start of the trace.
func Once[T any, R comparable](d domain.Domain[R], m Monitor[T, R], itv *interval.Interval) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputePast(m.Monitor(s), itv, d.Disjunction, d.Min())
	})
}

// Historically is the conjunction of m over the past interval itv.
func Historically[T any, R comparable](d domain.Domain[R], m Monitor[T, R], itv *interval.Interval) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputePast(m.Monitor(s), itv, d.Conjunction, d.Max())
	})
}

// Until evaluates left until right within itv.
func Until[T any, R comparable](d domain.Domain[R], left Monitor[T, R], itv *interval.Interval, right Monitor[T, R]) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputeUntil(d, left.Monitor(s), itv, right.Monitor(s))
	})
}

// Since evaluates left since right within itv.
func Since[T any, R comparable](d domain.Domain[R], left Monitor[T, R], itv *interval.Interval, right Monitor[T, R]) Monitor[T, R] {
	return Func[T, R](func(s *signal.Signal[T]) *signal.Signal[R] {
		return algorithms.ComputeSince(d, left.Monitor(s), itv, right.Monitor(s))
	})
}
