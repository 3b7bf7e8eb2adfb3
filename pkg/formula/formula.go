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

// Package formula defines the abstract syntax of the temporal properties the monitors are compiled from.
package formula

import (
	"fmt"
	"sort"

	"github.com/numaproj/stlmon/pkg/interval"
)

// Formula is a node of a temporal logic formula. The set of nodes is closed.
//
// Temporal nodes carry an optional interval, nil means unbounded.
type Formula interface {
	fmt.Stringer
	formula()
}

// Atomic is an atomic proposition, resolved by name at compile time.
type Atomic struct {
	ID string
}

// And is the conjunction of two formulas.
type And struct {
	Left  Formula
	Right Formula
}

// Or is the disjunction of two formulas.
type Or struct {
	Left  Formula
	Right Formula
}

// Not is the negation of a formula.
type Not struct {
	Arg Formula
}

// Eventually holds if Arg holds at some time within Interval in the future.
type Eventually struct {
	Arg      Formula
	Interval *interval.Interval
}

// Globally holds if Arg holds at every time within Interval in the future.
type Globally struct {
	Arg      Formula
	Interval *interval.Interval
}

// Once holds if Arg held at some time within Interval in the past.
type Once struct {
	Arg      Formula
	Interval *interval.Interval
}

// Historically holds if Arg held at every time within Interval in the past.
type Historically struct {
	Arg      Formula
	Interval *interval.Interval
}

// Until holds if Right eventually holds within Interval and Left holds until then.
type Until struct {
	Left     Formula
	Right    Formula
	Interval *interval.Interval
}

// Since holds if Right held within Interval in the past and Left has held since then.
type Since struct {
	Left     Formula
	Right    Formula
	Interval *interval.Interval
}

func (Atomic) formula()       {}
func (And) formula()          {}
func (Or) formula()           {}
func (Not) formula()          {}
func (Eventually) formula()   {}
func (Globally) formula()     {}
func (Once) formula()         {}
func (Historically) formula() {}
func (Until) formula()        {}
func (Since) formula()        {}

func (f Atomic) String() string { return f.ID }

func (f And) String() string { return fmt.Sprintf("(%s & %s)", f.Left, f.Right) }

func (f Or) String() string { return fmt.Sprintf("(%s | %s)", f.Left, f.Right) }

func (f Not) String() string { return fmt.Sprintf("!%s", f.Arg) }

func (f Eventually) String() string { return unary("F", f.Interval, f.Arg) }

func (f Globally) String() string { return unary("G", f.Interval, f.Arg) }

func (f Once) String() string { return unary("O", f.Interval, f.Arg) }

func (f Historically) String() string { return unary("H", f.Interval, f.Arg) }

func (f Until) String() string { return binary("U", f.Interval, f.Left, f.Right) }

func (f Since) String() string { return binary("S", f.Interval, f.Left, f.Right) }

func unary(op string, itv *interval.Interval, arg Formula) string {
	return fmt.Sprintf("%s%s(%s)", op, bound(itv), arg)
}

func binary(op string, itv *interval.Interval, left, right Formula) string {
	return fmt.Sprintf("(%s %s%s %s)", left, op, bound(itv), right)
}

func bound(itv *interval.Interval) string {
	if itv == nil {
		return ""
	}
	return itv.String()
}

// IsFuture reports whether f only uses future temporal operators.
func IsFuture(f Formula) bool {
	switch n := f.(type) {
	case Atomic:
		return true
	case Not:
		return IsFuture(n.Arg)
	case And:
		return IsFuture(n.Left) && IsFuture(n.Right)
	case Or:
		return IsFuture(n.Left) && IsFuture(n.Right)
	case Eventually:
		return IsFuture(n.Arg)
	case Globally:
		return IsFuture(n.Arg)
	case Until:
		return IsFuture(n.Left) && IsFuture(n.Right)
	default:
		return false
	}
}

// Horizon returns the relative time range a monitor of f needs to look ahead of each instant.
// Unbounded future operators yield an unbounded horizon.
func Horizon(f Formula) interval.Interval {
	switch n := f.(type) {
	case Not:
		return Horizon(n.Arg)
	case And:
		return Horizon(n.Left).Hull(Horizon(n.Right))
	case Or:
		return Horizon(n.Left).Hull(Horizon(n.Right))
	case Eventually:
		return within(n.Interval).Combine(Horizon(n.Arg))
	case Globally:
		return within(n.Interval).Combine(Horizon(n.Arg))
	case Until:
		// left is observed from now on, so the window always starts at 0.
		w := within(n.Interval)
		w.Start = 0
		return w.Combine(Horizon(n.Left).Hull(Horizon(n.Right)))
	case Once:
		return Horizon(n.Arg)
	case Historically:
		return Horizon(n.Arg)
	case Since:
		return Horizon(n.Left).Hull(Horizon(n.Right))
	default:
		return interval.Point(0)
	}
}

func within(itv *interval.Interval) interval.Interval {
	if itv == nil {
		return interval.Unbounded()
	}
	return *itv
}

// Atoms returns the sorted identifiers of the atomic propositions of f.
func Atoms(f Formula) []string {
	seen := make(map[string]struct{})
	collectAtoms(f, seen)
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func collectAtoms(f Formula, seen map[string]struct{}) {
	switch n := f.(type) {
	case Atomic:
		seen[n.ID] = struct{}{}
	case Not:
		collectAtoms(n.Arg, seen)
	case And:
		collectAtoms(n.Left, seen)
		collectAtoms(n.Right, seen)
	case Or:
		collectAtoms(n.Left, seen)
		collectAtoms(n.Right, seen)
	case Eventually:
		collectAtoms(n.Arg, seen)
	case Globally:
		collectAtoms(n.Arg, seen)
	case Once:
		collectAtoms(n.Arg, seen)
	case Historically:
		collectAtoms(n.Arg, seen)
	case Until:
		collectAtoms(n.Left, seen)
		collectAtoms(n.Right, seen)
	case Since:
		collectAtoms(n.Left, seen)
		collectAtoms(n.Right, seen)
	}
}
