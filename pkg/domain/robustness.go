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

package domain

import "math"

// Robustness is the quantitative interpretation: the value is the margin by which a formula is satisfied
// (positive) or violated (negative).
type Robustness struct{}

var _ Comparator[float64] = Robustness{}

func (Robustness) Conjunction(x, y float64) float64 { return math.Min(x, y) }

func (Robustness) Disjunction(x, y float64) float64 { return math.Max(x, y) }

func (Robustness) Negation(x float64) float64 { return -x }

func (Robustness) Min() float64 { return math.Inf(-1) }

func (Robustness) Max() float64 { return math.Inf(1) }

func (r Robustness) FromBool(b bool) float64 {
	if b {
		return r.Max()
	}
	return r.Min()
}

func (Robustness) FromFloat(v float64) float64 { return v }

// Compare returns the signed distance from the comparison boundary.
func (r Robustness) Compare(op Operator, lhs, rhs float64) float64 {
	switch op {
	case LessThan, LessOrEqual:
		return rhs - lhs
	case Equal:
		return -math.Abs(lhs - rhs)
	case GreaterOrEqual, GreaterThan:
		return lhs - rhs
	default:
		return r.Min()
	}
}
