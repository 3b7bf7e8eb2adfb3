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

// Package domain defines the algebraic interpretations a formula can be monitored with.
package domain

import (
	"fmt"
	"strings"
)

// Domain is the interpretation of the logical connectives over R.
//
// Conjunction and Disjunction must be commutative, associative and selective, i.e. op(a, b) is either a or b.
// The sliding window relies on selectivity to keep its candidate queue monotone.
type Domain[R comparable] interface {
	Conjunction(x, y R) R
	Disjunction(x, y R) R
	Negation(x R) R
	// Min is the bottom element, identity of Disjunction.
	Min() R
	// Max is the top element, identity of Conjunction.
	Max() R
}

// Comparator turns raw numeric observations into domain values, it is used to build atomic propositions.
type Comparator[R comparable] interface {
	Domain[R]
	FromBool(b bool) R
	FromFloat(v float64) R
	Compare(op Operator, lhs, rhs float64) R
}

// Implies returns the material implication x -> y, i.e. !x | y.
func Implies[R comparable](d Domain[R], x, y R) R {
	return d.Disjunction(d.Negation(x), y)
}

// Operator is a numeric comparison operator of an atomic proposition.
type Operator string

const (
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
	Equal          Operator = "=="
	GreaterOrEqual Operator = ">="
	GreaterThan    Operator = ">"
)

// ParseOperator validates a comparison operator.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(strings.TrimSpace(s)); op {
	case LessThan, LessOrEqual, Equal, GreaterOrEqual, GreaterThan:
		return op, nil
	default:
		return "", fmt.Errorf("unsupported comparison operator %q", s)
	}
}

// Kind names a built-in domain.
type Kind string

const (
	KindBoolean    Kind = "boolean"
	KindRobustness Kind = "robustness"
)

// ParseKind validates a domain name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBoolean, KindRobustness:
		return k, nil
	case "":
		return "", fmt.Errorf("domain is not specified")
	default:
		return "", fmt.Errorf("unsupported domain %q, expected %q or %q", s, KindBoolean, KindRobustness)
	}
}
