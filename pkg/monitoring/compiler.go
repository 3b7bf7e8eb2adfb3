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

package monitoring

import (
	"errors"
	"fmt"

	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/formula"
)

var (
	// ErrUnknownAtomic is returned when a formula names an atomic proposition the compiler does not know.
	ErrUnknownAtomic = errors.New("unknown atomic proposition")
	// ErrPastOperator is returned by a future only compiler on past temporal operators.
	ErrPastOperator = errors.New("past operator not allowed")
	// ErrUnsupportedFormula is returned on nil or foreign formula nodes.
	ErrUnsupportedFormula = errors.New("unsupported formula")
)

// Option configures a Compiler.
type Option[T any, R comparable] func(*Compiler[T, R])

// WithAtoms registers the given atomic propositions.
func WithAtoms[T any, R comparable](atoms map[string]func(T) R) Option[T, R] {
	return func(c *Compiler[T, R]) {
		for id, fn := range atoms {
			c.atoms[id] = fn
		}
	}
}

// WithFutureOnly rejects the formulas using Once, Historically or Since.
func WithFutureOnly[T any, R comparable]() Option[T, R] {
	return func(c *Compiler[T, R]) {
		c.futureOnly = true
	}
}

// Compiler turns formulas into monitors over a domain, resolving the atomic propositions by name.
type Compiler[T any, R comparable] struct {
	domain     domain.Domain[R]
	atoms      map[string]func(T) R
	futureOnly bool
}

// NewCompiler returns a compiler for the domain d.
func NewCompiler[T any, R comparable](d domain.Domain[R], opts ...Option[T, R]) *Compiler[T, R] {
	c := &Compiler[T, R]{
		domain: d,
		atoms:  make(map[string]func(T) R),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// AddAtom registers the atomic proposition id, replacing any previous one.
func (c *Compiler[T, R]) AddAtom(id string, fn func(T) R) {
	c.atoms[id] = fn
}

// Domain returns the domain the monitors are computed in.
func (c *Compiler[T, R]) Domain() domain.Domain[R] {
	return c.domain
}

// Compile builds the monitor of f. Every error is detected here, the returned monitor never fails.
func (c *Compiler[T, R]) Compile(f formula.Formula) (Monitor[T, R], error) {
	d := c.domain
	switch n := f.(type) {
	case formula.Atomic:
		atom, ok := c.atoms[n.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAtomic, n.ID)
		}
		return Atomic(atom), nil
	case formula.Not:
		arg, err := c.Compile(n.Arg)
		if err != nil {
			return nil, err
		}
		return Not(d, arg), nil
	case formula.And:
		left, right, err := c.compilePair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return And(d, left, right), nil
	case formula.Or:
		left, right, err := c.compilePair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return Or(d, left, right), nil
	case formula.Eventually:
		arg, err := c.Compile(n.Arg)
		if err != nil {
			return nil, err
		}
		return Eventually(d, arg, n.Interval), nil
	case formula.Globally:
		arg, err := c.Compile(n.Arg)
		if err != nil {
			return nil, err
		}
		return Globally(d, arg, n.Interval), nil
	case formula.Until:
		left, right, err := c.compilePair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return Until(d, left, n.Interval, right), nil
	case formula.Once:
		if err := c.checkPast(n); err != nil {
			return nil, err
		}
		arg, err := c.Compile(n.Arg)
		if err != nil {
			return nil, err
		}
		return Once(d, arg, n.Interval), nil
	case formula.Historically:
		if err := c.checkPast(n); err != nil {
			return nil, err
		}
		arg, err := c.Compile(n.Arg)
		if err != nil {
			return nil, err
		}
		return Historically(d, arg, n.Interval), nil
	case formula.Since:
		if err := c.checkPast(n); err != nil {
			return nil, err
		}
		left, right, err := c.compilePair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return Since(d, left, n.Interval, right), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormula, f)
	}
}

func (c *Compiler[T, R]) compilePair(l, r formula.Formula) (Monitor[T, R], Monitor[T, R], error) {
	left, err := c.Compile(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := c.Compile(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (c *Compiler[T, R]) checkPast(f formula.Formula) error {
	if c.futureOnly {
		return fmt.Errorf("%w: %s", ErrPastOperator, f)
	}
	return nil
}
