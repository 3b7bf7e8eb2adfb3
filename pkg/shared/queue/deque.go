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

package queue

// Deque is a double-ended queue backed by a ring buffer. It is not thread safe, each owner is expected to keep
// it local to a single goroutine.
type Deque[T any] struct {
	elements []T
	head     int
	size     int
}

// NewDeque returns an empty deque with room for capacity elements before it grows.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Deque[T]{elements: make([]T, capacity)}
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.size
}

// PushBack adds an element at the tail.
func (d *Deque[T]) PushBack(value T) {
	if d.size == len(d.elements) {
		d.grow()
	}
	d.elements[d.index(d.size)] = value
	d.size++
}

// PopBack removes and returns the tail element.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	i := d.index(d.size - 1)
	value := d.elements[i]
	d.elements[i] = zero
	d.size--
	return value, true
}

// PopFront removes and returns the head element.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	value := d.elements[d.head]
	d.elements[d.head] = zero
	d.head = (d.head + 1) % len(d.elements)
	d.size--
	return value, true
}

// Front returns the head element without removing it.
func (d *Deque[T]) Front() (T, bool) {
	if d.size == 0 {
		var zero T
		return zero, false
	}
	return d.elements[d.head], true
}

// Back returns the tail element without removing it.
func (d *Deque[T]) Back() (T, bool) {
	if d.size == 0 {
		var zero T
		return zero, false
	}
	return d.elements[d.index(d.size-1)], true
}

// Items returns a copy of the elements from head to tail.
func (d *Deque[T]) Items() []T {
	r := make([]T, d.size)
	for i := 0; i < d.size; i++ {
		r[i] = d.elements[d.index(i)]
	}
	return r
}

func (d *Deque[T]) index(offset int) int {
	return (d.head + offset) % len(d.elements)
}

func (d *Deque[T]) grow() {
	elements := make([]T, 2*len(d.elements))
	copy(elements, d.Items())
	d.elements = elements
	d.head = 0
}
