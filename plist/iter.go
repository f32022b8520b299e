// Copyright (C) 2026  Nexedi SA and Contributors.
//                     Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.

package plist
// iteration

import (
	"iter"

	"github.com/pkg/errors"
)

// Iterator is read-only cursor over elements of a list.
//
// An iterator borrows from its list and must not be used after the list is
// released: Next panics if it detects that.
type Iterator[T any] struct {
	l   *List[T]
	cur *node[T] // next node to yield
}

// Iter returns iterator positioned at the head of l.
//
// Every call returns fresh independent iterator. Iteration does not change
// reference counters.
func (l *List[T]) Iter() *Iterator[T] {
	l.live()
	return &Iterator[T]{l: l, cur: l.head}
}

// Next returns next element and advances the iterator.
//
// ok=false is returned when there are no more elements.
func (it *Iterator[T]) Next() (x T, ok bool) {
	if it.l.released {
		panic(errors.Wrap(errReleased, "iterator"))
	}
	if it.cur == nil {
		return x, false
	}
	n := it.cur.live()
	it.cur = n.next
	return n.elem, true
}

// All returns sequence over elements of l from head to tail.
//
// It is range-over-func form of Iter:
//
//	for x := range l.All() {
//		...
//	}
func (l *List[T]) All() iter.Seq[T] {
	l.live()
	return func(yield func(T) bool) {
		it := l.Iter()
		for {
			x, ok := it.Next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Len returns number of elements in l.
//
// It takes O(len) time.
func (l *List[T]) Len() int {
	n := 0
	for it := l.Iter(); ; n++ {
		if _, ok := it.Next(); !ok {
			return n
		}
	}
}

// Slice returns elements of l from head to tail.
func (l *List[T]) Slice() []T {
	var s []T
	for x := range l.All() {
		s = append(s, x)
	}
	return s
}
