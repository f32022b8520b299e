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

// Package plist provides persistent singly-linked lists with shared tails.
//
// A List is an immutable sequence of elements. Operations never change a list;
// instead they return new lists that share as much structure as possible with
// the original:
//
//	list1 := plist.Of("A", "B", "C", "D")	// list1 -> A ---+
//	list2 := list1.Tail()			//               v
//	list3 := list2.Prepend("X")		// list2 ------> B -> C -> D
//						//               ^
//						// list3 -> X ---+
//
// Nodes are reference-counted. Every List handle owns one reference to its
// first node and every node owns one reference to its successor. The last
// owner to go away deallocates a node, which in turn drops the node's claim on
// its successor. Handles must thus be released explicitly when no longer
// used:
//
//	l := plist.New[int]().Prepend(1)
//	defer l.Release()
//
// Release of a long uniquely-owned chain runs in a loop, not via recursion,
// and stops as soon as it reaches a node still shared with another handle.
//
// Lists are not safe for concurrent use: reference counters are updated
// without atomics. Independent lists may be used from different goroutines
// provided they do not share nodes.
package plist

import (
	"runtime"

	"github.com/pkg/errors"
)

// List is a handle to a persistent list.
//
// The zero List is a valid empty list.
type List[T any] struct {
	head      *node[T] // first node or nil for empty list
	released  bool
	leakcheck bool // finalizer is set
}

var errReleased = errors.New("plist: use of released list")

// LeakCheck, if set, makes every handle created afterwards log a warning
// when it is garbage-collected without being released.
var LeakCheck = false

// New returns new empty list.
func New[T any]() *List[T] {
	return newList[T](nil)
}

// Of returns list with items in order: items[0] becomes the head.
func Of[T any](items ...T) *List[T] {
	var head *node[T]
	for i := len(items) - 1; i >= 0; i-- {
		head = newNode(items[i], head)
	}
	return newList(head)
}

// newList wraps head into new handle.
//
// head reference is transferred to the handle.
func newList[T any](head *node[T]) *List[T] {
	l := &List[T]{head: head}
	if LeakCheck {
		l.leakcheck = true
		runtime.SetFinalizer(l, (*List[T]).leaked)
	}
	return l
}

// live panics if l was released.
func (l *List[T]) live() {
	if l.released {
		panic(errors.WithStack(errReleased))
	}
}

// Prepend returns new list with x in front of l.
//
// l is left unchanged and continues to be valid.
func (l *List[T]) Prepend(x T) *List[T] {
	l.live()
	l.head.xincref()
	return newList(newNode(x, l.head))
}

// Tail returns list with all but the first element of l.
//
// The result shares all its nodes with l. Tail of an empty list is an empty
// list.
func (l *List[T]) Tail() *List[T] {
	l.live()
	if l.head == nil {
		return newList[T](nil)
	}
	next := l.head.live().next
	next.xincref()
	return newList(next)
}

// Head returns first element of l.
//
// ok=false is returned if l is empty.
func (l *List[T]) Head() (x T, ok bool) {
	l.live()
	if l.head == nil {
		return x, false
	}
	return l.head.live().elem, true
}

// Clone returns another handle to the same list.
//
// Both l and the clone have to be released independently.
func (l *List[T]) Clone() *List[T] {
	l.live()
	l.head.xincref()
	return newList(l.head)
}

// IsEmpty returns whether l has no elements.
func (l *List[T]) IsEmpty() bool {
	l.live()
	return l.head == nil
}
