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
// nodes and their reference counting

import (
	"github.com/pkg/errors"
)

// node is one immutable cell of a list chain.
//
// A node is jointly owned by every handle and every other node that points
// to it. Its elem and next never change while the node is alive.
type node[T any] struct {
	elem T
	next *node[T]

	// reference counter.
	//
	// NOTE like with zodb.Buf a node is created with refcnt=0. The real
	// number of references to node is thus .refcnt+1, and refcnt=-1 means
	// the node was deallocated.
	refcnt int32
}

var (
	errFreed        = errors.New("plist: use of deallocated node")
	errRefUnderflow = errors.New("plist: node refcnt < 0")
)

// newNode allocates node holding elem in front of next.
//
// The reference to next, if any, is transferred to the new node; the caller
// must have already accounted for it.
func newNode[T any](elem T, next *node[T]) *node[T] {
	return &node[T]{elem: elem, next: next}
}

// incref adds one more owner to n.
func (n *node[T]) incref() {
	if n.refcnt < 0 {
		panic(errors.WithStack(errFreed))
	}
	n.refcnt++
}

// xincref increfs n if it is != nil.
func (n *node[T]) xincref() {
	if n != nil {
		n.incref()
	}
}

// unique reports whether the caller holds the only reference to n.
func (n *node[T]) unique() bool {
	return n.refcnt == 0
}

// decref drops one owner of n that is known not to be the last one.
func (n *node[T]) decref() {
	if n.refcnt <= 0 {
		panic(errors.WithStack(errRefUnderflow))
	}
	n.refcnt--
}

// free deallocates uniquely-owned n and returns its successor.
//
// The reference n held to its successor is handed to the caller. n itself is
// left childless, so nothing more is released on its behalf.
func (n *node[T]) free() *node[T] {
	if !n.unique() {
		panic(errors.WithStack(errRefUnderflow))
	}
	next := n.next
	var zero T
	n.elem = zero
	n.next = nil
	n.refcnt = -1
	return next
}

// live panics if n was deallocated.
func (n *node[T]) live() *node[T] {
	if n.refcnt < 0 {
		panic(errors.WithStack(errFreed))
	}
	return n
}
