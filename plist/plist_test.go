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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkRef verifies that n has refcnt rc.
func checkRef[T any](t *testing.T, n *node[T], rc int32) {
	t.Helper()
	if n.refcnt != rc {
		t.Fatalf("node %v: refcnt=%d  ; want %d", n.elem, n.refcnt, rc)
	}
}

// checkHead verifies what l.Head returns.
func checkHead[T comparable](t *testing.T, l *List[T], x T, ok bool) {
	t.Helper()
	hx, hok := l.Head()
	if !(hx == x && hok == ok) {
		t.Fatalf("%v: head -> %v, %t  ; want %v, %t", l, hx, hok, x, ok)
	}
}

func TestBasics(t *testing.T) {
	l := New[int]()
	checkHead(t, l, 0, false)

	l1 := l.Prepend(1)
	l2 := l1.Prepend(2)
	l3 := l2.Prepend(3)
	checkHead(t, l3, 3, true)

	t1 := l3.Tail()
	checkHead(t, t1, 2, true)
	t2 := t1.Tail()
	checkHead(t, t2, 1, true)
	t3 := t2.Tail()
	checkHead(t, t3, 0, false)

	// tail of empty list is empty list
	t4 := t3.Tail()
	checkHead(t, t4, 0, false)
	require.True(t, t4.IsEmpty())

	// prepend never changes the receiver
	checkHead(t, l, 0, false)
	checkHead(t, l1, 1, true)
	checkHead(t, l2, 2, true)

	for _, x := range []*List[int]{l, l1, l2, l3, t1, t2, t3, t4} {
		require.NoError(t, x.Verify())
		x.Release()
	}
}

func TestRefcnt(t *testing.T) {
	l1 := New[string]().Prepend("c")
	l2 := l1.Prepend("b")
	l3 := l2.Prepend("a")

	nc, nb, na := l1.head, l2.head, l3.head

	// real number of references is refcnt+1
	checkRef(t, nc, 1) // l1 + b
	checkRef(t, nb, 1) // l2 + a
	checkRef(t, na, 0) // l3

	// tail shares structure and does not allocate
	t3 := l3.Tail()
	require.True(t, t3.head == nb)
	checkRef(t, nb, 2)

	// head does not touch refcounts
	l3.Head()
	checkRef(t, na, 0)

	// clone is another owner
	c3 := l3.Clone()
	require.True(t, c3.head == na)
	checkRef(t, na, 1)

	require.Equal(t, 0, c3.Release())
	checkRef(t, na, 0)

	require.Equal(t, 1, l3.Release()) // a freed; stops at b
	checkRef(t, na, -1)
	checkRef(t, nb, 1)
	require.Equal(t, "", na.elem)
	require.Nil(t, na.next)

	require.Equal(t, 0, l2.Release())
	checkRef(t, nb, 0)
	require.Equal(t, 1, t3.Release())
	checkRef(t, nb, -1)
	checkRef(t, nc, 0)
	require.Equal(t, 1, l1.Release())
	checkRef(t, nc, -1)
}

func TestZeroList(t *testing.T) {
	var l List[int]
	checkHead(t, &l, 0, false)
	require.True(t, l.IsEmpty())

	l1 := l.Prepend(7)
	checkHead(t, l1, 7, true)
	require.Equal(t, 0, l.Release())
	require.Equal(t, 1, l1.Release())
}

func TestOf(t *testing.T) {
	l := Of(1, 2, 3)
	defer l.Release()
	require.Equal(t, []int{1, 2, 3}, l.Slice())
	for n := l.head; n != nil; n = n.next {
		checkRef(t, n, 0)
	}

	e := Of[int]()
	defer e.Release()
	require.True(t, e.IsEmpty())
}

func TestShares(t *testing.T) {
	list1 := Of("A", "B", "C", "D")
	list2 := list1.Tail()
	list3 := list2.Prepend("X")
	other := Of("B", "C", "D")
	empty := New[string]()

	require.True(t, list1.Shares(list2))
	require.True(t, list1.Shares(list3))
	require.True(t, list3.Shares(list2))
	require.False(t, list1.Shares(other))
	require.False(t, list1.Shares(empty))

	for _, l := range []*List[string]{list1, list2, list3, other, empty} {
		l.Release()
	}
}

func TestMisuse(t *testing.T) {
	l := Of(1, 2)
	l.Release()

	require.Panics(t, func() { l.Head() })
	require.Panics(t, func() { l.Tail() })
	require.Panics(t, func() { l.Prepend(0) })
	require.Panics(t, func() { l.Clone() })
	require.Panics(t, func() { l.Iter() })
	require.Panics(t, func() { l.Release() })
	require.Error(t, l.Verify())

	// XRelease tolerates nil
	var nilList *List[int]
	nilList.XRelease()
}

func TestVerify(t *testing.T) {
	l := Of(1, 2, 3)
	require.NoError(t, l.Verify())

	// simulate a broken owner that freed a node still reachable from l
	n := l.head.next
	n.refcnt = -1
	err := l.Verify()
	require.Error(t, err)
	require.Contains(t, err.Error(), "node #1: deallocated")
	require.Panics(t, func() { l.Tail().Head() })

	n.refcnt = 0
	l.Release()
}
