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
// list teardown

import (
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Release marks l as no longer used by caller.
//
// It drops l's reference to its first node. Nodes that become unreferenced
// are deallocated one by one until either the end of the chain or a node
// still shared with another handle is reached. Release returns how many nodes
// it deallocated.
//
// The caller must not use l after call to Release.
func (l *List[T]) Release() (nfreed int) {
	if l.released {
		panic(errors.Wrap(errReleased, "release"))
	}
	l.released = true
	if l.leakcheck {
		runtime.SetFinalizer(l, nil)
	}

	n := l.head
	l.head = nil

	// free uniquely-owned prefix iteratively: n.free detaches successor
	// before n goes, so teardown never nests.
	shared := false
	for n != nil {
		if !n.live().unique() {
			n.decref()
			shared = true
			break
		}
		n = n.free()
		nfreed++
	}

	if glog.V(2) {
		glog.Infof("plist: release: %d node(s) freed; stopped at shared: %t", nfreed, shared)
	}
	return nfreed
}

// XRelease releases l if it is != nil.
func (l *List[T]) XRelease() {
	if l != nil {
		l.Release()
	}
}

// leaked is run as finalizer for handles created with LeakCheck on.
//
// Release clears the finalizer, so l was never released. The nodes are not
// touched here: finalizers run on another goroutine.
func (l *List[T]) leaked() {
	leakWarn(l)
}

// leakWarn reports handle l that was never released.
var leakWarn = func(l any) {
	glog.Warningf("plist: list %p garbage-collected without Release", l)
}
