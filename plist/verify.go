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
// consistency checks

import (
	"github.com/pkg/errors"

	"lab.nexedi.com/kirr/go123/xerr"
)

// Verify checks that l is alive and that every node reachable from it is
// alive and owned.
//
// It is meant for tests and tools; a correctly used list always verifies ok.
func (l *List[T]) Verify() (err error) {
	defer xerr.Contextf(&err, "plist: verify %p", l)

	if l.released {
		return errReleased
	}

	i := 0
	for n := l.head; n != nil; n = n.next {
		if n.refcnt < 0 {
			return errors.Errorf("node #%d: deallocated", i)
		}
		i++
	}
	return nil
}

// Shares reports whether l and other have at least one node in common.
//
// Handles of the same list and lists derived from one another via Prepend or
// Tail share nodes, unless one of them is empty.
func (l *List[T]) Shares(other *List[T]) bool {
	l.live()
	other.live()

	seen := map[*node[T]]struct{}{}
	for n := l.head; n != nil; n = n.next {
		seen[n] = struct{}{}
	}
	for n := other.head; n != nil; n = n.next {
		if _, ok := seen[n]; ok {
			return true
		}
	}
	return false
}
