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
// formatting

import (
	"fmt"

	"lab.nexedi.com/kirr/go123/xfmt"
)

// String returns l's elements in parenthesis, e.g.
//
//	(3 2 1)
//
// Empty list is represented as "()".
func (l *List[T]) String() string {
	buf := xfmt.Buffer{}
	buf .Cb('(')
	first := true
	for x := range l.All() {
		if !first {
			buf .Cb(' ')
		}
		first = false
		buf .S(fmt.Sprint(x))
	}
	buf .Cb(')')
	return string(buf)
}
