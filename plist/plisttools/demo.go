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

package plisttools
// plist demo - show how lists share nodes and how they are freed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"lab.nexedi.com/kirr/go123/prog"

	"lab.nexedi.com/kirr/pds/go/internal/task"
	"lab.nexedi.com/kirr/pds/go/plist"
)

// Demo builds
//
//	list1 = (A B C D)
//	list2 = tail(list1)
//	list3 = prepend(list2, X)
//
// prints them and then releases them in specified order. order is
// permutation of 1, 2, 3. After every release lists that are still alive are
// verified and printed again.
func Demo(ctx context.Context, w io.Writer, order []int) (err error) {
	defer task.Running(&ctx, "demo")(&err)

	if err := checkOrder(order); err != nil {
		return err
	}

	list1 := plist.Of("A", "B", "C", "D")
	list2 := list1.Tail()
	list3 := list2.Prepend("X")
	lists := []*plist.List[string]{list1, list2, list3}
	alive := []bool{true, true, true}

	show := func() error {
		for i, l := range lists {
			if !alive[i] {
				continue
			}
			if err := l.Verify(); err != nil {
				return errors.Wrapf(err, "list%d", i+1)
			}
			fmt.Fprintf(w, "\tlist%d = %s\n", i+1, l)
		}
		return nil
	}

	fmt.Fprintf(w, "built:\n")
	if err := show(); err != nil {
		return err
	}
	fmt.Fprintf(w, "sharing:\n")
	for i := range lists {
		for j := i + 1; j < len(lists); j++ {
			fmt.Fprintf(w, "\tlist%d ~ list%d: %t\n", i+1, j+1, lists[i].Shares(lists[j]))
		}
	}

	for _, k := range order {
		nfreed := lists[k-1].Release()
		alive[k-1] = false
		fmt.Fprintf(w, "release list%d: %d node(s) freed\n", k, nfreed)
		if err := show(); err != nil {
			return err
		}
	}

	return nil
}

// checkOrder verifies that order is permutation of 1, 2, 3.
func checkOrder(order []int) error {
	if len(order) != 3 {
		return errors.Errorf("order %v: must have 3 entries", order)
	}
	seen := map[int]bool{}
	for _, k := range order {
		if !(1 <= k && k <= 3) || seen[k] {
			return errors.Errorf("order %v: not a permutation of 1,2,3", order)
		}
		seen[k] = true
	}
	return nil
}

// parseOrder parses "a,b,c" into []int{a,b,c}.
func parseOrder(s string) ([]int, error) {
	var order []int
	for _, f := range strings.Split(s, ",") {
		k, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "order %q", s)
		}
		order = append(order, k)
	}
	return order, checkOrder(order)
}

// ----------------------------------------

const demoSummary = "show how lists share and free nodes"

func demoUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: plist demo [options]
Build three lists sharing nodes and release them one by one.

Options:

	-h --help       this help text.
	-order a,b,c    order in which list1, list2 and list3 are released (default 1,2,3).
`)
}

func demoMain(argv []string) {
	orderStr := "1,2,3"

	flags := flag.FlagSet{Usage: func() { demoUsage(os.Stderr) }}
	flags.Init("", flag.ExitOnError)
	flags.StringVar(&orderStr, "order", orderStr, "release order")
	flags.Parse(argv[1:])

	if flags.NArg() != 0 {
		flags.Usage()
		prog.Exit(2)
	}

	order, err := parseOrder(orderStr)
	if err != nil {
		fatal(err)
		return
	}

	err = Demo(context.Background(), os.Stdout, order)
	if err != nil {
		fatal(err)
	}
}
