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

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	testv := []struct {
		order []int
		out   string
	}{
		{[]int{1, 2, 3},
`built:
	list1 = (A B C D)
	list2 = (B C D)
	list3 = (X B C D)
sharing:
	list1 ~ list2: true
	list1 ~ list3: true
	list2 ~ list3: true
release list1: 1 node(s) freed
	list2 = (B C D)
	list3 = (X B C D)
release list2: 0 node(s) freed
	list3 = (X B C D)
release list3: 4 node(s) freed
`},
		{[]int{3, 2, 1},
`built:
	list1 = (A B C D)
	list2 = (B C D)
	list3 = (X B C D)
sharing:
	list1 ~ list2: true
	list1 ~ list3: true
	list2 ~ list3: true
release list3: 1 node(s) freed
	list1 = (A B C D)
	list2 = (B C D)
release list2: 0 node(s) freed
	list1 = (A B C D)
release list1: 4 node(s) freed
`},
	}

	for _, tt := range testv {
		buf := &bytes.Buffer{}
		err := Demo(context.Background(), buf, tt.order)
		if err != nil {
			t.Fatal(err)
		}
		if out := buf.String(); out != tt.out {
			t.Errorf("demo %v: output differs:\n%s", tt.order, diff.Diff(tt.out, out))
		}
	}
}

func TestParseOrder(t *testing.T) {
	order, err := parseOrder("2, 3,1")
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 1}, order)

	for _, bad := range []string{"", "1,2", "1,2,2", "0,1,2", "1,2,x", "1,2,3,4"} {
		_, err := parseOrder(bad)
		require.Error(t, err, "order %q", bad)
	}

	err = Demo(context.Background(), &bytes.Buffer{}, []int{1, 1, 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "demo: ")
}

func TestStress(t *testing.T) {
	testv := []StressParams{
		{N: 0, Shared: 0, J: 1},
		{N: 10, Shared: 10, J: 1},
		{N: 100000, Shared: 0, J: 1},
		{N: 100000, Shared: 30000, J: 4},
	}

	for _, p := range testv {
		resv, err := Stress(context.Background(), &bytes.Buffer{}, p)
		require.NoError(t, err, "%+v", p)
		require.Len(t, resv, p.J)
		for _, r := range resv {
			require.Equal(t, p.N-p.Shared, r.FreedLong)
			require.Equal(t, p.Shared, r.FreedTail)
		}
	}

	for _, bad := range []StressParams{
		{N: -1, J: 1},
		{N: 10, Shared: 11, J: 1},
		{N: 10, Shared: 0, J: 0},
	} {
		_, err := Stress(context.Background(), &bytes.Buffer{}, bad)
		require.Error(t, err, "%+v", bad)
	}
}

func TestFatalFlushesLog(t *testing.T) {
	var calls []string
	logFlush0, exitFatal0 := logFlush, exitFatal
	logFlush = func() { calls = append(calls, "flush") }
	exitFatal = func(argv ...interface{}) {
		calls = append(calls, fmt.Sprint(argv...))
	}
	defer func() {
		logFlush, exitFatal = logFlush0, exitFatal0
	}()

	stressMain([]string{"stress", "-n", "10", "-shared", "11"})
	require.Equal(t, []string{
		"flush",
		"stress n=10 shared=11 j=1: invalid n=10 shared=11",
	}, calls)

	calls = nil
	demoMain([]string{"demo", "-order", "1,1,2"})
	require.Len(t, calls, 2)
	require.Equal(t, "flush", calls[0])
	require.Contains(t, calls[1], "not a permutation")
}
