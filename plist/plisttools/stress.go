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
// plist stress - release long chains, some of them partially shared

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lab.nexedi.com/kirr/go123/prog"

	"lab.nexedi.com/kirr/pds/go/internal/log"
	"lab.nexedi.com/kirr/pds/go/internal/task"
	"lab.nexedi.com/kirr/pds/go/plist"
)

// StressParams are parameters for Stress.
type StressParams struct {
	N      int // length of the chain every worker builds
	Shared int // how many last nodes of the chain are kept alive by another handle
	J      int // number of parallel workers
}

// StressResult is what one stress worker did.
type StressResult struct {
	Worker      int
	FreedLong   int           // nodes freed when the long handle was released
	FreedTail   int           // nodes freed when the sharing handle was released
	BuildTime   time.Duration // time to build the chain
	ReleaseTime time.Duration // time to release the long handle
}

// Stress runs p.J workers in parallel. Every worker builds a chain of p.N
// nodes and a second handle to its last p.Shared nodes, releases the long
// handle, verifies that the second one survived intact and releases it too.
//
// Every worker uses its own lists; lists are never shared in between workers.
func Stress(ctx context.Context, w io.Writer, p StressParams) (_ []StressResult, err error) {
	defer task.Runningf(&ctx, "stress n=%d shared=%d j=%d", p.N, p.Shared, p.J)(&err)

	if p.N < 0 || p.Shared < 0 || p.Shared > p.N {
		return nil, errors.Errorf("invalid n=%d shared=%d", p.N, p.Shared)
	}
	if p.J < 1 {
		return nil, errors.Errorf("invalid j=%d", p.J)
	}

	resv := make([]StressResult, p.J)
	wg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.J; i++ {
		i := i
		wg.Go(func() error {
			res, err := stress1(ctx, i, p.N, p.Shared)
			resv[i] = res
			return err
		})
	}
	err = wg.Wait()
	if err != nil {
		return nil, err
	}

	for _, r := range resv {
		fmt.Fprintf(w, "worker %d: build %s  release %s  freed %d + %d\n",
			r.Worker, r.BuildTime, r.ReleaseTime, r.FreedLong, r.FreedTail)
	}
	return resv, nil
}

// stress1 is one Stress worker.
func stress1(ctx context.Context, worker, n, shared int) (res StressResult, err error) {
	defer task.Runningf(&ctx, "worker %d", worker)(&err)
	res.Worker = worker

	err = ctx.Err()
	if err != nil {
		return res, err
	}

	// build (0 1 ... n-1) prepending one by one
	tstart := time.Now()
	long := plist.New[int]()
	for i := n - 1; i >= 0; i-- {
		l := long.Prepend(i)
		long.Release()
		long = l
	}

	// tail is long without first n-shared elements
	tail := long.Clone()
	for i := 0; i < n-shared; i++ {
		l := tail.Tail()
		tail.Release()
		tail = l
	}
	res.BuildTime = time.Since(tstart)

	tstart = time.Now()
	res.FreedLong = long.Release()
	res.ReleaseTime = time.Since(tstart)
	if log.V(1) {
		log.Infof(ctx, "released long: %d node(s) in %s", res.FreedLong, res.ReleaseTime)
	}

	if res.FreedLong != n-shared {
		return res, errors.Errorf("release long: freed %d nodes; want %d", res.FreedLong, n-shared)
	}

	err = tail.Verify()
	if err != nil {
		return res, err
	}
	if l := tail.Len(); l != shared {
		return res, errors.Errorf("tail: len = %d; want %d", l, shared)
	}
	if x, ok := tail.Head(); shared > 0 && !(ok && x == n-shared) {
		return res, errors.Errorf("tail: head = %d, %t; want %d", x, ok, n-shared)
	}

	res.FreedTail = tail.Release()
	if res.FreedTail != shared {
		return res, errors.Errorf("release tail: freed %d nodes; want %d", res.FreedTail, shared)
	}
	return res, nil
}

// ----------------------------------------

const stressSummary = "release long and partially shared chains"

func stressUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: plist stress [options]
Build long lists and release them, verifying that shared parts survive.

Options:

	-h --help       this help text.
	-n <N>          length of every chain (default 100000).
	-shared <K>     keep last K nodes of every chain alive via another list (default 0).
	-j <J>          run J workers in parallel (default 1).
	-leakcheck      warn about lists garbage-collected without release.
`)
}

func stressMain(argv []string) {
	p := StressParams{N: 100000, Shared: 0, J: 1}
	leakcheck := false

	flags := flag.FlagSet{Usage: func() { stressUsage(os.Stderr) }}
	flags.Init("", flag.ExitOnError)
	flags.IntVar(&p.N, "n", p.N, "chain length")
	flags.IntVar(&p.Shared, "shared", p.Shared, "shared suffix length")
	flags.IntVar(&p.J, "j", p.J, "parallel workers")
	flags.BoolVar(&leakcheck, "leakcheck", leakcheck, "warn about leaked lists")
	flags.Parse(argv[1:])

	if flags.NArg() != 0 {
		flags.Usage()
		prog.Exit(2)
	}

	plist.LeakCheck = leakcheck

	_, err := Stress(context.Background(), os.Stdout, p)
	if err != nil {
		fatal(err)
		return
	}
	logFlush()
}
