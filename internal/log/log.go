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

// Package log provides glog-based logging prefixed with current task.
package log

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"lab.nexedi.com/kirr/pds/go/internal/xcontext/task"
)

// withTask prepends operational task stack of ctx to argv.
//
// see https://golang.org/issues/21388 for why argv is not passed to glog as is.
func withTask(ctx context.Context, argv ...interface{}) []interface{} {
	prefix := task.Current(ctx).String()
	if prefix == "" {
		return argv
	}
	if len(argv) != 0 {
		prefix += ": "
	}
	return append([]interface{}{prefix}, argv...)
}

// Depth logs on behalf of caller Depth frames up the stack.
type Depth int

func (d Depth) Info(ctx context.Context, argv ...interface{}) {
	glog.InfoDepth(int(d+1), withTask(ctx, argv...)...)
}

func (d Depth) Infof(ctx context.Context, format string, argv ...interface{}) {
	glog.InfoDepth(int(d+1), withTask(ctx, fmt.Sprintf(format, argv...))...)
}

func (d Depth) Warning(ctx context.Context, argv ...interface{}) {
	glog.WarningDepth(int(d+1), withTask(ctx, argv...)...)
}

func Infof(ctx context.Context, format string, argv ...interface{}) {
	Depth(1).Infof(ctx, format, argv...)
}

// V reports whether verbose logging at level is enabled.
func V(level glog.Level) bool {
	return bool(glog.V(level))
}

func Flush() { glog.Flush() }
