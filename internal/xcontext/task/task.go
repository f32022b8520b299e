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

// Package task tracks the stack of currently running operations via contexts.
package task

import (
	"context"
	"fmt"

	"lab.nexedi.com/kirr/go123/xerr"
)

// Task is one running operation.
type Task struct {
	Parent *Task
	Name   string
}

type taskKey struct{}

// Running returns ctx with new task named name pushed on top of its stack.
func Running(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, taskKey{}, &Task{Parent: Current(ctx), Name: name})
}

// Runningf is Running cousin with formatting support.
func Runningf(ctx context.Context, format string, argv ...interface{}) context.Context {
	return Running(ctx, fmt.Sprintf(format, argv...))
}

// Current returns task on top of ctx stack, or nil.
func Current(ctx context.Context) *Task {
	t, _ := ctx.Value(taskKey{}).(*Task)
	return t
}

// ErrContext prefixes *errp, if it is != nil, with name of current task.
//
// use it under defer:
//
//	defer task.ErrContext(&err, ctx)
func ErrContext(errp *error, ctx context.Context) {
	t := Current(ctx)
	if t == nil {
		return
	}
	xerr.Context(errp, t.Name)
}

// String returns whole stack, e.g. "stress: worker 3".
//
// nil Task is represented as "".
func (t *Task) String() string {
	if t == nil {
		return ""
	}
	prefix := t.Parent.String()
	if prefix != "" {
		prefix += ": "
	}
	return prefix + t.Name
}
