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

// Package plisttools provides tools to demonstrate and exercise persistent lists.
package plisttools

import (
	"lab.nexedi.com/kirr/go123/prog"

	"lab.nexedi.com/kirr/pds/go/internal/log"
)

// registry of all plist commands
var commands = prog.CommandRegistry{
	// NOTE the order commands are listed here is the order how they will appear in help
	{Name: "demo", Summary: demoSummary, Usage: demoUsage, Main: demoMain},
	{Name: "stress", Summary: stressSummary, Usage: stressUsage, Main: stressMain},
}

// registry of all help topics
var helpTopics = prog.HelpRegistry{
	{Name: "sharing", Summary: "how lists share nodes", Text: helpSharing},
}

const helpSharing =
`Lists share their tails. For example after

	list1 = (A B C D)
	list2 = tail(list1)
	list3 = prepend(list2, X)

memory looks like this:

	list1 -> A ---+
	              |
	              v
	list2 ------> B -> C -> D
	              ^
	              |
	list3 -> X ---+

Every node is reference-counted. Releasing a list frees its nodes one by one
until a node that is still used by another list is reached.
`

// Prog is the main plist driver.
var Prog = prog.MainProg{
	Name:       "plist",
	Summary:    "Plist is a tool to play with persistent lists",
	Commands:   commands,
	HelpTopics: helpTopics,
}

var (
	logFlush  = log.Flush
	exitFatal = prog.Fatal
)

// fatal terminates the program with err.
//
// Logs are flushed first: prog.Fatal exits without running deferred calls.
func fatal(err error) {
	logFlush()
	exitFatal(err)
}
