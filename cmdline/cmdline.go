// Copyright 2025 The singlecore authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

// Package cmdline provides read-only access to a process command line in the
// game host's switch convention: switches start with “-” (or “/”), carry an
// optional “:value” suffix, and are matched case-insensitively.
package cmdline

import "strings"

// CmdLine is a process command line, usually the host application's own
// arguments as handed over at startup.
type CmdLine struct {
	args []string
}

// New returns a CmdLine for the passed arguments, without the leading program
// name.
func New(args []string) *CmdLine {
	return &CmdLine{args: args}
}

// Args returns the arguments this command line was created from.
func (c *CmdLine) Args() []string {
	return c.args
}

// Switch reports whether a switch with the passed name is present on the
// command line, together with the switch's value. Switch names match
// case-insensitively; the value is whatever follows the first “:” of the
// argument and may well be empty.
func (c *CmdLine) Switch(name string) (value string, present bool) {
	for _, arg := range c.args {
		if len(arg) < 2 || (arg[0] != '-' && arg[0] != '/') {
			continue
		}
		argname, argvalue, _ := strings.Cut(arg[1:], ":")
		if strings.EqualFold(argname, name) {
			return argvalue, true
		}
	}
	return "", false
}
