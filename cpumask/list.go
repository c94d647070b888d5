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

package cpumask

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thediveo/faf"
)

// List is a list of CPU [from...to] ranges. CPU numbers are starting from
// zero. This is the textual representation form used by the kernel's sysfs
// CPU files and by this module's launcher switch.
type List [][2]uint

// String returns the CPU list in textual format, with the individual ranges
// “x-y” separated by “,” and single CPU ranges collapsed into “x” (instead of
// “x-x”).
func (l List) String() string {
	var b strings.Builder
	for idx, cpurange := range l {
		if idx > 0 {
			b.WriteString(",")
		}
		if cpurange[0] == cpurange[1] {
			b.WriteString(fmt.Sprintf("%d", cpurange[0]))
			continue
		}
		b.WriteString(fmt.Sprintf("%d-%d", cpurange[0], cpurange[1]))
	}
	return b.String()
}

// NewList returns a new CPU List for the given textual list format. If the
// text is malformed then an error is returned instead.
//
// The grammar is the kernel's: comma-separated single CPU numbers and
// “from-to” ranges, as in “0,2-5,7”.
func NewList(b []byte) (List, error) {
	bs := faf.NewBytestring(b)
	l := List{}
	for !bs.EOL() {
		// each round consumes one single CPU number or one from-to range,
		// including a trailing comma when more is to follow.
		from, ok := bs.Uint64()
		if !ok {
			return nil, errors.New("expected unsigned integer number")
		}
		to := from
		if !bs.EOL() {
			switch ch, _ := bs.Next(); ch {
			case '-':
				if to, ok = bs.Uint64(); !ok {
					return nil, errors.New("expected unsigned integer number")
				}
				if !bs.EOL() {
					if ch, _ = bs.Next(); ch != ',' {
						return nil, errors.New("expected ','")
					}
				}
			case ',':
				// single CPU number, more to follow.
			default:
				return nil, errors.New("expected '-' or ','")
			}
		}
		l = append(l, [2]uint{uint(from), uint(to)})
	}
	return l, nil
}

// Set returns the CPU Set corresponding with this list.
func (l List) Set() Set {
	if len(l) == 0 {
		return Set{}
	}
	// Do last range first to allocate only once.
	var s Set
	for i := range l {
		r := l[len(l)-i-1]
		s = s.AddRange(r[0], r[1])
	}
	return s
}
