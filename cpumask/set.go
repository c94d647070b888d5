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
	"fmt"
	"slices"
)

// Set is a CPU affinity bit string: each set bit designates a logical CPU the
// process is permitted to execute on. See also [sched_getaffinity(2)] for the
// Linux rendition and GetProcessAffinityMask for the Windows one.
//
// [sched_getaffinity(2)]: https://man7.org/linux/man-pages/man2/sched_getaffinity.2.html
type Set []uint64

const wordbytesize = 8
const bitsperword = uint(wordbytesize * 8)

func setBitIndex(cpu uint) int {
	return int(cpu / bitsperword)
}

func setBitMask(cpu uint) uint64 {
	return uint64(1) << (cpu % bitsperword)
}

// IsSet reports whether cpu is in this CPU set.
func (s Set) IsSet(cpu uint) bool {
	if cpu >= uint(len(s))*bitsperword {
		return false
	}
	return s[setBitIndex(cpu)]&setBitMask(cpu) != 0
}

// IsEmpty reports whether no CPU at all is in this set. A zero-valued mask is
// never produced by a correctly functioning OS, but it can reach us through an
// explicit user-supplied CPU list.
func (s Set) IsEmpty() bool {
	for _, word := range s {
		if word != 0 {
			return false
		}
	}
	return true
}

// AddRange adds the CPUs from the specified range, returning an updated Set.
// The updated Set may or may not be the original Set.
func (s Set) AddRange(from, to uint) Set {
	if from > to {
		panic(fmt.Sprintf("invalid range %d-%d", from, to))
	}
	if to >= uint(len(s))*bitsperword {
		s = slices.Grow(s, setBitIndex(to)-len(s)+1)
		s = s[:cap(s)]
	}
	for cpu := from; cpu <= to; cpu++ {
		s[setBitIndex(cpu)] |= setBitMask(cpu)
	}
	return s
}

// LowestSetBit returns a new Set containing exactly the numerically-lowest
// CPU of this set, that is, the lowest-numbered logical CPU the mask permits.
// It returns an empty Set when no bit is set at all.
//
// The single-bit word is isolated using the two's-complement identity
// “x & -x”: for instance, 0b1010 & -0b1010 gives 0b0010.
func (s Set) LowestSetBit() Set {
	for idx, word := range s {
		if word == 0 {
			continue
		}
		lowest := make(Set, idx+1)
		lowest[idx] = word & -word
		return lowest
	}
	return Set{}
}

// LowestCPU returns the number of the lowest CPU in this set, or false when
// the set is empty.
func (s Set) LowestCPU() (uint, bool) {
	for idx, word := range s {
		if word == 0 {
			continue
		}
		cpu := uint(idx) * bitsperword
		for word&1 == 0 {
			word >>= 1
			cpu++
		}
		return cpu, true
	}
	return 0, false
}

// String returns the CPUs in this set in textual list format. In list format,
// individual CPU ranges “x-y” are separated by “,”, and single CPU ranges
// collapsed into “x”.
func (s Set) String() string {
	return s.List().String()
}

// List returns the list of CPU ranges corresponding with this CPU Set.
func (s Set) List() List {
	cpulist := List{}
	total := uint(len(s)) * bitsperword
	cpu := uint(0)
	for {
		// look for the start of the next CPU range...
		for cpu < total && !s.IsSet(cpu) {
			cpu++
		}
		if cpu >= total {
			return cpulist
		}
		// ...and then for where it ends, which might be only at the very end
		// of the set.
		from := cpu
		for cpu < total && s.IsSet(cpu) {
			cpu++
		}
		cpulist = append(cpulist, [2]uint{from, cpu - 1})
	}
}
