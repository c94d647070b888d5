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

//go:build linux

package cpumask

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// onlineCPUsPath lists the system's online CPUs in textual list format; this
// is the closest Linux analog to the system-wide affinity mask of other
// OSes.
var onlineCPUsPath = "/sys/devices/system/cpu/online"

// setsize reflects the dynamically determined size of CPU sets on this system
// (size in uint64 words). This is usually smaller than the fixed-sized
// [unix.CPUSet] that Go's [unix.SchedGetaffinity] uses, which is why we issue
// the raw syscalls ourselves, following the kernel's grow-on-EINVAL protocol.
var setsize atomic.Uint64

func init() {
	setsize.Store(1)
}

func platformMasks() (process, system Set, err error) {
	process, err = processMask(os.Getpid())
	if err != nil {
		return nil, nil, fmt.Errorf("sched_getaffinity: %w", err)
	}
	system, err = systemMask()
	if err != nil {
		return nil, nil, err
	}
	return process, system, nil
}

func processMask(pid int) (Set, error) {
	setlen := setsize.Load()
	for {
		set := make(Set, setlen)
		// SYS_SCHED_GETAFFINITY does not block, so RawSyscall suffices,
		// following Go's stdlib implementation.
		_, _, e := unix.RawSyscall(unix.SYS_SCHED_GETAFFINITY,
			uintptr(pid), uintptr(setlen*wordbytesize), uintptr(unsafe.Pointer(&set[0])))
		if e != 0 {
			if e == unix.EINVAL {
				// our set is smaller than the kernel's cpumask, so double it
				// and retry.
				setlen *= 2
				continue
			}
			return nil, e
		}
		// remember the working size; losing the store to another goroutine is
		// fine, the kernel-accepted size gets rediscovered cheaply.
		setsize.Store(setlen)
		return set, nil
	}
}

func systemMask() (Set, error) {
	text, err := os.ReadFile(onlineCPUsPath)
	if err != nil {
		return nil, fmt.Errorf("cannot determine online CPUs: %w", err)
	}
	l, err := NewList(bytes.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("malformed %s: %w", onlineCPUsPath, err)
	}
	return l.Set(), nil
}

// platformPin applies the mask to every task of this process, not just the
// main thread: sched_setaffinity(2) is thread-scoped, and a later fork+exec
// happens on whichever OS thread the runtime has the forking goroutine on at
// that moment, so all of them must carry the restricted mask for a child to
// reliably inherit it. Tasks spawned while we iterate inherit their creating
// task's mask, which we have either already restricted or are about to.
func platformPin(cpus Set) error {
	if cpus.IsEmpty() {
		return syscall.EINVAL
	}
	tids, err := taskIDs()
	if err != nil {
		return err
	}
	for _, tid := range tids {
		_, _, e := unix.RawSyscall(unix.SYS_SCHED_SETAFFINITY,
			uintptr(tid), uintptr(uint64(len(cpus))*wordbytesize), uintptr(unsafe.Pointer(&cpus[0])))
		if e != 0 && e != unix.ESRCH {
			// tasks may terminate while we iterate, that's fine.
			return fmt.Errorf("sched_setaffinity of task %d: %w", tid, e)
		}
	}
	return nil
}

// taskIDs returns the TIDs of all tasks of this process.
func taskIDs() ([]int, error) {
	tasks, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return nil, fmt.Errorf("cannot enumerate this process's tasks: %w", err)
	}
	tids := make([]int, 0, len(tasks))
	for _, task := range tasks {
		tid, err := strconv.Atoi(task.Name())
		if err != nil {
			continue
		}
		tids = append(tids, tid)
	}
	return tids, nil
}
