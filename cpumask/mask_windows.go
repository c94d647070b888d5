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

//go:build windows

package cpumask

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetProcessAffinityMask = modkernel32.NewProc("GetProcessAffinityMask")
	procSetProcessAffinityMask = modkernel32.NewProc("SetProcessAffinityMask")
)

// Affinity masks on Windows are single native-width integers covering only
// the process's default processor group; machines with more logical
// processors than fit into one such integer are not covered here.

func platformMasks() (process, system Set, err error) {
	var processMask, systemMask uintptr
	r1, _, e := procGetProcessAffinityMask.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&processMask)),
		uintptr(unsafe.Pointer(&systemMask)))
	if r1 == 0 {
		return nil, nil, fmt.Errorf("GetProcessAffinityMask: %w", e)
	}
	return Set{uint64(processMask)}, Set{uint64(systemMask)}, nil
}

func platformPin(cpus Set) error {
	if cpus.IsEmpty() {
		return syscall.EINVAL
	}
	// CPUs beyond the native mask width would be in another processor group,
	// which SetProcessAffinityMask cannot address.
	for _, word := range cpus[1:] {
		if word != 0 {
			return syscall.EINVAL
		}
	}
	mask := uintptr(cpus[0])
	if uint64(mask) != cpus[0] {
		return syscall.EINVAL
	}
	r1, _, e := procSetProcessAffinityMask.Call(
		uintptr(windows.CurrentProcess()), mask)
	if r1 == 0 {
		return fmt.Errorf("SetProcessAffinityMask: %w", e)
	}
	return nil
}
