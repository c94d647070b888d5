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
	"iter"
	"os"
	"os/exec"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/ginkgo/v2/dsl/decorators"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

func Lines(b []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for len(b) > 0 {
			var line []byte
			if nlIdx := bytes.IndexByte(b, '\n'); nlIdx >= 0 {
				line, b = b[:nlIdx+1], b[nlIdx+1:]
			} else {
				line, b = b, nil
			}
			if !yield(line[:len(line):len(line)]) {
				return
			}
		}
	}
}

// cpusAllowedList extracts the Cpus_allowed_list value from the contents of a
// procfs status file.
func cpusAllowedList(status []byte) List {
	var prefix = []byte("Cpus_allowed_list:\t")
	var allowedList List
	for line := range Lines(status) {
		if !bytes.HasPrefix(line, prefix) {
			continue
		}
		allowedList = Successful(NewList(line[len(prefix) : len(line)-1]))
	}
	return allowedList
}

var _ = Describe("process affinity masks on Linux", Ordered, func() {

	It("gets this process's affinity mask, consistent with /proc/self/status data", func() {
		process, _, err := Masks()
		Expect(err).NotTo(HaveOccurred())
		Expect(process.IsEmpty()).To(BeFalse())
		Expect(process.List()).To(Equal(
			cpusAllowedList(Successful(os.ReadFile("/proc/self/status")))))
	})

	It("reads the system mask from the online CPUs", func() {
		_, system, err := Masks()
		Expect(err).NotTo(HaveOccurred())
		online := Successful(os.ReadFile(onlineCPUsPath))
		Expect(system.List()).To(Equal(
			Successful(NewList(bytes.TrimSpace(online)))))
	})

	It("fails the system mask on a missing sysfs file", func() {
		savedPath := onlineCPUsPath
		DeferCleanup(func() { onlineCPUsPath = savedPath })
		onlineCPUsPath = "/sys/devices/system/cpu/0nline"
		_, _, err := Masks()
		Expect(err).To(MatchError(ContainSubstring("cannot determine online CPUs")))
	})

	It("changes this process's affinity mask", func() {
		original, _, err := Masks()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { Expect(Pin(original)).To(Succeed()) })

		lowest := original.LowestSetBit()
		Expect(Pin(lowest)).To(Succeed())

		pinned, _, err := Masks()
		Expect(err).NotTo(HaveOccurred())
		Expect(pinned.List()).To(Equal(lowest.List()))
	})

	It("pins every task, so children inherit the mask from any thread", func() {
		original, _, err := Masks()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { Expect(Pin(original)).To(Succeed()) })

		lowest := original.LowestSetBit()
		Expect(Pin(lowest)).To(Succeed())

		// every single task of this process must now carry the restricted
		// mask, as sched_setaffinity(2) is thread-scoped.
		for _, tid := range Successful(taskIDs()) {
			Expect(Successful(processMask(tid)).List()).To(
				Equal(lowest.List()), "task %d", tid)
		}

		// ...and a child process forked off an arbitrary thread then inherits
		// exactly the restricted mask.
		status := Successful(exec.Command("cat", "/proc/self/status").Output())
		Expect(cpusAllowedList(status)).To(Equal(lowest.List()))
	})

	It("cannot pin to an empty mask", func() {
		Expect(Pin(Set{})).NotTo(Succeed())
		Expect(Pin(Set{0})).NotTo(Succeed())
	})

})
