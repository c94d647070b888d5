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

import "errors"

// ErrNotSupported is returned by [Masks] and [Pin] on platforms without a
// process affinity interface.
var ErrNotSupported = errors.New("cpumask: process affinity not supported on this platform")

// Masks returns the current process's affinity mask together with the
// system-wide mask of CPUs available to processes. Platform-specific
// implementations are located in separate files guarded by build tags.
func Masks() (process, system Set, err error) {
	return platformMasks()
}

// Pin replaces the current process's affinity mask with the passed Set; on
// Linux, where affinity is thread-scoped, this covers every task of the
// process, so that child processes inherit the mask no matter which thread
// they get forked from. It is an error trying to pin to an empty Set.
func Pin(cpus Set) error {
	return platformPin(cpus)
}
