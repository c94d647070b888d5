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

package singlecore

import "github.com/sirupsen/logrus"

// ConfigureSingleCPU restricts the current process to the numerically-lowest
// logical CPU of the system-wide affinity mask. We pick the lowest enabled
// CPU instead of hard-coding CPU 0 to also handle systems where the first
// logical processor isn't available to this process.
//
// ConfigureSingleCPU is best-effort: repeated invocations converge on the
// same single-core mask, and OS failures end up in the log instead of the
// caller. Either way, a single outcome entry gets logged.
func ConfigureSingleCPU(log *logrus.Logger, m Masker) {
	_, system, err := m.Masks()
	if err != nil {
		log.Errorf("an OS error occurred when configuring the game to use 1 CPU: %s", err)
		return
	}
	lowest := system.LowestSetBit()
	if err := m.SetMask(lowest); err != nil {
		log.Errorf("an OS error occurred when configuring the game to use 1 CPU: %s", err)
		return
	}
	log.Info("configured the game to use 1 CPU core")
}
