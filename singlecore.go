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

import (
	"github.com/sirupsen/logrus"

	"github.com/gamefix/singlecore/cmdline"
	"github.com/gamefix/singlecore/cpumask"
)

// Name and Version identify this plugin in the log file header and go into
// the default log file name.
const (
	Name    = "SingleCore"
	Version = "1.0.0"
)

// Header is the log file header line, “SingleCore v1.0.0”.
const Header = Name + " v" + Version

// cpuCountSwitch is the host's own switch for explicitly choosing a core
// count; its mere presence tells us to keep our hands off the affinity mask.
const cpuCountSwitch = "CPUCount"

// A Masker queries and replaces the current process's CPU affinity mask.
// [OSMasker] gives the real McCoy; tests substitute a canned one.
type Masker interface {
	// Masks returns the current process's affinity mask and the system-wide
	// mask of available CPUs.
	Masks() (process, system cpumask.Set, err error)
	// SetMask replaces the current process's affinity mask.
	SetMask(cpus cpumask.Set) error
}

// OSMasker is the [Masker] backed by the real OS process-affinity calls.
type OSMasker struct{}

func (OSMasker) Masks() (process, system cpumask.Set, err error) {
	return cpumask.Masks()
}

func (OSMasker) SetMask(cpus cpumask.Set) error {
	return cpumask.Pin(cpus)
}

// OnStart is the plugin's host lifecycle callback, to be invoked exactly once
// at startup, after the host's command line and the log file are available.
// It always acknowledges the callback as handled: every failure terminates in
// a log entry, never in the host.
func OnStart(cmd *cmdline.CmdLine, log *logrus.Logger) bool {
	return onStart(cmd, log, OSMasker{})
}

func onStart(cmd *cmdline.CmdLine, log *logrus.Logger, m Masker) bool {
	if value, present := cmd.Switch(cpuCountSwitch); present {
		// We don't second-guess the user: the host processes its command line
		// before plugins are loaded, so the requested core count has already
		// been applied by the time we run.
		log.Infof("skipped because the command line contains -%s:%s",
			cpuCountSwitch, value)
		return true
	}
	ConfigureSingleCPU(log, m)
	return true
}
