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

// singlecore runs a game restricted to a single logical CPU core.
//
// It pins its own process to the numerically-lowest available CPU core and
// then runs the passed command, which inherits the restricted affinity mask:
//
//	singlecore [flags] game.exe [game arguments...]
//
// When the game arguments contain the host's -CPUCount switch the launcher
// leaves the affinity mask alone, as the host will apply the user's explicit
// core choice itself. Alternatively, -cpus pins to an explicit CPU list,
// such as “0,2-3”, instead of a single core.
//
// Outcomes are logged to "SingleCore.log" next to the launcher binary unless
// -log says otherwise.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gamefix/singlecore"
	"github.com/gamefix/singlecore/cmdline"
	"github.com/gamefix/singlecore/cpumask"
	"github.com/gamefix/singlecore/plog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("singlecore", flag.ExitOnError)
	logPath := fs.String("log", "", "log `file` path (defaults to SingleCore.log next to this binary)")
	levelName := fs.String("level", "info", "minimum log `level`, \"info\" or \"error\"")
	cpusList := fs.String("cpus", "", "pin to this CPU `list` (such as \"0,2-3\") instead of a single core")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] command [arguments...]\n", fs.Name())
		fs.PrintDefaults()
	}
	_ = fs.Parse(args) // ExitOnError

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level, err := logrus.ParseLevel(*levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "singlecore: %s\n", err)
		return 2
	}
	path := *logPath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "singlecore: %s\n", err)
			return 1
		}
		path = filepath.Join(filepath.Dir(exe), singlecore.Name+".log")
	}
	log, closer, err := plog.Open(path, level, singlecore.Header)
	if err != nil {
		fmt.Fprintf(os.Stderr, "singlecore: %s\n", err)
		return 1
	}
	defer closer.Close()

	if *cpusList != "" {
		pinExplicit(log, *cpusList)
	} else {
		singlecore.OnStart(cmdline.New(fs.Args()[1:]), log)
	}

	return runGame(log, fs.Args())
}

// pinExplicit pins the process to the user's explicit CPU list; like the
// single-core restriction, failures are only logged.
func pinExplicit(log *logrus.Logger, cpus string) {
	l, err := cpumask.NewList([]byte(cpus))
	if err != nil {
		log.Errorf("malformed -cpus list %q: %s", cpus, err)
		return
	}
	if err := cpumask.Pin(l.Set()); err != nil {
		log.Errorf("an OS error occurred when pinning to CPUs %s: %s", l, err)
		return
	}
	log.Infof("pinned to CPUs %s", l)
}

// runGame starts the game command, which inherits this process's affinity
// mask, and waits for it to terminate, passing its exit code on.
func runGame(log *logrus.Logger, cmdAndArgs []string) int {
	game := exec.Command(cmdAndArgs[0], cmdAndArgs[1:]...)
	game.Stdin = os.Stdin
	game.Stdout = os.Stdout
	game.Stderr = os.Stderr
	if err := game.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		log.Errorf("cannot run %s: %s", cmdAndArgs[0], err)
		fmt.Fprintf(os.Stderr, "singlecore: %s\n", err)
		return 1
	}
	return 0
}
