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

// Package plog sets up the plugin's plain-text log file: a single header line
// identifying component name and version, followed by timestamped entries.
// Only the Info and Error levels are ever used.
package plog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing plain-text, timestamped entries to w, dropping
// entries below the minimum level. Tests pass a capturing writer here instead
// of going through [Open].
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
		DisableQuote:    true,
	})
	return log
}

// Open creates (or truncates) the log file at path, writes the passed header
// line, and returns a logger appending timestamped entries below it. The
// returned closer flushes and closes the file; close it at process exit.
func Open(path string, level logrus.Level, header string) (*logrus.Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create log file: %w", err)
	}
	if _, err := fmt.Fprintln(f, header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("cannot write log file header: %w", err)
	}
	return New(f, level), f, nil
}
