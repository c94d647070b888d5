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

package plog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gbytes"
	. "github.com/thediveo/success"
)

var _ = Describe("plugin logging", func() {

	It("writes timestamped plain-text entries", func() {
		buf := NewBuffer()
		log := New(buf, logrus.InfoLevel)
		log.Info("configured the game to use 1 CPU core")
		Expect(buf).To(Say(`time=\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} level=info msg=configured the game to use 1 CPU core`))
	})

	It("drops entries below the minimum level", func() {
		buf := NewBuffer()
		log := New(buf, logrus.ErrorLevel)
		log.Info("not for the log file")
		log.Error("an OS error occurred")
		contents := string(buf.Contents())
		Expect(contents).NotTo(ContainSubstring("not for the log file"))
		Expect(contents).To(ContainSubstring("an OS error occurred"))
	})

	It("creates the log file with a header line first", func() {
		path := filepath.Join(GinkgoT().TempDir(), "SingleCore.log")
		log, closer, err := Open(path, logrus.InfoLevel, "SingleCore v1.0.0")
		Expect(err).NotTo(HaveOccurred())
		log.Info("configured the game to use 1 CPU core")
		Expect(closer.Close()).To(Succeed())

		lines := strings.Split(string(Successful(os.ReadFile(path))), "\n")
		Expect(len(lines)).To(BeNumerically(">=", 2))
		Expect(lines[0]).To(Equal("SingleCore v1.0.0"))
		Expect(lines[1]).To(ContainSubstring("configured the game to use 1 CPU core"))
	})

	It("truncates a previous log file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "SingleCore.log")
		Expect(os.WriteFile(path, []byte(strings.Repeat("x", 1000)), 0o644)).To(Succeed())
		_, closer, err := Open(path, logrus.ErrorLevel, "SingleCore v1.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(closer.Close()).To(Succeed())
		Expect(string(Successful(os.ReadFile(path)))).To(Equal("SingleCore v1.0.0\n"))
	})

	It("reports when the log file cannot be created", func() {
		_, _, err := Open(filepath.Join(GinkgoT().TempDir(), "no", "such", "dir", "x.log"),
			logrus.InfoLevel, "SingleCore v1.0.0")
		Expect(err).To(MatchError(ContainSubstring("cannot create log file")))
	})

})
