/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRecoverWritesReport ensures Recover handles a panic, writes a report
// next to the database and calls the injected exit function instead of
// terminating the test process.
func TestRecoverWritesReport(t *testing.T) {
	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	exitCode := -1
	oldExit := exitFn
	exitFn = func(code int) { exitCode = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "library.db")

	func() {
		defer Recover(dbPath)
		panic("boom")
	}()

	if exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var report string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "crash-") && strings.HasSuffix(e.Name(), ".log") {
			report = filepath.Join(dir, e.Name())
		}
	}
	if report == "" {
		t.Fatalf("no crash report written in %s", dir)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	body := string(b)
	if !strings.Contains(body, "panic: boom") {
		t.Errorf("report missing panic value:\n%s", body)
	}
	if !strings.Contains(body, "version:") || !strings.Contains(body, "os/arch:") {
		t.Errorf("report missing metadata:\n%s", body)
	}
}

func TestWriteReportFallsBackToTempDir(t *testing.T) {
	path, err := WriteReport("", "oops", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	if filepath.Dir(path) != strings.TrimSuffix(os.TempDir(), string(os.PathSeparator)) {
		t.Fatalf("report not in temp dir: %s", path)
	}
}
