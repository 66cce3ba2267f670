/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns an uncaught panic into a logged error plus a crash
// report file, so a failed session leaves something to debug from.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "golibrarian/internal/log"
	"golibrarian/internal/telemetry"
	"golibrarian/internal/version"
)

// exitFn is swapped in tests so Recover does not terminate the test process.
var exitFn = os.Exit

// Recover captures a panic, logs an error with stacktrace and writes an error
// report next to the database file (or to the temp dir when no path is known).
//
// Usage: defer crash.Recover(dbPath)
func Recover(dbPath string) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := WriteReport(dbPath, r, stack)
		if err != nil {
			l.Error("write crash report failed", slog.Any("err", err))
		}

		fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
		fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
		exitFn(2)
	}
}

// WriteReport writes a timestamped crash log and returns its path.
func WriteReport(dbPath string, panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	if dbPath != "" {
		dir = filepath.Dir(dbPath)
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", time.Now().Format("20060102-150405")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "golibrarian crash report\n")
	fmt.Fprintf(&buf, "time: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "version: %s\n", version.String())
	fmt.Fprintf(&buf, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "db: %s\n\n", dbPath)
	fmt.Fprintf(&buf, "panic: %v\n\n%s\n", panicVal, stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	// anonymized crash upload, strictly opt-in via env
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}
