/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"testing"
)

// fakeSecrets stubs the OS keyring for tests.
type fakeSecrets struct {
	values map[string]string
}

func (f *fakeSecrets) Get(service, key string) (string, error) {
	v, ok := f.values[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (f *fakeSecrets) Set(service, key, value string) error {
	f.values[service+"/"+key] = value
	return nil
}

func (f *fakeSecrets) Delete(service, key string) error {
	delete(f.values, service+"/"+key)
	return nil
}

func useFakeSecrets(t *testing.T) *fakeSecrets {
	t.Helper()
	old := Secrets
	fs := &fakeSecrets{values: map[string]string{}}
	Secrets = fs
	t.Cleanup(func() { Secrets = old })
	return fs
}

func isolateHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
	t.Setenv("USERPROFILE", dir)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.General.Theme != "light" {
		t.Fatalf("default theme = %q, want light", cfg.General.Theme)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
	if cfg.Database.Path != "" {
		t.Fatalf("default DB path should be empty (platform default), got %q", cfg.Database.Path)
	}
}

func TestEnvOverridesDatabasePath(t *testing.T) {
	isolateHome(t)
	useFakeSecrets(t)
	t.Setenv(EnvDBPath, "/tmp/alt-library.db")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Database.Path, "/tmp/alt-library.db"; got != want {
		t.Fatalf("Database.Path = %q, want %q", got, want)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolateHome(t)
	useFakeSecrets(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/glb.log")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/glb.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestMergeIncludesTheme(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.General.Theme = "Dark"
	mergeInto(&dst, &src)
	if dst.General.Theme != "dark" {
		t.Fatalf("theme not merged/normalized: %q", dst.General.Theme)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/var/log/glb.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/var/log/glb.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolateHome(t)
	fs := useFakeSecrets(t)

	cfg := Defaults()
	cfg.General.Theme = "dark"
	cfg.General.RememberLogin = true
	cfg.Database.Path = "/data/books.db"
	if err := Save(cfg, "admin"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, remembered, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.General.Theme != "dark" || !loaded.General.RememberLogin {
		t.Fatalf("general settings not round-tripped: %#v", loaded.General)
	}
	if loaded.Database.Path != "/data/books.db" {
		t.Fatalf("database path not round-tripped: %q", loaded.Database.Path)
	}
	if remembered != "admin" {
		t.Fatalf("remembered username = %q, want admin", remembered)
	}

	// Turning remember-login off must clear the stored name.
	cfg.General.RememberLogin = false
	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if len(fs.values) != 0 {
		t.Fatalf("keyring entry not removed: %v", fs.values)
	}
}

func TestLoadToleratesMissingFile(t *testing.T) {
	isolateHome(t)
	useFakeSecrets(t)
	t.Setenv(EnvDBPath, "")

	cfg, remembered, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.Theme != "light" {
		t.Fatalf("missing file should yield defaults, got theme %q", cfg.General.Theme)
	}
	if remembered != "" {
		t.Fatalf("no remembered user expected, got %q", remembered)
	}
}
