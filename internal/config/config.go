/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads and persists the user-editable application settings.
// Settings live in a YAML file in the per-user config directory; environment
// variables act as read-only overrides at runtime. The remembered login name
// is kept in the OS keyring, never in the file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	keyring "github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// GeneralConfig holds UI-facing preferences.
type GeneralConfig struct {
	Theme          string `yaml:"theme"` // "light" | "dark"
	RememberLogin  bool   `yaml:"remember_login"`
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
}

// DatabaseConfig locates the catalog file.
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty means the platform default
}

// LoggingConfig mirrors internal/log.Options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the persisted configuration document.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Database      DatabaseConfig `yaml:"database"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "light", RememberLogin: false, TelemetryOptIn: false},
		Database:      DatabaseConfig{Path: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvDBPath         = "GLB_DB_PATH"
	EnvTheme          = "GLB_THEME"
	EnvTelemetryOptIn = "GLB_TELEMETRY_OPT_IN"
	EnvLogLevel       = "GLB_LOG_LEVEL"
	EnvLogFormat      = "GLB_LOG_FORMAT"
	EnvLogSource      = "GLB_LOG_SOURCE"
	EnvLogFile        = "GLB_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService  = "GoLibrarian"
	keyringUsername = "remembered_username"
)

// SecretStore abstracts the OS keyring so tests can stub it.
type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// Secrets is the active secret backend; replaced by tests.
var Secrets SecretStore = osKeyring{}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoLibrarian")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoLibrarian")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "golibrarian")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The remembered username is read from the keyring and
// returned separately; keyring errors degrade to an empty name.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)

	var remembered string
	if cfg.General.RememberLogin {
		remembered, _ = Secrets.Get(keyringService, keyringUsername)
	}
	return cfg, remembered, nil
}

// Save writes the user config YAML and updates the remembered username in the
// OS keyring: stored when remember-login is on, removed when it is off.
func Save(cfg AppConfig, rememberedUser string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if cfg.General.RememberLogin && rememberedUser != "" {
		return Secrets.Set(keyringService, keyringUsername, rememberedUser)
	}
	if !cfg.General.RememberLogin {
		_ = Secrets.Delete(keyringService, keyringUsername)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if t := strings.TrimSpace(src.General.Theme); t != "" {
		dst.General.Theme = strings.ToLower(t)
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.RememberLogin = src.General.RememberLogin
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if p := strings.TrimSpace(src.Database.Path); p != "" {
		dst.Database.Path = p
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
