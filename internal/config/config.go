/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables are treated as read-only overrides at
// runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type RenderConfig struct {
	WidthIn    float64 `yaml:"width_in"`
	HeightIn   float64 `yaml:"height_in"`
	DPI        int     `yaml:"dpi"`
	ShowLabels bool    `yaml:"show_labels"`
	StyleFile  string  `yaml:"style_file"`
}

type ExportConfig struct {
	OutputDir     string   `yaml:"output_dir"`
	Formats       []string `yaml:"formats"`
	ToolTimeoutMs int      `yaml:"tool_timeout_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render:        RenderConfig{WidthIn: 11, HeightIn: 14, DPI: 300, ShowLabels: true, StyleFile: ""},
		Export:        ExportConfig{OutputDir: ".", Formats: []string{"svg"}, ToolTimeoutMs: 120000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvOutputDir     = "MAPFORGE_OUTPUT_DIR"
	EnvToolTimeoutMs = "MAPFORGE_TOOL_TIMEOUT_MS"
	EnvStyleFile     = "MAPFORGE_STYLE_FILE"
	EnvShowLabels    = "MAPFORGE_SHOW_LABELS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "MAPFORGE_LOG_LEVEL"
	EnvLogFormat = "MAPFORGE_LOG_FORMAT"
	EnvLogSource = "MAPFORGE_LOG_SOURCE"
	EnvLogFile   = "MAPFORGE_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Mapforge")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Mapforge")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "mapforge")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
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
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Render.WidthIn > 0 {
		dst.Render.WidthIn = src.Render.WidthIn
	}
	if src.Render.HeightIn > 0 {
		dst.Render.HeightIn = src.Render.HeightIn
	}
	if src.Render.DPI > 0 {
		dst.Render.DPI = src.Render.DPI
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Render.ShowLabels = src.Render.ShowLabels
	if strings.TrimSpace(src.Render.StyleFile) != "" {
		dst.Render.StyleFile = strings.TrimSpace(src.Render.StyleFile)
	}
	if strings.TrimSpace(src.Export.OutputDir) != "" {
		dst.Export.OutputDir = strings.TrimSpace(src.Export.OutputDir)
	}
	if len(src.Export.Formats) > 0 {
		dst.Export.Formats = src.Export.Formats
	}
	if src.Export.ToolTimeoutMs > 0 {
		dst.Export.ToolTimeoutMs = src.Export.ToolTimeoutMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Export.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToolTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.ToolTimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStyleFile)); v != "" {
		cfg.Render.StyleFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvShowLabels)); v != "" {
		lv := strings.ToLower(v)
		cfg.Render.ShowLabels = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// ToolTimeout returns the external converter timeout as a duration.
func (e ExportConfig) ToolTimeout() time.Duration {
	ms := e.ToolTimeoutMs
	if ms <= 0 {
		ms = Defaults().Export.ToolTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}
