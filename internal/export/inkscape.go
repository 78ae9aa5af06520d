/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	applog "mapforge/internal/log"
)

// ErrToolNotFound is returned when no usable Inkscape installation exists.
var ErrToolNotFound = errors.New("inkscape not found")

// ToolCache resolves the Inkscape binary once and caches the result for the
// process lifetime. The installed toolchain does not change mid-run, so one
// probe is enough; callers inject the cache into the Pipeline instead of
// relying on ambient module state.
type ToolCache struct {
	mu       sync.Mutex
	resolved bool
	path     string
	err      error

	// seams for tests
	goos     string
	lookPath func(string) (string, error)
	probe    func(ctx context.Context, path string) error
}

// NewToolCache returns a cache that probes the real system.
func NewToolCache() *ToolCache {
	return &ToolCache{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		probe: func(ctx context.Context, path string) error {
			return exec.CommandContext(ctx, path, "--version").Run()
		},
	}
}

// Resolve returns the Inkscape path, probing on first use. On Windows the
// well-known Program Files locations are checked; elsewhere the binary is
// looked up on PATH and verified with a --version run.
func (t *ToolCache) Resolve(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resolved {
		return t.path, t.err
	}
	t.path, t.err = t.locate(ctx)
	t.resolved = true

	l := applog.WithComponent("export")
	if t.err != nil {
		l.Debug("inkscape probe failed", slog.Any("err", t.err))
	} else {
		l.Debug("inkscape resolved", slog.String("path", t.path))
	}
	return t.path, t.err
}

func (t *ToolCache) locate(ctx context.Context) (string, error) {
	if t.goos == "windows" {
		candidates := []string{
			filepath.Join(envOr("PROGRAMFILES", `C:\Program Files`), "Inkscape", "bin", "inkscape.exe"),
			filepath.Join(envOr("PROGRAMFILES(X86)", `C:\Program Files (x86)`), "Inkscape", "bin", "inkscape.exe"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				return c, nil
			}
		}
		return "", ErrToolNotFound
	}

	path, err := t.lookPath("inkscape")
	if err != nil {
		return "", ErrToolNotFound
	}
	if err := t.probe(ctx, path); err != nil {
		return "", ErrToolNotFound
	}
	return path, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
