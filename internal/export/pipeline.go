/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export derives sibling formats from a rendered SVG map document.
// PNG and PDF come from the embedded rasterizer; AI, EPS and DXF shell out
// to Inkscape when an installation can be found.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	applog "mapforge/internal/log"
)

// DefaultToolTimeout bounds one external conversion run.
const DefaultToolTimeout = 2 * time.Minute

// Capability describes whether a format can currently be produced, with a
// human-readable reason for UIs to display.
type Capability struct {
	Available bool
	Reason    string
}

// Pipeline converts rendered documents into requested formats. Concurrent
// Export calls for the same source document are safe: they read the source
// and write disjoint sibling paths.
type Pipeline struct {
	tools   *ToolCache
	timeout time.Duration

	// runTool is an exec seam for tests.
	runTool func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// New builds a pipeline around the given tool cache. A zero timeout selects
// DefaultToolTimeout.
func New(tools *ToolCache, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	return &Pipeline{
		tools:   tools,
		timeout: timeout,
		runTool: func(ctx context.Context, bin string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, bin, args...).CombinedOutput()
		},
	}
}

// SiblingPath returns the output path for a format: same directory and base
// name as the document, different extension.
func SiblingPath(docPath string, f Format) string {
	ext := filepath.Ext(docPath)
	return strings.TrimSuffix(docPath, ext) + "." + string(f)
}

// Export produces docPath's sibling in the requested format and returns its
// path. Failures are typed: *CapabilityError when the needed tooling is
// missing, *ToolError when the external tool ran and failed. No partial
// output file survives a failure.
func (p *Pipeline) Export(ctx context.Context, docPath string, f Format) (string, error) {
	l := applog.WithOperation(applog.WithComponent("export"), "convert").With(
		slog.String("doc", docPath), slog.String("format", string(f)),
	)

	if _, err := os.Stat(docPath); err != nil {
		return "", fmt.Errorf("source document: %w", err)
	}

	if f == FormatSVG {
		return docPath, nil
	}

	outPath := SiblingPath(docPath, f)
	switch {
	case f.isRaster():
		var err error
		if f == FormatPNG {
			err = exportPNG(docPath, outPath)
		} else {
			err = exportPDF(docPath, outPath)
		}
		if err != nil {
			l.Error("raster export failed", slog.Any("err", err))
			return "", err
		}
	case f.isTool():
		if err := p.exportTool(ctx, docPath, outPath, f); err != nil {
			l.Error("tool export failed", slog.Any("err", err))
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}

	l.Info("export complete", slog.String("out", outPath))
	return outPath, nil
}

// exportTool runs Inkscape for the vector-tool family. AI has no direct
// export type: it goes through a PostScript intermediate which is renamed
// into place; the intermediate is removed whether or not the conversion
// succeeded.
func (p *Pipeline) exportTool(ctx context.Context, docPath, outPath string, f Format) error {
	bin, err := p.tools.Resolve(ctx)
	if err != nil {
		return &CapabilityError{Format: f, Reason: "inkscape not installed"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	target := outPath
	exportType := string(f)
	if f == FormatAI {
		target = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".ps"
		exportType = "ps"
		defer func() { _ = os.Remove(target) }()
	}

	args := []string{docPath, "--export-filename=" + target, "--export-type=" + exportType}
	out, err := p.runTool(ctx, bin, args...)
	if err != nil {
		_ = os.Remove(target)
		_ = os.Remove(outPath)
		return &ToolError{Tool: bin, Output: strings.TrimSpace(string(out)), Err: err}
	}
	if _, err := os.Stat(target); err != nil {
		return &ToolError{Tool: bin, Output: strings.TrimSpace(string(out)), Err: fmt.Errorf("no output produced")}
	}

	if f == FormatAI {
		if err := os.Rename(target, outPath); err != nil {
			_ = os.Remove(outPath)
			return fmt.Errorf("rename intermediate: %w", err)
		}
	}
	return nil
}

// Capabilities reports per-format availability from actual probing, never a
// hard-coded assumption. The rasterizer is compiled in, so the raster family
// is always available; the vector-tool family depends on finding Inkscape.
func (p *Pipeline) Capabilities(ctx context.Context) map[Format]Capability {
	caps := map[Format]Capability{
		FormatSVG: {Available: true, Reason: "native format"},
		FormatPNG: {Available: true, Reason: "embedded rasterizer"},
		FormatPDF: {Available: true, Reason: "embedded rasterizer"},
	}
	toolCap := Capability{Available: true}
	if path, err := p.tools.Resolve(ctx); err != nil {
		toolCap = Capability{Available: false, Reason: "inkscape not installed"}
	} else {
		toolCap.Reason = "inkscape at " + path
	}
	for _, f := range []Format{FormatAI, FormatEPS, FormatDXF} {
		caps[f] = toolCap
	}
	return caps
}
