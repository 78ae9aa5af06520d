/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mapforge/internal/catalog"
	"mapforge/internal/config"
	"mapforge/internal/crash"
	"mapforge/internal/export"
	"mapforge/internal/geo"
	applog "mapforge/internal/log"
	"mapforge/internal/render"
	"mapforge/internal/version"
)

func usage() {
	fmt.Println("Mapforge — street map poster renderer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mapforge version|-v|--version               Show version")
	fmt.Println("  mapforge render <features.json> [flags]      Render a feature set to SVG")
	fmt.Println("      -o <path>        output SVG path (default: <features>.svg in output dir)")
	fmt.Println("      -style <yaml>    stroke override file")
	fmt.Println("      -labels=<bool>   draw street name labels")
	fmt.Println("      -width/-height   page size in inches")
	fmt.Println("      -dpi <n>         raster resolution")
	fmt.Println("  mapforge export <doc.svg> <fmt>[,<fmt>...]   Derive png/pdf/ai/eps/dxf siblings")
	fmt.Println("  mapforge formats                             List export formats and availability")
	fmt.Println("  mapforge history [-n <count>]                List recent renders from the catalog")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer func() { crash.Recover("") }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Mapforge — street map poster renderer")
			fmt.Println(version.String())
			return
		case "render":
			cmdRender(l, cfg, args[2:])
			return
		case "export":
			cmdExport(l, cfg, args[2:])
			return
		case "formats":
			cmdFormats(cfg)
			return
		case "history":
			cmdHistory(cfg, args[2:])
			return
		}
	}

	usage()
}

func cmdRender(l *slog.Logger, cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "", "output SVG path")
	styleFile := fs.String("style", cfg.Render.StyleFile, "stroke override YAML file")
	labels := fs.Bool("labels", cfg.Render.ShowLabels, "draw street name labels")
	width := fs.Float64("width", cfg.Render.WidthIn, "page width in inches")
	height := fs.Float64("height", cfg.Render.HeightIn, "page height in inches")
	dpi := fs.Int("dpi", cfg.Render.DPI, "raster resolution")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("render requires <features.json>")
		usage()
		os.Exit(2)
	}
	in := fs.Arg(0)
	set, err := geo.LoadFeatureSet(in)
	if err != nil {
		l.Error("load feature set failed", slog.String("path", in), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	opt := render.Options{ShowLabels: *labels}
	if *styleFile != "" {
		overrides, err := render.LoadStyleOverrides(*styleFile)
		if err != nil {
			l.Error("load style overrides failed", slog.String("path", *styleFile), slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		opt.StyleOverrides = overrides
	}

	canvas := geo.Canvas{WidthIn: *width, HeightIn: *height, DPI: *dpi}
	outPath := *out
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".svg"
		outPath = filepath.Join(cfg.Export.OutputDir, base)
	}

	doc, err := render.Render(set.Area, set.Bounds, set.Features, canvas, opt)
	if err != nil {
		l.Error("render failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if err := doc.WriteSVG(outPath); err != nil {
		l.Error("write document failed", slog.String("path", outPath), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	recordRender(l, cfg, set, doc, canvas, outPath)
	fmt.Println("Rendered", outPath)
}

// recordRender is best effort; a broken catalog never fails the render.
func recordRender(l *slog.Logger, cfg config.AppConfig, set geo.FeatureSet, doc *render.Document, canvas geo.Canvas, outPath string) {
	c, err := catalog.Open(cfg.Export.OutputDir)
	if err != nil {
		l.Warn("catalog unavailable", slog.Any("err", err))
		return
	}
	defer c.Close()
	abs, _ := filepath.Abs(outPath)
	_, err = c.RecordRender(context.Background(), catalog.Render{
		Area: set.Area, DocPath: abs,
		WidthIn: canvas.WidthIn, HeightIn: canvas.HeightIn, DPI: canvas.DPI,
		Features: len(doc.Paths), Labels: len(doc.Labels),
	})
	if err != nil {
		l.Warn("catalog record failed", slog.Any("err", err))
	}
}

func cmdExport(l *slog.Logger, cfg config.AppConfig, args []string) {
	if len(args) < 2 {
		fmt.Println("export requires <doc.svg> and at least one format")
		usage()
		os.Exit(2)
	}
	docPath := args[0]
	var formats []export.Format
	for _, raw := range strings.Split(args[1], ",") {
		f, err := export.ParseFormat(raw)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(2)
		}
		formats = append(formats, f)
	}

	p := export.New(export.NewToolCache(), cfg.Export.ToolTimeout())
	results := p.Batch(context.Background(), docPath, formats)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			l.Error("export failed", slog.String("format", string(r.Format)), slog.Any("err", r.Err))
			fmt.Printf("%-4s  FAILED: %v\n", r.Format, r.Err)
			continue
		}
		fmt.Printf("%-4s  %s\n", r.Format, r.Path)
		recordExport(l, cfg, docPath, r)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func recordExport(l *slog.Logger, cfg config.AppConfig, docPath string, r export.Result) {
	c, err := catalog.Open(cfg.Export.OutputDir)
	if err != nil {
		return
	}
	defer c.Close()
	ctx := context.Background()
	abs, _ := filepath.Abs(docPath)
	renders, err := c.ListRenders(ctx, 50)
	if err != nil {
		return
	}
	for _, rec := range renders {
		if rec.DocPath == abs {
			if err := c.RecordExport(ctx, rec.ID, string(r.Format), r.Path); err != nil {
				l.Warn("catalog record failed", slog.Any("err", err))
			}
			return
		}
	}
}

func cmdFormats(cfg config.AppConfig) {
	p := export.New(export.NewToolCache(), cfg.Export.ToolTimeout())
	caps := p.Capabilities(context.Background())
	for _, f := range export.Formats() {
		c := caps[f]
		state := "available"
		if !c.Available {
			state = "unavailable"
		}
		fmt.Printf("%-4s  %-11s  %s\n", f, state, c.Reason)
	}
}

func cmdHistory(cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 20, "number of entries")
	_ = fs.Parse(args)

	c, err := catalog.Open(cfg.Export.OutputDir)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx := context.Background()
	renders, err := c.ListRenders(ctx, *n)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if len(renders) == 0 {
		fmt.Println("No renders recorded.")
		return
	}
	for _, r := range renders {
		fmt.Printf("#%d  %s  %s  %.0fx%.0fin @%ddpi  paths=%d labels=%d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Area,
			r.WidthIn, r.HeightIn, r.DPI, r.Features, r.Labels)
		exports, err := c.ListExports(ctx, r.ID)
		if err != nil {
			continue
		}
		for _, e := range exports {
			fmt.Printf("      %-4s %s\n", e.Format, e.Path)
		}
	}
}
