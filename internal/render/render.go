/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a bounding box plus a list of line-string features
// into a print-ready SVG document: projection, per-category styling, street
// name placement and document assembly.
package render

import (
	"log/slog"

	"mapforge/internal/geo"
	applog "mapforge/internal/log"
)

// Options carries caller styling choices for one render pass.
type Options struct {
	// StyleOverrides replaces strokes for the listed categories only; all
	// other categories keep the built-in table.
	StyleOverrides map[string]Stroke
	// ShowLabels enables the street-names layer.
	ShowLabels bool
}

// Render assembles the vector document for one pass. Features are processed
// in input order; per-feature anomalies (fewer than 2 points) are dropped
// silently so one malformed way cannot abort a whole region.
func Render(area string, bounds geo.Bounds, features []geo.Feature, canvas geo.Canvas, opt Options) (*Document, error) {
	l := applog.WithOperation(applog.WithComponent("render"), "assemble").With(slog.String("area", area))

	if len(features) == 0 {
		return nil, &ValidationError{Reason: "empty feature list"}
	}
	proj, err := NewProjector(bounds, canvas)
	if err != nil {
		return nil, err
	}

	doc := &Document{Area: area, Canvas: canvas}
	// Dedup set for street names; lives exactly as long as this pass.
	used := make(map[string]bool)
	dropped := 0

	for _, f := range features {
		if len(f.Points) < 2 {
			dropped++
			continue
		}
		pts := proj.ProjectAll(f.Points)
		doc.Paths = append(doc.Paths, PathElement{
			Points: pts,
			Stroke: ResolveStyle(f.Category, opt.StyleOverrides),
		})
		if opt.ShowLabels {
			if lbl, ok := PlaceLabel(f.Name, pts, used); ok {
				doc.Labels = append(doc.Labels, lbl)
			}
		}
	}

	l.Info("document assembled",
		slog.Int("features", len(features)),
		slog.Int("paths", len(doc.Paths)),
		slog.Int("labels", len(doc.Labels)),
		slog.Int("dropped", dropped),
	)
	return doc, nil
}

// RenderFile runs Render and writes the SVG document to outPath, returning
// the path on success. This is the entry point surrounding collaborators
// call.
func RenderFile(area string, bounds geo.Bounds, features []geo.Feature, canvas geo.Canvas, opt Options, outPath string) (string, error) {
	doc, err := Render(area, bounds, features, canvas, opt)
	if err != nil {
		return "", err
	}
	if err := doc.WriteSVG(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
