/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"

	"mapforge/internal/geo"
)

// Pt is a projected point in canvas pixel space; Y increases downward.
type Pt struct{ X, Y float64 }

// Projector maps geographic coordinates to canvas pixels. It is computed
// once per render pass from the shared bounds; every feature of the pass
// must use the same instance so roads stay aligned.
type Projector struct {
	minLat   float64
	minLon   float64
	scale    float64
	heightPx float64
}

// padFraction is the margin added on every side of the bounds.
const padFraction = 0.05

// NewProjector validates bounds and canvas and derives the uniform scale.
// The padded bounds keep the original area centered with a 5% margin, and
// the shorter geographic dimension floats inside the canvas ("fit", not
// "fill"): whichever axis is proportionally larger fills its canvas
// dimension exactly.
func NewProjector(b geo.Bounds, c geo.Canvas) (*Projector, error) {
	if err := b.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	latRange := b.MaxLat - b.MinLat
	lonRange := b.MaxLon - b.MinLon

	latPad := latRange * padFraction
	lonPad := lonRange * padFraction
	latRange += 2 * latPad
	lonRange += 2 * lonPad
	minLat := b.MinLat - latPad
	minLon := b.MinLon - lonPad

	widthPx := c.WidthPx()
	heightPx := c.HeightPx()

	mapAspect := lonRange / latRange
	canvasAspect := widthPx / heightPx

	var scale float64
	if mapAspect > canvasAspect {
		scale = widthPx / lonRange
	} else {
		scale = heightPx / latRange
	}

	return &Projector{minLat: minLat, minLon: minLon, scale: scale, heightPx: heightPx}, nil
}

// Project maps a single geographic point. Latitude is scaled negatively and
// offset by the canvas height because canvas Y grows downward while latitude
// grows northward.
func (p *Projector) Project(pt geo.Point) Pt {
	return Pt{
		X: (pt.Lon - p.minLon) * p.scale,
		Y: p.heightPx - (pt.Lat-p.minLat)*p.scale,
	}
}

// ProjectAll maps an ordered point sequence.
func (p *Projector) ProjectAll(pts []geo.Point) []Pt {
	out := make([]Pt, len(pts))
	for i, pt := range pts {
		out[i] = p.Project(pt)
	}
	return out
}

// ValidationError reports inputs rejected before any rendering work begins:
// degenerate bounds, zero-size canvas, empty feature list.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid render input: %s", e.Reason) }
