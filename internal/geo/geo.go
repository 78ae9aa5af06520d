/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geo defines the geographic data model handed to the renderer:
// bounds, features and the physical canvas description. Feature data is
// produced by an external collaborator (the map-data ingestion side) and is
// read-only here.
package geo

import (
	"errors"
	"fmt"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Bounds is the geographic rectangle a render covers. Invariant: min < max
// on both axes.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Validate rejects degenerate or inverted bounds before any projection math
// runs, so scale computation can never divide by zero.
func (b Bounds) Validate() error {
	if b.MaxLat <= b.MinLat {
		return fmt.Errorf("latitude range is degenerate: min %v, max %v", b.MinLat, b.MaxLat)
	}
	if b.MaxLon <= b.MinLon {
		return fmt.Errorf("longitude range is degenerate: min %v, max %v", b.MinLon, b.MaxLon)
	}
	return nil
}

// Feature is a line-shaped map element, typically a road. Name may be empty.
type Feature struct {
	Category string
	Name     string
	Points   []Point
}

// Canvas describes the physical output page: size in inches plus resolution.
// Immutable after construction.
type Canvas struct {
	WidthIn  float64
	HeightIn float64
	DPI      int
}

// DefaultCanvas is the print size the original poster workflow targets.
func DefaultCanvas() Canvas { return Canvas{WidthIn: 11, HeightIn: 14, DPI: 300} }

func (c Canvas) WidthPx() float64  { return c.WidthIn * float64(c.DPI) }
func (c Canvas) HeightPx() float64 { return c.HeightIn * float64(c.DPI) }

func (c Canvas) Validate() error {
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return errors.New("canvas size must be positive")
	}
	if c.DPI <= 0 {
		return errors.New("canvas dpi must be positive")
	}
	return nil
}

// FeatureSet bundles a render request's inputs: the area label, its bounds
// and the already-parsed features.
type FeatureSet struct {
	Area     string
	Bounds   Bounds
	Features []Feature
}
