/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import "math"

// Labels are a uniform overlay: one fixed size and muted color for every
// street name, regardless of road class.
const (
	LabelFontSize = 4
	LabelColor    = "#666666"
)

// Label is a placed street name: anchor point in canvas pixels and a
// rotation in degrees around that anchor.
type Label struct {
	Text  string
	X, Y  float64
	Angle float64
}

// PlaceLabel chooses an anchor and rotation for a feature's name, or reports
// false when no label should be emitted (empty name, name already used, or
// too few points). The anchor is the median vertex of the path, which is
// cheap, stable and representative for typical road shapes. On success the
// name is recorded in used so later features sharing it are skipped; the set
// is scratch state scoped to one document.
func PlaceLabel(name string, pts []Pt, used map[string]bool) (Label, bool) {
	if name == "" || used[name] || len(pts) < 2 {
		return Label{}, false
	}

	mid := len(pts) / 2
	anchor := pts[mid]

	var angle float64
	if mid > 0 {
		dx := anchor.X - pts[mid-1].X
		dy := anchor.Y - pts[mid-1].Y
		angle = math.Atan2(dy, dx) * 180 / math.Pi
		// Keep text upright: fold into (-90, 90].
		if angle > 90 {
			angle -= 180
		} else if angle <= -90 {
			angle += 180
		}
	}

	used[name] = true
	return Label{Text: name, X: anchor.X, Y: anchor.Y, Angle: angle}, true
}
