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
	"os"

	"gopkg.in/yaml.v3"
)

// Stroke is the paint applied to a road path.
type Stroke struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

// builtinStyles keys road categories to their print styles. Grays darken and
// widen with road importance.
var builtinStyles = map[string]Stroke{
	"motorway":     {Color: "#333333", Width: 4},
	"trunk":        {Color: "#333333", Width: 3.5},
	"primary":      {Color: "#666666", Width: 3},
	"secondary":    {Color: "#888888", Width: 2.5},
	"tertiary":     {Color: "#888888", Width: 2},
	"residential":  {Color: "#AAAAAA", Width: 1.5},
	"unclassified": {Color: "#AAAAAA", Width: 1},
	"service":      {Color: "#AAAAAA", Width: 1},
}

// defaultStroke covers categories not present in either table. Ingestion
// data is uncontrolled input, so an unknown category degrades to a thin
// light-gray line instead of erroring.
var defaultStroke = Stroke{Color: "#AAAAAA", Width: 1}

// ResolveStyle looks up the paint for a category: caller overrides first,
// then the built-in table, then the hard-coded default. Never fails.
func ResolveStyle(category string, overrides map[string]Stroke) Stroke {
	if s, ok := overrides[category]; ok {
		return s
	}
	if s, ok := builtinStyles[category]; ok {
		return s
	}
	return defaultStroke
}

// LoadStyleOverrides reads a YAML file mapping categories to strokes, e.g.
//
//	motorway:
//	  color: "#112233"
//	  width: 5
//
// The result replaces only the listed categories; it is merged over the
// built-in table at resolve time.
func LoadStyleOverrides(path string) (map[string]Stroke, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}
	var overrides map[string]Stroke
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse style file: %w", err)
	}
	return overrides, nil
}
