/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed featureset.schema.json
var featureSetSchema []byte

// wire format of a feature-set file; points are [lat, lon] pairs.
type featureSetDoc struct {
	Area   string `json:"area"`
	Bounds struct {
		MinLat float64 `json:"min_lat"`
		MaxLat float64 `json:"max_lat"`
		MinLon float64 `json:"min_lon"`
		MaxLon float64 `json:"max_lon"`
	} `json:"bounds"`
	Features []struct {
		Category string       `json:"category"`
		Name     string       `json:"name"`
		Points   [][2]float64 `json:"points"`
	} `json:"features"`
}

// LoadFeatureSet reads and validates a feature-set JSON file. The payload is
// checked against the embedded schema before decoding, so malformed input
// from ingestion tooling is rejected with a readable message rather than a
// partial decode.
func LoadFeatureSet(path string) (FeatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FeatureSet{}, fmt.Errorf("read feature set: %w", err)
	}
	return ParseFeatureSet(data)
}

// ParseFeatureSet validates and decodes feature-set JSON bytes.
func ParseFeatureSet(data []byte) (FeatureSet, error) {
	schemaLoader := gojsonschema.NewBytesLoader(featureSetSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return FeatureSet{}, fmt.Errorf("validate feature set: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return FeatureSet{}, fmt.Errorf("feature set does not conform to schema: %s", strings.Join(msgs, "; "))
	}

	var doc featureSetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return FeatureSet{}, fmt.Errorf("decode feature set: %w", err)
	}

	fs := FeatureSet{
		Area: doc.Area,
		Bounds: Bounds{
			MinLat: doc.Bounds.MinLat,
			MaxLat: doc.Bounds.MaxLat,
			MinLon: doc.Bounds.MinLon,
			MaxLon: doc.Bounds.MaxLon,
		},
	}
	fs.Features = make([]Feature, 0, len(doc.Features))
	for _, f := range doc.Features {
		feat := Feature{Category: f.Category, Name: f.Name, Points: make([]Point, 0, len(f.Points))}
		for _, p := range f.Points {
			feat.Points = append(feat.Points, Point{Lat: p[0], Lon: p[1]})
		}
		fs.Features = append(fs.Features, feat)
	}
	return fs, nil
}
