/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geo

import "testing"

func TestBoundsValidate(t *testing.T) {
	cases := []struct {
		name    string
		b       Bounds
		wantErr bool
	}{
		{"valid", Bounds{MinLat: 30.267, MaxLat: 30.268, MinLon: -97.743, MaxLon: -97.742}, false},
		{"zero lat range", Bounds{MinLat: 30, MaxLat: 30, MinLon: -97.8, MaxLon: -97.7}, true},
		{"zero lon range", Bounds{MinLat: 30.1, MaxLat: 30.2, MinLon: -97.7, MaxLon: -97.7}, true},
		{"inverted lat", Bounds{MinLat: 31, MaxLat: 30, MinLon: -97.8, MaxLon: -97.7}, true},
	}
	for _, tc := range cases {
		err := tc.b.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestCanvasDerivedPixels(t *testing.T) {
	c := Canvas{WidthIn: 11, HeightIn: 14, DPI: 300}
	if c.WidthPx() != 3300 || c.HeightPx() != 4200 {
		t.Fatalf("unexpected pixel size: %v x %v", c.WidthPx(), c.HeightPx())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid canvas rejected: %v", err)
	}
	if err := (Canvas{WidthIn: 0, HeightIn: 14, DPI: 300}).Validate(); err == nil {
		t.Fatalf("zero-width canvas accepted")
	}
	if err := (Canvas{WidthIn: 11, HeightIn: 14, DPI: 0}).Validate(); err == nil {
		t.Fatalf("zero-dpi canvas accepted")
	}
}

func TestParseFeatureSet(t *testing.T) {
	payload := []byte(`{
		"area": "Austin",
		"bounds": {"min_lat": 30.26, "max_lat": 30.28, "min_lon": -97.76, "max_lon": -97.72},
		"features": [
			{"category": "motorway", "name": "I-35", "points": [[30.26, -97.74], [30.27, -97.73]]},
			{"category": "residential", "points": [[30.265, -97.75], [30.266, -97.75]]}
		]
	}`)
	fs, err := ParseFeatureSet(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fs.Area != "Austin" || len(fs.Features) != 2 {
		t.Fatalf("unexpected feature set: %+v", fs)
	}
	if fs.Features[0].Points[0] != (Point{Lat: 30.26, Lon: -97.74}) {
		t.Fatalf("point order wrong (want lat first): %+v", fs.Features[0].Points[0])
	}
	if fs.Features[1].Name != "" {
		t.Fatalf("expected empty name, got %q", fs.Features[1].Name)
	}
}

func TestParseFeatureSetRejectsSchemaViolations(t *testing.T) {
	bad := [][]byte{
		[]byte(`{"features": []}`),                                      // missing bounds
		[]byte(`{"bounds": {"min_lat": 1, "max_lat": 2, "min_lon": 3, "max_lon": 4}}`), // missing features
		[]byte(`{"bounds": {"min_lat": 200, "max_lat": 2, "min_lon": 3, "max_lon": 4}, "features": []}`),
		[]byte(`{"bounds": {"min_lat": 1, "max_lat": 2, "min_lon": 3, "max_lon": 4}, "features": [{"points": [[1,2]]}]}`),
	}
	for i, b := range bad {
		if _, err := ParseFeatureSet(b); err == nil {
			t.Fatalf("case %d: invalid payload accepted", i)
		}
	}
}
