/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mapforge/internal/geo"
)

func austinBounds() geo.Bounds {
	return geo.Bounds{MinLat: 30.267, MaxLat: 30.268, MinLon: -97.743, MaxLon: -97.742}
}

func TestRenderSingleMotorwayNoName(t *testing.T) {
	feats := []geo.Feature{
		{Category: "motorway", Points: []geo.Point{
			{Lat: 30.2672, Lon: -97.7428}, {Lat: 30.2678, Lon: -97.7422},
		}},
	}
	doc, err := Render("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(doc.Paths))
	}
	if doc.Paths[0].Stroke != (Stroke{Color: "#333333", Width: 4}) {
		t.Fatalf("motorway stroke wrong: %+v", doc.Paths[0].Stroke)
	}
	if len(doc.Labels) != 0 {
		t.Fatalf("unnamed feature emitted labels: %d", len(doc.Labels))
	}
}

func TestRenderDeduplicatesSharedNames(t *testing.T) {
	feats := []geo.Feature{
		{Category: "residential", Name: "Main St", Points: []geo.Point{
			{Lat: 30.2671, Lon: -97.7429}, {Lat: 30.2673, Lon: -97.7427},
		}},
		{Category: "residential", Name: "Main St", Points: []geo.Point{
			{Lat: 30.2675, Lon: -97.7425}, {Lat: 30.2677, Lon: -97.7423},
		}},
	}
	doc, err := Render("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Labels) != 1 || doc.Labels[0].Text != "Main St" {
		t.Fatalf("expected exactly 1 'Main St' label, got %+v", doc.Labels)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	feats := []geo.Feature{
		{Category: "primary", Name: "Congress Ave", Points: []geo.Point{
			{Lat: 30.2671, Lon: -97.7429}, {Lat: 30.2677, Lon: -97.7423},
		}},
		{Category: "secondary", Name: "5th St", Points: []geo.Point{
			{Lat: 30.2672, Lon: -97.7424}, {Lat: 30.2674, Lon: -97.7428},
		}},
	}
	a, err := Render("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: true})
	if err != nil {
		t.Fatalf("render a: %v", err)
	}
	b, err := Render("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: true})
	if err != nil {
		t.Fatalf("render b: %v", err)
	}
	if len(a.Labels) != len(b.Labels) {
		t.Fatalf("label count differs across identical renders: %d vs %d", len(a.Labels), len(b.Labels))
	}
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("label %d differs: %+v vs %+v", i, a.Labels[i], b.Labels[i])
		}
	}
}

func TestRenderDropsDegenerateFeaturesSilently(t *testing.T) {
	feats := []geo.Feature{
		{Category: "service", Points: []geo.Point{{Lat: 30.2672, Lon: -97.7428}}}, // one point
		{Category: "primary", Points: []geo.Point{
			{Lat: 30.2671, Lon: -97.7429}, {Lat: 30.2677, Lon: -97.7423},
		}},
	}
	doc, err := Render("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("degenerate feature should be dropped, got %d paths", len(doc.Paths))
	}
}

func TestRenderRejectsEmptyFeatureList(t *testing.T) {
	var verr *ValidationError
	_, err := Render("Austin", austinBounds(), nil, geo.DefaultCanvas(), Options{})
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestWriteSVGStructure(t *testing.T) {
	feats := []geo.Feature{
		{Category: "motorway", Name: "I-35", Points: []geo.Point{
			{Lat: 30.2672, Lon: -97.7428}, {Lat: 30.2678, Lon: -97.7422},
		}},
	}
	out := filepath.Join(t.TempDir(), "austin.svg")
	path, err := RenderFile("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: true}, out)
	if err != nil {
		t.Fatalf("render file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	svg := string(data)

	// Physical page metadata and pixel coordinate space.
	if !strings.Contains(svg, `width="11in" height="14in"`) {
		t.Fatalf("physical size metadata missing:\n%s", svg)
	}
	if !strings.Contains(svg, `viewBox="0 0 3300 4200"`) {
		t.Fatalf("viewBox must be width*dpi x height*dpi:\n%s", svg)
	}
	if !strings.Contains(svg, `<g id="roads">`) {
		t.Fatalf("roads layer missing")
	}
	if !strings.Contains(svg, `<g id="street-names"`) {
		t.Fatalf("street-names layer missing")
	}
	if !strings.Contains(svg, `fill="none"`) {
		t.Fatalf("paths must not be filled")
	}
	if !strings.Contains(svg, `stroke-linecap="round"`) || !strings.Contains(svg, `stroke-linejoin="round"`) {
		t.Fatalf("round caps/joins missing")
	}
	if !strings.Contains(svg, ">I-35</text>") {
		t.Fatalf("label text missing")
	}
}

func TestWriteSVGOmitsStreetNamesLayerWhenDisabled(t *testing.T) {
	feats := []geo.Feature{
		{Category: "residential", Name: "Main St", Points: []geo.Point{
			{Lat: 30.2671, Lon: -97.7429}, {Lat: 30.2677, Lon: -97.7423},
		}},
	}
	out := filepath.Join(t.TempDir(), "nolabels.svg")
	if _, err := RenderFile("Austin", austinBounds(), feats, geo.DefaultCanvas(), Options{ShowLabels: false}, out); err != nil {
		t.Fatalf("render file: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if strings.Contains(string(data), "street-names") {
		t.Fatalf("street-names layer must be absent when labels are disabled")
	}
	if strings.Contains(string(data), "<text") {
		t.Fatalf("no text elements expected when labels are disabled")
	}
}

func TestWriteSVGEscapesLabelText(t *testing.T) {
	doc := &Document{
		Area:   "A & B <Test>",
		Canvas: geo.DefaultCanvas(),
		Paths:  []PathElement{{Points: []Pt{{0, 0}, {10, 10}}, Stroke: defaultStroke}},
		Labels: []Label{{Text: "Farm & Market Rd", X: 5, Y: 5}},
	}
	out := filepath.Join(t.TempDir(), "esc.svg")
	if err := doc.WriteSVG(out); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, _ := os.ReadFile(out)
	svg := string(data)
	if !strings.Contains(svg, "Farm &amp; Market Rd") {
		t.Fatalf("label text not escaped:\n%s", svg)
	}
	if !strings.Contains(svg, "A &amp; B &lt;Test&gt;") {
		t.Fatalf("desc not escaped:\n%s", svg)
	}
}
