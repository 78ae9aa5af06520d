/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// svgInfo is the metadata the raster exporters need from a rendered map
// document: physical page size, pixel extent, and label texts.
type svgInfo struct {
	WidthIn  float64
	HeightIn float64
	WidthPx  int
	HeightPx int
	Texts    []svgText
}

type svgText struct {
	X, Y  float64
	Value string
}

// inspectSVG reads the document's page metadata and text elements. Only the
// renderer's own output shape is understood; this is not a general SVG
// parser.
func inspectSVG(path string) (svgInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return svgInfo{}, fmt.Errorf("open svg: %w", err)
	}
	defer f.Close()

	var info svgInfo
	dec := xml.NewDecoder(f)
	var curText *svgText
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "svg":
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "width":
						info.WidthIn, _ = parseInches(a.Value)
					case "height":
						info.HeightIn, _ = parseInches(a.Value)
					case "viewBox":
						fields := strings.Fields(a.Value)
						if len(fields) == 4 {
							w, _ := strconv.ParseFloat(fields[2], 64)
							h, _ := strconv.ParseFloat(fields[3], 64)
							info.WidthPx = int(math.Round(w))
							info.HeightPx = int(math.Round(h))
						}
					}
				}
			case "text":
				curText = &svgText{}
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "x":
						curText.X, _ = strconv.ParseFloat(a.Value, 64)
					case "y":
						curText.Y, _ = strconv.ParseFloat(a.Value, 64)
					}
				}
			}
		case xml.CharData:
			if curText != nil {
				curText.Value += string(t)
			}
		case xml.EndElement:
			if t.Name.Local == "text" && curText != nil {
				info.Texts = append(info.Texts, *curText)
				curText = nil
			}
		}
	}
	if info.WidthPx <= 0 || info.HeightPx <= 0 {
		return svgInfo{}, fmt.Errorf("svg %s has no usable viewBox", path)
	}
	return info, nil
}

func parseInches(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "in"), 64)
}

// rasterize renders the document's paths onto a white RGBA image at its
// declared pixel extent, then overlays label texts with a fixed bitmap face.
// Label rotation is preserved only in vector outputs; the raster overlay
// draws names horizontally at their anchors.
func rasterize(path string) (*image.RGBA, svgInfo, error) {
	info, err := inspectSVG(path)
	if err != nil {
		return nil, svgInfo{}, err
	}

	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, svgInfo{}, fmt.Errorf("parse svg: %w", err)
	}

	w, h := info.WidthPx, info.HeightPx
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	if len(info.Texts) > 0 {
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}),
			Face: basicfont.Face7x13,
		}
		for _, txt := range info.Texts {
			drawer.Dot = fixed.Point26_6{
				X: fixed.Int26_6(txt.X * 64),
				Y: fixed.Int26_6(txt.Y * 64),
			}
			drawer.DrawString(txt.Value)
		}
	}
	return img, info, nil
}
