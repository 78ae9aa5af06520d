/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"mapforge/internal/geo"
)

// PathElement is one open polyline through projected points with its paint.
type PathElement struct {
	Points []Pt
	Stroke Stroke
}

// Document is the in-memory vector document assembled for one render pass:
// page description plus the roads layer and the optional street-names layer.
type Document struct {
	Area   string
	Canvas geo.Canvas
	Paths  []PathElement
	Labels []Label
}

// WriteSVG writes the document to path. The write is transactional: bytes go
// to a temp file in the target directory which is renamed over the target,
// so a failed call never leaves a truncated document behind.
func (d *Document) WriteSVG(path string) error {
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	w := d.Canvas.WidthPx()
	h := d.Canvas.HeightPx()

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%sin\" height=\"%sin\" viewBox=\"0 0 %s %s\">\n",
		fnum(d.Canvas.WidthIn), fnum(d.Canvas.HeightIn), fnum(w), fnum(h))
	if d.Area != "" {
		wf("  <desc>Map of %s</desc>\n", escText(d.Area))
	}

	wf("  <g id=\"roads\">\n")
	for _, p := range d.Paths {
		if len(p.Points) < 2 {
			continue
		}
		wf("    <path d=\"M %s,%s", fnum(p.Points[0].X), fnum(p.Points[0].Y))
		for _, pt := range p.Points[1:] {
			wf(" L %s,%s", fnum(pt.X), fnum(pt.Y))
		}
		wf("\" stroke=\"%s\" stroke-width=\"%s\" fill=\"none\" stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n",
			p.Stroke.Color, fnum(p.Stroke.Width))
	}
	wf("  </g>\n")

	// The street-names group is structural: absent entirely when no labels
	// were placed, not emitted empty.
	if len(d.Labels) > 0 {
		wf("  <g id=\"street-names\" style=\"font-family: Arial, sans-serif; font-size: %dpx; fill: %s\">\n",
			LabelFontSize, LabelColor)
		for _, l := range d.Labels {
			wf("    <text x=\"%s\" y=\"%s\" transform=\"rotate(%s %s %s)\">%s</text>\n",
				fnum(l.X), fnum(l.Y), fnum(l.Angle), fnum(l.X), fnum(l.Y), escText(l.Text))
		}
		wf("  </g>\n")
	}

	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}

	dir := filepath.Dir(path)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := os.WriteFile(temp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp svg: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace svg: %w", err)
	}
	return nil
}

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
