/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// exportPDF converts the SVG document to a single-page PDF whose media box
// matches the document's physical size. The page content is the embedded
// rasterization placed at full-page extent, so the PDF prints identically to
// the PNG at the declared DPI.
func exportPDF(svgPath, outPath string) error {
	img, info, err := rasterize(svgPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode raster: %w", err)
	}

	// 1in = 72pt
	wPt := info.WidthIn * 72
	hPt := info.HeightIn * 72

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: wPt, Ht: hPt})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("map", opts, &buf)
	pdf.ImageOptions("map", 0, 0, wPt, hPt, false, opts, 0, "")

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
