/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"strings"
)

// Format is a supported output format.
type Format string

const (
	FormatSVG Format = "svg" // native, written by the renderer
	FormatPNG Format = "png" // embedded rasterizer
	FormatPDF Format = "pdf" // embedded rasterizer
	FormatAI  Format = "ai"  // external tool, via PS intermediate
	FormatEPS Format = "eps" // external tool
	FormatDXF Format = "dxf" // external tool
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatPDF, FormatAI, FormatEPS, FormatDXF}
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatPNG, FormatPDF, FormatAI, FormatEPS, FormatDXF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// isRaster reports whether f is produced by the embedded rasterizer.
func (f Format) isRaster() bool { return f == FormatPNG || f == FormatPDF }

// isTool reports whether f requires the external vector-graphics tool.
func (f Format) isTool() bool { return f == FormatAI || f == FormatEPS || f == FormatDXF }
