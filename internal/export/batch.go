/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import "context"

// Result is the outcome of one format in a batch export.
type Result struct {
	Format Format
	Path   string
	Err    error
}

// Batch exports one document to several formats. Each target is independent:
// a failed conversion is recorded in its Result and never aborts the
// remaining formats.
func (p *Pipeline) Batch(ctx context.Context, docPath string, formats []Format) []Result {
	results := make([]Result, 0, len(formats))
	for _, f := range formats {
		path, err := p.Export(ctx, docPath, f)
		results = append(results, Result{Format: f, Path: path, Err: err})
	}
	return results
}
