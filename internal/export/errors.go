/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import "fmt"

// CapabilityError reports a format whose required rasterizer or external
// tool is not present. It is a distinct type so UIs can grey the option out
// instead of treating it as a transient failure.
type CapabilityError struct {
	Format Format
	Reason string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("format %s unavailable: %s", e.Format, e.Reason)
}

// ToolError reports a failed external tool run, carrying the tool's
// diagnostic output.
type ToolError struct {
	Tool   string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
