// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbuild

import "fmt"

// FileTooBigError is returned by FileOps.ReadEntireFile when a file exceeds
// the supplied byte limit (spec.md §4.3/§7 "Capacity").
type FileTooBigError struct {
	Path  string
	Limit int64
	Size  int64
}

func (e *FileTooBigError) Error() string {
	return fmt.Sprintf("%s: file too big (%d bytes, limit %d)", e.Path, e.Size, e.Limit)
}

// ToolError is returned when a compiler/archiver/linker invocation exits
// with a non-zero status or is terminated by a signal. The message voice
// follows kati's own diagnostics (e.g. dep.go's "*** No rule to make target
// %q.").
type ToolError struct {
	Argv     []string
	Output   string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("*** [%s] Error %d", e.Argv[0], e.ExitCode)
}

// NotImplementedError is returned when the Compile/Archive/Link driver is
// asked to compile a source whose extension it does not recognize
// (spec.md §4.6 "Non-.c sources fail with a fatal 'not implemented' error").
type NotImplementedError struct {
	Path string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: not implemented: only .c sources can be compiled", e.Path)
}
