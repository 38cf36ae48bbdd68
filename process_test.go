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

import (
	"strings"
	"testing"
	"time"
)

func TestCmdLineAppendAndString(t *testing.T) {
	c := NewCmdLine("cc", "-c")
	c.Append("-o", "out.o", "in.c")
	want := "cc -c -o out.o in.c"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	argv := c.Argv()
	if len(argv) != 5 {
		t.Errorf("Argv() = %v, want 5 elements", argv)
	}
}

func TestExecuteSyncSuccess(t *testing.T) {
	if err := ExecuteSync([]string{"true"}); err != nil {
		t.Errorf("ExecuteSync(true) = %v, want nil", err)
	}
}

func TestExecuteSyncFailureReturnsToolError(t *testing.T) {
	err := ExecuteSync([]string{"false"})
	if err == nil {
		t.Fatalf("ExecuteSync(false) = nil, want a *ToolError")
	}
	te, ok := err.(*ToolError)
	if !ok {
		t.Fatalf("ExecuteSync(false) error = %T, want *ToolError", err)
	}
	if te.ExitCode == 0 {
		t.Errorf("ToolError.ExitCode = 0, want nonzero")
	}
}

func TestExecuteSyncGetOutputCapturesStdout(t *testing.T) {
	res, err := ExecuteSyncGetOutput([]string{"echo", "hello"})
	if err != nil {
		t.Fatalf("ExecuteSyncGetOutput: %v", err)
	}
	if !strings.Contains(res.Output, "hello") {
		t.Errorf("Output = %q, want it to contain %q", res.Output, "hello")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestExecuteSyncGetOutputTimeoutKillsSlowChild(t *testing.T) {
	res, err := ExecuteSyncGetOutputTimeout([]string{"sleep", "5"}, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("ExecuteSyncGetOutputTimeout: %v", err)
	}
	if !res.Killed {
		t.Errorf("Killed = false, want true for a command exceeding its timeout")
	}
}

func TestExecuteSyncGetOutputTimeoutLetsFastChildFinish(t *testing.T) {
	res, err := ExecuteSyncGetOutputTimeout([]string{"echo", "quick"}, time.Second)
	if err != nil {
		t.Fatalf("ExecuteSyncGetOutputTimeout: %v", err)
	}
	if res.Killed {
		t.Errorf("Killed = true for a command well under its timeout")
	}
	if !strings.Contains(res.Output, "quick") {
		t.Errorf("Output = %q, want it to contain %q", res.Output, "quick")
	}
}
