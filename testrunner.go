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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

const (
	testRunnerBanner     = "/* AUTOGENERATED FILE. DO NOT EDIT. */"
	testFrameworkInclude = `#include "unity_fixture.h"`
)

// TestGroupSet accumulates distinct TEST_GROUP names in first-seen order
// across however many files are scanned. It is the sole source of truth for
// the aggregate runner (spec.md §4.7 "group accumulation").
type TestGroupSet struct {
	order []string
	seen  map[string]bool
}

// NewTestGroupSet returns an empty TestGroupSet.
func NewTestGroupSet() *TestGroupSet {
	return &TestGroupSet{seen: make(map[string]bool)}
}

// Add records name if it hasn't been seen before.
func (s *TestGroupSet) Add(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

// Groups returns the accumulated names in insertion order.
func (s *TestGroupSet) Groups() []string {
	return s.order
}

// runnerPath derives the sibling runner path for a test file: a "runner"
// directory next to it, filename "<stem>_runner<ext>" (spec.md §4.7
// "per-file emission").
func runnerPath(testFile string) string {
	dir := filepath.Dir(testFile)
	ext := filepath.Ext(testFile)
	stem := strings.TrimSuffix(filepath.Base(testFile), ext)
	return filepath.Join(dir, "runner", stem+"_runner"+ext)
}

// expectPunct consumes the next token and reports whether it equals want.
func expectPunct(tok *Tokenizer, want string) bool {
	tb, ok := tok.Next()
	return ok && string(tb) == want
}

// parseIdentArg consumes the next token and reports it as an identifier
// argument, or fails if it isn't one.
func parseIdentArg(tok *Tokenizer) (string, bool) {
	tb, ok := tok.Next()
	if !ok || len(tb) == 0 || !isIdentByte(tb[0]) {
		return "", false
	}
	return string(tb), true
}

// parseGroupDecl parses "(name)" following an already-consumed TEST_GROUP
// token. A trailing ';' (or '{' of an unexpected body) is left for the main
// scan loop to fall through and discard, matching the malformed-input
// recovery in spec.md §7: a failed match simply resets to scanning for the
// next recognized pattern rather than aborting.
func parseGroupDecl(tok *Tokenizer) (string, bool) {
	if !expectPunct(tok, "(") {
		return "", false
	}
	name, ok := parseIdentArg(tok)
	if !ok {
		return "", false
	}
	if !expectPunct(tok, ")") {
		return "", false
	}
	return name, true
}

// parseTestDecl parses "(group, case)" following an already-consumed TEST or
// IGNORE_TEST token. The function-body braces that follow in the source are
// left untouched; the main scan loop walks over and discards them since
// nothing inside matches a recognized macro form.
func parseTestDecl(tok *Tokenizer) (group, testCase string, ok bool) {
	if !expectPunct(tok, "(") {
		return "", "", false
	}
	group, ok = parseIdentArg(tok)
	if !ok {
		return "", "", false
	}
	if !expectPunct(tok, ",") {
		return "", "", false
	}
	testCase, ok = parseIdentArg(tok)
	if !ok {
		return "", "", false
	}
	if !expectPunct(tok, ")") {
		return "", "", false
	}
	return group, testCase, true
}

// renderGroupRunner renders one TEST_GROUP_RUNNER(name) { ... } block. An
// empty bodyLines still yields a well-formed, empty-bodied block (spec.md §9
// Open Questions: a group closed without any intervening TEST(...) must
// still produce one), rendered as "TEST_GROUP_RUNNER(name) {" followed by
// "}" on the next line.
func renderGroupRunner(name string, bodyLines []string) string {
	if len(bodyLines) == 0 {
		return fmt.Sprintf("TEST_GROUP_RUNNER(%s) {\n}", name)
	}
	return fmt.Sprintf("TEST_GROUP_RUNNER(%s) {\n%s\n}", name, strings.Join(bodyLines, "\n"))
}

// generateFileRunner scans one test file's contents and returns its rendered
// per-file runner text, recording every distinct TEST_GROUP it declares into
// groups. Grounded on includescanner.go's directive-scan loop, extended with
// a small state machine over TEST_GROUP/TEST/IGNORE_TEST: "open" tracks the
// group currently being accumulated, closed either by the next TEST_GROUP or
// by end of file (spec.md §4.7, §9 group-body-closing).
func generateFileRunner(data []byte, groups *TestGroupSet) string {
	tok := NewTokenizer(data)

	var units []string
	var pendingDirectives []string
	var bodyLines []string
	group := ""
	open := false

	flushDirectives := func() {
		if len(pendingDirectives) > 0 {
			units = append(units, strings.Join(pendingDirectives, "\n"))
			pendingDirectives = nil
		}
	}
	closeGroup := func() {
		if !open {
			return
		}
		units = append(units, renderGroupRunner(group, bodyLines))
		bodyLines = nil
		open = false
	}

	for {
		tb, ok := tok.Next()
		if !ok {
			break
		}
		switch {
		case len(tb) > 0 && tb[0] == '#':
			rest := tok.SkipToEndOfPoundExpression()
			line := string(tb) + string(rest)
			if open {
				bodyLines = append(bodyLines, line)
			} else {
				pendingDirectives = append(pendingDirectives, line)
			}
		case len(tb) >= 2 && tb[0] == '/' && (tb[1] == '/' || tb[1] == '*'):
			// Comment token: not reproduced. A commented-out TEST(...) was
			// already swallowed whole by the tokenizer, so it never reaches
			// the identifier cases below.
		case string(tb) == "TEST_GROUP":
			name, okParse := parseGroupDecl(tok)
			if okParse {
				closeGroup()
				flushDirectives()
				group = name
				open = true
				groups.Add(name)
			}
		case string(tb) == "TEST" || string(tb) == "IGNORE_TEST":
			g, c, okParse := parseTestDecl(tok)
			if okParse && open {
				bodyLines = append(bodyLines, fmt.Sprintf("    RUN_TEST_CASE(%s, %s); /* TEST_%s_%s_ */", g, c, g, c))
			}
		}
		// Anything else (TEST_SETUP, TEST_TEAR_DOWN, ordinary code, a
		// TEST/TEST_GROUP that failed to parse) falls through unreproduced:
		// the generator only ever emits the banner, passthrough directives,
		// and the recognized test-macro forms.
	}
	closeGroup()
	flushDirectives()

	var buf strings.Builder
	buf.WriteString(testRunnerBanner + "\n")
	for _, u := range units {
		// Every runner block is preceded by a blank line, whether it follows
		// the banner, the passthrough directives, or another block.
		if strings.HasPrefix(u, "TEST_GROUP_RUNNER(") {
			buf.WriteString("\n")
		}
		buf.WriteString(u)
		buf.WriteString("\n")
	}
	return buf.String()
}

// renderAggregateRunner renders the aggregate run_all_tests dispatch file
// listing every group in accumulated order (spec.md §4.7 "aggregate
// emission").
func renderAggregateRunner(groupNames []string) string {
	var buf strings.Builder
	buf.WriteString(testRunnerBanner + "\n")
	buf.WriteString(testFrameworkInclude + "\n")
	buf.WriteString("\n")
	buf.WriteString("void run_all_tests(void) {\n")
	for _, g := range groupNames {
		buf.WriteString(fmt.Sprintf("    RUN_TEST_GROUP(%s);\n", g))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// GenerateTestRunners reads each file in testFiles, writes its per-file
// runner (write-if-changed, so an unchanged regeneration leaves the file's
// mtime untouched per spec.md §4.7 "idempotence"), and writes the aggregate
// runner at aggregatePath covering every group discovered across all files,
// in file-processing order.
func GenerateTestRunners(bc *BuildContext, config *BuildConfig, testFiles []string, aggregatePath string) error {
	groups := NewTestGroupSet()
	for _, tf := range testFiles {
		data, err := ReadEntireFile(tf, config.ReadLimit())
		if err != nil {
			return err
		}
		rendered := generateFileRunner(data, groups)
		rp := runnerPath(tf)
		if err := CreateParentDirectory(bc, rp); err != nil {
			return err
		}
		changed, err := WriteEntireFileIfChanged(bc, rp, []byte(rendered), config.ReadLimit())
		if err != nil {
			return err
		}
		glog.V(2).Infof("test runner %s (changed=%v)", rp, changed)
	}

	aggregate := renderAggregateRunner(groups.Groups())
	if err := CreateParentDirectory(bc, aggregatePath); err != nil {
		return err
	}
	_, err := WriteEntireFileIfChanged(bc, aggregatePath, []byte(aggregate), config.ReadLimit())
	return err
}
