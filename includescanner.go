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
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// directiveWords is the set of preprocessor directive words this scanner
// recognizes, per spec.md §4.4 step 2. Only "include" is acted upon; the
// rest are recognized just so their expression can be skipped rather than
// mistaken for an ordinary token run.
var directiveWords = map[string]bool{
	"include": true,
	"define":  true,
	"undef":   true,
	"if":      true,
	"elif":    true,
	"ifdef":   true,
	"ifndef":  true,
	"else":    true,
	"endif":   true,
}

// directiveWord returns the alphabetic suffix of a directive-head token
// (e.g. "# include" -> "include", "#define" -> "define").
func directiveWord(head []byte) string {
	i := 1
	for i < len(head) && isSpaceByte(head[i]) {
		i++
	}
	return string(head[i:])
}

// trimIncludeForm trims whitespace and the bracket/quote delimiters " < >
// from a captured #include remainder, yielding the raw include form (e.g.
// "add.h" from either "\"add.h\"" or "<add.h>").
func trimIncludeForm(rest []byte) string {
	s := strings.TrimSpace(string(rest))
	s = strings.Trim(s, `"<>`)
	return s
}

// GetIncludedDependencies returns the ordered, deduplicated sequence of
// resolved header paths that filePath transitively includes, searching
// config.IncludeDirs. cacheKey is the memoization key: the raw include form
// for a header reached via #include, or filePath itself for a top-level
// scan. Per spec.md §4.4, unresolved includes are not an error; they are
// memoized under their raw form with an empty dependency set.
func GetIncludedDependencies(bc *BuildContext, config *BuildConfig, filePath, cacheKey string) ([]string, error) {
	if deps, ok := bc.IncludedDeps.Get(cacheKey); ok {
		return deps, nil
	}

	data, err := ReadEntireFile(filePath, config.ReadLimit())
	if err != nil {
		if os.IsNotExist(err) {
			bc.IncludedDeps.Put(cacheKey, nil)
			return nil, nil
		}
		return nil, err
	}

	var rawIncludes []string
	tok := NewTokenizer(data)
	for {
		tb, ok := tok.Next()
		if !ok {
			break
		}
		if len(tb) == 0 || tb[0] != '#' {
			continue
		}
		word := directiveWord(tb)
		if !directiveWords[word] {
			continue
		}
		if word == "include" {
			rest := tok.SkipToEndOfPoundExpression()
			rawIncludes = append(rawIncludes, trimIncludeForm(rest))
			continue
		}
		tok.SkipToEndOfPoundExpression()
	}

	// Tentative insert before recursing, so a cyclic #include graph
	// terminates instead of recursing forever (grounded on dep.go's
	// depBuilder.done map: mark in-progress before descending).
	bc.IncludedDeps.Put(cacheKey, rawIncludes)

	var resolved []string
	seen := make(map[string]bool)
	for _, raw := range rawIncludes {
		headerPath, found := resolveInclude(config, raw)
		if !found {
			glog.V(1).Infof("%s: unresolved include %q", filePath, raw)
			bc.IncludedDeps.Put(raw, nil)
			continue
		}
		if !seen[headerPath] {
			seen[headerPath] = true
			resolved = append(resolved, headerPath)
		}
		transitive, err := GetIncludedDependencies(bc, config, headerPath, headerPath)
		if err != nil {
			return nil, err
		}
		for _, h := range transitive {
			if !seen[h] {
				seen[h] = true
				resolved = append(resolved, h)
			}
		}
	}

	bc.IncludedDeps.Put(cacheKey, resolved)
	return resolved, nil
}

// resolveInclude probes each directory in config.IncludeDirs, in order, for
// the first one containing raw. A stripped "-I" prefix is expected on each
// entry, per spec.md §4.4 step 3.
func resolveInclude(config *BuildConfig, raw string) (string, bool) {
	for _, incFlag := range config.IncludeDirs {
		dir := strings.TrimPrefix(incFlag, "-I")
		candidate := filepath.Join(dir, raw)
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
