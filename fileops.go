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
	"github.com/sergi/go-diff/diffmatchpatch"
)

// exists reports whether filename exists, matching kati's fileutil.go helper
// of the same shape and name.
func exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// ReadEntireFile reads path in full, failing with a *FileTooBigError if it
// exceeds limit bytes.
func ReadEntireFile(path string, limit int64) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > limit {
		return nil, &FileTooBigError{Path: path, Limit: limit, Size: fi.Size()}
	}
	return os.ReadFile(path)
}

// CreateParentDirectory creates every missing directory up to and including
// filepath.Dir(path), short-circuiting via bc.DirExists.
func CreateParentDirectory(bc *BuildContext, path string) error {
	return CreateDirectory(bc, filepath.Dir(path))
}

// CreateDirectory creates dir and all missing ancestors, idempotently.
// Per spec.md §3's dir_exists invariant, once dir is marked present every
// ancestor is implicitly present too, so a cache hit short-circuits the
// whole chain.
func CreateDirectory(bc *BuildContext, dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if bc.DirExists.Contains(dir) {
		return nil
	}
	err := os.MkdirAll(dir, 0o755)
	if err != nil && !os.IsExist(err) {
		return err
	}
	for d := dir; d != "." && d != string(filepath.Separator) && d != ""; d = filepath.Dir(d) {
		bc.DirExists.Put(d, true)
		if filepath.Dir(d) == d {
			break
		}
	}
	return nil
}

// WriteEntireFile creates any missing parent directories, then creates or
// truncates path and writes data.
func WriteEntireFile(bc *BuildContext, path string, data []byte) error {
	if err := CreateParentDirectory(bc, path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteEntireFileIfChanged writes data to path only if the existing content
// differs (a missing file counts as empty and absent), keeping the target's
// mtime stable across no-op regenerations. When glog's verbose diagnostics
// are enabled and the content did change, it logs a human-readable diff
// using go-diff, exactly as kati's own test harness (run_test.go) uses
// diffmatchpatch to explain a text mismatch.
func WriteEntireFileIfChanged(bc *BuildContext, path string, data []byte, limit int64) (changed bool, err error) {
	old, err := ReadEntireFile(path, limit)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if string(old) == string(data) {
		return false, nil
	}
	if glog.V(2) && old != nil {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(old), string(data), true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		glog.V(2).Infof("%s changed:\n%s", path, dmp.DiffPrettyText(diffs))
	}
	if err := WriteEntireFile(bc, path, data); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteDirectory recursively removes path, used by the clean target.
func DeleteDirectory(path string) error {
	return os.RemoveAll(path)
}

// ShortenPath normalizes p by repeatedly stripping a leading "./" and a
// trailing "/" (or, on backslash-separator platforms, "." + sep and a
// trailing sep), mirroring pathutil.go's filepathClean normalization style
// generalized from Makefile path cleanup to build-tree path mapping.
func ShortenPath(p string) string {
	sep := string(filepath.Separator)
	curdirPrefix := "." + sep
	for {
		changed := false
		if strings.HasPrefix(p, curdirPrefix) {
			p = p[len(curdirPrefix):]
			changed = true
		}
		if strings.HasSuffix(p, sep) {
			p = p[:len(p)-len(sep)]
			changed = true
		}
		if !changed {
			break
		}
	}
	return p
}
