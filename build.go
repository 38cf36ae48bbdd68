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

	"github.com/fatih/color"
	"github.com/golang/glog"
)

var (
	colorCmd    = color.New(color.FgYellow)
	colorSkip   = color.New(color.FgGreen)
	colorFail   = color.New(color.FgRed)
	statusWriter = os.Stdout
)

// printStatus prints a one-line build status (e.g. "CC src.c") before
// dispatching a toolchain invocation, colorized per fatih/color's own
// terminal detection (disabled automatically when stdout isn't a tty, so
// redirected/CI logs stay plain text) — adapted from
// jesseduffield-lazydocker's use of fatih/color for live state coloring,
// here applied to a build log instead of a TUI panel.
func printStatus(verb, target string, argv []string) {
	colorCmd.Fprintf(statusWriter, "%s %s\n", verb, target)
	glog.V(1).Infof("%s", NewCmdLine(argv...).String())
}

// printUpToDate reports a skipped (already up to date) step, in green, only
// when diagnostic verbosity is on — kept out of the default build log the
// same way kati's own "alreadyDone"/"upToDate" counters (exec.go) are
// reportStats-only, not printed on every invocation.
func printUpToDate(path string) {
	if glog.V(1) {
		colorSkip.Fprintf(statusWriter, "up to date: %s\n", path)
	}
}

func objectPath(config *BuildConfig, src string) string {
	return filepath.Join(config.BuildDir, "obj", ShortenPath(src)) + config.ObjExt
}

func libraryPath(config *BuildConfig, libName string) string {
	return filepath.Join(config.BuildDir, "lib", ShortenPath(libName)) + config.LibExt
}

func executablePath(config *BuildConfig, exeName string) string {
	return filepath.Join(config.BuildDir, "bin", ShortenPath(exeName)) + config.ExecExt
}

// BuildSource compiles src into an object file, returning its path.
// Spec.md §4.6 build_source: derive the object path, scan src's includes,
// and recompile if the object is missing or any of {src, extraDeps,
// includedHeaders} is newer.
func BuildSource(bc *BuildContext, config *BuildConfig, src string, extraDeps []string) (string, error) {
	if !strings.HasSuffix(src, ".c") {
		return "", &NotImplementedError{Path: src}
	}
	obj := objectPath(config, src)

	headers, err := GetIncludedDependencies(bc, config, src, src)
	if err != nil {
		return "", err
	}

	deps := List(Leaf(src), Paths(extraDeps), Paths(headers))
	if NeedsRebuild(bc, obj, deps) {
		if err := CreateParentDirectory(bc, obj); err != nil {
			return "", err
		}
		argv := NewCmdLine(config.CC...).Append("-c", "-o", obj, src).Append(config.CFlags...).Append(config.IncludeDirs...).Argv()
		printStatus("CC", src, argv)
		if err := ExecuteSync(argv); err != nil {
			colorFail.Fprintf(statusWriter, "%v\n", err)
			return "", err
		}
	} else {
		printUpToDate(obj)
	}
	return obj, nil
}

// BuildLibrary archives srcs into a static library named libName, returning
// its path. Spec.md §4.6 build_library's two-phase rebuild check: first
// compare the archive against {srcs, extraDeps} (cheap, no header scan),
// then scan each source's headers — in that order, so a fresh archive mtime
// never has a chance to suppress the header-driven half of the decision
// within the same invocation.
func BuildLibrary(bc *BuildContext, config *BuildConfig, libName string, srcs []string, extraDeps []string) (string, error) {
	archive := libraryPath(config, libName)

	rebuild := NeedsRebuild(bc, archive, List(Paths(srcs), Paths(extraDeps)))
	if !rebuild {
		for _, src := range srcs {
			headers, err := GetIncludedDependencies(bc, config, src, src)
			if err != nil {
				return "", err
			}
			if NeedsRebuild(bc, archive, Paths(headers)) {
				rebuild = true
				break
			}
		}
	}
	if !rebuild {
		printUpToDate(archive)
		return archive, nil
	}

	var objs []string
	for _, src := range srcs {
		obj, err := BuildSource(bc, config, src, extraDeps)
		if err != nil {
			return "", err
		}
		objs = append(objs, obj)
	}
	if err := CreateParentDirectory(bc, archive); err != nil {
		return "", err
	}
	argv := NewCmdLine(config.AR...).Append("-rcs", archive).Append(objs...).Argv()
	printStatus("AR", libName, argv)
	if err := ExecuteSync(argv); err != nil {
		colorFail.Fprintf(statusWriter, "%v\n", err)
		return "", err
	}
	return archive, nil
}

// BuildExecutable links objs into an executable named exeName, returning its
// path.
func BuildExecutable(bc *BuildContext, config *BuildConfig, exeName string, objs []string, extraDeps []string) (string, error) {
	exe := executablePath(config, exeName)

	if NeedsRebuild(bc, exe, List(Paths(objs), Paths(extraDeps))) {
		if err := CreateParentDirectory(bc, exe); err != nil {
			return "", err
		}
		argv := NewCmdLine(config.LD...).Append("-o", exe).Append(config.LDFlags...).Append(objs...).Argv()
		printStatus("LD", exeName, argv)
		if err := ExecuteSync(argv); err != nil {
			colorFail.Fprintf(statusWriter, "%v\n", err)
			return "", err
		}
	} else {
		printUpToDate(exe)
	}
	return exe, nil
}
