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

// Command cbuild is a thin front end over the cbuild library: it turns a
// command line into a BuildConfig plus a subcommand invocation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/cbuild-tools/cbuild"
)

var (
	archFlag      = flag.String("arch", "host", "target architecture: host or avr")
	buildDirFlag  = flag.String("builddir", "build", "build output directory")
	includeDirs   = flag.String("I", "", "comma-separated include search path")
	cflagsFlag    = flag.String("cflags", "", "space-separated extra compiler flags")
	ldflagsFlag   = flag.String("ldflags", "", "space-separated extra linker flags")
)

// parseCommandLine splits argv into VAR=value assignments and bare
// arguments, the same split kati's ParseCommandLine makes between variable
// assignments and build targets.
func parseCommandLine(argv []string) (assignments map[string]string, rest []string) {
	assignments = make(map[string]string)
	for _, arg := range argv {
		if i := strings.IndexByte(arg, '='); i >= 0 {
			assignments[arg[:i]] = arg[i+1:]
			continue
		}
		rest = append(rest, arg)
	}
	return assignments, rest
}

// applyAssignments maps recognized VAR=value pairs onto config, fixing the
// upstream CLI bug (spec.md §9 Open Questions) where CXX=, LDFLAGS=,
// INCLUDE_DIRS=, and EXEC_EXTENSION= all wrote into config.cflags: LDFLAGS=,
// INCLUDE_DIRS= and EXEC_EXTENSION= each reach their own field here. CXX= is
// not recognized (BuildConfig has no C++ compiler field) and is ignored with
// a warning, like any other unrecognized variable.
func applyAssignments(config *cbuild.BuildConfig, assignments map[string]string) {
	for k, v := range assignments {
		switch k {
		case "CC":
			config.CC = strings.Fields(v)
		case "LD":
			config.LD = strings.Fields(v)
		case "AR":
			config.AR = strings.Fields(v)
		case "CFLAGS":
			config.CFlags = append(config.CFlags, strings.Fields(v)...)
		case "LDFLAGS":
			config.LDFlags = append(config.LDFlags, strings.Fields(v)...)
		case "INCLUDE_DIRS":
			for _, dir := range strings.Split(v, ",") {
				if dir != "" {
					config.IncludeDirs = append(config.IncludeDirs, "-I"+dir)
				}
			}
		case "EXEC_EXTENSION":
			config.ExecExt = v
		default:
			glog.Warningf("ignoring unrecognized variable %s=%s", k, v)
		}
	}
}

func newConfig() *cbuild.BuildConfig {
	var config *cbuild.BuildConfig
	switch *archFlag {
	case "avr":
		config = cbuild.AVRConfig(*buildDirFlag, nil)
	default:
		config = cbuild.HostConfig(*buildDirFlag, nil)
	}
	if *includeDirs != "" {
		for _, dir := range strings.Split(*includeDirs, ",") {
			if dir != "" {
				config.IncludeDirs = append(config.IncludeDirs, "-I"+dir)
			}
		}
	}
	if *cflagsFlag != "" {
		config.CFlags = append(config.CFlags, strings.Fields(*cflagsFlag)...)
	}
	if *ldflagsFlag != "" {
		config.LDFlags = append(config.LDFlags, strings.Fields(*ldflagsFlag)...)
	}
	return config
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: cbuild [VAR=value ...] <command> [args...]

commands:
  lib <name> <src.c...>       build a static library from C sources
  exe <name> <obj...>         link an executable from objects/libraries
  test <aggregate.c> <test.c...>  generate fixture test runners
  clean                       remove the build directory

flags:
`)
	flag.PrintDefaults()
}

func run() error {
	flag.Usage = usage
	flag.Parse()

	assignments, rest := parseCommandLine(flag.Args())
	if len(rest) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	config := newConfig()
	applyAssignments(config, assignments)
	bc := cbuild.NewBuildContext()

	cmd, args := rest[0], rest[1:]
	switch cmd {
	case "lib":
		if len(args) < 1 {
			return fmt.Errorf("lib requires a library name")
		}
		archive, err := cbuild.BuildLibrary(bc, config, args[0], args[1:], nil)
		if err != nil {
			return err
		}
		fmt.Println(archive)
	case "exe":
		if len(args) < 1 {
			return fmt.Errorf("exe requires an executable name")
		}
		exe, err := cbuild.BuildExecutable(bc, config, args[0], args[1:], nil)
		if err != nil {
			return err
		}
		fmt.Println(exe)
	case "test":
		if len(args) < 1 {
			return fmt.Errorf("test requires an aggregate runner path")
		}
		if err := cbuild.GenerateTestRunners(bc, config, args[1:], args[0]); err != nil {
			return err
		}
	case "clean":
		if err := cbuild.DeleteDirectory(config.BuildDir); err != nil {
			return err
		}
		bc.Reset()
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}
