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

// defaultReadLimit bounds ReadEntireFile when a BuildConfig doesn't specify
// one explicitly (spec.md §9 Design Notes: "keep the limit as an optional
// guard").
const defaultReadLimit = 64 << 20 // 64 MiB

// BuildConfig is immutable after construction (spec.md §3): it describes one
// architecture's toolchain and output layout. Construct it with HostConfig,
// AVRConfig or a literal and do not mutate it afterward — the Cache layer and the
// Compile/Archive/Link driver assume a config's fields are stable for the
// life of a build.
type BuildConfig struct {
	// BuildDir is the build output root (spec.md §6 filesystem layout).
	BuildDir string
	// Arch is an architecture tag, e.g. "avr" or "host".
	Arch string

	// CC, LD, AR are argv prefixes for the compiler, linker, and archiver.
	CC []string
	LD []string
	AR []string

	// CFlags, LDFlags are extra flags appended after the '-c -o <out> <in>'
	// / '-o <out>' positional arguments (spec.md §6 toolchain contract).
	CFlags  []string
	LDFlags []string

	// IncludeDirs is the include search path, each entry already prefixed
	// with "-I" (spec.md §3 BuildConfig).
	IncludeDirs []string

	// ObjExt, LibExt, ExecExt are the filename extensions for objects,
	// static libraries, and executables on the current platform.
	ObjExt  string
	LibExt  string
	ExecExt string

	// MaxFileBytes bounds ReadEntireFile; 0 means defaultReadLimit.
	MaxFileBytes int64
}

// ReadLimit returns MaxFileBytes, or defaultReadLimit if unset.
func (c *BuildConfig) ReadLimit() int64 {
	if c.MaxFileBytes > 0 {
		return c.MaxFileBytes
	}
	return defaultReadLimit
}

// HostConfig returns a BuildConfig for the host architecture using a plain
// Unix toolchain convention (no extensions on objects/archives/executables
// beyond ".o"/".a").
func HostConfig(buildDir string, includeDirs []string) *BuildConfig {
	return &BuildConfig{
		BuildDir:    buildDir,
		Arch:        "host",
		CC:          []string{"cc"},
		LD:          []string{"cc"},
		AR:          []string{"ar"},
		IncludeDirs: includeDirs,
		ObjExt:      ".o",
		LibExt:      ".a",
		ExecExt:     "",
	}
}

// AVRConfig returns a BuildConfig for the AVR ATmega2560 target, using
// avr-gcc/avr-ar argv prefixes and the MCU flags GCC-compatible toolchains
// expect (spec.md §6 toolchain contract).
func AVRConfig(buildDir string, includeDirs []string) *BuildConfig {
	mcuFlags := []string{"-mmcu=atmega2560"}
	return &BuildConfig{
		BuildDir:    buildDir,
		Arch:        "avr",
		CC:          append([]string{"avr-gcc"}, mcuFlags...),
		LD:          append([]string{"avr-gcc"}, mcuFlags...),
		AR:          []string{"avr-ar"},
		IncludeDirs: includeDirs,
		ObjExt:      ".o",
		LibExt:      ".a",
		ExecExt:     ".elf",
	}
}
