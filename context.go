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

// BuildContext bundles the three process-wide caches from spec.md §3 as an
// explicit value instead of package-level globals (Design Notes §9). Every
// operation that would otherwise touch global cache state takes a
// *BuildContext.
type BuildContext struct {
	// DirExists is the dir_exists cache: directory paths known to have
	// been created during this run.
	DirExists *Cache[string, bool]
	// Mtime is the mtime cache: file path -> last-modification time, in
	// Unix nanoseconds.
	Mtime *Cache[string, int64]
	// IncludedDeps is the included_deps cache: a cache key (a raw include
	// form or a concrete source path) -> its transitive resolved header
	// list, in discovery order.
	IncludedDeps *Cache[string, []string]
}

// NewBuildContext returns a BuildContext with all three caches freshly
// initialized.
func NewBuildContext() *BuildContext {
	return &BuildContext{
		DirExists:    NewCache[string, bool](),
		Mtime:        NewCache[string, int64](),
		IncludedDeps: NewCache[string, []string](),
	}
}

// Reset clears all three caches. The clean operation calls this because the
// build directory it just removed can no longer be trusted by any memoized
// entry.
func (bc *BuildContext) Reset() {
	logStats(bc)
	bc.DirExists.ClearAll()
	bc.Mtime.ClearAll()
	bc.IncludedDeps.ClearAll()
}

// Deps is a dependency bundle: either a single path (a leaf) or a nested
// list of bundles. RebuildDecider and the Compile/Archive/Link driver accept
// this in place of an overloaded parameter (Design Notes §9), since Go has
// no parameter overloading.
type Deps struct {
	leaf     string
	isLeaf   bool
	children []Deps
}

// Leaf wraps a single dependency path.
func Leaf(path string) Deps {
	return Deps{leaf: path, isLeaf: true}
}

// Paths wraps a flat list of dependency paths.
func Paths(paths []string) Deps {
	children := make([]Deps, len(paths))
	for i, p := range paths {
		children[i] = Leaf(p)
	}
	return Deps{children: children}
}

// List nests an arbitrary number of bundles under one bundle.
func List(bundles ...Deps) Deps {
	return Deps{children: bundles}
}

// Flatten returns the dependency paths in depth-first discovery order.
func (d Deps) Flatten() []string {
	if d.isLeaf {
		return []string{d.leaf}
	}
	var out []string
	for _, c := range d.children {
		out = append(out, c.Flatten()...)
	}
	return out
}
