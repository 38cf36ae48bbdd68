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

	"github.com/golang/glog"
)

// mtime returns target's modification time in Unix nanoseconds, consulting
// and populating bc.Mtime. Grounded on worker.go's getTimestamp, generalized
// from a -2 sentinel int64 to a (value, ok) pair.
func mtime(bc *BuildContext, path string) (int64, bool) {
	if ts, ok := bc.Mtime.Get(path); ok {
		return ts, true
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	ts := fi.ModTime().UnixNano()
	bc.Mtime.Put(path, ts)
	return ts, true
}

// NeedsRebuild reports whether target is missing, or any dependency in deps
// has a strictly newer mtime than target (spec.md §4.5). Equal mtimes are
// considered up to date. A positive decision invalidates bc.Mtime[target]
// so the build step that is about to recreate it stats the fresh file.
func NeedsRebuild(bc *BuildContext, target string, deps Deps) bool {
	targetTs, ok := mtime(bc, target)
	if !ok {
		glog.V(1).Infof("rebuild %s: missing", target)
		bc.Mtime.ClearEntry(target)
		return true
	}
	for _, dep := range deps.Flatten() {
		depTs, ok := mtime(bc, dep)
		if !ok {
			// A dependency that doesn't exist yet doesn't force a
			// rebuild decision here; the caller is responsible for
			// having built it first (the driver always builds deps
			// before checking the target that needs them).
			continue
		}
		if depTs > targetTs {
			glog.V(1).Infof("rebuild %s: %s is newer", target, dep)
			bc.Mtime.ClearEntry(target)
			return true
		}
	}
	return false
}
