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

import "github.com/golang/glog"

// logStats reports a one-line cache summary at verbose level 1, the same
// diagnostic granularity kati's depBuilder.reportStats uses for its rule
// counters.
func logStats(bc *BuildContext) {
	if !glog.V(1) {
		return
	}
	dp, dh, dm, _ := bc.DirExists.Stats()
	mp, mh, mm, _ := bc.Mtime.Stats()
	ip, ih, im, _ := bc.IncludedDeps.Stats()
	glog.V(1).Infof("cache stats: dirs(puts=%d hits=%d misses=%d) mtime(puts=%d hits=%d misses=%d) deps(puts=%d hits=%d misses=%d)",
		dp, dh, dm, mp, mh, mm, ip, ih, im)
}
