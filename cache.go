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

import "sync"

// cacheStats mirrors kati's fsCacheT counters (dirs()/files()), generalized
// to any keyed memo: put/hit/miss/clear counts for verbose diagnostics.
type cacheStats struct {
	puts   int
	hits   int
	misses int
	clears int
}

// Cache is a generic keyed memo with hit/miss/clear accounting and
// insertion-order iteration, so Keys() reports entries in the order they
// were first inserted.
//
// Cache is safe for concurrent use, matching the locking precedent set by
// kati's fsCacheT and symtabT, even though every current caller in this
// module is single-threaded per the concurrency model in SPEC_FULL.md §5.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	m     map[K]V
	order []K
	stats cacheStats
}

// NewCache returns an empty Cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{m: make(map[K]V)}
}

// Get returns the value stored under key and records a hit or a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	if ok {
		c.stats.hits++
	} else {
		c.stats.misses++
	}
	return v, ok
}

// Put inserts or overwrites the value stored under key.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, present := c.m[key]; !present {
		c.order = append(c.order, key)
	}
	c.m[key] = value
	c.stats.puts++
}

// Contains reports whether key is present, without affecting hit/miss
// counters.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.m[key]
	return ok
}

// ClearEntry removes a single key, if present.
func (c *Cache[K, V]) ClearEntry(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, present := c.m[key]; !present {
		return
	}
	delete(c.m, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.stats.clears++
}

// ClearAll removes every entry.
func (c *Cache[K, V]) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.clears += len(c.m)
	c.m = make(map[K]V)
	c.order = nil
}

// Keys returns the keys currently present, in insertion order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]K, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports the number of entries currently present.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// Stats returns put/hit/miss/clear counters, mirroring kati's fsCacheT
// dirs()/files() diagnostic counters generalized to any cache instance.
func (c *Cache[K, V]) Stats() (puts, hits, misses, clears int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.puts, c.stats.hits, c.stats.misses, c.stats.clears
}
