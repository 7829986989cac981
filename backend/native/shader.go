// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/naga"
)

// Compiler compiles WGSL source to SPIR-V words with the pure Go naga
// compiler. It satisfies compute.Compiler, so it plugs straight into
// compute.WithCompiler. Results are cached by source hash; recompiling
// the same source returns the cached words, which callers must not
// modify.
func Compiler(source, label string) ([]uint32, error) {
	words, err := compilerCache.getOrCompile(source)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}
	return words, nil
}

// CompilerStats returns cache hit and miss counts for the shared
// shader compilation cache.
func CompilerStats() (hits, misses uint64) {
	return compilerCache.hits.Load(), compilerCache.misses.Load()
}

var compilerCache = &shaderCache{
	entries: make(map[uint64][]uint32),
}

// shaderCache caches compiled SPIR-V by FNV-1a hash of the WGSL
// source. Compilation is slow enough (tens of milliseconds for a
// typical kernel) that callers re-deriving programs per frame benefit
// from the cache; collisions across distinct sources are ignored as
// vanishingly unlikely.
type shaderCache struct {
	mu      sync.RWMutex
	entries map[uint64][]uint32
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func (c *shaderCache) getOrCompile(source string) ([]uint32, error) {
	key := hashSource(source)

	// Fast path: read lock to check existence.
	c.mu.RLock()
	words, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return words, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check after acquiring write lock.
	if words, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return words, nil
	}
	c.misses.Add(1)

	words, err := compileWGSL(source)
	if err != nil {
		return nil, err
	}
	c.entries[key] = words
	return words, nil
}

// hashSource computes an FNV-1a hash of the shader source.
func hashSource(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// compileWGSL compiles WGSL source to SPIR-V uint32 words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
