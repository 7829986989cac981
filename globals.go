// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Globals is the pipeline-wide binding table: resources and keywords
// published here are visible to every subsequent dispatch of every
// program that consults the table. It implements [GlobalState].
//
// Constant buffers, read/write buffers and textures occupy separate
// namespaces, mirroring the distinct register classes shading
// languages give them; binding a constant buffer at a slot does not
// disturb a read/write buffer bound at the same slot.
//
// The table stores handle references, not snapshots: if a handle is
// recreated through its manager, dispatches observe the new
// allocation without rebinding. Globals performs no device work and
// never checks handle liveness.
type Globals struct {
	constants map[Slot]*Buffer
	buffers   map[Slot]*Buffer
	textures  map[Slot]*Volume
	keywords  map[string]bool
}

// NewGlobals creates an empty global binding table.
func NewGlobals() *Globals {
	return &Globals{
		constants: make(map[Slot]*Buffer),
		buffers:   make(map[Slot]*Buffer),
		textures:  make(map[Slot]*Volume),
		keywords:  make(map[string]bool),
	}
}

// SetConstantBuffer publishes b as the parameter block at slot.
// A later call for the same slot supersedes the earlier one.
func (g *Globals) SetConstantBuffer(slot Slot, b *Buffer) {
	g.constants[slot] = b
}

// SetBuffer publishes b as the read/write resource at slot.
// A later call for the same slot supersedes the earlier one.
func (g *Globals) SetBuffer(slot Slot, b *Buffer) {
	g.buffers[slot] = b
}

// SetTexture publishes v as the read/write image resource at slot.
// A later call for the same slot supersedes the earlier one.
func (g *Globals) SetTexture(slot Slot, v *Volume) {
	g.textures[slot] = v
}

// SetKeyword toggles a session-wide variant selection flag.
// The last write wins.
func (g *Globals) SetKeyword(name string, enabled bool) {
	if enabled {
		g.keywords[name] = true
	} else {
		delete(g.keywords, name)
	}
}

// ConstantBuffer returns the parameter block published at slot, or nil.
func (g *Globals) ConstantBuffer(slot Slot) *Buffer {
	return g.constants[slot]
}

// ComputeBuffer returns the read/write resource published at slot, or nil.
func (g *Globals) ComputeBuffer(slot Slot) *Buffer {
	return g.buffers[slot]
}

// Texture returns the image resource published at slot, or nil.
func (g *Globals) Texture(slot Slot) *Volume {
	return g.textures[slot]
}

// Keyword reports whether a session-wide flag is currently enabled.
func (g *Globals) Keyword(name string) bool {
	return g.keywords[name]
}

// Clear removes every published binding and keyword.
func (g *Globals) Clear() {
	clear(g.constants)
	clear(g.buffers)
	clear(g.textures)
	clear(g.keywords)
}
