// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Material is a named instance parameter block: a set of resource
// bindings and keywords that travels with one logical "surface" or
// effect configuration rather than with a program or the session. It
// implements [MaterialState].
//
// Bindings written into a material affect only work submitted with
// that material, via [Program.DispatchWith]. Two materials over the
// same program are fully independent.
//
// Like [Globals], a material stores handle references rather than
// snapshots, performs no device work, and never checks handle
// liveness. Namespaces for constant buffers, read/write buffers and
// textures are separate.
type Material struct {
	name      string
	constants map[Slot]*Buffer
	buffers   map[Slot]*Buffer
	textures  map[Slot]*Volume
	keywords  map[string]bool
}

// NewMaterial creates an empty material with a display name.
func NewMaterial(name string) *Material {
	return &Material{
		name:      name,
		constants: make(map[Slot]*Buffer),
		buffers:   make(map[Slot]*Buffer),
		textures:  make(map[Slot]*Volume),
		keywords:  make(map[string]bool),
	}
}

// Name returns the display name given at creation.
func (m *Material) Name() string { return m.name }

// SetConstantBuffer writes b as the parameter block at slot.
// A later call for the same slot supersedes the earlier one.
func (m *Material) SetConstantBuffer(slot Slot, b *Buffer) {
	m.constants[slot] = b
}

// SetBuffer writes b as the read/write resource at slot.
// A later call for the same slot supersedes the earlier one.
func (m *Material) SetBuffer(slot Slot, b *Buffer) {
	m.buffers[slot] = b
}

// SetTexture writes v as the read/write image resource at slot.
// A later call for the same slot supersedes the earlier one.
func (m *Material) SetTexture(slot Slot, v *Volume) {
	m.textures[slot] = v
}

// SetKeyword toggles an instance-local variant selection flag.
// The last write wins.
func (m *Material) SetKeyword(name string, enabled bool) {
	if enabled {
		m.keywords[name] = true
	} else {
		delete(m.keywords, name)
	}
}

// ConstantBuffer returns the parameter block at slot, or nil.
func (m *Material) ConstantBuffer(slot Slot) *Buffer {
	return m.constants[slot]
}

// ComputeBuffer returns the read/write resource at slot, or nil.
func (m *Material) ComputeBuffer(slot Slot) *Buffer {
	return m.buffers[slot]
}

// Texture returns the image resource at slot, or nil.
func (m *Material) Texture(slot Slot) *Volume {
	return m.textures[slot]
}

// Keyword reports whether an instance-local flag is currently enabled.
func (m *Material) Keyword(name string) bool {
	return m.keywords[name]
}

// Clear removes every binding and keyword from the material.
func (m *Material) Clear() {
	clear(m.constants)
	clear(m.buffers)
	clear(m.textures)
	clear(m.keywords)
}
