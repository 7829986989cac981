// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Buffer is a handle slot for a linear GPU allocation of count
// elements of stride bytes. The zero value is an empty slot; a
// [Manager] fills it on creation and clears it on release. Callers
// never populate the fields themselves and must route release through
// the Manager that created the handle.
//
// A live handle's (count, stride) always matches its last successful
// allocation request.
type Buffer struct {
	id     BufferID
	name   string
	count  int
	stride int
	kind   BufferKind
}

// Valid reports whether the slot currently holds a live allocation.
func (b *Buffer) Valid() bool { return b != nil && b.id != InvalidID }

// ID returns the device handle, or InvalidID for an empty slot.
func (b *Buffer) ID() BufferID { return b.id }

// Name returns the display name given at creation.
func (b *Buffer) Name() string { return b.name }

// Count returns the element count.
func (b *Buffer) Count() int { return b.count }

// Stride returns the element stride in bytes.
func (b *Buffer) Stride() int { return b.stride }

// Kind returns the kind the buffer was created for.
func (b *Buffer) Kind() BufferKind { return b.kind }

// Size returns the allocation size in bytes (count * stride).
func (b *Buffer) Size() uint64 { return uint64(b.count) * uint64(b.stride) }

// clear resets the slot to its zero value.
func (b *Buffer) clear() { *b = Buffer{} }

// Volume is a handle slot for a cubic 3D texture allocation. The zero
// value is an empty slot; a [Manager] fills it on creation and clears
// it on release. Callers never populate the fields themselves and must
// route release through the Manager that created the handle.
//
// Every volume is 3-dimensional, read/write enabled for compute
// access, clamped at boundaries, single-sample, and lives until
// explicitly released.
//
// A live handle's (cells, format) always matches its last successful
// allocation request.
type Volume struct {
	id     TextureID
	name   string
	cells  int
	format TextureFormat
}

// Valid reports whether the slot currently holds a live allocation.
func (v *Volume) Valid() bool { return v != nil && v.id != InvalidID }

// ID returns the device handle, or InvalidID for an empty slot.
func (v *Volume) ID() TextureID { return v.id }

// Name returns the display name given at creation.
func (v *Volume) Name() string { return v.name }

// Cells returns the edge length; the volume is Cells^3 texels.
func (v *Volume) Cells() int { return v.cells }

// Format returns the precise texel format.
func (v *Volume) Format() TextureFormat { return v.format }

// Size returns the allocation size in bytes (Cells^3 * texel size).
func (v *Volume) Size() uint64 {
	c := uint64(v.cells)
	return c * c * c * uint64(v.format.BytesPerCell())
}

// clear resets the slot to its zero value.
func (v *Volume) clear() { *v = Volume{} }
