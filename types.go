// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each Device implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// ComputePipelineID is an opaque handle to a compute pipeline.
type ComputePipelineID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// PipelineLayoutID is an opaque handle to a pipeline layout.
type PipelineLayoutID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageMapRead indicates the buffer can be mapped for reading.
	BufferUsageMapRead BufferUsage = 1 << 0

	// BufferUsageMapWrite indicates the buffer can be mapped for writing.
	BufferUsageMapWrite BufferUsage = 1 << 1

	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageUniform indicates the buffer can be bound as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 4

	// BufferUsageStorage indicates the buffer can be bound as a storage buffer.
	BufferUsageStorage BufferUsage = 1 << 5

	// BufferUsageIndirect indicates the buffer can drive indirect dispatch.
	BufferUsageIndirect BufferUsage = 1 << 6
)

// Contains reports whether all bits of other are set in u.
func (u BufferUsage) Contains(other BufferUsage) bool {
	return u&other == other
}

// TextureUsage is a bitmask specifying how a texture will be used.
type TextureUsage uint32

// Texture usage flags.
const (
	// TextureUsageCopySrc indicates the texture can be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << 0

	// TextureUsageCopyDst indicates the texture can be used as a copy destination.
	TextureUsageCopyDst TextureUsage = 1 << 1

	// TextureUsageTextureBinding indicates the texture can be bound as a sampled texture.
	TextureUsageTextureBinding TextureUsage = 1 << 2

	// TextureUsageStorageBinding indicates the texture can be bound as a
	// read/write storage texture from compute shaders.
	TextureUsageStorageBinding TextureUsage = 1 << 3
)

// Contains reports whether all bits of other are set in u.
func (u TextureUsage) Contains(other TextureUsage) bool {
	return u&other == other
}

// TextureFormat specifies the precise channel layout of texture data.
// This is the exact-format vocabulary; for the coarser fixed-function
// vocabulary see [VolumeKind].
type TextureFormat uint32

// Texture formats. The set is restricted to formats that WebGPU-class
// backends accept for 3D storage textures.
const (
	// TextureFormatUndefined is the zero value, representing no format.
	TextureFormatUndefined TextureFormat = iota

	// TextureFormatR8Unorm is 8-bit red channel only, normalized unsigned integer.
	TextureFormatR8Unorm

	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm

	// TextureFormatRGBA8Snorm is 8-bit RGBA, normalized signed integer.
	TextureFormatRGBA8Snorm

	// TextureFormatR16Float is 16-bit red channel only, floating point.
	TextureFormatR16Float

	// TextureFormatRG16Float is 16-bit RG, floating point.
	TextureFormatRG16Float

	// TextureFormatRGBA16Float is 16-bit RGBA, floating point.
	TextureFormatRGBA16Float

	// TextureFormatR32Float is 32-bit red channel only, floating point.
	TextureFormatR32Float

	// TextureFormatRG32Float is 32-bit RG, floating point.
	TextureFormatRG32Float

	// TextureFormatRGBA32Float is 32-bit RGBA, floating point.
	TextureFormatRGBA32Float

	// TextureFormatR32Uint is 32-bit red channel only, unsigned integer.
	TextureFormatR32Uint
)

// String returns a human-readable format name.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatUndefined:
		return "Undefined"
	case TextureFormatR8Unorm:
		return "R8Unorm"
	case TextureFormatRGBA8Unorm:
		return "RGBA8Unorm"
	case TextureFormatRGBA8Snorm:
		return "RGBA8Snorm"
	case TextureFormatR16Float:
		return "R16Float"
	case TextureFormatRG16Float:
		return "RG16Float"
	case TextureFormatRGBA16Float:
		return "RGBA16Float"
	case TextureFormatR32Float:
		return "R32Float"
	case TextureFormatRG32Float:
		return "RG32Float"
	case TextureFormatRGBA32Float:
		return "RGBA32Float"
	case TextureFormatR32Uint:
		return "R32Uint"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// BytesPerCell returns the storage size of one texel in bytes,
// or 0 for an undefined or unknown format.
func (f TextureFormat) BytesPerCell() int {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatR16Float:
		return 2
	case TextureFormatRGBA8Unorm, TextureFormatRGBA8Snorm,
		TextureFormatRG16Float, TextureFormatR32Float, TextureFormatR32Uint:
		return 4
	case TextureFormatRGBA16Float, TextureFormatRG32Float:
		return 8
	case TextureFormatRGBA32Float:
		return 16
	default:
		return 0
	}
}

// valid reports whether f is a known, defined format.
func (f TextureFormat) valid() bool {
	return f > TextureFormatUndefined && f <= TextureFormatR32Uint
}

// VolumeKind is the fixed-function volume format vocabulary: a small
// set of named kinds covering the common compute cases, each resolving
// to one precise [TextureFormat]. Use [Manager.CreateVolume] with a
// kind when the exact channel layout does not matter, and
// [Manager.CreateVolumeFormat] when it does.
type VolumeKind uint32

// Volume kinds.
const (
	// VolumeColor is an 8-bit RGBA color volume.
	VolumeColor VolumeKind = iota + 1

	// VolumeByte is a single-channel 8-bit volume (masks, occupancy).
	VolumeByte

	// VolumeHalf is a single-channel 16-bit float volume.
	VolumeHalf

	// VolumeHalf2 is a two-channel 16-bit float volume.
	VolumeHalf2

	// VolumeHalf4 is a four-channel 16-bit float volume.
	VolumeHalf4

	// VolumeFloat is a single-channel 32-bit float volume
	// (scalar fields, distance fields, densities).
	VolumeFloat

	// VolumeFloat2 is a two-channel 32-bit float volume.
	VolumeFloat2

	// VolumeFloat4 is a four-channel 32-bit float volume
	// (vector fields, HDR color).
	VolumeFloat4
)

// String returns a human-readable kind name.
func (k VolumeKind) String() string {
	switch k {
	case VolumeColor:
		return "Color"
	case VolumeByte:
		return "Byte"
	case VolumeHalf:
		return "Half"
	case VolumeHalf2:
		return "Half2"
	case VolumeHalf4:
		return "Half4"
	case VolumeFloat:
		return "Float"
	case VolumeFloat2:
		return "Float2"
	case VolumeFloat4:
		return "Float4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Format resolves the kind to its precise texture format.
// Returns [TextureFormatUndefined] for an unknown kind.
func (k VolumeKind) Format() TextureFormat {
	switch k {
	case VolumeColor:
		return TextureFormatRGBA8Unorm
	case VolumeByte:
		return TextureFormatR8Unorm
	case VolumeHalf:
		return TextureFormatR16Float
	case VolumeHalf2:
		return TextureFormatRG16Float
	case VolumeHalf4:
		return TextureFormatRGBA16Float
	case VolumeFloat:
		return TextureFormatR32Float
	case VolumeFloat2:
		return TextureFormatRG32Float
	case VolumeFloat4:
		return TextureFormatRGBA32Float
	default:
		return TextureFormatUndefined
	}
}

// BufferKind selects the binding role a buffer is created for.
// The kind determines usage flags at allocation time; it is not part
// of the reuse check (see [Manager.CreateBuffer]).
type BufferKind uint32

// Buffer kinds.
const (
	// BufferStructured is an array of fixed-stride elements bound as a
	// read/write storage buffer. The default kind.
	BufferStructured BufferKind = iota

	// BufferRaw is a byte-addressed storage buffer.
	BufferRaw

	// BufferAppend is a storage buffer written through an append pointer
	// maintained by the shader.
	BufferAppend

	// BufferCounter is a storage buffer with an atomic element counter.
	BufferCounter

	// BufferConstant is a fixed-layout parameter block bound as a
	// uniform buffer.
	BufferConstant

	// BufferIndirect holds dispatch arguments consumed by indirect
	// dispatch.
	BufferIndirect

	// BufferStaging is a CPU-writable upload buffer used as a copy
	// source. Transient; see [PushConstantData].
	BufferStaging
)

// String returns a human-readable kind name.
func (k BufferKind) String() string {
	switch k {
	case BufferStructured:
		return "Structured"
	case BufferRaw:
		return "Raw"
	case BufferAppend:
		return "Append"
	case BufferCounter:
		return "Counter"
	case BufferConstant:
		return "Constant"
	case BufferIndirect:
		return "Indirect"
	case BufferStaging:
		return "Staging"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// usage maps the kind to the usage flags requested from the device.
// Every non-staging kind is copyable in both directions so transfer
// helpers work uniformly.
func (k BufferKind) usage() BufferUsage {
	switch k {
	case BufferConstant:
		return BufferUsageUniform | BufferUsageCopyDst
	case BufferIndirect:
		return BufferUsageIndirect | BufferUsageStorage | BufferUsageCopyDst
	case BufferStaging:
		return BufferUsageMapWrite | BufferUsageCopySrc
	default:
		// Structured, Raw, Append, Counter.
		return BufferUsageStorage | BufferUsageCopySrc | BufferUsageCopyDst
	}
}

// valid reports whether k is a known kind.
func (k BufferKind) valid() bool {
	return k <= BufferStaging
}

// BindingType specifies the type of a shader binding slot.
type BindingType uint32

// Binding types.
const (
	// BindingUniformBuffer is a fixed-layout uniform buffer binding.
	BindingUniformBuffer BindingType = iota + 1

	// BindingStorageBuffer is a read/write storage buffer binding.
	BindingStorageBuffer

	// BindingReadOnlyStorageBuffer is a read-only storage buffer binding.
	BindingReadOnlyStorageBuffer

	// BindingStorageTexture is a read/write 3D storage texture binding.
	BindingStorageTexture
)

// String returns a human-readable binding type name.
func (t BindingType) String() string {
	switch t {
	case BindingUniformBuffer:
		return "UniformBuffer"
	case BindingStorageBuffer:
		return "StorageBuffer"
	case BindingReadOnlyStorageBuffer:
		return "ReadOnlyStorageBuffer"
	case BindingStorageTexture:
		return "StorageTexture"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// BufferDesc describes a buffer allocation requested from a [Device].
type BufferDesc struct {
	// Label is a debug label attached to the backend resource.
	Label string

	// Size is the allocation size in bytes. Must be a multiple of 4.
	Size uint64

	// Usage is the set of permitted uses.
	Usage BufferUsage
}

// TextureDesc describes a 3D texture allocation requested from a [Device].
// Volumes are always cubic: Cells is the edge length in texels.
type TextureDesc struct {
	// Label is a debug label attached to the backend resource.
	Label string

	// Cells is the edge length; the texture is Cells^3 texels.
	Cells int

	// Format is the texel format.
	Format TextureFormat

	// Usage is the set of permitted uses.
	Usage TextureUsage
}

// ComputePipelineDesc describes a compute pipeline.
type ComputePipelineDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout is the pipeline layout.
	Layout PipelineLayoutID

	// ShaderModule contains the compute shader.
	ShaderModule ShaderModuleID

	// EntryPoint is the name of the shader entry point function.
	EntryPoint string
}

// BindGroupLayoutDesc describes a bind group layout.
type BindGroupLayoutDesc struct {
	// Label is an optional debug label.
	Label string

	// Entries defines the bindings in this layout.
	Entries []BindGroupLayoutEntry
}

// BindGroupLayoutEntry describes a single binding in a bind group layout.
type BindGroupLayoutEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Type is the type of resource bound at this index.
	Type BindingType

	// Format is the texel format for storage texture bindings.
	// Ignored for buffer bindings.
	Format TextureFormat

	// MinBindingSize is the minimum buffer size for buffer bindings.
	// Set to 0 for non-buffer bindings.
	MinBindingSize uint64
}

// BindGroupEntry describes a single binding in a bind group.
type BindGroupEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Buffer is the buffer to bind (for buffer bindings).
	Buffer BufferID

	// Offset is the offset into the buffer.
	Offset uint64

	// Size is the size of the buffer range to bind.
	// Use 0 to bind the entire buffer from offset.
	Size uint64

	// Texture is the texture to bind (for texture bindings).
	Texture TextureID
}
