// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/compute"
	"github.com/gogpu/gputypes"
)

// convertBufferUsage converts compute.BufferUsage to gputypes.BufferUsage.
func convertBufferUsage(usage compute.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if usage&compute.BufferUsageMapRead != 0 {
		result |= gputypes.BufferUsageMapRead
	}
	if usage&compute.BufferUsageMapWrite != 0 {
		result |= gputypes.BufferUsageMapWrite
	}
	if usage&compute.BufferUsageCopySrc != 0 {
		result |= gputypes.BufferUsageCopySrc
	}
	if usage&compute.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&compute.BufferUsageUniform != 0 {
		result |= gputypes.BufferUsageUniform
	}
	if usage&compute.BufferUsageStorage != 0 {
		result |= gputypes.BufferUsageStorage
	}
	if usage&compute.BufferUsageIndirect != 0 {
		result |= gputypes.BufferUsageIndirect
	}

	return result
}

// convertTextureUsage converts compute.TextureUsage to gputypes.TextureUsage.
func convertTextureUsage(usage compute.TextureUsage) gputypes.TextureUsage {
	var result gputypes.TextureUsage

	if usage&compute.TextureUsageCopySrc != 0 {
		result |= gputypes.TextureUsageCopySrc
	}
	if usage&compute.TextureUsageCopyDst != 0 {
		result |= gputypes.TextureUsageCopyDst
	}
	if usage&compute.TextureUsageTextureBinding != 0 {
		result |= gputypes.TextureUsageTextureBinding
	}
	if usage&compute.TextureUsageStorageBinding != 0 {
		result |= gputypes.TextureUsageStorageBinding
	}

	return result
}

// convertTextureFormat converts compute.TextureFormat to gputypes.TextureFormat.
func convertTextureFormat(format compute.TextureFormat) gputypes.TextureFormat {
	switch format {
	case compute.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case compute.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case compute.TextureFormatRGBA8Snorm:
		return gputypes.TextureFormatRGBA8Snorm
	case compute.TextureFormatR16Float:
		return gputypes.TextureFormatR16Float
	case compute.TextureFormatRG16Float:
		return gputypes.TextureFormatRG16Float
	case compute.TextureFormatRGBA16Float:
		return gputypes.TextureFormatRGBA16Float
	case compute.TextureFormatR32Float:
		return gputypes.TextureFormatR32Float
	case compute.TextureFormatRG32Float:
		return gputypes.TextureFormatRG32Float
	case compute.TextureFormatRGBA32Float:
		return gputypes.TextureFormatRGBA32Float
	case compute.TextureFormatR32Uint:
		return gputypes.TextureFormatR32Uint
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// convertLayoutEntry converts compute.BindGroupLayoutEntry to
// gputypes.BindGroupLayoutEntry. All bindings are compute-stage only.
func convertLayoutEntry(entry compute.BindGroupLayoutEntry) gputypes.BindGroupLayoutEntry {
	result := gputypes.BindGroupLayoutEntry{
		Binding:    entry.Binding,
		Visibility: gputypes.ShaderStageCompute,
	}

	switch entry.Type {
	case compute.BindingUniformBuffer:
		result.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: entry.MinBindingSize,
		}
	case compute.BindingStorageBuffer:
		result.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeStorage,
			MinBindingSize: entry.MinBindingSize,
		}
	case compute.BindingReadOnlyStorageBuffer:
		result.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeReadOnlyStorage,
			MinBindingSize: entry.MinBindingSize,
		}
	case compute.BindingStorageTexture:
		result.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessReadWrite,
			Format:        convertTextureFormat(entry.Format),
			ViewDimension: gputypes.TextureViewDimension3D,
		}
	}

	return result
}

// convertBindEntryLocked resolves a compute.BindGroupEntry to the hal
// resource binding. Must be called with mu held.
func (d *Device) convertBindEntryLocked(entry compute.BindGroupEntry) (gputypes.BindGroupEntry, error) {
	result := gputypes.BindGroupEntry{
		Binding: entry.Binding,
	}

	switch {
	case entry.Buffer != compute.InvalidID:
		buf, ok := d.buffers[entry.Buffer]
		if !ok {
			return result, fmt.Errorf("%w: buffer %d", ErrUnknownResource, entry.Buffer)
		}
		size := entry.Size
		if size == 0 {
			size = buf.size - entry.Offset
		}
		result.Resource = gputypes.BufferBinding{
			Buffer: buf.buf.NativeHandle(),
			Offset: entry.Offset,
			Size:   size,
		}
	case entry.Texture != compute.InvalidID:
		tex, ok := d.textures[entry.Texture]
		if !ok {
			return result, fmt.Errorf("%w: texture %d", ErrUnknownResource, entry.Texture)
		}
		result.Resource = gputypes.TextureViewBinding{
			TextureView: tex.view.NativeHandle(),
		}
	default:
		return result, fmt.Errorf("native: bind entry %d references no resource", entry.Binding)
	}

	return result, nil
}
