// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"testing"

	"github.com/gogpu/compute"
	"github.com/gogpu/gputypes"
)

func TestConvertBufferUsage(t *testing.T) {
	tests := []struct {
		name  string
		usage compute.BufferUsage
		want  gputypes.BufferUsage
	}{
		{
			name:  "storage with copies",
			usage: compute.BufferUsageStorage | compute.BufferUsageCopySrc | compute.BufferUsageCopyDst,
			want:  gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
		},
		{
			name:  "uniform upload",
			usage: compute.BufferUsageUniform | compute.BufferUsageCopyDst,
			want:  gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		},
		{
			name:  "staging upload",
			usage: compute.BufferUsageMapWrite | compute.BufferUsageCopySrc,
			want:  gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc,
		},
		{
			name:  "readback",
			usage: compute.BufferUsageMapRead | compute.BufferUsageCopyDst,
			want:  gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		},
		{
			name:  "indirect dispatch args",
			usage: compute.BufferUsageIndirect | compute.BufferUsageStorage | compute.BufferUsageCopyDst,
			want:  gputypes.BufferUsageIndirect | gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		},
		{
			name:  "empty",
			usage: 0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertBufferUsage(tt.usage); got != tt.want {
				t.Errorf("convertBufferUsage(%v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}

func TestConvertTextureUsage(t *testing.T) {
	tests := []struct {
		name  string
		usage compute.TextureUsage
		want  gputypes.TextureUsage
	}{
		{
			name:  "storage volume",
			usage: compute.TextureUsageStorageBinding | compute.TextureUsageCopySrc | compute.TextureUsageCopyDst,
			want:  gputypes.TextureUsageStorageBinding | gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
		},
		{
			name:  "sampled",
			usage: compute.TextureUsageTextureBinding | compute.TextureUsageCopyDst,
			want:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		},
		{
			name:  "empty",
			usage: 0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertTextureUsage(tt.usage); got != tt.want {
				t.Errorf("convertTextureUsage(%v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}

func TestConvertTextureFormat(t *testing.T) {
	tests := []struct {
		format compute.TextureFormat
		want   gputypes.TextureFormat
	}{
		{compute.TextureFormatR8Unorm, gputypes.TextureFormatR8Unorm},
		{compute.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
		{compute.TextureFormatRGBA8Snorm, gputypes.TextureFormatRGBA8Snorm},
		{compute.TextureFormatR16Float, gputypes.TextureFormatR16Float},
		{compute.TextureFormatRG16Float, gputypes.TextureFormatRG16Float},
		{compute.TextureFormatRGBA16Float, gputypes.TextureFormatRGBA16Float},
		{compute.TextureFormatR32Float, gputypes.TextureFormatR32Float},
		{compute.TextureFormatRG32Float, gputypes.TextureFormatRG32Float},
		{compute.TextureFormatRGBA32Float, gputypes.TextureFormatRGBA32Float},
		{compute.TextureFormatR32Uint, gputypes.TextureFormatR32Uint},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := convertTextureFormat(tt.format); got != tt.want {
				t.Errorf("convertTextureFormat(%v) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestConvertLayoutEntryBuffers(t *testing.T) {
	tests := []struct {
		name     string
		typ      compute.BindingType
		wantType gputypes.BufferBindingType
	}{
		{"uniform", compute.BindingUniformBuffer, gputypes.BufferBindingTypeUniform},
		{"storage", compute.BindingStorageBuffer, gputypes.BufferBindingTypeStorage},
		{"read-only storage", compute.BindingReadOnlyStorageBuffer, gputypes.BufferBindingTypeReadOnlyStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := compute.BindGroupLayoutEntry{
				Binding:        2,
				Type:           tt.typ,
				MinBindingSize: 64,
			}
			got := convertLayoutEntry(entry)

			if got.Binding != 2 {
				t.Errorf("Binding = %d, want 2", got.Binding)
			}
			if got.Visibility != gputypes.ShaderStageCompute {
				t.Errorf("Visibility = %v, want compute stage", got.Visibility)
			}
			if got.Buffer == nil {
				t.Fatal("Buffer layout is nil")
			}
			if got.Buffer.Type != tt.wantType {
				t.Errorf("Buffer.Type = %v, want %v", got.Buffer.Type, tt.wantType)
			}
			if got.Buffer.MinBindingSize != 64 {
				t.Errorf("Buffer.MinBindingSize = %d, want 64", got.Buffer.MinBindingSize)
			}
			if got.StorageTexture != nil {
				t.Error("Storage layout set for buffer binding")
			}
		})
	}
}

func TestConvertLayoutEntryStorageTexture(t *testing.T) {
	entry := compute.BindGroupLayoutEntry{
		Binding: 0,
		Type:    compute.BindingStorageTexture,
		Format:  compute.TextureFormatR32Float,
	}
	got := convertLayoutEntry(entry)

	if got.Visibility != gputypes.ShaderStageCompute {
		t.Errorf("Visibility = %v, want compute stage", got.Visibility)
	}
	if got.Buffer != nil {
		t.Error("Buffer layout set for storage texture binding")
	}
	if got.StorageTexture == nil {
		t.Fatal("Storage layout is nil")
	}
	if got.StorageTexture.Access != gputypes.StorageTextureAccessReadWrite {
		t.Errorf("Access = %v, want read-write", got.StorageTexture.Access)
	}
	if got.StorageTexture.Format != gputypes.TextureFormatR32Float {
		t.Errorf("Format = %v, want R32Float", got.StorageTexture.Format)
	}
	if got.StorageTexture.ViewDimension != gputypes.TextureViewDimension3D {
		t.Errorf("ViewDimension = %v, want 3D", got.StorageTexture.ViewDimension)
	}
}
