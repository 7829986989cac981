// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Device abstracts the GPU backend beneath this package.
//
// The production implementation lives in backend/native and drives a
// real device through gogpu/wgpu; tests substitute an in-memory fake.
// All higher layers (Manager, Program, CommandList, Session) speak
// only this interface, so every contract in this package is checkable
// without GPU hardware.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - Destroying a resource while in use is undefined behavior
//   - IDs become invalid after destruction and must not be reused
//
// Implementations follow the package's single-threaded calling model;
// they are not required to be safe for concurrent use.
type Device interface {
	// === Capabilities ===

	// MaxBufferSize returns the maximum buffer size in bytes.
	MaxBufferSize() uint64

	// MaxWorkgroupSize returns the maximum workgroup size in each dimension.
	// Typical values are [256, 256, 64] or [1024, 1024, 1024].
	MaxWorkgroupSize() [3]uint32

	// MaxTextureDimension3D returns the maximum edge length of a 3D texture.
	MaxTextureDimension3D() int

	// === Buffers ===

	// CreateBuffer creates a GPU buffer.
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(desc *BufferDesc) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	// Destroying InvalidID or an already-destroyed ID is a no-op.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer at the given byte offset.
	// The data is copied to the GPU immediately or staged for later upload.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// ReadBuffer reads size bytes from a buffer at the given byte offset.
	// This may cause a GPU-CPU synchronization stall.
	ReadBuffer(id BufferID, offset, size uint64) ([]byte, error)

	// CopyBuffer copies size bytes between two buffers.
	// The copy is ordered with other device work already issued.
	CopyBuffer(src BufferID, srcOffset uint64, dst BufferID, dstOffset uint64, size uint64)

	// === Textures ===

	// CreateTexture3D creates a cubic 3D texture.
	// Returns the texture ID or an error if allocation fails.
	CreateTexture3D(desc *TextureDesc) (TextureID, error)

	// DestroyTexture releases a GPU texture.
	// Destroying InvalidID or an already-destroyed ID is a no-op.
	DestroyTexture(id TextureID)

	// WriteTexture3D writes tightly packed texel data covering the whole
	// texture. len(data) must equal Cells^3 * Format.BytesPerCell().
	WriteTexture3D(id TextureID, data []byte)

	// ReadTexture3D reads the whole texture as tightly packed texel data.
	// This may cause a GPU-CPU synchronization stall.
	ReadTexture3D(id TextureID) ([]byte, error)

	// === Shaders and pipelines ===

	// CreateShaderModule creates a shader module from SPIR-V bytecode.
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module.
	DestroyShaderModule(id ShaderModuleID)

	// CreateBindGroupLayout creates a bind group layout.
	// Bind group layouts describe the structure of resource bindings.
	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)

	// DestroyBindGroupLayout releases a bind group layout.
	DestroyBindGroupLayout(id BindGroupLayoutID)

	// CreatePipelineLayout creates a pipeline layout from bind group layouts.
	CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error)

	// DestroyPipelineLayout releases a pipeline layout.
	DestroyPipelineLayout(id PipelineLayoutID)

	// CreateComputePipeline creates a compute pipeline.
	CreateComputePipeline(desc *ComputePipelineDesc) (ComputePipelineID, error)

	// DestroyComputePipeline releases a compute pipeline.
	DestroyComputePipeline(id ComputePipelineID)

	// CreateBindGroup binds actual resources to a bind group layout.
	CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error)

	// DestroyBindGroup releases a bind group. Unlike the other Destroy
	// methods it may be called as soon as the passes referencing the
	// group are ended: implementations keep the underlying object
	// alive until the recorded work completes.
	DestroyBindGroup(id BindGroupID)

	// === Command recording and execution ===

	// BeginComputePass begins a compute pass.
	// Returns an encoder for recording compute commands.
	// The encoder must be ended with PassEncoder.End().
	BeginComputePass() PassEncoder

	// Submit submits all recorded work to the GPU.
	// Call this after ending compute passes to execute them.
	Submit() error

	// WaitIdle waits for all GPU operations to complete.
	// Use sparingly as this causes a full GPU-CPU synchronization.
	WaitIdle()
}

// PassEncoder records commands for one compute pass.
//
// Usage:
//  1. Obtain encoder from Device.BeginComputePass()
//  2. Set pipeline and bind groups
//  3. Dispatch compute workgroups
//  4. Call End() to finish recording
//  5. Call Device.Submit() to execute
//
// The encoder is single-use and cannot be reused after End().
type PassEncoder interface {
	// SetPipeline sets the active compute pipeline.
	SetPipeline(pipeline ComputePipelineID)

	// SetBindGroup sets a bind group at the specified index.
	// Index must be less than the number of bind group layouts in the pipeline.
	SetBindGroup(index uint32, group BindGroupID)

	// Dispatch dispatches compute workgroups.
	// x, y, z are the number of workgroups in each dimension.
	// Total threads = x * y * z * workgroup_size.
	Dispatch(x, y, z uint32)

	// End finishes the compute pass.
	// After this call, the encoder cannot be used again.
	End()
}
