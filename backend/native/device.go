// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/compute"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device implements compute.Device on a hal device and queue.
//
// Resource IDs handed out to the compute layer are sequential uint64s
// starting at 1; each ID maps to the underlying hal object in the
// tables below. ID 0 is never issued, so compute.InvalidID lookups
// simply miss and the Destroy methods treat them as no-ops.
type Device struct {
	mu sync.RWMutex

	instance hal.Instance // nil when the device is shared
	device   hal.Device
	queue    hal.Queue
	limits   gputypes.Limits
	shared   bool // device and queue belong to an external provider

	nextID atomic.Uint64

	buffers          map[compute.BufferID]bufferEntry
	textures         map[compute.TextureID]textureEntry
	shaderModules    map[compute.ShaderModuleID]hal.ShaderModule
	bindGroupLayouts map[compute.BindGroupLayoutID]hal.BindGroupLayout
	pipelineLayouts  map[compute.PipelineLayoutID]hal.PipelineLayout
	computePipelines map[compute.ComputePipelineID]hal.ComputePipeline
	bindGroups       map[compute.BindGroupID]hal.BindGroup

	// Pending command encoder. Compute passes and copies accumulate on
	// a single encoder until Submit ends and submits it.
	encoder    hal.CommandEncoder
	hasEncoder bool

	// Submitted work not yet known complete. Command buffers and
	// retired resources are released after the next fence wait, so a
	// caller may destroy a buffer right after recording a copy from it
	// (the transient staging pattern) without racing the GPU.
	inFlight        []hal.CommandBuffer
	retiredGroups   []hal.BindGroup
	retiredBuffers  []hal.Buffer
	retiredTextures []textureEntry
}

// bufferEntry tracks a hal buffer together with its allocation size,
// needed to resolve whole-buffer bindings and validate readbacks.
type bufferEntry struct {
	buf  hal.Buffer
	size uint64
}

// textureEntry tracks a hal texture with the view bound into compute
// passes and the geometry needed for upload and readback layouts.
type textureEntry struct {
	tex          hal.Texture
	view         hal.TextureView
	cells        uint32
	bytesPerCell uint32
	format       gputypes.TextureFormat
}

var _ compute.Device = (*Device)(nil)

// copyAlignment is the required alignment of buffer copy sizes.
const copyAlignment uint64 = 4

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	backend      gputypes.Backend
	adapterIndex int
}

// WithBackendKind selects which hal backend Open probes.
// The default is the Vulkan backend.
func WithBackendKind(b gputypes.Backend) Option {
	return func(c *openConfig) {
		c.backend = b
	}
}

// WithAdapterIndex pins adapter selection to the given index in the
// enumeration order instead of preferring discrete GPUs. Useful on
// multi-GPU machines.
func WithAdapterIndex(i int) Option {
	return func(c *openConfig) {
		c.adapterIndex = i
	}
}

// Open creates a standalone Device on the best available adapter.
// The caller owns the device and must release it with Close.
func Open(opts ...Option) (*Device, error) {
	cfg := openConfig{
		backend:      gputypes.BackendVulkan,
		adapterIndex: -1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	backend, ok := hal.GetBackend(cfg.backend)
	if !ok {
		return nil, ErrNoGPU
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}

	var selected *hal.ExposedAdapter
	if cfg.adapterIndex >= 0 && cfg.adapterIndex < len(adapters) {
		selected = &adapters[cfg.adapterIndex]
	} else {
		for i := range adapters {
			if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
				adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
				selected = &adapters[i]
				break
			}
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open adapter %q: %w", selected.Info.Name, err)
	}

	d := newDevice(openDev.Device, openDev.Queue, limits)
	d.instance = instance
	compute.Logger().Info("native: GPU initialized", "adapter", selected.Info.Name)
	return d, nil
}

// FromProvider creates a Device sharing the hal device and queue of an
// existing gpucontext provider, typically the one backing a window or
// renderer that is already on the GPU. Beyond the gpucontext surface
// the provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue; gogpu-based providers do.
//
// The returned Device does not own the underlying device: Close
// releases only the resources created through it.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoProvider)
	}

	d := newDevice(device, queue, gputypes.DefaultLimits())
	d.shared = true
	compute.Logger().Debug("native: using shared hal device")
	return d, nil
}

func newDevice(device hal.Device, queue hal.Queue, limits gputypes.Limits) *Device {
	d := &Device{
		device:           device,
		queue:            queue,
		limits:           limits,
		buffers:          make(map[compute.BufferID]bufferEntry),
		textures:         make(map[compute.TextureID]textureEntry),
		shaderModules:    make(map[compute.ShaderModuleID]hal.ShaderModule),
		bindGroupLayouts: make(map[compute.BindGroupLayoutID]hal.BindGroupLayout),
		pipelineLayouts:  make(map[compute.PipelineLayoutID]hal.PipelineLayout),
		computePipelines: make(map[compute.ComputePipelineID]hal.ComputePipeline),
		bindGroups:       make(map[compute.BindGroupID]hal.BindGroup),
	}

	// Start ID generation at 1 (0 is invalid).
	d.nextID.Store(1)

	return d
}

// Close waits for outstanding work, releases every resource still
// tracked, and destroys the device and instance when owned.
func (d *Device) Close() {
	d.WaitIdle()

	d.mu.Lock()
	defer d.mu.Unlock()

	for id, bg := range d.bindGroups {
		d.device.DestroyBindGroup(bg)
		delete(d.bindGroups, id)
	}
	for id, p := range d.computePipelines {
		d.device.DestroyComputePipeline(p)
		delete(d.computePipelines, id)
	}
	for id, pl := range d.pipelineLayouts {
		d.device.DestroyPipelineLayout(pl)
		delete(d.pipelineLayouts, id)
	}
	for id, bgl := range d.bindGroupLayouts {
		d.device.DestroyBindGroupLayout(bgl)
		delete(d.bindGroupLayouts, id)
	}
	for id, sm := range d.shaderModules {
		d.device.DestroyShaderModule(sm)
		delete(d.shaderModules, id)
	}
	for id, t := range d.textures {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
		delete(d.textures, id)
	}
	for id, b := range d.buffers {
		d.device.DestroyBuffer(b.buf)
		delete(d.buffers, id)
	}

	if !d.shared && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.device = nil
	d.queue = nil
}

// newID returns the next sequential resource ID.
func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// === Capabilities ===

// MaxBufferSize returns the maximum buffer size in bytes.
func (d *Device) MaxBufferSize() uint64 {
	return d.limits.MaxBufferSize
}

// MaxWorkgroupSize returns the maximum workgroup size in each dimension.
func (d *Device) MaxWorkgroupSize() [3]uint32 {
	return [3]uint32{
		d.limits.MaxComputeWorkgroupSizeX,
		d.limits.MaxComputeWorkgroupSizeY,
		d.limits.MaxComputeWorkgroupSizeZ,
	}
}

// MaxTextureDimension3D returns the maximum edge length of a 3D texture.
func (d *Device) MaxTextureDimension3D() int {
	return int(d.limits.MaxTextureDimension3D)
}

// === Buffers ===

// CreateBuffer creates a GPU buffer.
func (d *Device) CreateBuffer(desc *compute.BufferDesc) (compute.BufferID, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: convertBufferUsage(desc.Usage),
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}

	id := compute.BufferID(d.newID())
	d.mu.Lock()
	d.buffers[id] = bufferEntry{buf: buf, size: desc.Size}
	d.mu.Unlock()
	return id, nil
}

// DestroyBuffer retires a GPU buffer. The hal object stays alive on
// the retired list until a fence confirms the recorded work that may
// reference it has completed.
func (d *Device) DestroyBuffer(id compute.BufferID) {
	d.mu.Lock()
	entry, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
		d.retiredBuffers = append(d.retiredBuffers, entry.buf)
	}
	d.mu.Unlock()
}

// WriteBuffer writes data to a buffer at the given byte offset.
func (d *Device) WriteBuffer(id compute.BufferID, offset uint64, data []byte) {
	d.mu.RLock()
	entry, ok := d.buffers[id]
	d.mu.RUnlock()
	if !ok {
		return
	}
	d.queue.WriteBuffer(entry.buf, offset, data)
}

// ReadBuffer reads size bytes from a buffer at the given byte offset.
// Pending recorded work is flushed first, then the range is copied to
// a transient staging buffer and read back behind a fence.
func (d *Device) ReadBuffer(id compute.BufferID, offset, size uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: buffer %d", ErrUnknownResource, id)
	}
	if offset+size > entry.size {
		return nil, fmt.Errorf("native: read [%d,%d) out of range of buffer %d (size %d)",
			offset, offset+size, id, entry.size)
	}

	// Copy sizes must be 4-byte aligned; clamp to the buffer end.
	copySize := (size + copyAlignment - 1) &^ (copyAlignment - 1)
	if offset+copySize > entry.size {
		copySize = entry.size - offset
	}

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "compute_readback",
		Size:  copySize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create readback staging: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	if err := d.ensureEncoderLocked(); err != nil {
		return nil, err
	}
	d.encoder.CopyBufferToBuffer(entry.buf, staging, []hal.BufferCopy{
		{SrcOffset: offset, DstOffset: 0, Size: copySize},
	})
	if err := d.waitGPULocked(); err != nil {
		return nil, err
	}

	readback := make([]byte, copySize)
	if err := d.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("native: readback: %w", err)
	}
	return readback[:size], nil
}

// CopyBuffer copies size bytes between two buffers. The copy is
// recorded on the pending encoder, ordered after prior passes.
func (d *Device) CopyBuffer(src compute.BufferID, srcOffset uint64, dst compute.BufferID, dstOffset uint64, size uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	srcEntry, srcOK := d.buffers[src]
	dstEntry, dstOK := d.buffers[dst]
	if !srcOK || !dstOK {
		return
	}
	if err := d.ensureEncoderLocked(); err != nil {
		return
	}
	d.encoder.CopyBufferToBuffer(srcEntry.buf, dstEntry.buf, []hal.BufferCopy{
		{SrcOffset: srcOffset, DstOffset: dstOffset, Size: size},
	})
}

// === Textures ===

// CreateTexture3D creates a cubic 3D texture and the storage view
// bound into compute passes.
func (d *Device) CreateTexture3D(desc *compute.TextureDesc) (compute.TextureID, error) {
	cells := uint32(desc.Cells)
	format := convertTextureFormat(desc.Format)

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              cells,
			Height:             cells,
			DepthOrArrayLayers: cells,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension3D,
		Format:        format,
		Usage:         convertTextureUsage(desc.Usage),
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label,
		Format:        format,
		Dimension:     gputypes.TextureViewDimension3D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return compute.InvalidID, fmt.Errorf("native: create texture view %q: %w", desc.Label, err)
	}

	id := compute.TextureID(d.newID())
	d.mu.Lock()
	d.textures[id] = textureEntry{
		tex:          tex,
		view:         view,
		cells:        cells,
		bytesPerCell: uint32(desc.Format.BytesPerCell()),
		format:       format,
	}
	d.mu.Unlock()
	return id, nil
}

// DestroyTexture retires a GPU texture and its view; both are
// released after the next fence wait.
func (d *Device) DestroyTexture(id compute.TextureID) {
	d.mu.Lock()
	entry, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
		d.retiredTextures = append(d.retiredTextures, entry)
	}
	d.mu.Unlock()
}

// WriteTexture3D writes tightly packed texel data covering the whole
// texture.
func (d *Device) WriteTexture3D(id compute.TextureID, data []byte) {
	d.mu.RLock()
	entry, ok := d.textures[id]
	d.mu.RUnlock()
	if !ok {
		return
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: entry.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  entry.cells * entry.bytesPerCell,
			RowsPerImage: entry.cells,
		},
		&hal.Extent3D{
			Width:              entry.cells,
			Height:             entry.cells,
			DepthOrArrayLayers: entry.cells,
		},
	)
}

// ReadTexture3D reads the whole texture as tightly packed texel data.
// The texture is transitioned out of its storage-binding state for the
// copy and back afterwards; the transitions are no-ops on backends
// without explicit image layouts.
func (d *Device) ReadTexture3D(id compute.TextureID) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("%w: texture %d", ErrUnknownResource, id)
	}

	size := uint64(entry.cells) * uint64(entry.cells) * uint64(entry.cells) * uint64(entry.bytesPerCell)
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "compute_volume_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create volume staging: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	if err := d.ensureEncoderLocked(); err != nil {
		return nil, err
	}
	d.encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: entry.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageStorageBinding,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	d.encoder.CopyTextureToBuffer(entry.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  entry.cells * entry.bytesPerCell,
			RowsPerImage: entry.cells,
		},
		TextureBase: hal.ImageCopyTexture{Texture: entry.tex, MipLevel: 0},
		Size: hal.Extent3D{
			Width:              entry.cells,
			Height:             entry.cells,
			DepthOrArrayLayers: entry.cells,
		},
	}})
	d.encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: entry.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageStorageBinding,
		},
	}})
	if err := d.waitGPULocked(); err != nil {
		return nil, err
	}

	readback := make([]byte, size)
	if err := d.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("native: volume readback: %w", err)
	}
	return readback, nil
}

// === Shaders and pipelines ===

// CreateShaderModule creates a shader module from SPIR-V bytecode.
func (d *Device) CreateShaderModule(spirv []uint32, label string) (compute.ShaderModuleID, error) {
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create shader module %q: %w", label, err)
	}

	id := compute.ShaderModuleID(d.newID())
	d.mu.Lock()
	d.shaderModules[id] = module
	d.mu.Unlock()
	return id, nil
}

// DestroyShaderModule releases a shader module.
func (d *Device) DestroyShaderModule(id compute.ShaderModuleID) {
	d.mu.Lock()
	module, ok := d.shaderModules[id]
	if ok {
		delete(d.shaderModules, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyShaderModule(module)
	}
}

// CreateBindGroupLayout creates a bind group layout.
func (d *Device) CreateBindGroupLayout(desc *compute.BindGroupLayoutDesc) (compute.BindGroupLayoutID, error) {
	entries := make([]gputypes.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = convertLayoutEntry(e)
	}

	layout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create bind group layout %q: %w", desc.Label, err)
	}

	id := compute.BindGroupLayoutID(d.newID())
	d.mu.Lock()
	d.bindGroupLayouts[id] = layout
	d.mu.Unlock()
	return id, nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (d *Device) DestroyBindGroupLayout(id compute.BindGroupLayoutID) {
	d.mu.Lock()
	layout, ok := d.bindGroupLayouts[id]
	if ok {
		delete(d.bindGroupLayouts, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBindGroupLayout(layout)
	}
}

// CreatePipelineLayout creates a pipeline layout from bind group layouts.
func (d *Device) CreatePipelineLayout(layouts []compute.BindGroupLayoutID) (compute.PipelineLayoutID, error) {
	d.mu.RLock()
	halLayouts := make([]hal.BindGroupLayout, 0, len(layouts))
	for _, lid := range layouts {
		layout, ok := d.bindGroupLayouts[lid]
		if !ok {
			d.mu.RUnlock()
			return compute.InvalidID, fmt.Errorf("%w: bind group layout %d", ErrUnknownResource, lid)
		}
		halLayouts = append(halLayouts, layout)
	}
	d.mu.RUnlock()

	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "compute_pipeline_layout",
		BindGroupLayouts: halLayouts,
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create pipeline layout: %w", err)
	}

	id := compute.PipelineLayoutID(d.newID())
	d.mu.Lock()
	d.pipelineLayouts[id] = layout
	d.mu.Unlock()
	return id, nil
}

// DestroyPipelineLayout releases a pipeline layout.
func (d *Device) DestroyPipelineLayout(id compute.PipelineLayoutID) {
	d.mu.Lock()
	layout, ok := d.pipelineLayouts[id]
	if ok {
		delete(d.pipelineLayouts, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyPipelineLayout(layout)
	}
}

// CreateComputePipeline creates a compute pipeline.
func (d *Device) CreateComputePipeline(desc *compute.ComputePipelineDesc) (compute.ComputePipelineID, error) {
	d.mu.RLock()
	layout, layoutOK := d.pipelineLayouts[desc.Layout]
	module, moduleOK := d.shaderModules[desc.ShaderModule]
	d.mu.RUnlock()

	if !layoutOK {
		return compute.InvalidID, fmt.Errorf("%w: pipeline layout %d", ErrUnknownResource, desc.Layout)
	}
	if !moduleOK {
		return compute.InvalidID, fmt.Errorf("%w: shader module %d", ErrUnknownResource, desc.ShaderModule)
	}

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Compute: hal.ComputeState{
			Module:     module,
			EntryPoint: desc.EntryPoint,
		},
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create compute pipeline %q: %w", desc.Label, err)
	}

	id := compute.ComputePipelineID(d.newID())
	d.mu.Lock()
	d.computePipelines[id] = pipeline
	d.mu.Unlock()
	return id, nil
}

// DestroyComputePipeline releases a compute pipeline.
func (d *Device) DestroyComputePipeline(id compute.ComputePipelineID) {
	d.mu.Lock()
	pipeline, ok := d.computePipelines[id]
	if ok {
		delete(d.computePipelines, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyComputePipeline(pipeline)
	}
}

// CreateBindGroup binds actual resources to a bind group layout.
func (d *Device) CreateBindGroup(layout compute.BindGroupLayoutID, entries []compute.BindGroupEntry) (compute.BindGroupID, error) {
	d.mu.RLock()
	halLayout, ok := d.bindGroupLayouts[layout]
	if !ok {
		d.mu.RUnlock()
		return compute.InvalidID, fmt.Errorf("%w: bind group layout %d", ErrUnknownResource, layout)
	}
	halEntries := make([]gputypes.BindGroupEntry, 0, len(entries))
	for _, e := range entries {
		halEntry, err := d.convertBindEntryLocked(e)
		if err != nil {
			d.mu.RUnlock()
			return compute.InvalidID, err
		}
		halEntries = append(halEntries, halEntry)
	}
	d.mu.RUnlock()

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "compute_bind_group",
		Layout:  halLayout,
		Entries: halEntries,
	})
	if err != nil {
		return compute.InvalidID, fmt.Errorf("native: create bind group: %w", err)
	}

	id := compute.BindGroupID(d.newID())
	d.mu.Lock()
	d.bindGroups[id] = group
	d.mu.Unlock()
	return id, nil
}

// DestroyBindGroup retires a bind group. The hal object stays alive on
// the retired list until a fence confirms the recorded work that may
// reference it has completed.
func (d *Device) DestroyBindGroup(id compute.BindGroupID) {
	d.mu.Lock()
	group, ok := d.bindGroups[id]
	if ok {
		delete(d.bindGroups, id)
		d.retiredGroups = append(d.retiredGroups, group)
	}
	d.mu.Unlock()
}
