// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"fmt"
)

// errDeviceOOM simulates an allocation failure from the device.
var errDeviceOOM = errors.New("out of device memory")

// fakeDevice is an in-memory Device that tracks every call, so tests
// can assert allocation counts, labels, recorded passes, and the exact
// order of operations without GPU hardware.
type fakeDevice struct {
	nextID uint64

	buffers  map[BufferID]*fakeBuffer
	textures map[TextureID]*fakeTexture

	modules         map[ShaderModuleID]string
	layouts         map[BindGroupLayoutID][]BindGroupLayoutEntry
	pipelineLayouts map[PipelineLayoutID][]BindGroupLayoutID
	pipelines       map[ComputePipelineID]ComputePipelineDesc
	bindGroups      map[BindGroupID][]BindGroupEntry

	// lastBindGroup keeps the most recent bind group's entries around
	// after the group itself is destroyed.
	lastBindGroup []BindGroupEntry

	passes []*fakePass

	// ops is a coarse call log for order-sensitive assertions.
	ops []string

	bufferCreates    int
	bufferDestroys   int
	textureCreates   int
	textureDestroys  int
	moduleCreates    int
	layoutCreates    int
	pipelineCreates  int
	bindGroupCreates int
	submits          int
	waits            int

	// failBuffers / failTextures make the next allocation fail.
	failBuffers  bool
	failTextures bool
}

type fakeBuffer struct {
	label string
	size  uint64
	usage BufferUsage
	data  []byte
}

type fakeTexture struct {
	label  string
	cells  int
	format TextureFormat
	usage  TextureUsage
	data   []byte
}

type fakePass struct {
	pipeline   ComputePipelineID
	groups     map[uint32]BindGroupID
	dispatches [][3]uint32
	ended      bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buffers:         make(map[BufferID]*fakeBuffer),
		textures:        make(map[TextureID]*fakeTexture),
		modules:         make(map[ShaderModuleID]string),
		layouts:         make(map[BindGroupLayoutID][]BindGroupLayoutEntry),
		pipelineLayouts: make(map[PipelineLayoutID][]BindGroupLayoutID),
		pipelines:       make(map[ComputePipelineID]ComputePipelineDesc),
		bindGroups:      make(map[BindGroupID][]BindGroupEntry),
	}
}

func (d *fakeDevice) newID() uint64 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) MaxBufferSize() uint64 { return 1 << 30 }

func (d *fakeDevice) MaxWorkgroupSize() [3]uint32 { return [3]uint32{256, 256, 64} }

func (d *fakeDevice) MaxTextureDimension3D() int { return 2048 }

func (d *fakeDevice) CreateBuffer(desc *BufferDesc) (BufferID, error) {
	if d.failBuffers {
		return InvalidID, errDeviceOOM
	}
	id := BufferID(d.newID())
	d.buffers[id] = &fakeBuffer{
		label: desc.Label,
		size:  desc.Size,
		usage: desc.Usage,
		data:  make([]byte, desc.Size),
	}
	d.bufferCreates++
	d.ops = append(d.ops, "create "+desc.Label)
	return id, nil
}

func (d *fakeDevice) DestroyBuffer(id BufferID) {
	b, ok := d.buffers[id]
	if !ok {
		return
	}
	delete(d.buffers, id)
	d.bufferDestroys++
	d.ops = append(d.ops, "destroy "+b.label)
}

func (d *fakeDevice) WriteBuffer(id BufferID, offset uint64, data []byte) {
	b, ok := d.buffers[id]
	if !ok {
		return
	}
	copy(b.data[offset:], data)
	d.ops = append(d.ops, "write "+b.label)
}

func (d *fakeDevice) ReadBuffer(id BufferID, offset, size uint64) ([]byte, error) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, fmt.Errorf("read of unknown buffer %d", id)
	}
	out := make([]byte, size)
	copy(out, b.data[offset:])
	return out, nil
}

func (d *fakeDevice) CopyBuffer(src BufferID, srcOffset uint64, dst BufferID, dstOffset, size uint64) {
	sb, ok := d.buffers[src]
	if !ok {
		return
	}
	db, ok := d.buffers[dst]
	if !ok {
		return
	}
	copy(db.data[dstOffset:dstOffset+size], sb.data[srcOffset:srcOffset+size])
	d.ops = append(d.ops, "copy "+sb.label+"->"+db.label)
}

func (d *fakeDevice) CreateTexture3D(desc *TextureDesc) (TextureID, error) {
	if d.failTextures {
		return InvalidID, errDeviceOOM
	}
	id := TextureID(d.newID())
	cells := desc.Cells
	d.textures[id] = &fakeTexture{
		label:  desc.Label,
		cells:  cells,
		format: desc.Format,
		usage:  desc.Usage,
		data:   make([]byte, cells*cells*cells*desc.Format.BytesPerCell()),
	}
	d.textureCreates++
	d.ops = append(d.ops, "create "+desc.Label)
	return id, nil
}

func (d *fakeDevice) DestroyTexture(id TextureID) {
	tex, ok := d.textures[id]
	if !ok {
		return
	}
	delete(d.textures, id)
	d.textureDestroys++
	d.ops = append(d.ops, "destroy "+tex.label)
}

func (d *fakeDevice) WriteTexture3D(id TextureID, data []byte) {
	tex, ok := d.textures[id]
	if !ok {
		return
	}
	copy(tex.data, data)
	d.ops = append(d.ops, "write "+tex.label)
}

func (d *fakeDevice) ReadTexture3D(id TextureID) ([]byte, error) {
	tex, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("read of unknown texture %d", id)
	}
	out := make([]byte, len(tex.data))
	copy(out, tex.data)
	return out, nil
}

func (d *fakeDevice) CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error) {
	id := ShaderModuleID(d.newID())
	d.modules[id] = label
	d.moduleCreates++
	return id, nil
}

func (d *fakeDevice) DestroyShaderModule(id ShaderModuleID) {
	delete(d.modules, id)
}

func (d *fakeDevice) CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error) {
	id := BindGroupLayoutID(d.newID())
	d.layouts[id] = append([]BindGroupLayoutEntry(nil), desc.Entries...)
	d.layoutCreates++
	return id, nil
}

func (d *fakeDevice) DestroyBindGroupLayout(id BindGroupLayoutID) {
	delete(d.layouts, id)
}

func (d *fakeDevice) CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error) {
	id := PipelineLayoutID(d.newID())
	d.pipelineLayouts[id] = append([]BindGroupLayoutID(nil), layouts...)
	return id, nil
}

func (d *fakeDevice) DestroyPipelineLayout(id PipelineLayoutID) {
	delete(d.pipelineLayouts, id)
}

func (d *fakeDevice) CreateComputePipeline(desc *ComputePipelineDesc) (ComputePipelineID, error) {
	id := ComputePipelineID(d.newID())
	d.pipelines[id] = *desc
	d.pipelineCreates++
	return id, nil
}

func (d *fakeDevice) DestroyComputePipeline(id ComputePipelineID) {
	delete(d.pipelines, id)
}

func (d *fakeDevice) CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error) {
	id := BindGroupID(d.newID())
	d.bindGroups[id] = append([]BindGroupEntry(nil), entries...)
	d.lastBindGroup = d.bindGroups[id]
	d.bindGroupCreates++
	return id, nil
}

func (d *fakeDevice) DestroyBindGroup(id BindGroupID) {
	delete(d.bindGroups, id)
}

func (d *fakeDevice) BeginComputePass() PassEncoder {
	p := &fakePass{groups: make(map[uint32]BindGroupID)}
	d.passes = append(d.passes, p)
	return p
}

func (d *fakeDevice) Submit() error {
	d.submits++
	return nil
}

func (d *fakeDevice) WaitIdle() {
	d.waits++
}

func (p *fakePass) SetPipeline(pipeline ComputePipelineID) { p.pipeline = pipeline }

func (p *fakePass) SetBindGroup(index uint32, group BindGroupID) { p.groups[index] = group }

func (p *fakePass) Dispatch(x, y, z uint32) {
	p.dispatches = append(p.dispatches, [3]uint32{x, y, z})
}

func (p *fakePass) End() { p.ended = true }

// lastPass returns the most recently begun pass.
func (d *fakeDevice) lastPass() *fakePass {
	if len(d.passes) == 0 {
		return nil
	}
	return d.passes[len(d.passes)-1]
}

// bufferLabel returns the label of a live buffer, or "".
func (d *fakeDevice) bufferLabel(id BufferID) string {
	if b, ok := d.buffers[id]; ok {
		return b.label
	}
	return ""
}
