// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/compute"
	"github.com/gogpu/wgpu/hal"
)

// gpuWaitTimeout bounds every fence wait.
const gpuWaitTimeout = 5 * time.Second

// ensureEncoderLocked lazily creates and begins the pending command
// encoder. Must be called with mu held.
func (d *Device) ensureEncoderLocked() error {
	if d.hasEncoder {
		return nil
	}
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "compute_encoder",
	})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("compute"); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}
	d.encoder = encoder
	d.hasEncoder = true
	return nil
}

// flushLocked ends and submits the pending encoder without waiting.
// The command buffer moves to the in-flight list and is freed after
// the next fence wait. Must be called with mu held.
func (d *Device) flushLocked() error {
	if !d.hasEncoder {
		return nil
	}
	cmdBuf, err := d.encoder.EndEncoding()
	d.encoder = nil
	d.hasEncoder = false
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, nil, 0); err != nil {
		d.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("native: submit: %w", err)
	}
	d.inFlight = append(d.inFlight, cmdBuf)
	return nil
}

// waitGPULocked flushes pending work, then signals a fence on the
// queue and blocks until it fires. Everything submitted earlier on the
// queue is complete once the fence is, so in-flight command buffers
// and retired bind groups can be released. Must be called with mu held.
func (d *Device) waitGPULocked() error {
	if err := d.flushLocked(); err != nil {
		return err
	}

	if len(d.inFlight) > 0 {
		fence, err := d.device.CreateFence()
		if err != nil {
			return fmt.Errorf("native: create fence: %w", err)
		}
		defer d.device.DestroyFence(fence)

		if err := d.queue.Submit(nil, fence, 1); err != nil {
			return fmt.Errorf("native: submit fence: %w", err)
		}
		fenceOK, err := d.device.Wait(fence, 1, gpuWaitTimeout)
		if err != nil || !fenceOK {
			return fmt.Errorf("native: wait for GPU: ok=%v err=%w", fenceOK, err)
		}
	}

	d.drainCompletedLocked()
	return nil
}

// drainCompletedLocked releases command buffers and retired resources
// whose work is known complete. Must be called with mu held, after a
// fence wait or with nothing in flight.
func (d *Device) drainCompletedLocked() {
	for _, cmdBuf := range d.inFlight {
		d.device.FreeCommandBuffer(cmdBuf)
	}
	d.inFlight = d.inFlight[:0]

	for _, group := range d.retiredGroups {
		d.device.DestroyBindGroup(group)
	}
	d.retiredGroups = d.retiredGroups[:0]

	for _, buf := range d.retiredBuffers {
		d.device.DestroyBuffer(buf)
	}
	d.retiredBuffers = d.retiredBuffers[:0]

	for _, tex := range d.retiredTextures {
		d.device.DestroyTextureView(tex.view)
		d.device.DestroyTexture(tex.tex)
	}
	d.retiredTextures = d.retiredTextures[:0]
}

// === Command recording and execution ===

// BeginComputePass begins a compute pass on the pending encoder.
func (d *Device) BeginComputePass() compute.PassEncoder {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureEncoderLocked(); err != nil {
		return &passEncoder{}
	}
	halPass := d.encoder.BeginComputePass(&hal.ComputePassDescriptor{
		Label: "compute_pass",
	})
	return &passEncoder{device: d, pass: halPass}
}

// Submit submits all recorded work to the GPU without waiting for it.
// Command buffers are reclaimed at the next synchronization point.
func (d *Device) Submit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushLocked()
}

// WaitIdle blocks until all submitted work completes.
func (d *Device) WaitIdle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.waitGPULocked()
}

// passEncoder implements compute.PassEncoder over a hal compute pass.
// A passEncoder with a nil pass (encoder creation failed) ignores all
// commands.
type passEncoder struct {
	device *Device
	pass   hal.ComputePassEncoder
}

var _ compute.PassEncoder = (*passEncoder)(nil)

// SetPipeline sets the active compute pipeline.
func (e *passEncoder) SetPipeline(pipeline compute.ComputePipelineID) {
	if e.pass == nil {
		return
	}
	e.device.mu.RLock()
	halPipeline, ok := e.device.computePipelines[pipeline]
	e.device.mu.RUnlock()
	if ok {
		e.pass.SetPipeline(halPipeline)
	}
}

// SetBindGroup sets a bind group at the specified index.
func (e *passEncoder) SetBindGroup(index uint32, group compute.BindGroupID) {
	if e.pass == nil {
		return
	}
	e.device.mu.RLock()
	halGroup, ok := e.device.bindGroups[group]
	e.device.mu.RUnlock()
	if ok {
		e.pass.SetBindGroup(index, halGroup, nil)
	}
}

// Dispatch dispatches compute workgroups.
func (e *passEncoder) Dispatch(x, y, z uint32) {
	if e.pass == nil {
		return
	}
	e.pass.Dispatch(x, y, z)
}

// End finishes the compute pass. The encoder is single-use.
func (e *passEncoder) End() {
	if e.pass == nil {
		return
	}
	e.pass.End()
	e.pass = nil
}
