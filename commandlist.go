// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// commandKind identifies the type of a recorded command.
type commandKind uint8

const (
	// Kernel-scoped binding commands
	cmdKernelConstant commandKind = iota // Bind parameter block to a kernel slot
	cmdKernelBuffer                      // Bind read/write buffer to a kernel slot
	cmdKernelTexture                     // Bind read/write volume to a kernel slot
	cmdKernelKeyword                     // Toggle a program keyword

	// Global binding commands
	cmdGlobalConstant // Bind parameter block to a global slot
	cmdGlobalBuffer   // Bind read/write buffer to a global slot
	cmdGlobalTexture  // Bind read/write volume to a global slot
	cmdGlobalKeyword  // Toggle a global keyword

	// Execution commands
	cmdDispatch     // Dispatch a program kernel
	cmdDispatchWith // Dispatch a program kernel with a material overlay

	// Transfer commands
	cmdPushBuffer   // Write captured bytes into a buffer
	cmdPushConstant // Write captured bytes through a transient staging buffer
	cmdCopyBuffer   // Copy a byte range between two buffers
)

// commandKindNames maps commandKind values to their string representation.
var commandKindNames = [...]string{
	cmdKernelConstant: "KernelConstant",
	cmdKernelBuffer:   "KernelBuffer",
	cmdKernelTexture:  "KernelTexture",
	cmdKernelKeyword:  "KernelKeyword",
	cmdGlobalConstant: "GlobalConstant",
	cmdGlobalBuffer:   "GlobalBuffer",
	cmdGlobalTexture:  "GlobalTexture",
	cmdGlobalKeyword:  "GlobalKeyword",
	cmdDispatch:       "Dispatch",
	cmdDispatchWith:   "DispatchWith",
	cmdPushBuffer:     "PushBuffer",
	cmdPushConstant:   "PushConstant",
	cmdCopyBuffer:     "CopyBuffer",
}

// String returns the string representation of a commandKind.
func (k commandKind) String() string {
	if int(k) < len(commandKindNames) {
		return commandKindNames[k]
	}
	return "Unknown"
}

// command is the interface implemented by all recorded command types.
type command interface {
	kind() commandKind
}

type kernelConstantCommand struct {
	p      KernelState
	kernel int
	slot   Slot
	b      *Buffer
}

func (kernelConstantCommand) kind() commandKind { return cmdKernelConstant }

type kernelBufferCommand struct {
	p      KernelState
	kernel int
	slot   Slot
	b      *Buffer
}

func (kernelBufferCommand) kind() commandKind { return cmdKernelBuffer }

type kernelTextureCommand struct {
	p      KernelState
	kernel int
	slot   Slot
	v      *Volume
}

func (kernelTextureCommand) kind() commandKind { return cmdKernelTexture }

type kernelKeywordCommand struct {
	p       KernelState
	name    string
	enabled bool
}

func (kernelKeywordCommand) kind() commandKind { return cmdKernelKeyword }

type globalConstantCommand struct {
	slot Slot
	b    *Buffer
}

func (globalConstantCommand) kind() commandKind { return cmdGlobalConstant }

type globalBufferCommand struct {
	slot Slot
	b    *Buffer
}

func (globalBufferCommand) kind() commandKind { return cmdGlobalBuffer }

type globalTextureCommand struct {
	slot Slot
	v    *Volume
}

func (globalTextureCommand) kind() commandKind { return cmdGlobalTexture }

type globalKeywordCommand struct {
	name    string
	enabled bool
}

func (globalKeywordCommand) kind() commandKind { return cmdGlobalKeyword }

type dispatchCommand struct {
	p       *Program
	kernel  int
	x, y, z uint32
}

func (dispatchCommand) kind() commandKind { return cmdDispatch }

type dispatchWithCommand struct {
	p       *Program
	mat     *Material
	kernel  int
	x, y, z uint32
}

func (dispatchWithCommand) kind() commandKind { return cmdDispatchWith }

type pushBufferCommand struct {
	b    *Buffer
	data []byte
}

func (pushBufferCommand) kind() commandKind { return cmdPushBuffer }

type pushConstantCommand struct {
	b    *Buffer
	data []byte
}

func (pushConstantCommand) kind() commandKind { return cmdPushConstant }

type copyBufferCommand struct {
	src       *Buffer
	srcOffset uint64
	dst       *Buffer
	dstOffset uint64
	size      uint64
}

func (copyBufferCommand) kind() commandKind { return cmdCopyBuffer }

// CommandList captures binding, transfer, and dispatch operations as
// typed commands for deferred execution. Recording performs no device
// work; [CommandList.Execute] replays the commands against a session
// in recorded order, which is execution order. A list can be executed
// any number of times and reused across frames; [CommandList.Clear]
// empties it for re-recording.
//
// CommandList implements [KernelRecorder], [GlobalRecorder], and
// [TransferContext], so it plugs into the list-backed bind target
// variants and the transfer helpers directly.
//
// Binding commands capture handle references, not snapshots: a buffer
// recreated between recording and execution is picked up at its new
// shape without re-recording. Transfer commands capture a copy of the
// data payload at record time.
type CommandList struct {
	label    string
	commands []command
}

// NewCommandList creates an empty command list with a debug label.
func NewCommandList(label string) *CommandList {
	return &CommandList{
		label:    label,
		commands: make([]command, 0, 64),
	}
}

// Label returns the debug label given at creation.
func (cl *CommandList) Label() string { return cl.label }

// Len returns the number of recorded commands.
func (cl *CommandList) Len() int { return len(cl.commands) }

// Clear removes all recorded commands, keeping the allocation for
// re-recording.
func (cl *CommandList) Clear() {
	cl.commands = cl.commands[:0]
}

// String returns a compact summary for logs.
func (cl *CommandList) String() string {
	return fmt.Sprintf("CommandList[%q, %d commands]", cl.label, len(cl.commands))
}

// SetComputeConstantBuffer records binding b as the parameter block at
// slot for the program kernel. Applied to p when the list executes.
func (cl *CommandList) SetComputeConstantBuffer(p KernelState, kernel int, slot Slot, b *Buffer) {
	cl.commands = append(cl.commands, kernelConstantCommand{p: p, kernel: kernel, slot: slot, b: b})
}

// SetComputeBuffer records binding b as the read/write resource at
// slot for the program kernel.
func (cl *CommandList) SetComputeBuffer(p KernelState, kernel int, slot Slot, b *Buffer) {
	cl.commands = append(cl.commands, kernelBufferCommand{p: p, kernel: kernel, slot: slot, b: b})
}

// SetComputeTexture records binding v as the read/write image resource
// at slot for the program kernel.
func (cl *CommandList) SetComputeTexture(p KernelState, kernel int, slot Slot, v *Volume) {
	cl.commands = append(cl.commands, kernelTextureCommand{p: p, kernel: kernel, slot: slot, v: v})
}

// SetComputeKeyword records toggling a program-local keyword.
func (cl *CommandList) SetComputeKeyword(p KernelState, name string, enabled bool) {
	cl.commands = append(cl.commands, kernelKeywordCommand{p: p, name: name, enabled: enabled})
}

// SetGlobalConstantBuffer records binding b as the parameter block at
// a global slot. Applied to the executing session's global table.
func (cl *CommandList) SetGlobalConstantBuffer(slot Slot, b *Buffer) {
	cl.commands = append(cl.commands, globalConstantCommand{slot: slot, b: b})
}

// SetGlobalBuffer records binding b as the read/write resource at a
// global slot.
func (cl *CommandList) SetGlobalBuffer(slot Slot, b *Buffer) {
	cl.commands = append(cl.commands, globalBufferCommand{slot: slot, b: b})
}

// SetGlobalTexture records binding v as the read/write image resource
// at a global slot.
func (cl *CommandList) SetGlobalTexture(slot Slot, v *Volume) {
	cl.commands = append(cl.commands, globalTextureCommand{slot: slot, v: v})
}

// SetGlobalKeyword records toggling a global keyword.
func (cl *CommandList) SetGlobalKeyword(name string, enabled bool) {
	cl.commands = append(cl.commands, globalKeywordCommand{name: name, enabled: enabled})
}

// Dispatch records dispatching x*y*z workgroups of the program kernel.
func (cl *CommandList) Dispatch(p *Program, kernel int, x, y, z uint32) {
	cl.commands = append(cl.commands, dispatchCommand{p: p, kernel: kernel, x: x, y: y, z: z})
}

// DispatchWith records dispatching the program kernel with a material
// overlay, like [Program.DispatchWith].
func (cl *CommandList) DispatchWith(p *Program, mat *Material, kernel int, x, y, z uint32) {
	cl.commands = append(cl.commands, dispatchWithCommand{p: p, mat: mat, kernel: kernel, x: x, y: y, z: z})
}

// PushBytes records writing a copy of data into b at offset zero.
// Part of [TransferContext]; prefer the typed [PushBufferData].
func (cl *CommandList) PushBytes(b *Buffer, data []byte) error {
	if b == nil {
		return ErrNilHandle
	}
	cl.commands = append(cl.commands, pushBufferCommand{b: b, data: append([]byte(nil), data...)})
	return nil
}

// PushConstantBytes records writing a copy of data into b through a
// transient staging buffer: the stage, push, and discard steps run at
// the command's recorded position when the list executes.
// Part of [TransferContext]; prefer the typed [PushConstantData].
func (cl *CommandList) PushConstantBytes(b *Buffer, data []byte) error {
	if b == nil {
		return ErrNilHandle
	}
	cl.commands = append(cl.commands, pushConstantCommand{b: b, data: append([]byte(nil), data...)})
	return nil
}

// CopyBuffer records copying size bytes from src to dst.
func (cl *CommandList) CopyBuffer(src *Buffer, srcOffset uint64, dst *Buffer, dstOffset, size uint64) {
	cl.commands = append(cl.commands, copyBufferCommand{
		src:       src,
		srcOffset: srcOffset,
		dst:       dst,
		dstOffset: dstOffset,
		size:      size,
	})
}

// Execute replays the recorded commands against the session in
// recorded order. Commands are not reordered or batched. The list is
// left intact, so it can be executed again.
//
// The first failing command aborts the replay; the returned error
// names the list, the command's position, and its kind.
func (cl *CommandList) Execute(s *Session) error {
	if s == nil {
		return ErrNilSession
	}
	if s.closed {
		return ErrSessionClosed
	}
	Logger().Debug("compute: execute command list",
		"list", cl.label,
		"commands", len(cl.commands))
	for i, cmd := range cl.commands {
		if err := apply(s, cmd); err != nil {
			return fmt.Errorf("compute: list %q command %d (%s): %w", cl.label, i, cmd.kind(), err)
		}
	}
	return nil
}

// apply runs one recorded command against the session.
func apply(s *Session, cmd command) error {
	switch c := cmd.(type) {
	case kernelConstantCommand:
		c.p.SetConstantBuffer(c.kernel, c.slot, c.b)
	case kernelBufferCommand:
		c.p.SetBuffer(c.kernel, c.slot, c.b)
	case kernelTextureCommand:
		c.p.SetTexture(c.kernel, c.slot, c.v)
	case kernelKeywordCommand:
		c.p.SetKeyword(c.name, c.enabled)
	case globalConstantCommand:
		s.globals.SetConstantBuffer(c.slot, c.b)
	case globalBufferCommand:
		s.globals.SetBuffer(c.slot, c.b)
	case globalTextureCommand:
		s.globals.SetTexture(c.slot, c.v)
	case globalKeywordCommand:
		s.globals.SetKeyword(c.name, c.enabled)
	case dispatchCommand:
		if c.p == nil {
			return ErrNilProgram
		}
		return c.p.Dispatch(c.kernel, c.x, c.y, c.z)
	case dispatchWithCommand:
		if c.p == nil {
			return ErrNilProgram
		}
		return c.p.DispatchWith(c.mat, c.kernel, c.x, c.y, c.z)
	case pushBufferCommand:
		return s.PushBytes(c.b, c.data)
	case pushConstantCommand:
		return s.PushConstantBytes(c.b, c.data)
	case copyBufferCommand:
		if !c.src.Valid() || !c.dst.Valid() {
			return ErrEmptyHandle
		}
		s.dev.CopyBuffer(c.src.id, c.srcOffset, c.dst.id, c.dstOffset, c.size)
	}
	return nil
}
