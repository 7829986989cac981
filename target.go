// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Binding surfaces
//
// The four interfaces below are the submission surfaces a binding can
// land on. Production code plugs the concrete types of this package
// (*Program, *Globals, *Material, *CommandList); tests plug
// call-capturing doubles. Each [Target] variant holds exactly the
// surface values it needs and forwards the uniform Bind* vocabulary to
// them without any translation of its own.

// KernelState is immediate per-kernel program state, implemented by
// [*Program]. Setters take effect for the next dispatch of that kernel.
type KernelState interface {
	// SetConstantBuffer exposes b as a fixed-layout parameter block at
	// slot, sized to the buffer's full stride, offset zero.
	SetConstantBuffer(kernel int, slot Slot, b *Buffer)

	// SetBuffer exposes b as a general read/write resource at slot.
	SetBuffer(kernel int, slot Slot, b *Buffer)

	// SetTexture exposes v as a read/write image resource at slot.
	SetTexture(kernel int, slot Slot, v *Volume)

	// SetKeyword toggles a named program-local variant selection flag.
	SetKeyword(name string, enabled bool)
}

// KernelRecorder records per-kernel program bindings into a deferred
// command stream, implemented by [*CommandList]. Recorded bindings take
// effect, in recording order, when the stream executes.
type KernelRecorder interface {
	// SetComputeConstantBuffer records a constant buffer binding on p.
	SetComputeConstantBuffer(p KernelState, kernel int, slot Slot, b *Buffer)

	// SetComputeBuffer records a read/write buffer binding on p.
	SetComputeBuffer(p KernelState, kernel int, slot Slot, b *Buffer)

	// SetComputeTexture records a read/write texture binding on p.
	SetComputeTexture(p KernelState, kernel int, slot Slot, v *Volume)

	// SetComputeKeyword records a program-local keyword toggle on p.
	SetComputeKeyword(p KernelState, name string, enabled bool)
}

// GlobalState is immediate pipeline-wide state visible to all
// subsequent work, implemented by [*Globals].
type GlobalState interface {
	// SetConstantBuffer exposes b as a parameter block at slot for all
	// subsequent dispatches.
	SetConstantBuffer(slot Slot, b *Buffer)

	// SetBuffer exposes b as a read/write resource at slot for all
	// subsequent dispatches.
	SetBuffer(slot Slot, b *Buffer)

	// SetTexture exposes v as a read/write image resource at slot for
	// all subsequent dispatches.
	SetTexture(slot Slot, v *Volume)

	// SetKeyword toggles a session-wide variant selection flag.
	SetKeyword(name string, enabled bool)
}

// GlobalRecorder records pipeline-wide state mutations into a deferred
// command stream, implemented by [*CommandList].
type GlobalRecorder interface {
	// SetGlobalConstantBuffer records a global constant buffer binding.
	SetGlobalConstantBuffer(slot Slot, b *Buffer)

	// SetGlobalBuffer records a global read/write buffer binding.
	SetGlobalBuffer(slot Slot, b *Buffer)

	// SetGlobalTexture records a global read/write texture binding.
	SetGlobalTexture(slot Slot, v *Volume)

	// SetGlobalKeyword records a session-wide keyword toggle.
	SetGlobalKeyword(name string, enabled bool)
}

// MaterialState is a material instance's parameter block, implemented
// by [*Material]. Its method set matches [GlobalState] but the scope is
// instance-local: bindings affect only work that uses this material.
type MaterialState interface {
	// SetConstantBuffer exposes b as a parameter block at slot.
	SetConstantBuffer(slot Slot, b *Buffer)

	// SetBuffer exposes b as a read/write resource at slot.
	SetBuffer(slot Slot, b *Buffer)

	// SetTexture exposes v as a read/write image resource at slot.
	SetTexture(slot Slot, v *Volume)

	// SetKeyword toggles an instance-local variant selection flag.
	SetKeyword(name string, enabled bool)
}

// Target routes the uniform binding vocabulary to one of five
// submission surfaces. The same call site can bind a resource for a
// single dispatch, record it into a command list, publish it globally,
// record a global publish, or write it into a material, just by
// constructing a different Target.
//
// The variant set is closed: the five constructors below are the only
// way to obtain a Target, and external packages cannot add variants.
//
//	Variant               Binds via                          Flag scope
//	DispatchTarget        program state, one entry point     program-local
//	ListDispatchTarget    command list, one entry point      program-local, deferred
//	GlobalTarget          pipeline-wide state                session-wide
//	ListGlobalTarget      command list, pipeline-wide        session-wide, deferred
//	MaterialTarget        material parameter block           instance-local
//
// Targets are ephemeral values, constructed per call sequence and never
// persisted; they do not own the resources they bind. Binding is
// write-only and order-sensitive only against other bindings on the
// same target: a later bind to the same slot supersedes the earlier
// one, and no variant reads bound state back.
//
// Targets do not re-check handle liveness: binding a released or
// never-created handle is a caller bug with undefined behavior. The
// contract keeps the bind path branch-free and allocation-free.
type Target interface {
	// BindConstantBuffer exposes a buffer as a fixed-layout parameter
	// block at the given slot, sized to the buffer's full stride,
	// offset zero.
	BindConstantBuffer(slot Slot, b *Buffer)

	// BindComputeBuffer exposes a buffer as a general read/write
	// resource at the given slot.
	BindComputeBuffer(slot Slot, b *Buffer)

	// BindComputeTexture exposes a volume as a read/write image
	// resource at the given slot.
	BindComputeTexture(slot Slot, v *Volume)

	// BindKeyword toggles a named boolean flag that feeds downstream
	// shader variant selection. The flag's scope is the variant's.
	BindKeyword(name string, enabled bool)

	// isTarget seals the variant set.
	isTarget()
}

// DispatchTarget returns the Target that mutates program state
// directly, scoped to one entry point, for the next dispatch.
func DispatchTarget(p KernelState, kernel int) Target {
	return dispatchTarget{p: p, kernel: kernel}
}

// ListDispatchTarget returns the Target that records program bindings
// for one entry point into a command list, applied in recorded order
// when the list executes.
func ListDispatchTarget(r KernelRecorder, p KernelState, kernel int) Target {
	return listDispatchTarget{r: r, p: p, kernel: kernel}
}

// GlobalTarget returns the Target that mutates pipeline-wide state
// visible to all subsequent work.
func GlobalTarget(g GlobalState) Target {
	return globalTarget{g: g}
}

// ListGlobalTarget returns the Target that records pipeline-wide state
// mutations into a command list, applied in recorded order when the
// list executes.
func ListGlobalTarget(r GlobalRecorder) Target {
	return listGlobalTarget{r: r}
}

// MaterialTarget returns the Target that mutates a specific material
// instance's parameter block.
func MaterialTarget(m MaterialState) Target {
	return materialTarget{m: m}
}

// dispatchTarget binds through immediate program state.
type dispatchTarget struct {
	p      KernelState
	kernel int
}

func (t dispatchTarget) BindConstantBuffer(slot Slot, b *Buffer) {
	t.p.SetConstantBuffer(t.kernel, slot, b)
}

func (t dispatchTarget) BindComputeBuffer(slot Slot, b *Buffer) {
	t.p.SetBuffer(t.kernel, slot, b)
}

func (t dispatchTarget) BindComputeTexture(slot Slot, v *Volume) {
	t.p.SetTexture(t.kernel, slot, v)
}

func (t dispatchTarget) BindKeyword(name string, enabled bool) {
	t.p.SetKeyword(name, enabled)
}

func (dispatchTarget) isTarget() {}

// listDispatchTarget records program bindings into a command list.
type listDispatchTarget struct {
	r      KernelRecorder
	p      KernelState
	kernel int
}

func (t listDispatchTarget) BindConstantBuffer(slot Slot, b *Buffer) {
	t.r.SetComputeConstantBuffer(t.p, t.kernel, slot, b)
}

func (t listDispatchTarget) BindComputeBuffer(slot Slot, b *Buffer) {
	t.r.SetComputeBuffer(t.p, t.kernel, slot, b)
}

func (t listDispatchTarget) BindComputeTexture(slot Slot, v *Volume) {
	t.r.SetComputeTexture(t.p, t.kernel, slot, v)
}

func (t listDispatchTarget) BindKeyword(name string, enabled bool) {
	t.r.SetComputeKeyword(t.p, name, enabled)
}

func (listDispatchTarget) isTarget() {}

// globalTarget binds through immediate pipeline-wide state.
type globalTarget struct {
	g GlobalState
}

func (t globalTarget) BindConstantBuffer(slot Slot, b *Buffer) {
	t.g.SetConstantBuffer(slot, b)
}

func (t globalTarget) BindComputeBuffer(slot Slot, b *Buffer) {
	t.g.SetBuffer(slot, b)
}

func (t globalTarget) BindComputeTexture(slot Slot, v *Volume) {
	t.g.SetTexture(slot, v)
}

func (t globalTarget) BindKeyword(name string, enabled bool) {
	t.g.SetKeyword(name, enabled)
}

func (globalTarget) isTarget() {}

// listGlobalTarget records pipeline-wide mutations into a command list.
type listGlobalTarget struct {
	r GlobalRecorder
}

func (t listGlobalTarget) BindConstantBuffer(slot Slot, b *Buffer) {
	t.r.SetGlobalConstantBuffer(slot, b)
}

func (t listGlobalTarget) BindComputeBuffer(slot Slot, b *Buffer) {
	t.r.SetGlobalBuffer(slot, b)
}

func (t listGlobalTarget) BindComputeTexture(slot Slot, v *Volume) {
	t.r.SetGlobalTexture(slot, v)
}

func (t listGlobalTarget) BindKeyword(name string, enabled bool) {
	t.r.SetGlobalKeyword(name, enabled)
}

func (listGlobalTarget) isTarget() {}

// materialTarget binds through a material's parameter block.
type materialTarget struct {
	m MaterialState
}

func (t materialTarget) BindConstantBuffer(slot Slot, b *Buffer) {
	t.m.SetConstantBuffer(slot, b)
}

func (t materialTarget) BindComputeBuffer(slot Slot, b *Buffer) {
	t.m.SetBuffer(slot, b)
}

func (t materialTarget) BindComputeTexture(slot Slot, v *Volume) {
	t.m.SetTexture(slot, v)
}

func (t materialTarget) BindKeyword(name string, enabled bool) {
	t.m.SetKeyword(name, enabled)
}

func (materialTarget) isTarget() {}
