// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"fmt"
)

// Program errors.
var (
	// ErrNilDesc is returned when a program descriptor is nil.
	ErrNilDesc = errors.New("compute: program descriptor is nil")

	// ErrNoKernels is returned when a program declares no kernels.
	ErrNoKernels = errors.New("compute: program declares no kernels")

	// ErrNoShaderSource is returned when a program has neither SPIR-V
	// words nor WGSL source with a compiler to translate it.
	ErrNoShaderSource = errors.New("compute: no shader source")

	// ErrProgramDestroyed is returned when dispatching a destroyed program.
	ErrProgramDestroyed = errors.New("compute: program has been destroyed")

	// ErrUnknownKernel is returned for a kernel index out of range.
	ErrUnknownKernel = errors.New("compute: unknown kernel")

	// ErrMissingBinding is returned when a dispatch cannot resolve a
	// declared binding to any bound resource.
	ErrMissingBinding = errors.New("compute: binding has no bound resource")

	// ErrDuplicateKernel is returned when two kernels share a name.
	ErrDuplicateKernel = errors.New("compute: duplicate kernel name")

	// ErrDuplicateBinding is returned when a kernel declares the same
	// slot or binding index twice.
	ErrDuplicateBinding = errors.New("compute: duplicate binding")

	// ErrInvalidBinding is returned for a malformed binding declaration.
	ErrInvalidBinding = errors.New("compute: invalid binding declaration")
)

// Compiler translates WGSL source into SPIR-V words. The production
// compiler lives in backend/native; tests substitute a stub.
type Compiler func(wgsl, label string) ([]uint32, error)

// BindingDesc declares one resource binding a kernel consumes. The
// declaration table replaces runtime reflection: it is built once at
// program creation and validated for completeness, and every dispatch
// resolves bound resources against it.
type BindingDesc struct {
	// Slot is the stable identifier resources are bound under.
	Slot Slot

	// Binding is the binding index inside the kernel's bind group.
	Binding uint32

	// Type is the binding's resource class.
	Type BindingType

	// Format is the texel format for storage texture bindings.
	// Ignored for buffer bindings.
	Format TextureFormat
}

// KernelVariant maps a keyword combination to an alternate entry
// point. At dispatch, the first declared variant whose keywords are
// all enabled wins; with no match the kernel's base entry point runs.
type KernelVariant struct {
	// Keywords that must all be enabled for this variant to be chosen.
	Keywords []string

	// EntryPoint is the shader entry point to run for this variant.
	EntryPoint string
}

// KernelDesc declares one dispatchable entry point of a program.
type KernelDesc struct {
	// Name is the kernel's lookup name. Must be unique in the program.
	Name string

	// EntryPoint is the shader entry point function.
	// Defaults to Name when empty.
	EntryPoint string

	// Bindings declares the resources the kernel consumes.
	Bindings []BindingDesc

	// Variants are optional keyword-selected entry point overrides.
	Variants []KernelVariant
}

// ProgramDesc describes a compute program.
type ProgramDesc struct {
	// Label is an optional debug label.
	Label string

	// WGSL is the program source. Requires a [Compiler] (see
	// [WithCompiler]) unless SPIRV is supplied directly.
	WGSL string

	// SPIRV is precompiled shader bytecode. Takes precedence over WGSL.
	SPIRV []uint32

	// Kernels declares the program's dispatchable entry points.
	Kernels []KernelDesc
}

// ProgramOption configures a Program during creation.
type ProgramOption func(*programOptions)

type programOptions struct {
	compiler Compiler
	globals  *Globals
}

// WithCompiler supplies the WGSL compiler used when a descriptor
// carries source instead of SPIR-V words. backend/native exports a
// production compiler.
func WithCompiler(c Compiler) ProgramOption {
	return func(o *programOptions) {
		o.compiler = c
	}
}

// WithGlobalBindings attaches a global binding table. Dispatches
// resolve slots the program has no local binding for against this
// table, and its keywords join variant selection. Programs created
// through a [Session] get the session's table automatically.
func WithGlobalBindings(g *Globals) ProgramOption {
	return func(o *programOptions) {
		o.globals = g
	}
}

// kernel is the per-entry-point state of a program: the binding
// declaration table, the lazily created device objects, and the
// currently bound resources.
type kernel struct {
	name       string
	entryPoint string
	bindings   []BindingDesc
	variants   []KernelVariant

	// Lazily created on first dispatch.
	layout         BindGroupLayoutID
	pipelineLayout PipelineLayoutID
	pipelines      map[string]ComputePipelineID // entry point -> pipeline

	// Bound state, written by SetConstantBuffer/SetBuffer/SetTexture.
	constants map[Slot]*Buffer
	buffers   map[Slot]*Buffer
	textures  map[Slot]*Volume
}

// Program is a compiled compute program with one or more kernels.
// It implements [KernelState]: resources bound through it are
// program-local and consumed by the next dispatch of that kernel.
//
// Binding setters perform no device work and no liveness checks; all
// device interaction happens in [Program.Dispatch].
type Program struct {
	dev     Device
	label   string
	module  ShaderModuleID
	globals *Globals

	kernels []*kernel
	byName  map[string]int

	// keywords is the set of enabled program-local flags.
	keywords map[string]bool

	destroyed bool
}

// NewProgram compiles and validates a compute program on the device.
//
// The descriptor must declare at least one kernel, and either SPIR-V
// words or WGSL source plus a compiler (see [WithCompiler]). Kernel
// names must be unique; within a kernel, slots and binding indices
// must be unique and every declaration complete. Validation failures
// are reported before any device object is created.
func NewProgram(dev Device, desc *ProgramDesc, opts ...ProgramOption) (*Program, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if desc == nil {
		return nil, ErrNilDesc
	}
	if len(desc.Kernels) == 0 {
		return nil, ErrNoKernels
	}

	var o programOptions
	for _, opt := range opts {
		opt(&o)
	}

	kernels := make([]*kernel, 0, len(desc.Kernels))
	byName := make(map[string]int, len(desc.Kernels))
	for i, kd := range desc.Kernels {
		if kd.Name == "" {
			return nil, fmt.Errorf("%w: kernel %d has no name", ErrInvalidBinding, i)
		}
		if _, ok := byName[kd.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKernel, kd.Name)
		}
		if err := validateBindings(kd.Name, kd.Bindings); err != nil {
			return nil, err
		}
		for _, v := range kd.Variants {
			if v.EntryPoint == "" {
				return nil, fmt.Errorf("%w: kernel %q variant has no entry point", ErrInvalidBinding, kd.Name)
			}
		}
		ep := kd.EntryPoint
		if ep == "" {
			ep = kd.Name
		}
		byName[kd.Name] = i
		kernels = append(kernels, &kernel{
			name:       kd.Name,
			entryPoint: ep,
			bindings:   append([]BindingDesc(nil), kd.Bindings...),
			variants:   append([]KernelVariant(nil), kd.Variants...),
			pipelines:  make(map[string]ComputePipelineID),
			constants:  make(map[Slot]*Buffer),
			buffers:    make(map[Slot]*Buffer),
			textures:   make(map[Slot]*Volume),
		})
	}

	spirv := desc.SPIRV
	if len(spirv) == 0 {
		if desc.WGSL == "" || o.compiler == nil {
			return nil, ErrNoShaderSource
		}
		var err error
		spirv, err = o.compiler(desc.WGSL, desc.Label)
		if err != nil {
			return nil, fmt.Errorf("compute: compile program %q: %w", desc.Label, err)
		}
	}

	module, err := dev.CreateShaderModule(spirv, desc.Label)
	if err != nil {
		return nil, fmt.Errorf("compute: create shader module %q: %w", desc.Label, err)
	}

	return &Program{
		dev:      dev,
		label:    desc.Label,
		module:   module,
		globals:  o.globals,
		kernels:  kernels,
		byName:   byName,
		keywords: make(map[string]bool),
	}, nil
}

// validateBindings checks one kernel's declaration table for
// completeness: every entry carries a real slot, a known type, a
// format when the type needs one, and no slot or index repeats.
func validateBindings(kernelName string, bindings []BindingDesc) error {
	slots := make(map[Slot]bool, len(bindings))
	indices := make(map[uint32]bool, len(bindings))
	for _, bd := range bindings {
		if bd.Slot == SlotNone {
			return fmt.Errorf("%w: kernel %q binding %d has no slot", ErrInvalidBinding, kernelName, bd.Binding)
		}
		switch bd.Type {
		case BindingUniformBuffer, BindingStorageBuffer, BindingReadOnlyStorageBuffer:
		case BindingStorageTexture:
			if !bd.Format.valid() {
				return fmt.Errorf("%w: kernel %q slot %q: storage texture needs a format",
					ErrInvalidBinding, kernelName, SlotName(bd.Slot))
			}
		default:
			return fmt.Errorf("%w: kernel %q slot %q: unknown type %s",
				ErrInvalidBinding, kernelName, SlotName(bd.Slot), bd.Type)
		}
		if slots[bd.Slot] {
			return fmt.Errorf("%w: kernel %q slot %q", ErrDuplicateBinding, kernelName, SlotName(bd.Slot))
		}
		if indices[bd.Binding] {
			return fmt.Errorf("%w: kernel %q binding index %d", ErrDuplicateBinding, kernelName, bd.Binding)
		}
		slots[bd.Slot] = true
		indices[bd.Binding] = true
	}
	return nil
}

// Label returns the debug label given at creation.
func (p *Program) Label() string { return p.label }

// KernelCount returns the number of declared kernels.
func (p *Program) KernelCount() int { return len(p.kernels) }

// KernelIndex returns the index of a kernel by name.
func (p *Program) KernelIndex(name string) (int, bool) {
	i, ok := p.byName[name]
	return i, ok
}

// SetConstantBuffer binds b as the parameter block at slot for the
// given kernel. Program-local; the last write to a slot wins.
// The kernel index must be valid (see [Program.KernelIndex]).
func (p *Program) SetConstantBuffer(kernel int, slot Slot, b *Buffer) {
	p.kernels[kernel].constants[slot] = b
}

// SetBuffer binds b as the read/write resource at slot for the given
// kernel. Program-local; the last write to a slot wins.
// The kernel index must be valid (see [Program.KernelIndex]).
func (p *Program) SetBuffer(kernel int, slot Slot, b *Buffer) {
	p.kernels[kernel].buffers[slot] = b
}

// SetTexture binds v as the read/write image resource at slot for the
// given kernel. Program-local; the last write to a slot wins.
// The kernel index must be valid (see [Program.KernelIndex]).
func (p *Program) SetTexture(kernel int, slot Slot, v *Volume) {
	p.kernels[kernel].textures[slot] = v
}

// SetKeyword toggles a program-local variant selection flag.
// The last write wins.
func (p *Program) SetKeyword(name string, enabled bool) {
	if enabled {
		p.keywords[name] = true
	} else {
		delete(p.keywords, name)
	}
}

// ConstantBuffer returns the parameter block bound at slot for the
// kernel, or nil. Program-local state only; global fallbacks are
// resolved at dispatch.
func (p *Program) ConstantBuffer(kernel int, slot Slot) *Buffer {
	return p.kernels[kernel].constants[slot]
}

// ComputeBuffer returns the read/write resource bound at slot for the
// kernel, or nil.
func (p *Program) ComputeBuffer(kernel int, slot Slot) *Buffer {
	return p.kernels[kernel].buffers[slot]
}

// Texture returns the image resource bound at slot for the kernel,
// or nil.
func (p *Program) Texture(kernel int, slot Slot) *Volume {
	return p.kernels[kernel].textures[slot]
}

// Keyword reports whether a flag is enabled for this program, either
// program-locally or through the attached global table.
func (p *Program) Keyword(name string) bool {
	if p.keywords[name] {
		return true
	}
	return p.globals != nil && p.globals.Keyword(name)
}

// Dispatch resolves the kernel's bindings, selects the pipeline
// variant for the enabled keywords, encodes one compute pass of
// x*y*z workgroups, and returns. Submission to the device is the
// session's job (see [Session.Submit]).
//
// Resolution order per slot: program-local state, then the attached
// global table. A declared binding with no resource in either place
// fails with [ErrMissingBinding].
func (p *Program) Dispatch(kernel int, x, y, z uint32) error {
	return p.dispatch(kernel, nil, x, y, z)
}

// DispatchWith dispatches like [Program.Dispatch] with a material's
// parameter block overlaid for this one dispatch. Resolution order per
// slot: material, then program-local state, then the global table;
// material keywords join variant selection the same way.
func (p *Program) DispatchWith(mat *Material, kernel int, x, y, z uint32) error {
	return p.dispatch(kernel, mat, x, y, z)
}

func (p *Program) dispatch(ki int, mat *Material, x, y, z uint32) error {
	if p.destroyed {
		return ErrProgramDestroyed
	}
	if ki < 0 || ki >= len(p.kernels) {
		return fmt.Errorf("%w: index %d", ErrUnknownKernel, ki)
	}
	k := p.kernels[ki]

	ep := p.selectVariant(k, mat)
	pipeline, err := p.ensurePipeline(k, ep)
	if err != nil {
		return err
	}

	entries, err := p.resolveBindings(k, mat)
	if err != nil {
		return err
	}

	bg, err := p.dev.CreateBindGroup(k.layout, entries)
	if err != nil {
		return fmt.Errorf("compute: bind group for kernel %q: %w", k.name, err)
	}

	pass := p.dev.BeginComputePass()
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bg)
	pass.Dispatch(x, y, z)
	pass.End()

	// Safe immediately: Device defers destruction until the recorded
	// work completes.
	p.dev.DestroyBindGroup(bg)

	Logger().Debug("compute: dispatch",
		"program", p.label,
		"kernel", k.name,
		"entry", ep,
		"groups", [3]uint32{x, y, z})
	return nil
}

// selectVariant picks the entry point for the enabled keyword set:
// the first declared variant whose keywords are all enabled, else the
// kernel's base entry point. Keyword scopes union: material (when
// present), program-local, global.
func (p *Program) selectVariant(k *kernel, mat *Material) string {
	if len(k.variants) == 0 {
		return k.entryPoint
	}
	enabled := func(name string) bool {
		if mat != nil && mat.Keyword(name) {
			return true
		}
		return p.Keyword(name)
	}
	for _, v := range k.variants {
		all := true
		for _, kw := range v.Keywords {
			if !enabled(kw) {
				all = false
				break
			}
		}
		if all {
			Logger().Debug("compute: variant selected",
				"program", p.label,
				"kernel", k.name,
				"entry", v.EntryPoint,
				"keywords", v.Keywords)
			return v.EntryPoint
		}
	}
	return k.entryPoint
}

// ensurePipeline lazily creates the kernel's layout objects and the
// pipeline for the chosen entry point.
func (p *Program) ensurePipeline(k *kernel, entryPoint string) (ComputePipelineID, error) {
	if k.layout == InvalidID {
		entries := make([]BindGroupLayoutEntry, len(k.bindings))
		for i, bd := range k.bindings {
			entries[i] = BindGroupLayoutEntry{
				Binding: bd.Binding,
				Type:    bd.Type,
				Format:  bd.Format,
			}
		}
		layout, err := p.dev.CreateBindGroupLayout(&BindGroupLayoutDesc{
			Label:   p.label + "/" + k.name,
			Entries: entries,
		})
		if err != nil {
			return InvalidID, fmt.Errorf("compute: bind group layout for kernel %q: %w", k.name, err)
		}
		k.layout = layout
	}
	if k.pipelineLayout == InvalidID {
		pl, err := p.dev.CreatePipelineLayout([]BindGroupLayoutID{k.layout})
		if err != nil {
			return InvalidID, fmt.Errorf("compute: pipeline layout for kernel %q: %w", k.name, err)
		}
		k.pipelineLayout = pl
	}
	if pipeline, ok := k.pipelines[entryPoint]; ok {
		return pipeline, nil
	}
	pipeline, err := p.dev.CreateComputePipeline(&ComputePipelineDesc{
		Label:        p.label + "/" + k.name + "/" + entryPoint,
		Layout:       k.pipelineLayout,
		ShaderModule: p.module,
		EntryPoint:   entryPoint,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("compute: pipeline for kernel %q entry %q: %w", k.name, entryPoint, err)
	}
	k.pipelines[entryPoint] = pipeline
	return pipeline, nil
}

// resolveBindings maps the kernel's declaration table to bind group
// entries from the bound state, falling back material -> program ->
// globals per slot.
func (p *Program) resolveBindings(k *kernel, mat *Material) ([]BindGroupEntry, error) {
	entries := make([]BindGroupEntry, 0, len(k.bindings))
	for _, bd := range k.bindings {
		switch bd.Type {
		case BindingUniformBuffer:
			b := k.constants[bd.Slot]
			if mat != nil && mat.ConstantBuffer(bd.Slot) != nil {
				b = mat.ConstantBuffer(bd.Slot)
			}
			if b == nil && p.globals != nil {
				b = p.globals.ConstantBuffer(bd.Slot)
			}
			if b == nil {
				return nil, p.missing(k, bd)
			}
			// A parameter block is one element: bind the full stride at
			// offset zero.
			entries = append(entries, BindGroupEntry{
				Binding: bd.Binding,
				Buffer:  b.id,
				Offset:  0,
				Size:    uint64(b.stride),
			})
		case BindingStorageBuffer, BindingReadOnlyStorageBuffer:
			b := k.buffers[bd.Slot]
			if mat != nil && mat.ComputeBuffer(bd.Slot) != nil {
				b = mat.ComputeBuffer(bd.Slot)
			}
			if b == nil && p.globals != nil {
				b = p.globals.ComputeBuffer(bd.Slot)
			}
			if b == nil {
				return nil, p.missing(k, bd)
			}
			entries = append(entries, BindGroupEntry{
				Binding: bd.Binding,
				Buffer:  b.id,
			})
		case BindingStorageTexture:
			v := k.textures[bd.Slot]
			if mat != nil && mat.Texture(bd.Slot) != nil {
				v = mat.Texture(bd.Slot)
			}
			if v == nil && p.globals != nil {
				v = p.globals.Texture(bd.Slot)
			}
			if v == nil {
				return nil, p.missing(k, bd)
			}
			entries = append(entries, BindGroupEntry{
				Binding: bd.Binding,
				Texture: v.id,
			})
		}
	}
	return entries, nil
}

func (p *Program) missing(k *kernel, bd BindingDesc) error {
	return fmt.Errorf("%w: program %q kernel %q slot %q (%s)",
		ErrMissingBinding, p.label, k.name, SlotName(bd.Slot), bd.Type)
}

// Destroy releases every device object the program created: pipelines,
// layouts, and the shader module. Destroy is idempotent. Bound state
// is cleared; the handles that were bound are not touched, they belong
// to their manager.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}
	for _, k := range p.kernels {
		for _, pipeline := range k.pipelines {
			p.dev.DestroyComputePipeline(pipeline)
		}
		clear(k.pipelines)
		if k.pipelineLayout != InvalidID {
			p.dev.DestroyPipelineLayout(k.pipelineLayout)
			k.pipelineLayout = InvalidID
		}
		if k.layout != InvalidID {
			p.dev.DestroyBindGroupLayout(k.layout)
			k.layout = InvalidID
		}
		clear(k.constants)
		clear(k.buffers)
		clear(k.textures)
	}
	p.dev.DestroyShaderModule(p.module)
	p.module = InvalidID
	p.destroyed = true
}
