// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"fmt"
	"unsafe"
)

// Transfer errors.
var (
	// ErrEmptyHandle is returned when a transfer or copy names a handle
	// with no live resource behind it.
	ErrEmptyHandle = errors.New("compute: handle has no live resource")

	// ErrTransferTooLarge is returned when pushed data does not fit the
	// destination buffer.
	ErrTransferTooLarge = errors.New("compute: transfer exceeds buffer size")

	// ErrTransferSizeMismatch is returned when pushed volume data does
	// not cover the destination volume exactly.
	ErrTransferSizeMismatch = errors.New("compute: transfer must cover the volume exactly")
)

// TransferContext is the destination of a data push. *Session runs the
// transfer on the device immediately; *CommandList records the same
// steps and runs them at its recorded position during Execute. The
// helpers [PushBufferData] and [PushConstantData] work identically
// against either.
type TransferContext interface {
	// PushBytes uploads raw bytes into b at offset zero.
	PushBytes(b *Buffer, data []byte) error

	// PushConstantBytes uploads raw bytes into b through a transient
	// staging buffer that is discarded right after the copy.
	PushConstantBytes(b *Buffer, data []byte) error
}

// PushBufferData pushes a typed contiguous block into a buffer.
// T must be a fixed-size value type without pointers, laid out the way
// the shader expects. Pushing an empty slice is a no-op.
func PushBufferData[T any](ctx TransferContext, b *Buffer, data []T) error {
	if len(data) == 0 {
		return nil
	}
	return ctx.PushBytes(b, sliceBytes(data))
}

// PushConstantData pushes a single typed value into a parameter block.
// The value travels through a transient staging buffer: stage, push,
// discard. T must be a fixed-size value type without pointers.
func PushConstantData[T any](ctx TransferContext, b *Buffer, value T) error {
	return ctx.PushConstantBytes(b, valueBytes(&value))
}

// PushVolumeData pushes a typed contiguous block into a volume in
// x-major, then y, then z order. The data must cover the volume
// exactly; a volume write has no partial form. Volume uploads are
// inherently immediate, so the helper takes the session directly,
// mirroring [ReadVolumeData].
func PushVolumeData[T any](s *Session, v *Volume, data []T) error {
	if s.closed {
		return ErrSessionClosed
	}
	if v == nil {
		return ErrNilHandle
	}
	if !v.Valid() {
		return ErrEmptyHandle
	}
	raw := sliceBytes(data)
	if uint64(len(raw)) != v.Size() {
		return fmt.Errorf("%w: %d bytes into volume %q of %d bytes",
			ErrTransferSizeMismatch, len(raw), v.Name(), v.Size())
	}
	s.dev.WriteTexture3D(v.id, raw)
	return nil
}

// ReadBufferData reads a buffer's full contents back as a typed
// slice. Readback is inherently immediate, so it takes the session
// directly; call [Session.Submit] and [Session.WaitIdle] first when
// the contents depend on pending dispatches.
func ReadBufferData[T any](s *Session, b *Buffer) ([]T, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if b == nil {
		return nil, ErrNilHandle
	}
	if !b.Valid() {
		return nil, ErrEmptyHandle
	}
	raw, err := s.dev.ReadBuffer(b.id, 0, b.Size())
	if err != nil {
		return nil, err
	}
	var zero T
	out := make([]T, uintptr(len(raw))/unsafe.Sizeof(zero))
	copy(sliceBytes(out), raw)
	return out, nil
}

// ReadVolumeData reads a volume's full contents back as a typed
// slice in x-major, then y, then z order. Same submission caveats as
// [ReadBufferData].
func ReadVolumeData[T any](s *Session, v *Volume) ([]T, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if v == nil {
		return nil, ErrNilHandle
	}
	if !v.Valid() {
		return nil, ErrEmptyHandle
	}
	raw, err := s.dev.ReadTexture3D(v.id)
	if err != nil {
		return nil, err
	}
	var zero T
	out := make([]T, uintptr(len(raw))/unsafe.Sizeof(zero))
	copy(sliceBytes(out), raw)
	return out, nil
}

// sliceBytes reinterprets a typed slice as its raw bytes.
// The result aliases data and must not outlive it.
func sliceBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	n := uintptr(len(data)) * unsafe.Sizeof(data[0])
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), n) //nolint:gosec // safe struct serialization
}

// valueBytes reinterprets a single value as its raw bytes.
// The result aliases *v and must not outlive it.
func valueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v)) //nolint:gosec // safe struct serialization
}
