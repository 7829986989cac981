// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrNilSession is returned when executing against a nil session.
	ErrNilSession = errors.New("compute: session is nil")

	// ErrSessionClosed is returned when using a closed session.
	ErrSessionClosed = errors.New("compute: session is closed")

	// ErrNilProgram is returned when a recorded dispatch names no program.
	ErrNilProgram = errors.New("compute: program is nil")
)

// Session ties a device to the state shared by everything dispatched
// on it: the global binding table and the resource manager. It is the
// immediate [TransferContext] and the execution target of command
// lists.
//
// A session follows the package's single-threaded calling model. It
// does not own the device: closing the session releases the resources
// it manages but leaves the device open for the caller.
type Session struct {
	dev     Device
	globals *Globals
	manager *Manager
	closed  bool
}

// NewSession creates a session over a device. Options are shared with
// [NewManager]; [WithGlobals] adopts an existing global table instead
// of creating a fresh one.
func NewSession(dev Device, opts ...Option) (*Session, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := o.globals
	if g == nil {
		g = NewGlobals()
	}
	m, err := NewManager(dev, opts...)
	if err != nil {
		return nil, err
	}
	Logger().Info("compute: session open",
		"maxBuffer", dev.MaxBufferSize(),
		"maxTexture3D", dev.MaxTextureDimension3D())
	return &Session{
		dev:     dev,
		globals: g,
		manager: m,
	}, nil
}

// Device returns the device the session runs on.
func (s *Session) Device() Device { return s.dev }

// Resources returns the session's resource manager.
func (s *Session) Resources() *Manager { return s.manager }

// Globals returns the session's global binding table.
func (s *Session) Globals() *Globals { return s.globals }

// Stats returns a snapshot of the resource manager's counters.
func (s *Session) Stats() Stats { return s.manager.Stats() }

// CreateProgram creates a program on the session's device with the
// session's global table attached, so dispatches fall back to global
// bindings and global keywords join variant selection.
func (s *Session) CreateProgram(desc *ProgramDesc, opts ...ProgramOption) (*Program, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	merged := append([]ProgramOption{WithGlobalBindings(s.globals)}, opts...)
	return NewProgram(s.dev, desc, merged...)
}

// PushBytes uploads raw bytes into b at offset zero, immediately.
// Part of [TransferContext]; prefer the typed [PushBufferData].
func (s *Session) PushBytes(b *Buffer, data []byte) error {
	if s.closed {
		return ErrSessionClosed
	}
	if b == nil {
		return ErrNilHandle
	}
	if !b.Valid() {
		return ErrEmptyHandle
	}
	if uint64(len(data)) > b.Size() {
		return fmt.Errorf("%w: %d bytes into buffer %q of %d bytes",
			ErrTransferTooLarge, len(data), b.Name(), b.Size())
	}
	s.dev.WriteBuffer(b.id, 0, data)
	return nil
}

// PushConstantBytes uploads raw bytes into b through a transient
// staging buffer: the staging buffer is created, filled, copied into
// b at offset zero, and discarded before returning.
// Part of [TransferContext]; prefer the typed [PushConstantData].
func (s *Session) PushConstantBytes(b *Buffer, data []byte) error {
	if s.closed {
		return ErrSessionClosed
	}
	if b == nil {
		return ErrNilHandle
	}
	if !b.Valid() {
		return ErrEmptyHandle
	}
	if uint64(len(data)) > b.Size() {
		return fmt.Errorf("%w: %d bytes into buffer %q of %d bytes",
			ErrTransferTooLarge, len(data), b.Name(), b.Size())
	}

	// Copies are 4-byte aligned; pad the tail when needed.
	size := (uint64(len(data)) + 3) &^ 3
	if size != uint64(len(data)) {
		padded := make([]byte, size)
		copy(padded, data)
		data = padded
	}

	staging, err := s.dev.CreateBuffer(&BufferDesc{
		Label: "staging/" + b.Name(),
		Size:  size,
		Usage: BufferStaging.usage(),
	})
	if err != nil {
		return fmt.Errorf("compute: staging buffer for %q: %w", b.Name(), err)
	}
	s.dev.WriteBuffer(staging, 0, data)
	s.dev.CopyBuffer(staging, 0, b.id, 0, size)
	s.dev.DestroyBuffer(staging)
	return nil
}

// Submit flushes all work recorded on the device since the last
// submit.
func (s *Session) Submit() error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.dev.Submit()
}

// WaitIdle blocks until the device finishes all submitted work.
// Call before reading back results that depend on prior dispatches.
func (s *Session) WaitIdle() {
	if s.closed {
		return
	}
	s.dev.WaitIdle()
}

// Close waits for the device to go idle, releases every resource the
// session's manager still holds (logging leaked handle names), and
// marks the session unusable. Close is idempotent. The device itself
// stays open.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.dev.WaitIdle()
	s.manager.Close()
	s.closed = true
	Logger().Info("compute: session closed")
}
