// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compute manages GPU compute resources for Go.
//
// # Overview
//
// compute is the resource-management layer for GPU compute in the
// GoGPU ecosystem. It provides structured buffers and 3D volume
// textures with diff-based reuse, compute programs with
// keyword-selected kernel variants, and a uniform binding vocabulary
// that routes to five submission surfaces: direct dispatch, recorded
// dispatch, globals, recorded globals, and materials.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/compute"
//		"github.com/gogpu/compute/backend/native"
//	)
//
//	dev, err := native.Open()
//	// handle err
//	defer dev.Close()
//
//	sess, err := compute.NewSession(dev)
//	// handle err
//	defer sess.Close()
//
//	// Allocate a structured buffer; the same call later reshapes it
//	// in place, or does nothing when the shape already matches.
//	var positions compute.Buffer
//	changed, err := sess.Resources().CreateBuffer(
//		&positions, "Positions", 1024, 16, compute.BufferStructured)
//
//	// Upload typed data and bind for dispatch.
//	err = compute.PushBufferData(sess, &positions, points)
//	t := compute.DispatchTarget(prog, kernel)
//	t.BindComputeBuffer(compute.SlotOf("positions"), &positions)
//
// # Resource Reuse
//
// Create calls diff the requested shape against the live handle: a
// matching shape is a no-op, a differing shape releases the old
// resource and allocates a new one. The intended pattern is one
// persistent handle per logical resource, reshaped in place across
// its lifetime and released exactly once.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Manager, Buffer, Volume, Target, Program, Globals,
//     Material, CommandList, Session
//   - Device seam: the Device interface; every contract is testable
//     against an in-memory fake
//   - Backend: backend/native drives real hardware via gogpu/wgpu
//
// # Concurrency
//
// The package follows a single-threaded calling model: no internal
// locking, no background goroutines, recorded order is execution
// order. Hosts serialize access per session. SetLogger alone is safe
// to call from any goroutine.
package compute

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
