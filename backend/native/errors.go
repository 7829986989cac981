// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native compute backend.
var (
	// ErrNoGPU is returned by Open when no hal backend is registered
	// or no adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNoProvider is returned by FromProvider when the provider does
	// not expose a hal device and queue.
	ErrNoProvider = errors.New("native: provider does not expose a hal device")

	// ErrUnknownResource is returned when an operation references an
	// ID that was never created or has already been destroyed.
	ErrUnknownResource = errors.New("native: unknown resource")
)
