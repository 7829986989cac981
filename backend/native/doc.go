// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the compute.Device interface on a real GPU
// through the gogpu/wgpu hardware abstraction layer.
//
// # Opening a device
//
// Use Open to probe the registered hal backends and claim the best
// available adapter (discrete GPU first, then integrated):
//
//	dev, err := native.Open()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	session, err := compute.NewSession(dev)
//
// When the application already drives a GPU elsewhere, share its device
// and queue instead of opening a second one:
//
//	dev, err := native.FromProvider(provider) // gpucontext.DeviceProvider
//
// # Shader compilation
//
// The exported Compiler compiles WGSL to SPIR-V with the pure Go naga
// compiler and caches results by source hash. Plug it into program
// creation so descriptors can carry WGSL source instead of SPIR-V:
//
//	prog, err := session.CreateProgram(desc, compute.WithCompiler(native.Compiler))
//
// Build with the nogpu tag to exclude this package's GPU code paths.
package native
