// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// Stats is a snapshot of a [Manager]'s allocation accounting.
// Counters are maintained on the calling thread; a snapshot taken
// between operations is exact.
type Stats struct {
	// BuffersLive is the number of currently live buffer handles.
	BuffersLive int

	// VolumesLive is the number of currently live volume handles.
	VolumesLive int

	// BufferBytes is the total bytes held by live buffers.
	BufferBytes uint64

	// VolumeBytes is the total bytes held by live volumes.
	VolumeBytes uint64

	// PeakBufferBytes is the high-water mark of BufferBytes.
	PeakBufferBytes uint64

	// PeakVolumeBytes is the high-water mark of VolumeBytes.
	PeakVolumeBytes uint64

	// BufferAllocs counts buffer allocations since the manager was created.
	BufferAllocs uint64

	// VolumeAllocs counts volume allocations since the manager was created.
	VolumeAllocs uint64

	// Recreates counts allocations that replaced a live handle because
	// its shape or format changed.
	Recreates uint64

	// Releases counts explicit releases (including those performed as
	// part of a recreate).
	Releases uint64
}

// String returns a compact one-line summary suitable for logs.
func (s Stats) String() string {
	return fmt.Sprintf("Resources[%d buffers/%.1f MB, %d volumes/%.1f MB, %d allocs, %d recreates, %d releases]",
		s.BuffersLive,
		float64(s.BufferBytes)/(1024*1024),
		s.VolumesLive,
		float64(s.VolumeBytes)/(1024*1024),
		s.BufferAllocs+s.VolumeAllocs,
		s.Recreates,
		s.Releases)
}
