// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"fmt"
)

// Manager errors.
var (
	// ErrNilDevice is returned when constructing over a nil device.
	ErrNilDevice = errors.New("compute: device is nil")

	// ErrNilHandle is returned when a nil handle slot is passed in.
	ErrNilHandle = errors.New("compute: handle slot is nil")

	// ErrManagerClosed is returned when allocating through a closed manager.
	ErrManagerClosed = errors.New("compute: manager is closed")

	// ErrInvalidCount is returned for a non-positive element count.
	ErrInvalidCount = errors.New("compute: element count must be at least 1")

	// ErrInvalidStride is returned for a stride that is not a positive
	// multiple of 4 bytes.
	ErrInvalidStride = errors.New("compute: element stride must be a positive multiple of 4")

	// ErrInvalidKind is returned for an unknown buffer kind.
	ErrInvalidKind = errors.New("compute: unknown buffer kind")

	// ErrInvalidCells is returned for a cell count that is non-positive
	// or exceeds the device's 3D texture limit.
	ErrInvalidCells = errors.New("compute: invalid volume cell count")

	// ErrInvalidFormat is returned for an unknown volume format or kind.
	ErrInvalidFormat = errors.New("compute: unknown volume format")
)

// Manager owns the lifecycle of GPU buffers and volumes. It applies a
// change-detection policy on every create call: an allocation is only
// performed when the requested shape differs from what the handle
// already holds, so callers can re-request their resources every frame
// without re-allocating device memory.
//
// The Manager is the sole owner of the handles it fills in. Callers
// keep the handle slots but must route release through the Manager.
//
// Allocation and release are the only operations in this package that
// touch device memory.
type Manager struct {
	dev         Device
	labelPrefix string

	// Live handle registries, keyed by device ID, holding display
	// names for leak reporting at Close.
	buffers map[BufferID]string
	volumes map[TextureID]string

	bufferBytes     uint64
	volumeBytes     uint64
	peakBufferBytes uint64
	peakVolumeBytes uint64
	bufferAllocs    uint64
	volumeAllocs    uint64
	recreates       uint64
	releases        uint64

	closed bool
}

// NewManager creates a resource lifecycle manager over the device.
func NewManager(dev Device, opts ...Option) (*Manager, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		dev:         dev,
		labelPrefix: o.labelPrefix,
		buffers:     make(map[BufferID]string),
		volumes:     make(map[TextureID]string),
	}, nil
}

// CreateBuffer ensures b holds a buffer of count elements of stride
// bytes, allocating only when the shape actually changed.
//
// If b already holds a live allocation with the same (count, stride),
// nothing happens and CreateBuffer returns (false, nil). Otherwise any
// existing allocation is released, a new one is created with the usage
// derived from kind and tagged with name, and CreateBuffer returns
// (true, nil).
//
// The reuse check compares (count, stride) only; kind is applied at
// allocation time. A caller that needs the same shape under a new kind
// must release the handle first.
//
// Allocation failure is fatal at this layer: the device error is
// wrapped and returned, never retried, and the slot is left cleared.
func (m *Manager) CreateBuffer(b *Buffer, name string, count, stride int, kind BufferKind) (bool, error) {
	if b == nil {
		return false, ErrNilHandle
	}
	if m.closed {
		return false, ErrManagerClosed
	}
	if count < 1 {
		return false, ErrInvalidCount
	}
	if stride < 1 || stride%4 != 0 {
		return false, ErrInvalidStride
	}
	if !kind.valid() {
		return false, ErrInvalidKind
	}
	if b.id != InvalidID && b.count == count && b.stride == stride {
		return false, nil
	}

	size := uint64(count) * uint64(stride)
	if max := m.dev.MaxBufferSize(); size > max {
		return false, fmt.Errorf("compute: buffer %q: %d bytes exceeds device limit %d", name, size, max)
	}

	recreate := b.id != InvalidID
	m.ReleaseBuffer(b)

	id, err := m.dev.CreateBuffer(&BufferDesc{
		Label: m.label(name),
		Size:  size,
		Usage: kind.usage(),
	})
	if err != nil {
		return false, fmt.Errorf("compute: allocate buffer %q (%d x %d bytes): %w", name, count, stride, err)
	}

	*b = Buffer{id: id, name: name, count: count, stride: stride, kind: kind}
	m.buffers[id] = name
	m.bufferAllocs++
	if recreate {
		m.recreates++
	}
	m.bufferBytes += size
	if m.bufferBytes > m.peakBufferBytes {
		m.peakBufferBytes = m.bufferBytes
	}

	Logger().Debug("compute: buffer allocated",
		"name", name,
		"count", count,
		"stride", stride,
		"bytes", size,
		"kind", kind.String(),
		"recreated", recreate)
	return true, nil
}

// ReleaseBuffer releases the allocation held by b and clears the slot.
// Releasing an empty or nil slot is a no-op, so ReleaseBuffer is
// idempotent; a create call after a release always takes the
// "recreated" path.
func (m *Manager) ReleaseBuffer(b *Buffer) {
	if !b.Valid() {
		return
	}
	if !m.closed {
		m.dev.DestroyBuffer(b.id)
		delete(m.buffers, b.id)
		m.bufferBytes -= b.Size()
		m.releases++
	}
	b.clear()
}

// CreateVolume ensures v holds a cubic 3D texture of cells^3 texels in
// the format the kind resolves to, allocating only when (cells, format)
// actually changed. See [Manager.CreateVolumeFormat] for the precise
// format variant; the semantics are identical.
func (m *Manager) CreateVolume(v *Volume, name string, cells int, kind VolumeKind) (bool, error) {
	format := kind.Format()
	if format == TextureFormatUndefined {
		return false, fmt.Errorf("%w: kind %s", ErrInvalidFormat, kind)
	}
	return m.createVolume(v, name, cells, format)
}

// CreateVolumeFormat ensures v holds a cubic 3D texture of cells^3
// texels in the given precise format, allocating only when
// (cells, format) actually changed.
//
// Every volume is created 3-dimensional, read/write enabled for
// compute access, clamped at boundaries, single-sample, with a single
// mip level, excluded from any engine-side lifetime tracking, and
// tagged with name.
//
// Allocation failure is fatal at this layer: the device error is
// wrapped and returned, never retried, and the slot is left cleared.
func (m *Manager) CreateVolumeFormat(v *Volume, name string, cells int, format TextureFormat) (bool, error) {
	if !format.valid() {
		return false, fmt.Errorf("%w: format %s", ErrInvalidFormat, format)
	}
	return m.createVolume(v, name, cells, format)
}

func (m *Manager) createVolume(v *Volume, name string, cells int, format TextureFormat) (bool, error) {
	if v == nil {
		return false, ErrNilHandle
	}
	if m.closed {
		return false, ErrManagerClosed
	}
	if cells < 1 {
		return false, ErrInvalidCells
	}
	if max := m.dev.MaxTextureDimension3D(); cells > max {
		return false, fmt.Errorf("%w: %d cells exceeds device limit %d", ErrInvalidCells, cells, max)
	}
	if v.id != InvalidID && v.cells == cells && v.format == format {
		return false, nil
	}

	recreate := v.id != InvalidID
	m.ReleaseVolume(v)

	id, err := m.dev.CreateTexture3D(&TextureDesc{
		Label:  m.label(name),
		Cells:  cells,
		Format: format,
		Usage:  TextureUsageStorageBinding | TextureUsageTextureBinding | TextureUsageCopySrc | TextureUsageCopyDst,
	})
	if err != nil {
		return false, fmt.Errorf("compute: allocate volume %q (%d^3 %s): %w", name, cells, format, err)
	}

	*v = Volume{id: id, name: name, cells: cells, format: format}
	m.volumes[id] = name
	m.volumeAllocs++
	if recreate {
		m.recreates++
	}
	m.volumeBytes += v.Size()
	if m.volumeBytes > m.peakVolumeBytes {
		m.peakVolumeBytes = m.volumeBytes
	}

	Logger().Debug("compute: volume allocated",
		"name", name,
		"cells", cells,
		"format", format.String(),
		"bytes", v.Size(),
		"recreated", recreate)
	return true, nil
}

// ReleaseVolume releases the allocation held by v and clears the slot.
// Releasing an empty or nil slot is a no-op, so ReleaseVolume is
// idempotent; a create call after a release always takes the
// "recreated" path.
func (m *Manager) ReleaseVolume(v *Volume) {
	if !v.Valid() {
		return
	}
	if !m.closed {
		m.dev.DestroyTexture(v.id)
		delete(m.volumes, v.id)
		m.volumeBytes -= v.Size()
		m.releases++
	}
	v.clear()
}

// Stats returns a snapshot of the manager's allocation accounting.
func (m *Manager) Stats() Stats {
	return Stats{
		BuffersLive:     len(m.buffers),
		VolumesLive:     len(m.volumes),
		BufferBytes:     m.bufferBytes,
		VolumeBytes:     m.volumeBytes,
		PeakBufferBytes: m.peakBufferBytes,
		PeakVolumeBytes: m.peakVolumeBytes,
		BufferAllocs:    m.bufferAllocs,
		VolumeAllocs:    m.volumeAllocs,
		Recreates:       m.recreates,
		Releases:        m.releases,
	}
}

// Close releases every allocation still registered with the manager
// and logs their display names at Warn level; handles that are live at
// Close are caller leaks. Close is idempotent. After Close, create
// calls return ErrManagerClosed and release calls only clear slots.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	if len(m.buffers) > 0 || len(m.volumes) > 0 {
		names := make([]string, 0, len(m.buffers)+len(m.volumes))
		for _, name := range m.buffers {
			names = append(names, name)
		}
		for _, name := range m.volumes {
			names = append(names, name)
		}
		Logger().Warn("compute: handles still live at close",
			"buffers", len(m.buffers),
			"volumes", len(m.volumes),
			"names", names)
	}
	for id := range m.buffers {
		m.dev.DestroyBuffer(id)
	}
	for id := range m.volumes {
		m.dev.DestroyTexture(id)
	}
	m.buffers = make(map[BufferID]string)
	m.volumes = make(map[TextureID]string)
	m.bufferBytes = 0
	m.volumeBytes = 0
	m.closed = true
}

// label applies the configured prefix to a display name.
func (m *Manager) label(name string) string {
	if m.labelPrefix == "" {
		return name
	}
	return m.labelPrefix + "/" + name
}
