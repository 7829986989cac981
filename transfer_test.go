// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"testing"
)

type testParticle struct {
	X, Y, Z, W float32
}

// TestPushBufferData tests the immediate typed upload path.
func TestPushBufferData(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var buf Buffer
	if _, err := s.Resources().CreateBuffer(&buf, "Particles", 3, 16, BufferStructured); err != nil {
		t.Fatal(err)
	}

	in := []testParticle{
		{X: 1, Y: 2, Z: 3, W: 4},
		{X: 5, Y: 6, Z: 7, W: 8},
		{X: 9, Y: 10, Z: 11, W: 12},
	}
	if err := PushBufferData(s, &buf, in); err != nil {
		t.Fatalf("PushBufferData() error = %v", err)
	}

	out, err := ReadBufferData[testParticle](s, &buf)
	if err != nil {
		t.Fatalf("ReadBufferData() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("read %d elements, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

// TestPushBufferDataEmpty tests that an empty push is a no-op.
func TestPushBufferDataEmpty(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var buf Buffer
	if _, err := s.Resources().CreateBuffer(&buf, "Untouched", 4, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}
	opsBefore := len(d.ops)
	if err := PushBufferData(s, &buf, []float32(nil)); err != nil {
		t.Fatalf("PushBufferData(empty) error = %v", err)
	}
	if len(d.ops) != opsBefore {
		t.Error("empty push touched the device")
	}
}

// TestPushBufferDataValidation tests the error paths of an immediate
// push.
func TestPushBufferDataValidation(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	var buf Buffer
	if _, err := s.Resources().CreateBuffer(&buf, "Checked", 2, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}

	if err := PushBufferData[float32](s, nil, []float32{1}); !errors.Is(err, ErrNilHandle) {
		t.Errorf("nil handle error = %v, want ErrNilHandle", err)
	}
	if err := PushBufferData(s, &buf, []float32{1, 2, 3}); !errors.Is(err, ErrTransferTooLarge) {
		t.Errorf("oversized push error = %v, want ErrTransferTooLarge", err)
	}

	var released Buffer
	if _, err := s.Resources().CreateBuffer(&released, "Gone", 2, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}
	s.Resources().ReleaseBuffer(&released)
	if err := PushBufferData(s, &released, []float32{1}); !errors.Is(err, ErrEmptyHandle) {
		t.Errorf("released handle error = %v, want ErrEmptyHandle", err)
	}

	s.Close()
	if err := PushBufferData(s, &buf, []float32{1}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("closed session error = %v, want ErrSessionClosed", err)
	}
}

// TestPushConstantData tests the stage-copy-discard upload and its
// device op sequence.
func TestPushConstantData(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var params Buffer
	if _, err := s.Resources().CreateBuffer(&params, "Params", 1, 16, BufferConstant); err != nil {
		t.Fatal(err)
	}
	opsBefore := len(d.ops)

	type simParams struct {
		Dt      float32
		Damping float32
		Count   uint32
		Pad     uint32
	}
	if err := PushConstantData(s, &params, simParams{Dt: 0.016, Damping: 0.99, Count: 4096}); err != nil {
		t.Fatalf("PushConstantData() error = %v", err)
	}

	want := []string{
		"create staging/Params",
		"write staging/Params",
		"copy staging/Params->Params",
		"destroy staging/Params",
	}
	got := d.ops[opsBefore:]
	if len(got) != len(want) {
		t.Fatalf("device ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, got[i], want[i])
		}
	}

	out, err := ReadBufferData[simParams](s, &params)
	if err != nil {
		t.Fatalf("ReadBufferData() error = %v", err)
	}
	if out[0].Dt != 0.016 || out[0].Count != 4096 {
		t.Errorf("params = %+v, want Dt 0.016 Count 4096", out[0])
	}

	// No staging buffer outlives the push.
	if len(d.buffers) != 1 {
		t.Errorf("%d buffers live after push, want 1", len(d.buffers))
	}
}

// TestPushConstantDataPadding tests that an unaligned payload is
// padded with zero bytes up to the 4-byte copy granularity.
func TestPushConstantDataPadding(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var dst Buffer
	if _, err := s.Resources().CreateBuffer(&dst, "Odd", 1, 8, BufferConstant); err != nil {
		t.Fatal(err)
	}
	// Pre-fill so the padded tail is observable.
	if err := s.PushBytes(&dst, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}); err != nil {
		t.Fatal(err)
	}

	if err := PushConstantData(s, &dst, [5]byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("PushConstantData() error = %v", err)
	}
	out, err := ReadBufferData[byte](s, &dst)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5, 0, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, out[i], want[i])
			break
		}
	}
}

// TestPushConstantDataValidation tests the error paths of a staged
// push.
func TestPushConstantDataValidation(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var params Buffer
	if _, err := s.Resources().CreateBuffer(&params, "Small", 1, 4, BufferConstant); err != nil {
		t.Fatal(err)
	}

	if err := PushConstantData[float32](s, nil, 1); !errors.Is(err, ErrNilHandle) {
		t.Errorf("nil handle error = %v, want ErrNilHandle", err)
	}
	if err := PushConstantData(s, &params, [8]byte{}); !errors.Is(err, ErrTransferTooLarge) {
		t.Errorf("oversized value error = %v, want ErrTransferTooLarge", err)
	}

	// A failed staging allocation surfaces and leaves no staging buffer.
	d.failBuffers = true
	if err := PushConstantData(s, &params, float32(1)); !errors.Is(err, errDeviceOOM) {
		t.Errorf("staging failure error = %v, want wrapped device error", err)
	}
	d.failBuffers = false
	if len(d.buffers) != 1 {
		t.Errorf("%d buffers live after failed staging, want 1", len(d.buffers))
	}
}

// TestReadBufferDataValidation tests readback error paths.
func TestReadBufferDataValidation(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if _, err := ReadBufferData[float32](s, nil); !errors.Is(err, ErrNilHandle) {
		t.Errorf("nil handle error = %v, want ErrNilHandle", err)
	}
	var never Buffer
	if _, err := ReadBufferData[float32](s, &never); !errors.Is(err, ErrEmptyHandle) {
		t.Errorf("empty handle error = %v, want ErrEmptyHandle", err)
	}

	var buf Buffer
	if _, err := s.Resources().CreateBuffer(&buf, "R", 2, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, err := ReadBufferData[float32](s, &buf); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("closed session error = %v, want ErrSessionClosed", err)
	}
}

// TestPushVolumeData tests the whole-volume upload and its readback.
func TestPushVolumeData(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var vol Volume
	if _, err := s.Resources().CreateVolume(&vol, "Density", 4, VolumeFloat); err != nil {
		t.Fatal(err)
	}

	src := make([]float32, 4*4*4)
	for i := range src {
		src[i] = float32(i) * 0.5
	}
	if err := PushVolumeData(s, &vol, src); err != nil {
		t.Fatalf("PushVolumeData() error = %v", err)
	}

	out, err := ReadVolumeData[float32](s, &vol)
	if err != nil {
		t.Fatalf("ReadVolumeData() error = %v", err)
	}
	for i := range src {
		if out[i] != src[i] {
			t.Errorf("cell %d = %v, want %v", i, out[i], src[i])
			break
		}
	}
}

// TestPushVolumeDataValidation tests the exact-cover contract and the
// handle checks of a volume upload.
func TestPushVolumeDataValidation(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	var vol Volume
	if _, err := s.Resources().CreateVolume(&vol, "Field", 4, VolumeFloat); err != nil {
		t.Fatal(err)
	}
	opsBefore := len(d.ops)

	if err := PushVolumeData[float32](s, nil, make([]float32, 64)); !errors.Is(err, ErrNilHandle) {
		t.Errorf("nil handle error = %v, want ErrNilHandle", err)
	}
	var never Volume
	if err := PushVolumeData(s, &never, make([]float32, 64)); !errors.Is(err, ErrEmptyHandle) {
		t.Errorf("empty handle error = %v, want ErrEmptyHandle", err)
	}
	if err := PushVolumeData(s, &vol, make([]float32, 63)); !errors.Is(err, ErrTransferSizeMismatch) {
		t.Errorf("short push error = %v, want ErrTransferSizeMismatch", err)
	}
	if err := PushVolumeData(s, &vol, make([]float32, 65)); !errors.Is(err, ErrTransferSizeMismatch) {
		t.Errorf("oversized push error = %v, want ErrTransferSizeMismatch", err)
	}
	if len(d.ops) != opsBefore {
		t.Error("rejected pushes touched the device")
	}

	s.Close()
	if err := PushVolumeData(s, &vol, make([]float32, 64)); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("closed session error = %v, want ErrSessionClosed", err)
	}
}

// TestReadVolumeData tests typed volume readback.
func TestReadVolumeData(t *testing.T) {
	d := newFakeDevice()
	s, err := NewSession(d)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var vol Volume
	if _, err := s.Resources().CreateVolume(&vol, "Field", 4, VolumeFloat); err != nil {
		t.Fatal(err)
	}

	// Seed the device-side contents directly so readback is checked in
	// isolation from the upload path.
	tex := d.textures[vol.ID()]
	src := make([]float32, 4*4*4)
	for i := range src {
		src[i] = float32(i)
	}
	copy(tex.data, sliceBytes(src))

	out, err := ReadVolumeData[float32](s, &vol)
	if err != nil {
		t.Fatalf("ReadVolumeData() error = %v", err)
	}
	if len(out) != 64 {
		t.Fatalf("read %d cells, want 64", len(out))
	}
	if out[0] != 0 || out[63] != 63 {
		t.Errorf("out[0]/out[63] = %v/%v, want 0/63", out[0], out[63])
	}

	if _, err := ReadVolumeData[float32](s, nil); !errors.Is(err, ErrNilHandle) {
		t.Errorf("nil handle error = %v, want ErrNilHandle", err)
	}
	var never Volume
	if _, err := ReadVolumeData[float32](s, &never); !errors.Is(err, ErrEmptyHandle) {
		t.Errorf("empty handle error = %v, want ErrEmptyHandle", err)
	}
}
