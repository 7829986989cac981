// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"testing"
)

// TestDefaultOptions tests that a manager works with no options.
func TestDefaultOptions(t *testing.T) {
	d := newFakeDevice()
	m, err := NewManager(d)
	if err != nil {
		t.Fatalf("NewManager() = %v", err)
	}

	var b Buffer
	if _, err := m.CreateBuffer(&b, "Plain", 8, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}
	// No prefix configured: the device label is the bare handle name.
	if got := d.bufferLabel(b.ID()); got != "Plain" {
		t.Errorf("device label = %q, want %q", got, "Plain")
	}
}

// TestWithLabelPrefixOption tests prefix injection into a manager.
func TestWithLabelPrefixOption(t *testing.T) {
	d := newFakeDevice()
	m, err := NewManager(d, WithLabelPrefix("sim"))
	if err != nil {
		t.Fatalf("NewManager() = %v", err)
	}

	var v Volume
	if _, err := m.CreateVolume(&v, "Field", 8, VolumeFloat); err != nil {
		t.Fatal(err)
	}
	if got := d.textures[v.ID()].label; got != "sim/Field" {
		t.Errorf("device label = %q, want %q", got, "sim/Field")
	}
}

// TestWithGlobalsOption tests injecting an existing global table into a
// session.
func TestWithGlobalsOption(t *testing.T) {
	shared := NewGlobals()
	shared.SetKeyword("PRESET", true)

	s, err := NewSession(newFakeDevice(), WithGlobals(shared))
	if err != nil {
		t.Fatalf("NewSession() = %v", err)
	}
	defer s.Close()

	// Verify the injected table is adopted, not copied.
	if s.Globals() != shared {
		t.Error("session did not adopt the injected global table")
	}
	if !s.Globals().Keyword("PRESET") {
		t.Error("pre-existing keyword lost on adoption")
	}
}

// TestSessionMultipleOptions tests combining options.
func TestSessionMultipleOptions(t *testing.T) {
	d := newFakeDevice()
	shared := NewGlobals()

	s, err := NewSession(d, WithLabelPrefix("fluid"), WithGlobals(shared))
	if err != nil {
		t.Fatalf("NewSession() = %v", err)
	}
	defer s.Close()

	if s.Globals() != shared {
		t.Error("global table option not applied")
	}
	var b Buffer
	if _, err := s.Resources().CreateBuffer(&b, "Density", 8, 4, BufferStructured); err != nil {
		t.Fatal(err)
	}
	if got := d.bufferLabel(b.ID()); got != "fluid/Density" {
		t.Errorf("device label = %q, want %q", got, "fluid/Density")
	}
}
