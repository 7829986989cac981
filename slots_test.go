// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "testing"

// TestSlotOf tests slot interning.
func TestSlotOf(t *testing.T) {
	a := SlotOf("InternedA")
	b := SlotOf("InternedB")
	if a == SlotNone || b == SlotNone {
		t.Fatal("SlotOf returned SlotNone for a real name")
	}
	if a == b {
		t.Errorf("distinct names share slot %d", a)
	}
	if again := SlotOf("InternedA"); again != a {
		t.Errorf("SlotOf(InternedA) = %d on repeat, want %d", again, a)
	}
}

// TestSlotOfEmpty tests that the empty name maps to SlotNone.
func TestSlotOfEmpty(t *testing.T) {
	if s := SlotOf(""); s != SlotNone {
		t.Errorf("SlotOf(\"\") = %d, want SlotNone", s)
	}
}

// TestSlotName tests the reverse lookup.
func TestSlotName(t *testing.T) {
	s := SlotOf("NamedSlot")
	if got := SlotName(s); got != "NamedSlot" {
		t.Errorf("SlotName() = %q, want %q", got, "NamedSlot")
	}
	if got := SlotName(SlotNone); got != "" {
		t.Errorf("SlotName(SlotNone) = %q, want empty", got)
	}
	if got := SlotName(Slot(1 << 30)); got != "" {
		t.Errorf("SlotName(uninterned) = %q, want empty", got)
	}
}
