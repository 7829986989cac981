// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Slot identifies a resource binding point in a shading program.
// Slots are interned: the first SlotOf call for a name assigns the
// next free identifier, and every later call with the same name
// returns the same Slot. Identifiers are stable for the lifetime of
// the process but not across processes, so they must never be
// serialized; persist the name instead.
//
// SlotNone is the zero value and never names a real binding point.
type Slot uint32

// SlotNone is the zero Slot, representing no binding point.
const SlotNone Slot = 0

// The interning table. Grown only by SlotOf; never shrunk.
// Index 0 is reserved for SlotNone.
var (
	slotByName = map[string]Slot{}
	slotNames  = []string{""}
)

// SlotOf returns the Slot for a binding point name, interning the name
// on first use. The empty name maps to SlotNone.
//
// Typical use is a package-level table built once per use site:
//
//	var (
//	    slotPositions = compute.SlotOf("Positions")
//	    slotVelocity  = compute.SlotOf("Velocity")
//	    slotParams    = compute.SlotOf("SimParams")
//	)
func SlotOf(name string) Slot {
	if name == "" {
		return SlotNone
	}
	if s, ok := slotByName[name]; ok {
		return s
	}
	s := Slot(len(slotNames))
	slotByName[name] = s
	slotNames = append(slotNames, name)
	return s
}

// SlotName returns the name a Slot was interned under, or the empty
// string for SlotNone and for slots this process never interned.
func SlotName(s Slot) string {
	if int(s) >= len(slotNames) {
		return ""
	}
	return slotNames[s]
}
