// Package abi defines the stable calling convention for host code that is
// not written in Go. Every type crossing the boundary has a fixed,
// documented memory layout, independent of the host language, so Rust/C/C++
// callers interoperate without a serialization step.
//
// Layout contract (little-endian, natural alignment):
//
//	RawUpdate   int32              4 bytes
//	RawKind     int32              4 bytes
//	RawNode     int64              8 bytes
//	Handle      uintptr-sized      8 bytes on 64-bit targets
//	RawEvent    kind,pad,x,y,code  32 bytes
//	RawWindow   id,w,h,scale       32 bytes
//
// Go pointers never cross the boundary. Handles are opaque integer tokens
// resolved through a process-local table, the same discipline runtime/cgo
// uses. Unwinding across the boundary is unsupported in either direction:
// foreign code must catch its own failures and return a RawUpdate; the Go
// side converts panics to DoNothing at the dispatch trampoline.
package abi

import (
	"github.com/go-sable/sable/pkg/events"
)

// RawUpdate is the control signal in its boundary representation. Values
// match events.Update exactly.
type RawUpdate int32

const (
	RawDoNothing         RawUpdate = 0
	RawRefreshPaint      RawUpdate = 1
	RawRegenerateDom     RawUpdate = 2
	RawRegenerateAllDoms RawUpdate = 3
)

// Update converts the raw signal to the runtime's type. Out-of-range values
// collapse to DoNothing, never an error: the boundary cannot unwind.
func (u RawUpdate) Update() events.Update {
	v := events.Update(u)
	if !v.Valid() {
		return events.DoNothing
	}
	return v
}

// RawKind is an event kind in its boundary representation. Values match
// events.Kind exactly.
type RawKind int32

// Kind converts the raw kind to the runtime's type.
func (k RawKind) Kind() events.Kind {
	return events.Kind(k)
}

// RawNode is a node identity in its boundary representation. -1 means no
// node.
type RawNode int64

// RawEvent is the fixed-layout event payload. The meaning of X, Y, and Code
// depends on Kind: pointer coordinates for mouse kinds, key code for key
// kinds, timer identity for timer kinds.
//
// Offsets: Kind +0, X +8, Y +16, Code +24. Size 32.
type RawEvent struct {
	Kind RawKind
	_    int32
	X    float64
	Y    float64
	Code uint64
}

// Payload converts a raw event into the dispatcher's payload form.
func (e RawEvent) Payload() events.Payload {
	return events.Payload{Kind: e.Kind.Kind(), Data: e}
}

// RawWindow is the fixed-layout window descriptor.
//
// Offsets: ID +0, Width +8, Height +16, Scale +24. Size 32.
type RawWindow struct {
	ID     uint64
	Width  float64
	Height float64
	Scale  float64
}

// WindowFromInfo converts a window descriptor to its boundary form. The
// title stays on the Go side; foreign callbacks address windows by ID.
func WindowFromInfo(info events.WindowInfo) RawWindow {
	return RawWindow{
		ID:     info.ID,
		Width:  info.Width,
		Height: info.Height,
		Scale:  info.Scale,
	}
}
