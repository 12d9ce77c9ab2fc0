package abi

import (
	"unsafe"
)

// Compile-time layout assertions. Each pair of zero-length arrays pins a
// size or offset in both directions; a drift in either direction fails the
// build on 64-bit targets.
var (
	_ [unsafe.Sizeof(RawUpdate(0)) - 4]byte
	_ [4 - unsafe.Sizeof(RawUpdate(0))]byte

	_ [unsafe.Sizeof(RawKind(0)) - 4]byte
	_ [4 - unsafe.Sizeof(RawKind(0))]byte

	_ [unsafe.Sizeof(RawNode(0)) - 8]byte
	_ [8 - unsafe.Sizeof(RawNode(0))]byte

	_ [unsafe.Sizeof(RawEvent{}) - 32]byte
	_ [32 - unsafe.Sizeof(RawEvent{})]byte

	_ [unsafe.Offsetof(RawEvent{}.X) - 8]byte
	_ [unsafe.Offsetof(RawEvent{}.Y) - 16]byte
	_ [unsafe.Offsetof(RawEvent{}.Code) - 24]byte

	_ [unsafe.Sizeof(RawWindow{}) - 32]byte
	_ [32 - unsafe.Sizeof(RawWindow{})]byte

	_ [unsafe.Offsetof(RawWindow{}.Width) - 8]byte
	_ [unsafe.Offsetof(RawWindow{}.Height) - 16]byte
	_ [unsafe.Offsetof(RawWindow{}.Scale) - 24]byte
)
