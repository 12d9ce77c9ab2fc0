package abi

import (
	"sync"
	"sync/atomic"

	"github.com/go-sable/sable/pkg/refdata"
)

// Handle is the boundary token for a RefData. It is an opaque integer, never
// a Go pointer, so foreign code can store and pass it freely. Resolution
// goes through a process-local table, the same discipline as runtime/cgo's
// Handle.
type Handle uintptr

// HandleNone is the zero token.
const HandleNone Handle = 0

var (
	handleCounter atomic.Uintptr
	handleTable   sync.Map // Handle -> *refdata.RefData
)

// ExportHandle clones the given handle and returns a boundary token for the
// clone. The token owns one reference; DeleteHandle drops it. Safe to call
// from any goroutine.
func ExportHandle(r *refdata.RefData) Handle {
	h := Handle(handleCounter.Add(1))
	handleTable.Store(h, r.Clone())
	return h
}

// ResolveHandle returns the RefData behind a token, or nil for an unknown
// token. The caller must not drop the returned handle; ownership stays with
// the token.
func ResolveHandle(h Handle) *refdata.RefData {
	v, ok := handleTable.Load(h)
	if !ok {
		return nil
	}
	return v.(*refdata.RefData)
}

// DeleteHandle retires a token and drops the reference it owns. Retiring an
// unknown token is a no-op.
func DeleteHandle(h Handle) {
	v, ok := handleTable.LoadAndDelete(h)
	if !ok {
		return
	}
	v.(*refdata.RefData).Drop()
}
