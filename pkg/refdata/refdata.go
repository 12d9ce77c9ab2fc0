// Package refdata provides the shared, type-erased container that carries
// application state across the runtime boundary.
//
// A RefData pairs an untyped data block with a runtime type tag, an atomic
// reference count, and a runtime-enforced borrow flag. It substitutes for a
// compile-time ownership checker at the language boundary: callbacks written
// in any host language interact with application state only through checked
// downcasts and explicit borrow/release calls.
//
// Reference counting is mandatory because the same handle is simultaneously
// referenced by the application, by captured closures in callback entries,
// and by node-local dataset slots in the document tree. The count and the
// borrow flag use atomic operations so handles stay correct even when
// application code clones or drops them from background goroutines.
package refdata

import (
	"sync/atomic"
)

// borrowExclusive is the borrow word value while a mutable view is active.
// Zero means free; positive values count outstanding shared views.
const borrowExclusive = -1

// shared is the block all clones of a handle point at.
type shared struct {
	refCount   atomic.Int64
	borrow     atomic.Int64
	tag        TypeTag
	destructor func(any)
	value      any
}

// RefData is a shared, reference-counted, type-erased handle to
// application-defined state. Clones of a handle all point at the same
// underlying block; the block is destroyed exactly once, when the last
// clone is dropped.
type RefData struct {
	s *shared
}

// New wraps value in a fresh handle with reference count 1.
// The destructor, if non-nil, runs exactly once when the count reaches zero.
func New(value any, tag TypeTag, destructor func(any)) *RefData {
	s := &shared{
		tag:        tag,
		destructor: destructor,
		value:      value,
	}
	s.refCount.Store(1)
	return &RefData{s: s}
}

// Pack wraps a Go value in a handle, deriving the tag from its type.
// The value is stored behind a pointer so mutable views observe writes.
func Pack[T any](value T) *RefData {
	ptr := new(T)
	*ptr = value
	return New(ptr, TagOf[T](), nil)
}

// PackWithDestructor is Pack with a typed destructor that runs when the
// last clone is dropped.
func PackWithDestructor[T any](value T, destructor func(*T)) *RefData {
	ptr := new(T)
	*ptr = value
	var d func(any)
	if destructor != nil {
		d = func(v any) {
			destructor(v.(*T))
		}
	}
	return New(ptr, TagOf[T](), d)
}

// Clone returns a new handle sharing the same data block and increments the
// reference count. Safe to call from any goroutine.
func (r *RefData) Clone() *RefData {
	r.s.refCount.Add(1)
	return &RefData{s: r.s}
}

// Drop decrements the reference count. When the count reaches zero the
// destructor runs on the data block and the block is released. Dropping a
// handle more times than it was created/cloned is a contract violation by
// the host; the runtime does not detect it beyond the count reaching zero
// exactly once.
func (r *RefData) Drop() {
	if r.s.refCount.Add(-1) != 0 {
		return
	}
	if r.s.destructor != nil {
		r.s.destructor(r.s.value)
	}
	r.s.value = nil
}

// Tag returns the type tag the handle was created with.
func (r *RefData) Tag() TypeTag {
	return r.s.tag
}

// RefCount returns the current reference count. Intended for tests and
// diagnostics; the value may be stale the moment it is read.
func (r *RefData) RefCount() int64 {
	return r.s.refCount.Load()
}

// BorrowState describes the handle's borrow word at a point in time.
type BorrowState int

const (
	// BorrowFree means no view is outstanding.
	BorrowFree BorrowState = iota
	// BorrowShared means one or more read-only views are outstanding.
	BorrowShared
	// BorrowExclusive means a mutable view is outstanding.
	BorrowExclusive
)

func (b BorrowState) String() string {
	switch b {
	case BorrowShared:
		return "shared"
	case BorrowExclusive:
		return "exclusive"
	default:
		return "free"
	}
}

// BorrowState returns the current borrow state. Diagnostics only.
func (r *RefData) BorrowState() BorrowState {
	switch w := r.s.borrow.Load(); {
	case w == borrowExclusive:
		return BorrowExclusive
	case w > 0:
		return BorrowShared
	default:
		return BorrowFree
	}
}
