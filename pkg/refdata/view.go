package refdata

import (
	"github.com/go-sable/sable/pkg/errors"
)

// Ref is a read-only view onto a handle's data block. Any number of Refs may
// be outstanding at once, but never concurrently with a RefMut. Every Ref
// must be released on every exit path of the code holding it.
type Ref struct {
	s        *shared
	released bool
}

// Value returns the stored data block (the pointer passed to New, or the
// internal pointer allocated by Pack). Callers holding a Ref must not write
// through it; mutation requires a RefMut.
func (v *Ref) Value() any {
	return v.s.value
}

// CloneHandle returns a new handle to the underlying block, incrementing
// the reference count. Render functions use it to capture the application
// handle into callback attachments; cloning touches only the count, never
// the value, so it is legal under a read-only view.
func (v *Ref) CloneHandle() *RefData {
	v.s.refCount.Add(1)
	return &RefData{s: v.s}
}

// Release clears this view's borrow. Releasing twice is a no-op.
func (v *Ref) Release() {
	if v.released {
		return
	}
	v.released = true
	v.s.borrow.Add(-1)
}

// RefMut is an exclusive mutable view onto a handle's data block. At most
// one RefMut is outstanding at any time, and never concurrently with a Ref.
type RefMut struct {
	s        *shared
	released bool
}

// Value returns the stored data block for mutation.
func (v *RefMut) Value() any {
	return v.s.value
}

// Release clears the exclusive borrow. Releasing twice is a no-op.
func (v *RefMut) Release() {
	if v.released {
		return
	}
	v.released = true
	v.s.borrow.CompareAndSwap(borrowExclusive, 0)
}

// DowncastRef returns a read-only view of the data block.
// It fails with a type mismatch when tag differs from the stored tag, and
// with a borrow conflict when a mutable view is outstanding. The tag check
// runs first: a mismatched request never acquires a borrow.
func (r *RefData) DowncastRef(tag TypeTag) (*Ref, error) {
	const op = "refdata.DowncastRef"
	if r.s.tag != tag {
		return nil, &errors.TypeMismatchError{Op: op, Want: tag.Name, Got: r.s.tag.Name}
	}
	for {
		w := r.s.borrow.Load()
		if w == borrowExclusive {
			return nil, &errors.BorrowError{Op: op, Requested: "shared", Active: "exclusive"}
		}
		if r.s.borrow.CompareAndSwap(w, w+1) {
			return &Ref{s: r.s}, nil
		}
	}
}

// DowncastMut returns the exclusive mutable view of the data block.
// It fails with a type mismatch when tag differs from the stored tag, and
// with a borrow conflict when any view, shared or mutable, is outstanding.
func (r *RefData) DowncastMut(tag TypeTag) (*RefMut, error) {
	const op = "refdata.DowncastMut"
	if r.s.tag != tag {
		return nil, &errors.TypeMismatchError{Op: op, Want: tag.Name, Got: r.s.tag.Name}
	}
	w := r.s.borrow.Load()
	if w == borrowExclusive {
		return nil, &errors.BorrowError{Op: op, Requested: "exclusive", Active: "exclusive"}
	}
	if w > 0 {
		return nil, &errors.BorrowError{Op: op, Requested: "exclusive", Active: "shared"}
	}
	if !r.s.borrow.CompareAndSwap(0, borrowExclusive) {
		return nil, &errors.BorrowError{Op: op, Requested: "exclusive", Active: r.BorrowState().String()}
	}
	return &RefMut{s: r.s}, nil
}

// Borrow acquires a read-only view using the handle's own tag, so a type
// mismatch is impossible. The controller uses it to hand render functions
// read access to whatever the application packed; only a borrow conflict
// can fail it.
func (r *RefData) Borrow() (*Ref, error) {
	return r.DowncastRef(r.s.tag)
}

// Access type-asserts the data block of a read-only view.
func Access[T any](v *Ref) (*T, bool) {
	ptr, ok := v.Value().(*T)
	return ptr, ok
}

// AccessMut type-asserts the data block of a mutable view.
func AccessMut[T any](v *RefMut) (*T, bool) {
	ptr, ok := v.Value().(*T)
	return ptr, ok
}

// WithRef borrows the handle read-only for the duration of fn, releasing the
// view on every exit path, including a panicking fn.
func WithRef[T any](r *RefData, fn func(*T)) error {
	view, err := r.DowncastRef(TagOf[T]())
	if err != nil {
		return err
	}
	defer view.Release()
	ptr, _ := Access[T](view)
	fn(ptr)
	return nil
}

// WithMut borrows the handle exclusively for the duration of fn, releasing
// the view on every exit path, including a panicking fn.
func WithMut[T any](r *RefData, fn func(*T)) error {
	view, err := r.DowncastMut(TagOf[T]())
	if err != nil {
		return err
	}
	defer view.Release()
	ptr, _ := AccessMut[T](view)
	fn(ptr)
	return nil
}
