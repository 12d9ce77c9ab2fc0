package errors

import (
	"fmt"
	"testing"
)

type recordingHandler struct {
	errs   []*SableError
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *SableError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func swapHandler(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := SetHandler(h)
	t.Cleanup(func() { SetHandler(prev) })
	return h
}

func TestReportSetsTimestamp(t *testing.T) {
	h := swapHandler(t)

	Report(&SableError{Op: "test.op", Kind: KindDispatch, Err: fmt.Errorf("boom")})

	if len(h.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}
}

func TestReportNilIsNoOp(t *testing.T) {
	h := swapHandler(t)
	Report(nil)
	ReportPanic(nil)
	if len(h.errs) != 0 || len(h.panics) != 0 {
		t.Error("nil reports should be dropped")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := swapHandler(t)

	func() {
		defer Recover("test.recover")
		panic("exploded")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(h.panics))
	}
	p := h.panics[0]
	if p.Op != "test.recover" || p.Value != "exploded" {
		t.Errorf("unexpected panic record: %+v", p)
	}
	if p.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	swapHandler(t)

	var got any
	func() {
		defer RecoverWithCallback("test.recover", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback received %v, expected 42", got)
	}
}

func TestErrorClassification(t *testing.T) {
	mismatch := &TypeMismatchError{Op: "refdata.DowncastRef", Want: "a", Got: "b"}
	borrow := &BorrowError{Op: "refdata.DowncastMut", Requested: "exclusive", Active: "shared"}

	wrappedMismatch := &SableError{Op: "outer", Kind: KindTypeMismatch, Err: mismatch}
	wrappedBorrow := &SableError{Op: "outer", Kind: KindBorrow, Err: &RenderError{Window: "w", Err: borrow}}

	if !IsTypeMismatch(wrappedMismatch) || IsTypeMismatch(wrappedBorrow) {
		t.Error("IsTypeMismatch misclassified")
	}
	if !IsBorrowConflict(wrappedBorrow) || IsBorrowConflict(wrappedMismatch) {
		t.Error("IsBorrowConflict misclassified")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	prev := SetHandler(nil)
	t.Cleanup(func() { SetHandler(prev) })

	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected default LogHandler, got %T", DefaultHandler)
	}
}
