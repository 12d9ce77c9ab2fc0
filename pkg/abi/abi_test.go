package abi

import (
	"testing"
	"time"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
	"github.com/go-sable/sable/pkg/runtime"
)

type model struct {
	Value int
}

func TestExportResolveDelete(t *testing.T) {
	destroyed := false
	r := refdata.PackWithDestructor(model{Value: 7}, func(*model) { destroyed = true })

	token := ExportHandle(r)
	if token == HandleNone {
		t.Fatal("export returned the zero token")
	}
	if got := ResolveHandle(token); got == nil || got.Tag() != refdata.TagOf[model]() {
		t.Fatal("token did not resolve to the exported handle")
	}

	// The token owns its own reference; dropping the original must not
	// destroy the value.
	r.Drop()
	if destroyed {
		t.Fatal("value destroyed while a token still references it")
	}

	DeleteHandle(token)
	if !destroyed {
		t.Error("retiring the last token should run the destructor")
	}
	if ResolveHandle(token) != nil {
		t.Error("retired token should no longer resolve")
	}
}

func TestDeleteUnknownTokenIsNoOp(t *testing.T) {
	DeleteHandle(Handle(1 << 40))
}

func TestTokensAreUnique(t *testing.T) {
	r := refdata.Pack(model{})
	defer r.Drop()

	a := ExportHandle(r)
	b := ExportHandle(r)
	defer DeleteHandle(a)
	defer DeleteHandle(b)

	if a == b {
		t.Error("two exports of the same handle must yield distinct tokens")
	}
}

func TestDefaultTableHandleOps(t *testing.T) {
	destroyed := false
	r := refdata.PackWithDestructor(model{}, func(*model) { destroyed = true })
	table := DefaultTable()

	a := ExportHandle(r)
	b := table.CloneHandle(a)
	if b == HandleNone || b == a {
		t.Fatalf("clone should mint a fresh token, got %v from %v", b, a)
	}

	r.Drop()
	table.DropHandle(a)
	if destroyed {
		t.Fatal("clone token should keep the value alive")
	}
	table.DropHandle(b)
	if !destroyed {
		t.Error("dropping the last token should run the destructor")
	}

	if table.CloneHandle(Handle(1<<40)) != HandleNone {
		t.Error("cloning an unknown token should yield HandleNone")
	}
}

func TestRawUpdateCollapsesInvalid(t *testing.T) {
	if RawRegenerateDom.Update() != events.RegenerateDom {
		t.Error("in-range raw update should convert verbatim")
	}
	if RawUpdate(77).Update() != events.DoNothing {
		t.Error("out-of-range raw update should collapse to DoNothing")
	}
	if RawUpdate(-1).Update() != events.DoNothing {
		t.Error("negative raw update should collapse to DoNothing")
	}
}

func TestBindTrampoline(t *testing.T) {
	data := refdata.Pack(model{Value: 3})
	defer data.Drop()

	var gotToken Handle
	var gotEvent RawEvent
	var gotWindow RawWindow
	var gotNode RawNode
	cb := Bind(func(token Handle, event RawEvent, window RawWindow, node RawNode) RawUpdate {
		gotToken = token
		gotEvent = event
		gotWindow = window
		gotNode = node

		// The token must resolve for the duration of the call.
		if ResolveHandle(token) == nil {
			t.Error("token did not resolve inside the callback")
		}
		return RawRefreshPaint
	})

	raw := RawEvent{Kind: RawKind(events.KindMouseDown), X: 12, Y: 34, Code: 0}
	update := cb(&dom.CallbackContext{
		Data:   data,
		Event:  raw.Payload(),
		Window: events.WindowInfo{ID: 5, Title: "main", Width: 800, Height: 600, Scale: 2},
		Node:   dom.NodeID(9),
	})

	if update != events.RefreshPaint {
		t.Errorf("expected RefreshPaint, got %v", update)
	}
	if gotEvent != raw {
		t.Errorf("event payload did not cross intact: %+v", gotEvent)
	}
	if gotWindow != (RawWindow{ID: 5, Width: 800, Height: 600, Scale: 2}) {
		t.Errorf("window descriptor did not cross intact: %+v", gotWindow)
	}
	if gotNode != 9 {
		t.Errorf("expected node 9, got %d", gotNode)
	}
	if ResolveHandle(gotToken) != nil {
		t.Error("trampoline should retire its token on return")
	}
	if data.RefCount() != 1 {
		t.Errorf("trampoline leaked a reference, count %d", data.RefCount())
	}
}

func TestBindCarriesTimerIdentity(t *testing.T) {
	app := runtime.NewApp(refdata.Pack(model{}))
	defer app.Shutdown()
	c, err := app.CreateWindow(runtime.WindowOptions{
		Title: "timers",
		Render: func(*refdata.Ref, *events.LayoutContext) *dom.Dom {
			return dom.Body()
		},
	})
	if err != nil {
		t.Fatalf("CreateWindow failed: %v", err)
	}

	var got RawEvent
	fired := false
	raw := Bind(func(token Handle, event RawEvent, window RawWindow, node RawNode) RawUpdate {
		got = event
		fired = true
		return RawDoNothing
	})
	id := c.AddTimer(time.Millisecond, false, raw, refdata.Pack(model{}))

	c.Tick(time.Now().Add(time.Second))

	if !fired {
		t.Fatal("bound timer callback never fired")
	}
	if got.Kind.Kind() != events.KindTimer {
		t.Errorf("expected timer kind, got %v", got.Kind.Kind())
	}
	if got.Code != uint64(id) {
		t.Errorf("timer identity lost at the boundary: Code=%d, want %d", got.Code, id)
	}
}

func TestScalarCode(t *testing.T) {
	if code, ok := scalarCode(uint64(9)); !ok || code != 9 {
		t.Errorf("uint64 payload: got (%d, %v)", code, ok)
	}
	if code, ok := scalarCode(int32(-1)); !ok || code != uint64(18446744073709551615) {
		t.Errorf("int payload should convert bit-exact: got (%d, %v)", code, ok)
	}
	if _, ok := scalarCode("text"); ok {
		t.Error("non-integer payload must not produce a code")
	}
	if _, ok := scalarCode(nil); ok {
		t.Error("nil payload must not produce a code")
	}
}

func TestBindInvalidUpdateIsSanitized(t *testing.T) {
	data := refdata.Pack(model{})
	defer data.Drop()

	cb := Bind(func(Handle, RawEvent, RawWindow, RawNode) RawUpdate {
		return RawUpdate(99)
	})
	update := cb(&dom.CallbackContext{Data: data})
	if update != events.DoNothing {
		t.Errorf("expected DoNothing, got %v", update)
	}
}
