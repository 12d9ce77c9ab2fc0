package abi

import (
	"reflect"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/events"
)

// RawCallback is the calling convention for a foreign event callback:
// fixed parameter order, fixed-size parameter and return types, no
// host-language-specific calling semantics. The foreign side must catch its
// own panics/exceptions and return a RawUpdate; unwinding into the runtime
// is undefined behavior.
type RawCallback func(data Handle, event RawEvent, window RawWindow, node RawNode) RawUpdate

// CallbackTable is the function-pointer table a binding layer registers for
// one foreign host. Entries beyond Invoke exist so bindings can manage
// handle lifetime from their side of the boundary.
type CallbackTable struct {
	// Invoke runs a foreign callback.
	Invoke RawCallback
	// CloneHandle mirrors refdata clone for foreign holders.
	CloneHandle func(Handle) Handle
	// DropHandle mirrors refdata drop for foreign holders.
	DropHandle func(Handle)
}

// DefaultTable returns a table whose handle entries are backed by the
// process-local token registry. Bindings override Invoke.
func DefaultTable() CallbackTable {
	return CallbackTable{
		CloneHandle: func(h Handle) Handle {
			r := ResolveHandle(h)
			if r == nil {
				return HandleNone
			}
			return ExportHandle(r)
		},
		DropHandle: DeleteHandle,
	}
}

// Bind adapts a raw callback into a dom.Callback that can be attached to
// nodes. The trampoline exports the captured handle as a token for the
// duration of the call and retires it on return, so the foreign side never
// observes a dangling token from this path.
func Bind(raw RawCallback) dom.Callback {
	return func(ctx *dom.CallbackContext) events.Update {
		token := ExportHandle(ctx.Data)
		defer DeleteHandle(token)

		event := RawEvent{Kind: RawKind(ctx.Event.Kind)}
		if e, ok := ctx.Event.Data.(RawEvent); ok {
			event = e
		} else if code, ok := scalarCode(ctx.Event.Data); ok {
			// Scalar payloads produced inside the runtime, such as the
			// timer identity, travel in Code.
			event.Code = code
		}
		result := raw(token, event, WindowFromInfo(ctx.Window), RawNode(ctx.Node))
		return result.Update()
	}
}

// scalarCode converts an integer-kinded payload to its Code representation.
// Non-integer payloads stay on the Go side; the foreign callback sees Code=0
// for them.
func scalarCode(data any) (uint64, bool) {
	if data == nil {
		return 0, false
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int()), true
	default:
		return 0, false
	}
}
