package dom

import (
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// Callback is a host-supplied event handler. It receives a context exposing
// the captured handle and the event metadata, and returns exactly one Update
// telling the controller whether the cached tree is stale.
//
// A callback that acquires a view from ctx.Data must release it on every
// exit path before returning. The dispatcher cannot enforce release across
// the opaque function-pointer boundary; an unreleased borrow poisons the
// handle for every later access.
type Callback func(ctx *CallbackContext) events.Update

// CallbackContext is the view of the runtime a callback receives during one
// invocation. It is valid only for the duration of the call.
type CallbackContext struct {
	// Data is the handle captured when the callback was attached. Mutable
	// access goes through Data.DowncastMut.
	Data *refdata.RefData
	// Event carries the opaque event metadata.
	Event events.Payload
	// Window carries the window and geometry information.
	Window events.WindowInfo
	// Node is the hit node within the current tree.
	Node NodeID
}

// CallbackSpec binds an event kind to a callback and its captured handle.
// Specs are created while the render function builds the tree and live
// exactly as long as the tree that owns them.
type CallbackSpec struct {
	Event events.Kind
	Fn    Callback
	Data  *refdata.RefData
}
