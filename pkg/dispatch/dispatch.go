// Package dispatch binds (event-kind, node) pairs to callback entries and
// invokes them. A registry is built from each new document tree and lives
// exactly as long as that tree; replacing the tree replaces the registry.
package dispatch

import (
	"time"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/errors"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// entry pairs a callback with its captured handle. The handle is owned by
// the tree the registry was built from; the entry only references it.
type entry struct {
	fn       dom.Callback
	data     *refdata.RefData
	invoking bool
}

// Registry resolves (node, event-kind) pairs to callback entries for one
// document tree. Dispatch per window is single-threaded and cooperative, so
// the registry needs no locking.
type Registry struct {
	entries map[dom.NodeID]map[events.Kind]*entry
}

// NewRegistry indexes the callback attachments of a built tree.
func NewRegistry(tree *dom.Dom) *Registry {
	r := &Registry{entries: make(map[dom.NodeID]map[events.Kind]*entry)}
	tree.Walk(func(id dom.NodeID, node *dom.NodeData, _ int) bool {
		for _, spec := range node.Callbacks() {
			if spec.Fn == nil {
				continue
			}
			byKind := r.entries[id]
			if byKind == nil {
				byKind = make(map[events.Kind]*entry)
				r.entries[id] = byKind
			}
			// Last attachment for a (node, kind) pair wins; a node
			// registers at most one callback per event kind.
			byKind[spec.Event] = &entry{fn: spec.Fn, data: spec.Data}
		}
		return true
	})
	return r
}

// EntryCount returns the number of registered callback entries.
func (r *Registry) EntryCount() int {
	count := 0
	for _, byKind := range r.entries {
		count += len(byKind)
	}
	return count
}

// Has reports whether the pair (node, kind) has a registered entry.
func (r *Registry) Has(node dom.NodeID, kind events.Kind) bool {
	byKind, ok := r.entries[node]
	if !ok {
		return false
	}
	_, ok = byKind[kind]
	return ok
}

// Dispatch resolves the hit chain and event kind to zero or one callback
// entry and invokes it. The chain is ordered outermost to innermost, as
// produced by the hit-testing collaborator; the innermost node with an entry
// for the kind wins. A chain with no matching entry is a no-op, not an
// error.
//
// The resolved node is passed to the callback as its context node.
func (r *Registry) Dispatch(chain []dom.NodeID, kind events.Kind, payload events.Payload, window events.WindowInfo) events.Update {
	for i := len(chain) - 1; i >= 0; i-- {
		if byKind, ok := r.entries[chain[i]]; ok {
			if e, ok := byKind[kind]; ok {
				return r.invoke(chain[i], e, kind, payload, window)
			}
		}
	}
	return events.DoNothing
}

// DispatchTo invokes the entry registered for exactly (node, kind), if any.
// Used for events that target a known node without hit-testing, such as
// focus changes and timers bound to a node.
func (r *Registry) DispatchTo(node dom.NodeID, kind events.Kind, payload events.Payload, window events.WindowInfo) events.Update {
	byKind, ok := r.entries[node]
	if !ok {
		return events.DoNothing
	}
	e, ok := byKind[kind]
	if !ok {
		return events.DoNothing
	}
	return r.invoke(node, e, kind, payload, window)
}

// invoke runs one callback through its Idle -> Invoking -> Idle transition.
// A panic escaping the callback is caught here and converted to DoNothing:
// unwinding across the calling convention is unsupported, so the trampoline
// is the last point where recovery is possible.
func (r *Registry) invoke(node dom.NodeID, e *entry, kind events.Kind, payload events.Payload, window events.WindowInfo) (update events.Update) {
	if e.invoking {
		errors.Report(&errors.SableError{
			Op:   "dispatch.invoke",
			Kind: errors.KindDispatch,
			Err:  &reentrantDispatchError{node: node, kind: kind},
		})
		return events.DoNothing
	}
	e.invoking = true
	defer func() {
		e.invoking = false
		if rec := recover(); rec != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "dispatch.invoke",
				Value:      rec,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			update = events.DoNothing
		}
	}()

	ctx := &dom.CallbackContext{
		Data:   e.data,
		Event:  payload,
		Window: window,
		Node:   node,
	}
	update = e.fn(ctx)
	if !update.Valid() {
		errors.Report(&errors.SableError{
			Op:   "dispatch.invoke",
			Kind: errors.KindDispatch,
			Err:  &invalidUpdateError{node: node, kind: kind, update: update},
		})
		update = events.DoNothing
	}
	return update
}
