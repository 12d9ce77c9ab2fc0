package dispatch

import (
	"fmt"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/events"
)

// reentrantDispatchError reports a callback dispatched while it was already
// invoking. Dispatch per window is cooperative; a callback must not pump
// events back into its own registry.
type reentrantDispatchError struct {
	node dom.NodeID
	kind events.Kind
}

func (e *reentrantDispatchError) Error() string {
	return fmt.Sprintf("reentrant dispatch of %s on node %d", e.kind, e.node)
}

// invalidUpdateError reports a callback returning a value outside the four
// defined Update variants. Typically a host-language binding bug.
type invalidUpdateError struct {
	node   dom.NodeID
	kind   events.Kind
	update events.Update
}

func (e *invalidUpdateError) Error() string {
	return fmt.Sprintf("callback for %s on node %d returned invalid update %d", e.kind, e.node, int32(e.update))
}
