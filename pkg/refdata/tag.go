package refdata

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// TypeTag identifies the concrete type stored in a RefData. Downcasts
// succeed only when the requested tag matches the stored tag exactly.
//
// Tags created by TagOf are stable within a single process. Hosts that share
// handles across a language boundary must assign explicit tag IDs via New so
// both sides agree on the numbering.
type TypeTag struct {
	ID   uint64
	Name string
}

// Zero reports whether the tag is the zero value.
func (t TypeTag) Zero() bool {
	return t.ID == 0 && t.Name == ""
}

var (
	tagCounter  atomic.Uint64
	tagRegistry sync.Map // reflect.Type -> TypeTag
)

// TagOf derives the type tag for T, allocating one on first use.
// Repeated calls with the same T always return the same tag.
func TagOf[T any]() TypeTag {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if tag, ok := tagRegistry.Load(rt); ok {
		return tag.(TypeTag)
	}
	tag := TypeTag{ID: tagCounter.Add(1), Name: rt.String()}
	if existing, loaded := tagRegistry.LoadOrStore(rt, tag); loaded {
		return existing.(TypeTag)
	}
	return tag
}
