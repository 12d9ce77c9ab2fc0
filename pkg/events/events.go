// Package events defines the event vocabulary shared by the document tree,
// the dispatcher, and the per-window controllers: event kinds, the Update
// control signal, and the opaque payloads that cross the runtime boundary.
package events

// Kind identifies the class of event a callback responds to.
type Kind int32

const (
	// KindNone is the zero value and matches nothing.
	KindNone Kind = iota
	// KindMouseDown fires when a pointer button is pressed over a node.
	KindMouseDown
	// KindMouseUp fires when a pointer button is released over a node.
	KindMouseUp
	// KindMouseOver fires when the pointer enters a node.
	KindMouseOver
	// KindMouseOut fires when the pointer leaves a node.
	KindMouseOut
	// KindKeyDown fires when a key is pressed while a node has focus.
	KindKeyDown
	// KindKeyUp fires when a key is released while a node has focus.
	KindKeyUp
	// KindFocusReceived fires when a node gains focus.
	KindFocusReceived
	// KindFocusLost fires when a node loses focus.
	KindFocusLost
	// KindTimer fires when a registered timer elapses.
	KindTimer
	// KindWindowClose fires when the window is asked to close.
	KindWindowClose
)

func (k Kind) String() string {
	switch k {
	case KindMouseDown:
		return "mouse_down"
	case KindMouseUp:
		return "mouse_up"
	case KindMouseOver:
		return "mouse_over"
	case KindMouseOut:
		return "mouse_out"
	case KindKeyDown:
		return "key_down"
	case KindKeyUp:
		return "key_up"
	case KindFocusReceived:
		return "focus_received"
	case KindFocusLost:
		return "focus_lost"
	case KindTimer:
		return "timer"
	case KindWindowClose:
		return "window_close"
	default:
		return "none"
	}
}

// Update is the control signal a callback returns. It is the sole channel by
// which a callback tells the controller whether the cached document tree is
// stale. Exactly one variant is produced per invocation.
//
// The representation is a fixed int32 so the value crosses the runtime
// boundary without translation.
type Update int32

const (
	// DoNothing leaves the document tree untouched.
	DoNothing Update = 0
	// RefreshPaint keeps the tree but repaints it: a property changed that
	// does not affect structure.
	RefreshPaint Update = 1
	// RegenerateDom rebuilds the current window's tree via its render function.
	RegenerateDom Update = 2
	// RegenerateAllDoms rebuilds the tree of every open window.
	RegenerateAllDoms Update = 3
)

func (u Update) String() string {
	switch u {
	case RefreshPaint:
		return "refresh_paint"
	case RegenerateDom:
		return "regenerate_dom"
	case RegenerateAllDoms:
		return "regenerate_all_doms"
	default:
		return "do_nothing"
	}
}

// Valid reports whether u is one of the four defined variants.
func (u Update) Valid() bool {
	return u >= DoNothing && u <= RegenerateAllDoms
}

// Combine returns the stronger of two signals. The variants are ordered by
// the amount of work they demand: DoNothing < RefreshPaint < RegenerateDom <
// RegenerateAllDoms. Used when several timer callbacks fire in one pass.
func Combine(a, b Update) Update {
	if b > a {
		return b
	}
	return a
}

// Payload is the opaque event metadata handed to a callback. Its contents
// are produced by the event-routing collaborator (pointer coordinates, key
// codes, timer identity) and are not interpreted by this core.
type Payload struct {
	Kind Kind
	Data any
}

// WindowInfo carries the window and geometry information a callback may
// need. Produced by the windowing collaborator.
type WindowInfo struct {
	ID     uint64
	Title  string
	Width  float64
	Height float64
	Scale  float64
}

// LayoutContext is the opaque payload the rendering collaborator supplies to
// every render-function invocation. The core forwards it untouched.
type LayoutContext struct {
	Window WindowInfo
	Extra  any
}
