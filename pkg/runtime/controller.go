// Package runtime owns the per-window render/cache controllers and the
// application bootstrap. A controller holds the active document tree for its
// window, feeds input and timer events through the callback registry, and
// interprets the returned control signal: keep the tree, repaint it, or
// invoke the render function and swap the tree wholesale.
//
// Dispatch per window is single-threaded and cooperative: one event is fully
// processed, including any resulting regeneration, before the next event for
// that window. The controller therefore carries no locks; the shared handle's
// reference count and borrow flag remain atomic regardless.
package runtime

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/go-sable/sable/pkg/dispatch"
	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/errors"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// State is the controller's cache state.
type State int

const (
	// StateCached means the controller is serving the last built tree.
	StateCached State = iota
	// StateRedrawing means the cached tree is being re-presented without a
	// rebuild.
	StateRedrawing
	// StateRegenerating means the render function is being invoked.
	StateRegenerating
)

func (s State) String() string {
	switch s {
	case StateRedrawing:
		return "redrawing"
	case StateRegenerating:
		return "regenerating"
	default:
		return "cached"
	}
}

// RenderFn is the host-supplied render function: a pure model-to-document
// mapping. It receives read-only access to the application handle and an
// opaque layout context, and returns a freshly built tree. Render functions
// never mutate application state.
type RenderFn func(data *refdata.Ref, layout *events.LayoutContext) *dom.Dom

// Presenter is the rendering collaborator's redraw hook. The core calls it
// whenever the window must be repainted, passing the current tree; layout
// and rasterization happen on the other side of this interface.
type Presenter interface {
	Present(window events.WindowInfo, tree *dom.Dom)
}

// NopPresenter discards every present request. Useful headless.
type NopPresenter struct{}

// Present implements Presenter.
func (NopPresenter) Present(events.WindowInfo, *dom.Dom) {}

// WindowOptions describes a window to create.
type WindowOptions struct {
	Title  string
	Width  float64
	Height float64
	Scale  float64
	// Render builds the window's document tree. Required.
	Render RenderFn
	// LayoutExtra is forwarded untouched inside the LayoutContext.
	LayoutExtra any
}

// WindowController owns one window's document tree and drives the
// cached/redrawing/regenerating state machine from callback control signals.
type WindowController struct {
	info        events.WindowInfo
	render      RenderFn
	presenter   Presenter
	data        *refdata.RefData
	layoutExtra any

	tree     *dom.Dom
	registry *dispatch.Registry
	state    State

	timers      map[TimerID]*Timer
	nextTimerID TimerID

	stats *Stats
}

// newWindowController builds the controller and performs the initial
// regeneration so it starts in StateCached with a live tree.
func newWindowController(info events.WindowInfo, opts WindowOptions, data *refdata.RefData, presenter Presenter, stats *Stats) (*WindowController, error) {
	c := &WindowController{
		info:        info,
		render:      opts.Render,
		presenter:   presenter,
		data:        data,
		layoutExtra: opts.LayoutExtra,
		timers:      make(map[TimerID]*Timer),
		stats:       stats,
	}
	if err := c.Regenerate(); err != nil {
		// The controller owns its clone; give it back before failing so the
		// application handle can still reach zero.
		c.data.Drop()
		return nil, err
	}
	return c, nil
}

// Info returns the window's descriptor.
func (c *WindowController) Info() events.WindowInfo {
	return c.info
}

// State returns the controller's current cache state. Outside of an event
// being processed this is always StateCached.
func (c *WindowController) State() State {
	return c.state
}

// Tree returns the active document tree.
func (c *WindowController) Tree() *dom.Dom {
	return c.tree
}

// Registry returns the callback registry built from the active tree.
func (c *WindowController) Registry() *dispatch.Registry {
	return c.registry
}

// ProcessEvent dispatches one event against the active tree's registry and
// applies the returned control signal to this window. The hit chain is
// ordered outermost to innermost.
//
// RegenerateAllDoms is applied here with current-window scope; the caller
// (App.ProcessEvent) fans the signal out to every other window. The returned
// Update is the callback's verbatim signal so callers can do that.
func (c *WindowController) ProcessEvent(chain []dom.NodeID, kind events.Kind, payload events.Payload) events.Update {
	update := c.registry.Dispatch(chain, kind, payload, c.info)
	c.stats.Dispatches.Add(1)
	c.Apply(update)
	return update
}

// ProcessEventTo is ProcessEvent for events that target a known node
// without a hit chain (focus changes, node-bound timers).
func (c *WindowController) ProcessEventTo(node dom.NodeID, kind events.Kind, payload events.Payload) events.Update {
	update := c.registry.DispatchTo(node, kind, payload, c.info)
	c.stats.Dispatches.Add(1)
	c.Apply(update)
	return update
}

// Apply transitions the state machine for one control signal:
//
//	DoNothing          -> stay cached
//	RefreshPaint       -> cached -> redrawing -> cached
//	RegenerateDom      -> cached -> regenerating -> cached
//	RegenerateAllDoms  -> same as RegenerateDom for this window
func (c *WindowController) Apply(update events.Update) {
	switch update {
	case events.RefreshPaint:
		c.Redraw()
	case events.RegenerateDom, events.RegenerateAllDoms:
		if err := c.Regenerate(); err != nil {
			Logger().Warn("regeneration failed, keeping cached tree",
				zap.Uint64("window", c.info.ID), zap.Error(err))
		}
	}
}

// Redraw re-presents the cached tree without rebuilding it.
func (c *WindowController) Redraw() {
	c.state = StateRedrawing
	c.presenter.Present(c.info, c.tree)
	c.state = StateCached
	c.stats.Redraws.Add(1)
}

// Regenerate invokes the render function and wholesale-replaces the cached
// tree, releasing every node-local handle the old tree uniquely held. There
// is no equality short-circuit: a regenerate signal always costs exactly one
// render invocation and one swap, even if the new tree is structurally
// identical.
//
// On failure (borrow conflict on the application handle, render panic, nil
// tree) the old tree is kept and the controller returns to StateCached.
func (c *WindowController) Regenerate() (err error) {
	c.state = StateRegenerating
	defer func() { c.state = StateCached }()

	view, err := c.data.Borrow()
	if err != nil {
		// A callback failed to release a mutable borrow before returning.
		// Documented caller contract; nothing to do but report and keep
		// the cached tree.
		rerr := &errors.RenderError{Window: c.info.Title, Err: err}
		errors.Report(&errors.SableError{
			Op:     "runtime.Regenerate",
			Kind:   errors.KindRender,
			Err:    rerr,
			Window: c.info.Title,
		})
		return rerr
	}
	defer view.Release()

	newTree, err := c.invokeRender(view)
	if err != nil {
		return err
	}

	old := c.tree
	c.tree = newTree
	c.registry = dispatch.NewRegistry(newTree)
	old.Release()

	c.stats.Regenerations.Add(1)
	c.presenter.Present(c.info, c.tree)
	return nil
}

// invokeRender calls the render function through a recovering trampoline.
// Unwinding across the calling convention is unsupported, so a panicking
// render function is converted into an error here.
func (c *WindowController) invokeRender(view *refdata.Ref) (tree *dom.Dom, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "runtime.invokeRender",
				Value:      rec,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			tree = nil
			err = &errors.RenderError{Window: c.info.Title, Err: fmt.Errorf("render function panicked: %v", rec)}
		}
	}()

	layout := &events.LayoutContext{Window: c.info, Extra: c.layoutExtra}
	tree = c.render(view, layout)
	if tree == nil {
		err = &errors.RenderError{Window: c.info.Title, Err: fmt.Errorf("render function returned nil tree")}
		errors.Report(&errors.SableError{
			Op:     "runtime.invokeRender",
			Kind:   errors.KindRender,
			Err:    err,
			Window: c.info.Title,
		})
		return nil, err
	}
	return tree, nil
}

// close releases the tree, the timers, and the controller's handle clone.
func (c *WindowController) close() {
	for id := range c.timers {
		c.RemoveTimer(id)
	}
	if c.tree != nil {
		c.tree.Release()
		c.tree = nil
	}
	c.registry = nil
	c.data.Drop()
}
