package runtime

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/errors"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// App is the bootstrap surface: it owns the application handle, creates
// per-window controllers, and fans regenerate-all signals out across them.
type App struct {
	data      *refdata.RefData
	presenter Presenter

	windows      map[uint64]*WindowController
	windowOrder  []uint64
	nextWindowID uint64

	stats Stats

	debug *debugServer
}

// Option configures an App.
type Option func(*App)

// WithPresenter installs the rendering collaborator's redraw hook.
// Defaults to NopPresenter.
func WithPresenter(p Presenter) Option {
	return func(a *App) {
		if p != nil {
			a.presenter = p
		}
	}
}

// NewApp creates the application with its initial handle. The app takes
// ownership of the handle and drops it on Shutdown; windows hold their own
// clones.
func NewApp(data *refdata.RefData, opts ...Option) *App {
	a := &App{
		data:      data,
		presenter: NopPresenter{},
		windows:   make(map[uint64]*WindowController),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateWindow starts a controller for a new window. The controller begins
// in StateCached with the tree produced by an initial regeneration.
func (a *App) CreateWindow(opts WindowOptions) (*WindowController, error) {
	if opts.Render == nil {
		err := fmt.Errorf("window %q has no render function", opts.Title)
		errors.Report(&errors.SableError{Op: "runtime.CreateWindow", Kind: errors.KindInit, Err: err})
		return nil, err
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	a.nextWindowID++
	info := events.WindowInfo{
		ID:     a.nextWindowID,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Scale:  opts.Scale,
	}

	c, err := newWindowController(info, opts, a.data.Clone(), a.presenter, &a.stats)
	if err != nil {
		return nil, err
	}
	a.windows[info.ID] = c
	a.windowOrder = append(a.windowOrder, info.ID)

	Logger().Info("window created",
		zap.Uint64("id", info.ID),
		zap.String("title", info.Title),
		zap.Int("nodes", c.Tree().NodeCount()),
	)
	return c, nil
}

// Window returns the controller for a window ID, or nil.
func (a *App) Window(id uint64) *WindowController {
	return a.windows[id]
}

// Windows returns the controllers in creation order.
func (a *App) Windows() []*WindowController {
	out := make([]*WindowController, 0, len(a.windows))
	for _, id := range a.windowOrder {
		if c, ok := a.windows[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// WindowCount returns the number of open windows.
func (a *App) WindowCount() int {
	return len(a.windows)
}

// Stats returns the app-wide activity counters.
func (a *App) Stats() *Stats {
	return &a.stats
}

// ProcessEvent routes one translated input event to a window's controller
// and applies the resulting control signal. When the callback returns
// RegenerateAllDoms, every other window regenerates too.
func (a *App) ProcessEvent(windowID uint64, chain []dom.NodeID, kind events.Kind, payload events.Payload) events.Update {
	c, ok := a.windows[windowID]
	if !ok {
		return events.DoNothing
	}
	update := c.ProcessEvent(chain, kind, payload)
	if update == events.RegenerateAllDoms {
		a.regenerateOthers(windowID)
	}
	return update
}

// Tick advances every window's timers. RegenerateAllDoms from a timer fans
// out the same way as from an input callback.
func (a *App) Tick(now time.Time) {
	for _, id := range a.windowOrder {
		c, ok := a.windows[id]
		if !ok {
			continue
		}
		if c.Tick(now) == events.RegenerateAllDoms {
			a.regenerateOthers(id)
		}
	}
}

// regenerateOthers rebuilds every window except the one that already
// regenerated while applying the signal locally.
func (a *App) regenerateOthers(originID uint64) {
	for _, id := range a.windowOrder {
		if id == originID {
			continue
		}
		c, ok := a.windows[id]
		if !ok {
			continue
		}
		if err := c.Regenerate(); err != nil {
			Logger().Warn("regenerate-all failed for window",
				zap.Uint64("window", id), zap.Error(err))
		}
	}
}

// CloseWindow releases a window's tree, timers, and handle clone.
func (a *App) CloseWindow(id uint64) {
	c, ok := a.windows[id]
	if !ok {
		return
	}
	delete(a.windows, id)
	for i, wid := range a.windowOrder {
		if wid == id {
			a.windowOrder = append(a.windowOrder[:i], a.windowOrder[i+1:]...)
			break
		}
	}
	c.close()
	Logger().Info("window closed", zap.Uint64("id", id))
}

// Shutdown closes every window, stops the debug server, and drops the
// application handle.
func (a *App) Shutdown() {
	for _, id := range append([]uint64(nil), a.windowOrder...) {
		a.CloseWindow(id)
	}
	a.StopDebugServer()
	if a.data != nil {
		a.data.Drop()
		a.data = nil
	}
}
