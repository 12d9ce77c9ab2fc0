package runtime

import (
	"sort"
	"time"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/errors"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// TimerID identifies a timer within its window controller.
type TimerID uint64

// Timer fires a callback on an interval. Timer callbacks go through the same
// invocation contract as input callbacks: they receive a context with the
// captured handle and return a control signal the controller applies.
// Timers are independent of the document tree and survive regenerations.
type Timer struct {
	id       TimerID
	interval time.Duration
	next     time.Time
	repeat   bool
	fn       dom.Callback
	data     *refdata.RefData
}

// AddTimer registers a timer on this window. The controller takes ownership
// of the captured handle and drops it when the timer is removed or the
// window closes. One-shot timers (repeat=false) remove themselves after
// firing.
func (c *WindowController) AddTimer(interval time.Duration, repeat bool, fn dom.Callback, data *refdata.RefData) TimerID {
	c.nextTimerID++
	id := c.nextTimerID
	c.timers[id] = &Timer{
		id:       id,
		interval: interval,
		next:     time.Now().Add(interval),
		repeat:   repeat,
		fn:       fn,
		data:     data,
	}
	return id
}

// RemoveTimer stops a timer and drops its captured handle.
func (c *WindowController) RemoveTimer(id TimerID) {
	t, ok := c.timers[id]
	if !ok {
		return
	}
	delete(c.timers, id)
	if t.data != nil {
		t.data.Drop()
		t.data = nil
	}
}

// TimerCount returns the number of registered timers.
func (c *WindowController) TimerCount() int {
	return len(c.timers)
}

// Tick fires every timer due at now, in TimerID order, and applies each
// returned signal to this window. Registration order is the tie-break when
// several timers are due in the same pass. The combined (strongest) signal
// is returned so App.Tick can fan RegenerateAllDoms out to other windows.
func (c *WindowController) Tick(now time.Time) events.Update {
	ids := make([]TimerID, 0, len(c.timers))
	for id := range c.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	combined := events.DoNothing
	for _, id := range ids {
		t, ok := c.timers[id]
		if !ok || now.Before(t.next) {
			continue
		}
		update := c.invokeTimer(t)
		c.stats.TimerFires.Add(1)
		c.Apply(update)
		combined = events.Combine(combined, update)
		if t.repeat {
			t.next = now.Add(t.interval)
		} else {
			c.RemoveTimer(id)
		}
	}
	return combined
}

// invokeTimer runs one timer callback through a recovering trampoline, same
// contract as dispatch: a panic is converted to DoNothing at the boundary.
func (c *WindowController) invokeTimer(t *Timer) (update events.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "runtime.invokeTimer",
				Value:      rec,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			update = events.DoNothing
		}
	}()

	ctx := &dom.CallbackContext{
		Data:   t.data,
		Event:  events.Payload{Kind: events.KindTimer, Data: t.id},
		Window: c.info,
		Node:   dom.NodeIDNone,
	}
	update = t.fn(ctx)
	if !update.Valid() {
		update = events.DoNothing
	}
	return update
}
