package search

import (
	"strings"
	"sync"
	"time"
)

// EventKind discriminates debouncer events.
type EventKind int

const (
	// EventTrigger means the quiet window elapsed and the query should run.
	EventTrigger EventKind = iota
	// EventClear means the input dropped below the minimum length and any
	// displayed results should be cleared immediately.
	EventClear
)

// Event is a single debouncer emission.
type Event struct {
	Kind  EventKind
	Query string
}

// Debouncer coalesces a stream of text inputs into search triggers.
//
// A trigger fires only after no new input has arrived for the quiet window
// and the trimmed value is at least minLen characters. Inputs shorter than
// minLen emit an immediate clear, bypassing the window. Each new input
// cancels the previously scheduled trigger, so at most one trigger is
// pending at any time.
//
// The events channel is conflating: if the consumer lags, older undelivered
// events are dropped in favor of the newest one. Only the latest event ever
// matters to a search surface.
type Debouncer struct {
	window time.Duration
	minLen int

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool

	events chan Event
}

// NewDebouncer creates a debouncer with the given quiet window and minimum
// trimmed query length.
func NewDebouncer(window time.Duration, minLen int) *Debouncer {
	return &Debouncer{
		window: window,
		minLen: minLen,
		events: make(chan Event, 1),
	}
}

// Events returns the channel on which triggers and clears are delivered.
// The channel is closed by Close.
func (d *Debouncer) Events() <-chan Event {
	return d.events
}

// Input feeds the current text value to the debouncer. Safe for concurrent
// use; the last caller wins.
func (d *Debouncer) Input(text string) {
	trimmed := strings.TrimSpace(text)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	// Any new input supersedes the pending trigger.
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(trimmed) < d.minLen {
		d.emitLocked(Event{Kind: EventClear})
		return
	}

	tok := d.seq
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.closed || tok != d.seq {
			// Superseded or shut down while the timer was in flight.
			return
		}
		d.emitLocked(Event{Kind: EventTrigger, Query: trimmed})
	})
}

// emitLocked delivers ev, displacing an undelivered older event if needed.
// Callers must hold d.mu, which also serializes senders so the send after a
// drain cannot race another producer.
func (d *Debouncer) emitLocked(ev Event) {
	for {
		select {
		case d.events <- ev:
			return
		default:
			select {
			case <-d.events:
			default:
			}
		}
	}
}

// Close cancels any pending trigger and closes the events channel.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	close(d.events)
}
