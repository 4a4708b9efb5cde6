package surface

import (
	"context"
	"sync/atomic"

	"go-surface/debug"
	"go-surface/protocol"
)

// Loop owns the surface and its dispatcher. Run is the only goroutine that
// touches either; transports and input sources hand events over with the
// non-blocking Push methods and never call into the dispatcher.
type Loop struct {
	surface *Surface
	disp    *protocol.Dispatcher

	frames   chan protocol.Frame
	inputs   chan Input
	settings chan Settings
	resync   chan struct{}

	dropped atomic.Int64
}

// NewLoop wires s as the dispatcher's handler. queue bounds each event
// channel.
func NewLoop(s *Surface, d *protocol.Dispatcher, queue int) *Loop {
	if queue <= 0 {
		queue = 64
	}
	d.SetHandler(s)
	return &Loop{
		surface:  s,
		disp:     d,
		frames:   make(chan protocol.Frame, queue),
		inputs:   make(chan Input, queue),
		settings: make(chan Settings, 1),
		resync:   make(chan struct{}, 1),
	}
}

// PushFrame queues a frame from a transport. It reports false and drops
// the frame when the queue is full.
func (l *Loop) PushFrame(f protocol.Frame) bool {
	select {
	case l.frames <- f:
		return true
	default:
		l.drop("frame")
		return false
	}
}

func (l *Loop) PushInput(in Input) bool {
	select {
	case l.inputs <- in:
		return true
	default:
		l.drop("input")
		return false
	}
}

// PushSettings queues new settings, replacing any not yet applied.
func (l *Loop) PushSettings(st Settings) {
	for {
		select {
		case l.settings <- st:
			return
		default:
		}
		select {
		case <-l.settings:
		default:
		}
	}
}

// Resync asks the loop to announce the surface again, as after the host
// link reconnects. Requests made while one is pending are merged.
func (l *Loop) Resync() {
	select {
	case l.resync <- struct{}{}:
	default:
	}
}

func (l *Loop) drop(what string) {
	n := l.dropped.Add(1)
	debug.LogEvery(100, "surface", "queue full, dropped %s (%d total)", what, n)
}

// Dropped returns the number of events lost to full queues.
func (l *Loop) Dropped() int64 { return l.dropped.Load() }

// Run announces the surface and processes events one at a time until ctx
// is done.
func (l *Loop) Run(ctx context.Context) error {
	l.surface.Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-l.frames:
			l.disp.Receive(f.Data, f.Origin)
		case in := <-l.inputs:
			l.surface.HandleInput(in)
		case st := <-l.settings:
			l.surface.Apply(st)
		case <-l.resync:
			l.surface.Start()
		}
	}
}
