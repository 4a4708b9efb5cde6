package protocol

import (
	"errors"
	"fmt"

	"go-surface/debug"
)

// Handler receives every successfully decoded inbound message.
type Handler interface {
	Handle(m Message, origin Origin)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(m Message, origin Origin)

func (f HandlerFunc) Handle(m Message, origin Origin) { f(m, origin) }

// Sink accepts outbound frames ([tag][payload]). The slice is only valid
// for the duration of the call.
type Sink interface {
	WriteFrame(frame []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(frame []byte) error

func (f SinkFunc) WriteFrame(frame []byte) error { return f(frame) }

// Tap observes frames in both directions, before decoding on the way in
// and after encoding on the way out. ToController marks inbound frames.
type Tap func(dir Direction, frame []byte, origin Origin)

// Stats counts what the dispatcher did with each frame.
type Stats struct {
	Received   int
	Dispatched int
	Unknown    int
	Malformed  int
	Clipped    int
	Sent       int
	Dropped    int
	Reentrant  int
}

// Dispatcher decodes inbound frames and hands them to a single handler, and
// encodes outbound messages into its own buffer. It is not safe for
// concurrent use; the event loop owns it.
type Dispatcher struct {
	handler Handler
	sink    Sink
	strict  bool
	tap     Tap
	buf     []byte
	busy    bool
	stats   Stats
}

type Option func(*Dispatcher)

// WithStrict makes send misuse panic instead of dropping the message.
func WithStrict(strict bool) Option {
	return func(d *Dispatcher) { d.strict = strict }
}

// WithBufferSize sets the outbound buffer size, tag byte included.
func WithBufferSize(n int) Option {
	return func(d *Dispatcher) { d.buf = make([]byte, n) }
}

func WithTap(t Tap) Option {
	return func(d *Dispatcher) { d.tap = t }
}

func NewDispatcher(handler Handler, sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{handler: handler, sink: sink}
	for _, opt := range opts {
		opt(d)
	}
	if d.buf == nil {
		d.buf = make([]byte, MaxMessageSize)
	}
	return d
}

// SetHandler replaces the handler. Used to break the construction cycle
// between a dispatcher and a handler that sends through it.
func (d *Dispatcher) SetHandler(h Handler) { d.handler = h }

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Stats { return d.stats }

// Receive decodes frame and invokes the handler once. Unknown tags and
// malformed payloads are dropped silently and reported as false. A call
// made from inside the handler is rejected.
func (d *Dispatcher) Receive(frame []byte, origin Origin) bool {
	if d.busy {
		d.stats.Reentrant++
		debug.Warn("dispatch", "%v: frame of %d bytes rejected", ErrReentrant, len(frame))
		return false
	}
	d.busy = true
	defer func() { d.busy = false }()

	d.stats.Received++
	if d.tap != nil {
		d.tap(ToController, frame, origin)
	}
	if len(frame) == 0 {
		d.stats.Malformed++
		return false
	}

	id := MessageID(frame[0])
	msg, clipped, err := decode(id, frame[1:])
	d.stats.Clipped += clipped
	if err != nil {
		if errors.Is(err, ErrUnknownMessage) {
			d.stats.Unknown++
		} else {
			d.stats.Malformed++
		}
		debug.Log("dispatch", "drop %s: %v", origin, err)
		return false
	}
	if clipped > 0 {
		debug.Log("dispatch", "%s: %d sequence(s) clipped to capacity", id, clipped)
	}

	d.stats.Dispatched++
	if d.handler != nil {
		d.handler.Handle(msg, origin)
	}
	return true
}

// Send encodes m and writes [tag][payload] to the sink. A buffer smaller
// than the variant's MaxSize is a programming error.
func (d *Dispatcher) Send(m Message) error {
	info, ok := Lookup(m.ID())
	if !ok {
		return d.misuse(fmt.Errorf("send %d: %w", uint8(m.ID()), ErrUnknownMessage))
	}
	if 1+info.MaxSize > len(d.buf) {
		return d.misuse(fmt.Errorf("send %s (max %d, buffer %d): %w",
			info.Name, info.MaxSize, len(d.buf)-1, ErrBufferTooSmall))
	}

	d.buf[0] = byte(info.ID)
	n := Encode(m, d.buf[1:])
	frame := d.buf[:1+n]
	if d.tap != nil {
		d.tap(ToHost, frame, OriginLocal)
	}
	if d.sink == nil {
		d.stats.Dropped++
		return nil
	}
	if err := d.sink.WriteFrame(frame); err != nil {
		d.stats.Dropped++
		return fmt.Errorf("send %s: %w", info.Name, err)
	}
	d.stats.Sent++
	return nil
}

func (d *Dispatcher) misuse(err error) error {
	if d.strict {
		panic(err)
	}
	d.stats.Dropped++
	debug.Warn("dispatch", "%v", err)
	return err
}
