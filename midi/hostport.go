package midi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-surface/debug"
	"go-surface/protocol"
)

// ErrClosed is returned when writing to a port that has no output.
var ErrClosed = errors.New("midi: port not open for output")

var framesIn, framesOut uint64

// HostPort is the link to the host. Inbound SysEx is unwrapped into frames
// stamped with the origin the host put in the envelope; outbound frames
// are wrapped as local. It implements protocol.Sink.
type HostPort struct {
	id       string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()

	mu      sync.Mutex
	closed  bool
	frames  chan protocol.Frame
	dropped atomic.Uint64
}

// NewHostPort opens the port pair. Either side may be nil.
func NewHostPort(id string, inPort drivers.In, outPort drivers.Out) (*HostPort, error) {
	hp := &HostPort{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		frames:  make(chan protocol.Frame, 64),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		hp.send = send
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			hp.receive(msg)
		}, gomidi.UseSysEx())
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		hp.stopFunc = stop
	}

	return hp, nil
}

func (hp *HostPort) receive(msg gomidi.Message) {
	var data []byte
	if !msg.GetSysEx(&data) {
		return
	}
	f, err := protocol.UnwrapSysEx(data)
	if err != nil {
		debug.LogEvery(50, "midi", "ignored sysex: %v", err)
		return
	}
	n := atomic.AddUint64(&framesIn, 1)
	if n%100 == 0 {
		debug.Log("midi", "frames in=%d out=%d", n, atomic.LoadUint64(&framesOut))
	}
	hp.mu.Lock()
	defer hp.mu.Unlock()
	if hp.closed {
		return
	}
	select {
	case hp.frames <- f:
	default:
		hp.dropped.Add(1)
	}
}

func (hp *HostPort) ID() string {
	return hp.id
}

func (hp *HostPort) Type() ControllerType {
	return ControllerHost
}

// Frames delivers inbound frames. It is closed by Close; frames that
// arrive afterwards are discarded.
func (hp *HostPort) Frames() <-chan protocol.Frame {
	return hp.frames
}

// Dropped counts frames lost because Frames was not drained.
func (hp *HostPort) Dropped() uint64 {
	return hp.dropped.Load()
}

// WriteFrame sends one [tag][payload] frame to the host.
func (hp *HostPort) WriteFrame(frame []byte) error {
	if hp.send == nil {
		return ErrClosed
	}
	b, err := protocol.WrapSysEx(frame, protocol.OriginLocal)
	if err != nil {
		return err
	}
	atomic.AddUint64(&framesOut, 1)
	if err := hp.send(gomidi.Message(b)); err != nil {
		return fmt.Errorf("send sysex: %w", err)
	}
	return nil
}

// Close stops listening and closes Frames. It is safe to call more than
// once.
func (hp *HostPort) Close() error {
	if hp.stopFunc != nil {
		hp.stopFunc()
	}
	hp.mu.Lock()
	defer hp.mu.Unlock()
	if !hp.closed {
		hp.closed = true
		close(hp.frames)
	}
	return nil
}

var _ protocol.Sink = (*HostPort)(nil)

// HostLink is a protocol.Sink that writes to whichever host port is
// currently connected.
type HostLink struct {
	cur atomic.Pointer[HostPort]
}

// Set makes hp the current port.
func (l *HostLink) Set(hp *HostPort) { l.cur.Store(hp) }

// Clear forgets the current port if its id is id.
func (l *HostLink) Clear(id string) {
	if hp := l.cur.Load(); hp != nil && hp.id == id {
		l.cur.CompareAndSwap(hp, nil)
	}
}

func (l *HostLink) Connected() bool { return l.cur.Load() != nil }

func (l *HostLink) WriteFrame(frame []byte) error {
	hp := l.cur.Load()
	if hp == nil {
		return ErrClosed
	}
	return hp.WriteFrame(frame)
}

var _ protocol.Sink = (*HostLink)(nil)
