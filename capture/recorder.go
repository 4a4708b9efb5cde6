package capture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-surface/debug"
	"go-surface/protocol"
)

// Recorder buffers frames from a dispatcher tap and writes them to the
// store in batches, off the event loop.
type Recorder struct {
	store   *Store
	session uuid.UUID
	queue   chan Record
	flush   time.Duration
}

func NewRecorder(store *Store, session uuid.UUID) *Recorder {
	return &Recorder{
		store:   store,
		session: session,
		queue:   make(chan Record, 1024),
		flush:   250 * time.Millisecond,
	}
}

// Tap is a protocol.Tap. Frames are dropped when the writer falls behind.
func (r *Recorder) Tap(dir protocol.Direction, frame []byte, origin protocol.Origin) {
	rec := Record{
		Time:      time.Now(),
		Direction: dir,
		Origin:    origin,
		Data:      append([]byte(nil), frame...),
	}
	select {
	case r.queue <- rec:
	default:
		debug.LogEvery(100, "capture", "queue full, frame dropped")
	}
}

// Run writes queued frames until ctx is done, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.flush)
	defer ticker.Stop()

	var pending []Record
	write := func() error {
		if err := r.store.Append(r.session, pending); err != nil {
			return err
		}
		pending = pending[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case rec := <-r.queue:
					pending = append(pending, rec)
				default:
					return write()
				}
			}
		case rec := <-r.queue:
			pending = append(pending, rec)
		case <-ticker.C:
			if err := write(); err != nil {
				return err
			}
		}
	}
}
