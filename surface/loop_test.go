package surface

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

type activeRenderer struct {
	recordingRenderer
	active chan struct{}
}

func (r *activeRenderer) Refresh(v View) {
	if v.HostActive {
		select {
		case r.active <- struct{}{}:
		default:
		}
	}
}

func TestLoopRunsEventsInOrder(t *testing.T) {
	sent := make(chan protocol.MessageID, 8)
	sink := protocol.SinkFunc(func(frame []byte) error {
		sent <- protocol.MessageID(frame[0])
		return nil
	})
	d := protocol.NewDispatcher(nil, sink)
	r := &activeRenderer{recordingRenderer: *newRecordingRenderer(), active: make(chan struct{}, 1)}
	s := New(d, r, nil)
	loop := NewLoop(s, d, 4)

	require.True(t, loop.PushFrame(protocol.Frame{Data: encodeFrame(t, &protocol.HostInitialized{Active: true}), Origin: protocol.OriginHost}))
	require.True(t, loop.PushInput(Input{Control: ControlStop, Kind: Pressed}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	wait := func(what string, ch <-chan struct{}) {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}
	wait("host active", r.active)

	var ids []protocol.MessageID
	for len(ids) < 2 {
		select {
		case id := <-sent:
			ids = append(ids, id)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, sent %v", ids)
		}
	}
	assert.Equal(t, []protocol.MessageID{protocol.MsgRequestHostStatus, protocol.MsgTransportStop}, ids)

	cancel()
	require.NoError(t, <-done)
	assert.True(t, s.HostActive)
	assert.Equal(t, 1, d.Stats().Dispatched)
}

func TestLoopDropsWhenFull(t *testing.T) {
	d := protocol.NewDispatcher(nil, nil)
	loop := NewLoop(New(d, nil, nil), d, 1)

	assert.True(t, loop.PushInput(Input{Control: ControlPlay, Kind: Pressed}))
	assert.False(t, loop.PushInput(Input{Control: ControlStop, Kind: Pressed}))
	assert.True(t, loop.PushFrame(protocol.Frame{Data: []byte{0}}))
	assert.False(t, loop.PushFrame(protocol.Frame{Data: []byte{0}}))
	assert.Equal(t, int64(2), loop.Dropped())
}

func TestPushSettingsKeepsLatest(t *testing.T) {
	d := protocol.NewDispatcher(nil, nil)
	loop := NewLoop(New(d, nil, nil), d, 1)

	loop.PushSettings(Settings{Sensitivity: 0.1})
	loop.PushSettings(Settings{Sensitivity: 0.2})

	assert.Equal(t, Settings{Sensitivity: 0.2}, <-loop.settings)
}

func TestResyncMerges(t *testing.T) {
	d := protocol.NewDispatcher(nil, nil)
	loop := NewLoop(New(d, nil, nil), d, 1)

	loop.Resync()
	loop.Resync()
	assert.Len(t, loop.resync, 1)
}
