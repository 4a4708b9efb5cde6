package midi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-surface/protocol"
	"go-surface/surface"
)

func TestKnobMapDecode(t *testing.T) {
	m := KnobMap{Channel: 2, FirstCC: 16, FirstNote: 36}
	cases := []struct {
		name string
		msg  gomidi.Message
		want surface.Input
		ok   bool
	}{
		{"slot turn right", gomidi.ControlChange(2, 16, 67), surface.Input{Control: 0, Kind: surface.Turned, Delta: 3}, true},
		{"slot turn left", gomidi.ControlChange(2, 23, 63), surface.Input{Control: 7, Kind: surface.Turned, Delta: -1}, true},
		{"last clicked", gomidi.ControlChange(2, 24, 65), surface.Input{Control: surface.ControlLastClicked, Kind: surface.Turned, Delta: 1}, true},
		{"nav", gomidi.ControlChange(2, 25, 62), surface.Input{Control: surface.ControlNav, Kind: surface.Turned, Delta: -2}, true},
		{"cc at rest", gomidi.ControlChange(2, 16, 64), surface.Input{}, false},
		{"cc out of range", gomidi.ControlChange(2, 26, 65), surface.Input{}, false},
		{"other channel", gomidi.ControlChange(3, 16, 65), surface.Input{}, false},
		{"touch", gomidi.NoteOn(2, 37, 100), surface.Input{Control: 1, Kind: surface.Pressed}, true},
		{"release by velocity", gomidi.NoteOn(2, 37, 0), surface.Input{Control: 1, Kind: surface.Released}, true},
		{"release", gomidi.NoteOff(2, 44), surface.Input{Control: surface.ControlLastClicked, Kind: surface.Released}, true},
		{"first button", gomidi.NoteOn(2, 45, 127), surface.Input{Control: surface.ControlDevices, Kind: surface.Pressed}, true},
		{"last button", gomidi.NoteOn(2, 57, 127), surface.Input{Control: surface.ControlResetAutomation, Kind: surface.Pressed}, true},
		{"past buttons", gomidi.NoteOn(2, 58, 127), surface.Input{}, false},
		{"below range", gomidi.NoteOn(2, 35, 127), surface.Input{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Decode(tc.msg)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPositionCC(t *testing.T) {
	assert.Equal(t, uint8(0), positionCC(-1))
	assert.Equal(t, uint8(64), positionCC(0.5))
	assert.Equal(t, uint8(127), positionCC(2))
}

func TestHostPortRoundTrip(t *testing.T) {
	hp, err := NewHostPort("test", nil, nil)
	require.NoError(t, err)
	defer hp.Close()

	assert.ErrorIs(t, hp.WriteFrame([]byte{byte(protocol.MsgExitToParent)}), ErrClosed)

	var sent []gomidi.Message
	hp.send = func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	}
	frame := []byte{byte(protocol.MsgRemoteControlValue), 0x00, 0xFF, 0x80, 0x01}
	require.NoError(t, hp.WriteFrame(frame))
	require.Len(t, sent, 1)
	for _, b := range sent[0][1 : len(sent[0])-1] {
		assert.Less(t, b, byte(0x80))
	}

	// the host echoes the same frame back
	echo := append([]byte(nil), sent[0]...)
	echo[4] = echo[4]&^0x03 | byte(protocol.OriginEcho)
	hp.receive(gomidi.Message(echo))

	got := <-hp.Frames()
	assert.Equal(t, frame, got.Data)
	assert.Equal(t, protocol.OriginEcho, got.Origin)
}

func TestHostPortCloseWhileReceiving(t *testing.T) {
	hp, err := NewHostPort("test", nil, nil)
	require.NoError(t, err)

	msg, err := protocol.WrapSysEx([]byte{byte(protocol.MsgExitToParent)}, protocol.OriginHost)
	require.NoError(t, err)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range 500 {
				assert.NotPanics(t, func() { hp.receive(gomidi.Message(msg)) })
			}
		}()
	}
	close(start)
	assert.NoError(t, hp.Close())
	wg.Wait()
	assert.NoError(t, hp.Close())

	for range hp.Frames() {
	}
}

func TestKnobBoxCloseWhileReceiving(t *testing.T) {
	kb, err := NewKnobBox("knobs", nil, nil, KnobMap{Channel: 0, FirstCC: 16, FirstNote: 36})
	require.NoError(t, err)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range 500 {
				assert.NotPanics(t, func() { kb.receive(gomidi.ControlChange(0, 16, 65)) })
			}
		}()
	}
	close(start)
	assert.NoError(t, kb.Close())
	wg.Wait()
	assert.NoError(t, kb.Close())
}

func TestHostPortIgnoresForeignSysEx(t *testing.T) {
	hp, err := NewHostPort("test", nil, nil)
	require.NoError(t, err)
	defer hp.Close()

	hp.receive(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}))
	hp.receive(gomidi.NoteOn(0, 60, 100))
	assert.Empty(t, hp.frames)
}

type portName string

func (p portName) String() string { return string(p) }

func TestFindPort(t *testing.T) {
	ports := []portName{"IAC Driver Bus 1", "Surface Host", "Knob Box MIDI 1"}
	assert.Equal(t, 1, findPort(ports, "surface"))
	assert.Equal(t, 2, findPort(ports, "KNOB BOX"))
	assert.Equal(t, -1, findPort(ports, "launchpad"))
	assert.Equal(t, -1, findPort(ports, ""))
}

func TestHostLinkFollowsCurrentPort(t *testing.T) {
	var link HostLink
	frame := []byte{byte(protocol.MsgTransportStop)}
	assert.ErrorIs(t, link.WriteFrame(frame), ErrClosed)

	hp, err := NewHostPort("host:a", nil, nil)
	require.NoError(t, err)
	defer hp.Close()
	var sent int
	hp.send = func(gomidi.Message) error { sent++; return nil }

	link.Set(hp)
	require.True(t, link.Connected())
	require.NoError(t, link.WriteFrame(frame))
	assert.Equal(t, 1, sent)

	link.Clear("host:other")
	assert.True(t, link.Connected())
	link.Clear("host:a")
	assert.False(t, link.Connected())
}
