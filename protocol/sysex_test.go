package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapSevenBitFrameUnpacked(t *testing.T) {
	msg, err := WrapSysEx([]byte{byte(MsgRequestHostStatus)}, OriginLocal)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x7F, 0x01, byte(MsgRequestHostStatus), 0x00, 0xF7}, msg)
}

func TestWrapRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		frame  []byte
		origin Origin
	}{
		{"ascii", []byte{byte(MsgTrackSelect), 9, 'T', 'r', 'a', 'c', 'k', 'S', 'e', 'l', 'e', 3}, OriginHost},
		{"high bytes", []byte{byte(MsgTransportTempo), 0xFF, 0x80, 0x00, 0x7F, 0xC3}, OriginEcho},
		{"exact group", []byte{1, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87}, OriginHost},
		{"group and one", []byte{1, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88}, OriginLocal},
		{"tag only", []byte{byte(MsgExitToParent)}, OriginHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := WrapSysEx(tc.frame, tc.origin)
			require.NoError(t, err)
			assert.Equal(t, byte(0xF0), msg[0])
			assert.Equal(t, byte(0xF7), msg[len(msg)-1])
			for i, b := range msg[1 : len(msg)-1] {
				assert.Less(t, b, byte(0x80), "byte %d", i+1)
			}

			got, err := UnwrapSysEx(msg)
			require.NoError(t, err)
			assert.Equal(t, tc.frame, got.Data)
			assert.Equal(t, tc.origin, got.Origin)

			// drivers that strip the status bytes
			got, err = UnwrapSysEx(msg[1 : len(msg)-1])
			require.NoError(t, err)
			assert.Equal(t, tc.frame, got.Data)
		})
	}
}

func TestPackSizes(t *testing.T) {
	assert.Len(t, pack7(make([]byte, 7)), 8)
	assert.Len(t, pack7(make([]byte, 8)), 10)
	assert.Empty(t, pack7(nil))
}

func TestUnwrapRejects(t *testing.T) {
	_, err := UnwrapSysEx([]byte{0xF0, 0x43, 0x10, 0x4C, 0xF7})
	assert.ErrorIs(t, err, ErrNotSurfaceSysEx)

	_, err = UnwrapSysEx([]byte{0xF0, 0x7F, 0x01, 0x02, flagPacked, 0x01, 0xF7})
	assert.ErrorIs(t, err, ErrBadFrame)

	_, err = WrapSysEx(nil, OriginHost)
	assert.ErrorIs(t, err, ErrBadFrame)
	_, err = WrapSysEx([]byte{0x90}, OriginHost)
	assert.ErrorIs(t, err, ErrBadFrame)
}
