package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	On     bool
	Small  uint8
	Signed int8
	Wide   uint16
	Delta  int16
	Color  uint32
	Count  int32
	Gain   float32
	Level  float32
	Fine   float32
	Name   string
	Tags   []uint8
	Parts  []samplePart
}

type samplePart struct {
	Index uint8
	Label string
}

func (s *sample) walk(st Stream) {
	st.Bool(&s.On)
	st.Uint8(&s.Small)
	st.Int8(&s.Signed)
	st.Uint16(&s.Wide)
	st.Int16(&s.Delta)
	st.Uint32(&s.Color)
	st.Int32(&s.Count)
	st.Float32(&s.Gain)
	st.Norm8(&s.Level)
	st.Norm16(&s.Fine)
	st.String(&s.Name)
	Seq(st, &s.Tags, 4, Stream.Uint8)
	Seq(st, &s.Parts, 3, func(st Stream, p *samplePart) {
		st.Uint8(&p.Index)
		st.String(&p.Label)
	})
}

func TestPrimitiveRoundTrip(t *testing.T) {
	for _, p := range []Profile{Binary, SevenBit} {
		t.Run(p.String(), func(t *testing.T) {
			in := sample{
				On:     true,
				Small:  100,
				Signed: -42,
				Wide:   65535,
				Delta:  -32768,
				Color:  0xFF8800,
				Count:  -1,
				Gain:   -0.75,
				Level:  1,
				Fine:   0,
				Name:   "Cutoff",
				Tags:   []uint8{1, 2},
				Parts:  []samplePart{{Index: 3, Label: "Slot"}},
			}
			buf := make([]byte, 256)
			w := NewWriter(p, buf)
			in.walk(w)
			require.NoError(t, w.Err())

			var out sample
			r := NewReader(p, w.Bytes())
			out.walk(r)
			require.NoError(t, r.Err())
			assert.Equal(t, in, out)
			assert.Zero(t, r.Remaining())
		})
	}
}

func TestSevenBitStaysMIDISafe(t *testing.T) {
	var in sample
	in.walk(Filler{})
	in.Color = 0xFFFFFFFF
	in.Wide = 0xFFFF
	in.Name = "\xff\xfe\xfdABC"

	buf := make([]byte, 512)
	w := NewWriter(SevenBit, buf)
	in.walk(w)
	require.NoError(t, w.Err())
	for i, b := range w.Bytes() {
		assert.Less(t, b, byte(0x80), "byte %d", i)
	}
}

func TestDecodeTruncated(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		data    []byte
		read    func(r *Reader)
	}{
		{"bool empty", Binary, nil, func(r *Reader) { var v bool; r.Bool(&v) }},
		{"uint16 one byte", Binary, []byte{1}, func(r *Reader) { var v uint16; r.Uint16(&v) }},
		{"uint16 7bit two bytes", SevenBit, []byte{1, 2}, func(r *Reader) { var v uint16; r.Uint16(&v) }},
		{"float 7bit four bytes", SevenBit, []byte{1, 2, 3, 4}, func(r *Reader) { var v float32; r.Float32(&v) }},
		{"norm16 one byte", Binary, []byte{9}, func(r *Reader) { var v float32; r.Norm16(&v) }},
		{"string longer than data", Binary, []byte{5, 'a', 'b'}, func(r *Reader) { var v string; r.String(&v) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(tc.profile, tc.data)
			tc.read(r)
			assert.ErrorIs(t, r.Err(), ErrTruncated)
			assert.Zero(t, r.Offset())
		})
	}
}

func TestFailedDecodeLeavesValue(t *testing.T) {
	v := "keep"
	r := NewReader(Binary, []byte{9, 'x'})
	r.String(&v)
	assert.Equal(t, "keep", v)
}

func TestWriterShortBuffer(t *testing.T) {
	w := NewWriter(Binary, make([]byte, 3))
	var f float32 = 1
	w.Float32(&f)
	assert.ErrorIs(t, w.Err(), ErrShortBuffer)

	// sticky: later small writes stay rejected
	var b uint8 = 1
	w.Uint8(&b)
	assert.Zero(t, w.Len())
}

func TestStringCap(t *testing.T) {
	long := strings.Repeat("abcdefgh", 4)
	buf := make([]byte, 64)
	n, err := Binary.PutText(buf, long, StringMax)
	require.NoError(t, err)
	assert.Equal(t, 1+StringMax, n)

	// a peer sending a longer string is consumed fully but kept capped
	wire := append([]byte{byte(len(long))}, long...)
	got, n, err := Binary.Text(wire, StringMax)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, long[:StringMax], got)
}

func TestSeqClipsToCapacity(t *testing.T) {
	// count declares cap+5 elements, all present on the wire
	const capacity = 4
	data := []byte{capacity + 5}
	for i := 0; i < capacity+5; i++ {
		data = append(data, byte(i))
	}
	r := NewReader(Binary, data)
	var items []uint8
	Seq(r, &items, capacity, Stream.Uint8)
	require.NoError(t, r.Err())
	assert.Equal(t, []uint8{0, 1, 2, 3}, items)
	assert.Equal(t, 1, r.Clipped())
	assert.Equal(t, 1+capacity, r.Offset())
}

func TestSeqClipNeverReadsPastBuffer(t *testing.T) {
	// declares 9 but only two elements follow
	r := NewReader(Binary, []byte{9, 1, 2})
	var items []uint8
	Seq(r, &items, 4, Stream.Uint8)
	assert.ErrorIs(t, r.Err(), ErrTruncated)
	assert.LessOrEqual(t, r.Offset(), 3)
}

func TestSizerMatchesFiller(t *testing.T) {
	for _, p := range []Profile{Binary, SevenBit} {
		t.Run(p.String(), func(t *testing.T) {
			var scratch sample
			sz := NewSizer(p)
			scratch.walk(sz)

			var full sample
			full.walk(Filler{})
			buf := make([]byte, sz.Max())
			w := NewWriter(p, buf)
			full.walk(w)
			require.NoError(t, w.Err())
			assert.Equal(t, sz.Max(), w.Len())

			var zero sample
			w = NewWriter(p, make([]byte, 64))
			zero.walk(w)
			require.NoError(t, w.Err())
			assert.Equal(t, sz.Min(), w.Len())
		})
	}
}

func TestNormQuantization(t *testing.T) {
	buf := make([]byte, 2)
	_, err := Binary.PutNorm16(buf, 0.5)
	require.NoError(t, err)
	v, _, err := Binary.Norm16(buf)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1.0/65535)

	_, err = Binary.PutNorm8(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, byte(255), buf[0])

	_, err = SevenBit.PutNorm8(buf, -1)
	require.NoError(t, err)
	assert.Equal(t, byte(0), buf[0])
}
