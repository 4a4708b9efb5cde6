// Package wire reads and writes the primitive field types used by the
// message catalog. Two profiles exist side by side: Binary uses full 8-bit
// little-endian fields, SevenBit keeps every byte below 0x80 so payloads can
// travel inside MIDI SysEx without escaping.
package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// StringMax is the longest text value a field carries.
const StringMax = 16

var (
	// ErrTruncated is returned when fewer bytes remain than a field needs.
	ErrTruncated = errors.New("wire: truncated field")
	// ErrShortBuffer is returned when the destination cannot hold a field.
	ErrShortBuffer = errors.New("wire: buffer too small")
)

// Profile selects the byte layout of each primitive.
type Profile uint8

const (
	Binary Profile = iota
	SevenBit
)

func (p Profile) String() string {
	switch p {
	case Binary:
		return "binary"
	case SevenBit:
		return "7bit"
	}
	return "unknown"
}

// Width returns the encoded size of the fixed-width kinds.
func (p Profile) Width(k Kind) int {
	switch k {
	case KindBool, KindUint8, KindInt8, KindNorm8:
		return 1
	case KindUint16, KindInt16:
		if p == SevenBit {
			return 3
		}
		return 2
	case KindNorm16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		if p == SevenBit {
			return 5
		}
		return 4
	}
	return 0
}

// Kind names a primitive field type.
type Kind uint8

const (
	KindBool Kind = iota
	KindUint8
	KindInt8
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindFloat32
	KindNorm8
	KindNorm16
	KindString
)

// PutBool writes a bool as 0x00 or 0x01.
func (p Profile) PutBool(b []byte, v bool) (int, error) {
	if len(b) < 1 {
		return 0, ErrShortBuffer
	}
	b[0] = 0
	if v {
		b[0] = 1
	}
	return 1, nil
}

// Bool reads a bool. Any non-zero byte is true.
func (p Profile) Bool(b []byte) (bool, int, error) {
	if len(b) < 1 {
		return false, 0, ErrTruncated
	}
	return b[0] != 0, 1, nil
}

func (p Profile) PutUint8(b []byte, v uint8) (int, error) {
	if len(b) < 1 {
		return 0, ErrShortBuffer
	}
	if p == SevenBit {
		v &= 0x7F
	}
	b[0] = v
	return 1, nil
}

func (p Profile) Uint8(b []byte) (uint8, int, error) {
	if len(b) < 1 {
		return 0, 0, ErrTruncated
	}
	if p == SevenBit {
		return b[0] & 0x7F, 1, nil
	}
	return b[0], 1, nil
}

// PutInt8 writes a signed byte. The SevenBit profile keeps the low seven
// bits, so it carries -64..63.
func (p Profile) PutInt8(b []byte, v int8) (int, error) {
	return p.PutUint8(b, uint8(v))
}

func (p Profile) Int8(b []byte) (int8, int, error) {
	u, n, err := p.Uint8(b)
	if err != nil {
		return 0, 0, err
	}
	if p == SevenBit && u&0x40 != 0 {
		u |= 0x80
	}
	return int8(u), n, nil
}

func (p Profile) PutUint16(b []byte, v uint16) (int, error) {
	if p == SevenBit {
		if len(b) < 3 {
			return 0, ErrShortBuffer
		}
		b[0] = byte(v & 0x7F)
		b[1] = byte((v >> 7) & 0x7F)
		b[2] = byte((v >> 14) & 0x03)
		return 3, nil
	}
	if len(b) < 2 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint16(b, v)
	return 2, nil
}

func (p Profile) Uint16(b []byte) (uint16, int, error) {
	if p == SevenBit {
		if len(b) < 3 {
			return 0, 0, ErrTruncated
		}
		v := uint16(b[0]&0x7F) | uint16(b[1]&0x7F)<<7 | uint16(b[2]&0x03)<<14
		return v, 3, nil
	}
	if len(b) < 2 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint16(b), 2, nil
}

func (p Profile) PutInt16(b []byte, v int16) (int, error) {
	return p.PutUint16(b, uint16(v))
}

func (p Profile) Int16(b []byte) (int16, int, error) {
	u, n, err := p.Uint16(b)
	return int16(u), n, err
}

func (p Profile) PutUint32(b []byte, v uint32) (int, error) {
	if p == SevenBit {
		if len(b) < 5 {
			return 0, ErrShortBuffer
		}
		b[0] = byte(v & 0x7F)
		b[1] = byte((v >> 7) & 0x7F)
		b[2] = byte((v >> 14) & 0x7F)
		b[3] = byte((v >> 21) & 0x7F)
		b[4] = byte((v >> 28) & 0x0F)
		return 5, nil
	}
	if len(b) < 4 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint32(b, v)
	return 4, nil
}

func (p Profile) Uint32(b []byte) (uint32, int, error) {
	if p == SevenBit {
		if len(b) < 5 {
			return 0, 0, ErrTruncated
		}
		v := uint32(b[0]&0x7F) |
			uint32(b[1]&0x7F)<<7 |
			uint32(b[2]&0x7F)<<14 |
			uint32(b[3]&0x7F)<<21 |
			uint32(b[4]&0x0F)<<28
		return v, 5, nil
	}
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(b), 4, nil
}

func (p Profile) PutInt32(b []byte, v int32) (int, error) {
	return p.PutUint32(b, uint32(v))
}

func (p Profile) Int32(b []byte) (int32, int, error) {
	u, n, err := p.Uint32(b)
	return int32(u), n, err
}

// PutFloat32 writes the IEEE-754 bit pattern.
func (p Profile) PutFloat32(b []byte, v float32) (int, error) {
	return p.PutUint32(b, math.Float32bits(v))
}

func (p Profile) Float32(b []byte) (float32, int, error) {
	u, n, err := p.Uint32(b)
	if err != nil {
		return 0, 0, err
	}
	return math.Float32frombits(u), n, nil
}

// PutNorm8 writes a 0..1 value as a single byte (0..255, or 0..127 in the
// SevenBit profile). Values outside 0..1 are clamped.
func (p Profile) PutNorm8(b []byte, v float32) (int, error) {
	if len(b) < 1 {
		return 0, ErrShortBuffer
	}
	b[0] = uint8(Clamp01(v)*p.norm8Scale() + 0.5)
	return 1, nil
}

func (p Profile) Norm8(b []byte) (float32, int, error) {
	if len(b) < 1 {
		return 0, 0, ErrTruncated
	}
	raw := b[0]
	if p == SevenBit {
		raw &= 0x7F
	}
	return float32(raw) / p.norm8Scale(), 1, nil
}

func (p Profile) norm8Scale() float32 {
	if p == SevenBit {
		return 127
	}
	return 255
}

// PutNorm16 writes a 0..1 value as 16-bit fixed point (14 bits in the
// SevenBit profile).
func (p Profile) PutNorm16(b []byte, v float32) (int, error) {
	if len(b) < 2 {
		return 0, ErrShortBuffer
	}
	if p == SevenBit {
		raw := uint16(Clamp01(v)*16383 + 0.5)
		b[0] = byte(raw & 0x7F)
		b[1] = byte((raw >> 7) & 0x7F)
		return 2, nil
	}
	binary.LittleEndian.PutUint16(b, uint16(Clamp01(v)*65535+0.5))
	return 2, nil
}

func (p Profile) Norm16(b []byte) (float32, int, error) {
	if len(b) < 2 {
		return 0, 0, ErrTruncated
	}
	if p == SevenBit {
		raw := uint16(b[0]&0x7F) | uint16(b[1]&0x7F)<<7
		return float32(raw) / 16383, 2, nil
	}
	return float32(binary.LittleEndian.Uint16(b)) / 65535, 2, nil
}

// PutText writes a length prefix followed by at most max bytes of s.
func (p Profile) PutText(b []byte, s string, max int) (int, error) {
	if len(s) > max {
		s = s[:max]
	}
	if p == SevenBit && len(s) > 0x7F {
		s = s[:0x7F]
	}
	if len(s) > 0xFF {
		s = s[:0xFF]
	}
	if len(b) < 1+len(s) {
		return 0, ErrShortBuffer
	}
	b[0] = byte(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if p == SevenBit {
			c &= 0x7F
		}
		b[1+i] = c
	}
	return 1 + len(s), nil
}

// Text reads a length-prefixed string. The declared bytes are always
// consumed; only the first max of them are kept.
func (p Profile) Text(b []byte, max int) (string, int, error) {
	if len(b) < 1 {
		return "", 0, ErrTruncated
	}
	n := int(b[0])
	if p == SevenBit {
		n &= 0x7F
	}
	if len(b)-1 < n {
		return "", 0, ErrTruncated
	}
	keep := n
	if keep > max {
		keep = max
	}
	out := make([]byte, keep)
	for i := 0; i < keep; i++ {
		c := b[1+i]
		if p == SevenBit {
			c &= 0x7F
		}
		out[i] = c
	}
	return string(out), 1 + n, nil
}

// Clamp01 limits v to the normalized range.
func Clamp01(v float32) float32 {
	if v < 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
