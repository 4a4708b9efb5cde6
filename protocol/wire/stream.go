package wire

import "strings"

// Stream walks a field layout. The same layout method drives encoding
// (Writer), decoding (Reader), size computation (Sizer) and maximal value
// construction (Filler), so a message declares its fields exactly once.
//
// Errors are sticky: after the first failure every further call is a no-op
// and Err reports the failure.
type Stream interface {
	Bool(v *bool)
	Uint8(v *uint8)
	Int8(v *int8)
	Uint16(v *uint16)
	Int16(v *int16)
	Uint32(v *uint32)
	Int32(v *int32)
	Float32(v *float32)
	Norm8(v *float32)
	Norm16(v *float32)
	String(v *string)
	Err() error

	beginSeq(n, max int) (walk int, fresh bool)
	endSeq()
}

// Seq walks a count-prefixed sequence holding at most max elements.
// Decoding clips a larger declared count to max.
func Seq[T any](s Stream, items *[]T, max int, each func(Stream, *T)) {
	n, fresh := s.beginSeq(len(*items), max)
	if fresh {
		if n == 0 {
			*items = nil
		} else {
			*items = make([]T, n)
		}
	}
	for i := 0; i < n; i++ {
		each(s, &(*items)[i])
	}
	s.endSeq()
}

// Sizer computes the minimum and maximum encoded size of a layout. The
// minimum assumes empty strings and sequences, the maximum assumes every
// string at StringMax and every sequence full.
type Sizer struct {
	p        Profile
	min, max int
	stack    []sizerFrame
}

type sizerFrame struct {
	min, max, cap int
}

func NewSizer(p Profile) *Sizer {
	return &Sizer{p: p}
}

func (s *Sizer) Min() int { return s.min }
func (s *Sizer) Max() int { return s.max }

func (s *Sizer) fixed(k Kind) {
	w := s.p.Width(k)
	s.min += w
	s.max += w
}

func (s *Sizer) Bool(*bool)       { s.fixed(KindBool) }
func (s *Sizer) Uint8(*uint8)     { s.fixed(KindUint8) }
func (s *Sizer) Int8(*int8)       { s.fixed(KindInt8) }
func (s *Sizer) Uint16(*uint16)   { s.fixed(KindUint16) }
func (s *Sizer) Int16(*int16)     { s.fixed(KindInt16) }
func (s *Sizer) Uint32(*uint32)   { s.fixed(KindUint32) }
func (s *Sizer) Int32(*int32)     { s.fixed(KindInt32) }
func (s *Sizer) Float32(*float32) { s.fixed(KindFloat32) }
func (s *Sizer) Norm8(*float32)   { s.fixed(KindNorm8) }
func (s *Sizer) Norm16(*float32)  { s.fixed(KindNorm16) }
func (s *Sizer) Err() error       { return nil }

func (s *Sizer) String(*string) {
	s.min++
	s.max += 1 + StringMax
}

// beginSeq counts the length prefix and measures a single element, which
// endSeq then scales to the sequence capacity.
func (s *Sizer) beginSeq(_, max int) (int, bool) {
	s.min++
	s.max++
	s.stack = append(s.stack, sizerFrame{min: s.min, max: s.max, cap: max})
	return 1, true
}

func (s *Sizer) endSeq() {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	elem := s.max - f.max
	s.min = f.min
	s.max = f.max + elem*f.cap
}

// Filler sets every field it walks to a non-zero value and fills every
// sequence to capacity, producing the largest encodable value of a layout.
type Filler struct{}

func (Filler) Bool(v *bool)       { *v = true }
func (Filler) Uint8(v *uint8)     { *v = 0x5A }
func (Filler) Int8(v *int8)       { *v = -7 }
func (Filler) Uint16(v *uint16)   { *v = 0xBEEF }
func (Filler) Int16(v *int16)     { *v = -1234 }
func (Filler) Uint32(v *uint32)   { *v = 0xDEADBEEF }
func (Filler) Int32(v *int32)     { *v = -123456 }
func (Filler) Float32(v *float32) { *v = 0.625 }
func (Filler) Norm8(v *float32)   { *v = 1 }
func (Filler) Norm16(v *float32)  { *v = 1 }
func (Filler) String(v *string)   { *v = strings.Repeat("m", StringMax) }
func (Filler) Err() error         { return nil }

func (Filler) beginSeq(_, max int) (int, bool) { return max, true }
func (Filler) endSeq()                         {}
