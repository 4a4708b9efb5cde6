package wire

// Writer encodes fields into a caller-supplied buffer.
type Writer struct {
	p   Profile
	buf []byte
	off int
	err error
}

func NewWriter(p Profile, buf []byte) *Writer {
	return &Writer{p: p, buf: buf}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.off }

// Bytes returns the written prefix of the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

func (w *Writer) Err() error { return w.err }

func (w *Writer) put(fn func(b []byte) (int, error)) {
	if w.err != nil {
		return
	}
	n, err := fn(w.buf[w.off:])
	if err != nil {
		w.err = err
		return
	}
	w.off += n
}

func (w *Writer) Bool(v *bool) {
	w.put(func(b []byte) (int, error) { return w.p.PutBool(b, *v) })
}

func (w *Writer) Uint8(v *uint8) {
	w.put(func(b []byte) (int, error) { return w.p.PutUint8(b, *v) })
}

func (w *Writer) Int8(v *int8) {
	w.put(func(b []byte) (int, error) { return w.p.PutInt8(b, *v) })
}

func (w *Writer) Uint16(v *uint16) {
	w.put(func(b []byte) (int, error) { return w.p.PutUint16(b, *v) })
}

func (w *Writer) Int16(v *int16) {
	w.put(func(b []byte) (int, error) { return w.p.PutInt16(b, *v) })
}

func (w *Writer) Uint32(v *uint32) {
	w.put(func(b []byte) (int, error) { return w.p.PutUint32(b, *v) })
}

func (w *Writer) Int32(v *int32) {
	w.put(func(b []byte) (int, error) { return w.p.PutInt32(b, *v) })
}

func (w *Writer) Float32(v *float32) {
	w.put(func(b []byte) (int, error) { return w.p.PutFloat32(b, *v) })
}

func (w *Writer) Norm8(v *float32) {
	w.put(func(b []byte) (int, error) { return w.p.PutNorm8(b, *v) })
}

func (w *Writer) Norm16(v *float32) {
	w.put(func(b []byte) (int, error) { return w.p.PutNorm16(b, *v) })
}

func (w *Writer) String(v *string) {
	w.put(func(b []byte) (int, error) { return w.p.PutText(b, *v, StringMax) })
}

// Label writes a diagnostic name prefix. Unlike String it is not capped at
// StringMax.
func (w *Writer) Label(name string) {
	w.put(func(b []byte) (int, error) { return w.p.PutText(b, name, 0xFF) })
}

func (w *Writer) beginSeq(n, max int) (int, bool) {
	if n > max {
		n = max
	}
	c := uint8(n)
	w.Uint8(&c)
	if w.err != nil {
		return 0, false
	}
	return n, false
}

func (w *Writer) endSeq() {}

// Reader decodes fields from a byte slice. It never reads past the slice
// it was given.
type Reader struct {
	p       Profile
	buf     []byte
	off     int
	err     error
	clipped int
}

func NewReader(p Profile, buf []byte) *Reader {
	return &Reader{p: p, buf: buf}
}

func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Clipped returns how many sequences declared more elements than their
// capacity and were cut short.
func (r *Reader) Clipped() int { return r.clipped }

func (r *Reader) get(fn func(b []byte) (int, error)) {
	if r.err != nil {
		return
	}
	n, err := fn(r.buf[r.off:])
	if err != nil {
		r.err = err
		return
	}
	r.off += n
}

func (r *Reader) Bool(v *bool) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Bool(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Uint8(v *uint8) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Uint8(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Int8(v *int8) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Int8(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Uint16(v *uint16) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Uint16(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Int16(v *int16) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Int16(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Uint32(v *uint32) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Uint32(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Int32(v *int32) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Int32(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Float32(v *float32) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Float32(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Norm8(v *float32) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Norm8(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) Norm16(v *float32) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Norm16(b)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

func (r *Reader) String(v *string) {
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Text(b, StringMax)
		if err == nil {
			*v = x
		}
		return n, err
	})
}

// Label reads a diagnostic name prefix.
func (r *Reader) Label() string {
	var name string
	r.get(func(b []byte) (int, error) {
		x, n, err := r.p.Text(b, 0xFF)
		if err == nil {
			name = x
		}
		return n, err
	})
	return name
}

func (r *Reader) beginSeq(_, max int) (int, bool) {
	var c uint8
	r.Uint8(&c)
	if r.err != nil {
		return 0, true
	}
	n := int(c)
	if n > max {
		n = max
		r.clipped++
	}
	return n, true
}

func (r *Reader) endSeq() {}
