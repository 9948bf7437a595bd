// Package scratch provides a reusable byte buffer for building short
// per-frame strings (overlay lines) without going through fmt.
package scratch

import (
	"strconv"
	"unsafe"
)

// Buffer is single-threaded. Reset it once per frame; the backing array is
// kept so steady-state frames do not allocate.
type Buffer struct {
	buf []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

// Mark returns a bookmark to later slice the output.
func (b *Buffer) Mark() int { return len(b.buf) }

// StringFrom copies the bytes written since mark.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

// ViewFrom is a zero-copy string over the bytes written since mark. Valid
// only until the next Reset or append.
func (b *Buffer) ViewFrom(mark int) string {
	v := b.buf[mark:]
	if len(v) == 0 {
		return ""
	}
	return unsafe.String(&v[0], len(v))
}

// ----- Append primitives (chainable) -----

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

// I appends a base-10 integer.
func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

// U appends an unsigned base-10 integer.
func (b *Buffer) U(v uint64) *Buffer {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// F appends a float with prec digits after the decimal point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

func (b *Buffer) Bool(v bool) *Buffer {
	b.buf = strconv.AppendBool(b.buf, v)
	return b
}

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, c)
	}
	return b
}
