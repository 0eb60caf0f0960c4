package slip

// Buffer is an append-only byte store with a fixed capacity.  The backing
// array is allocated once, by NewBuffer; nothing afterwards allocates.
type Buffer struct {
	buf []byte
	n   int
}

// NewBuffer returns an empty buffer that can hold capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// Reset empties the buffer.  Previously stored bytes become unreachable
// through Bytes but are not cleared.
func (b *Buffer) Reset() {
	b.n = 0
}

// Bytes returns the valid contents of the buffer, in insertion order.  The
// slice aliases the buffer's storage and is only valid until the next Put or
// Reset.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.n]
}

// Put appends c, or returns BufferFull (leaving the buffer untouched) if the
// buffer is already at capacity.
func (b *Buffer) Put(c byte) error {
	if b.n >= len(b.buf) {
		return BufferFull
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// IsEmpty reports whether nothing has been put since construction or the last
// Reset.
func (b *Buffer) IsEmpty() bool {
	return b.n == 0
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Available returns how many more bytes can be put before the buffer is full.
func (b *Buffer) Available() int {
	return len(b.buf) - b.n
}
