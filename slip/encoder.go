package slip

// EncoderBuffer builds the SLIP wire form of a packet whose payload may be
// supplied in several pieces.
type EncoderBuffer struct {
	buf           *Buffer
	headerWritten bool
	skipHeader    bool
}

// NewEncoderBuffer returns an encoder whose output buffer holds capacity
// bytes.  Stuffing can double the size of a payload, and the header and
// terminator take two more bytes, so a payload of n bytes is only guaranteed
// to fit when capacity is at least 2n+2.  Pass WithoutHeader to omit the
// leading END byte.
func NewEncoderBuffer(capacity int, opts ...Option) *EncoderBuffer {
	c := newConfig(opts)
	return &EncoderBuffer{
		buf:        NewBuffer(capacity),
		skipHeader: c.noHeader,
	}
}

// Reset discards all output and starts a new packet.  The header, if
// enabled, is written again for the new packet.
func (e *EncoderBuffer) Reset() {
	e.buf.Reset()
	e.headerWritten = false
}

// ResetOutput discards all output but keeps the current packet open.  It is
// meant for draining the encoder to a transport when a long payload does not
// fit in one buffer: send Bytes, call ResetOutput, and feed the rest of the
// payload.
func (e *EncoderBuffer) ResetOutput() {
	e.buf.Reset()
}

// Bytes returns the encoded output so far.
func (e *EncoderBuffer) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *EncoderBuffer) writeHeader() error {
	if e.skipHeader || e.headerWritten {
		return nil
	}
	if err := e.buf.Put(End); err != nil {
		return &BufferError{Pos: 0, Code: NoOutputSpaceForHeader}
	}
	e.headerWritten = true
	return nil
}

// Feed stuffs input into the output buffer and returns how many bytes of
// input were encoded.
//
// If the output buffer fills up, Feed stops and returns a *BufferError with
// code BufferFull whose Pos is the number of input bytes fully encoded.  The
// output for those bytes stays in the buffer, and an escape pair is never
// split, so the caller may drain the output with ResetOutput and continue
// from input[Pos:].
func (e *EncoderBuffer) Feed(input []byte) (consumed int, err error) {
	if err := e.writeHeader(); err != nil {
		return 0, err
	}

	for i, c := range input {
		var esc byte
		switch c {
		case End:
			esc = EscEnd
		case Esc:
			esc = EscEsc
		default:
			if err := e.buf.Put(c); err != nil {
				return i, &BufferError{Pos: i, Code: BufferFull}
			}
			continue
		}

		if e.buf.Available() < 2 {
			return i, &BufferError{Pos: i, Code: BufferFull}
		}
		// Both puts fit; Available was checked above.
		_ = e.buf.Put(Esc)
		_ = e.buf.Put(esc)
	}

	return len(input), nil
}

// Finish closes the packet by writing the terminating END byte, preceded by
// the header if nothing has been fed.  A later Feed starts a new packet that
// follows this one in the same output buffer.
func (e *EncoderBuffer) Finish() error {
	if err := e.writeHeader(); err != nil {
		return err
	}
	if err := e.buf.Put(End); err != nil {
		return &BufferError{Pos: 0, Code: NoOutputSpaceForEndByte}
	}
	e.headerWritten = false
	return nil
}
