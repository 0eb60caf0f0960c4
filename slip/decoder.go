package slip

// DecoderBuffer reassembles one SLIP packet from a stream of raw bytes that
// may arrive in arbitrarily sized pieces.
type DecoderBuffer struct {
	buf          *Buffer
	escaping     bool
	headerFound  bool
	searchHeader bool
}

// NewDecoderBuffer returns a decoder that can hold a decoded packet of up to
// capacity bytes.  By default the first byte of every packet must be a
// leading END; pass WithoutHeader to accept packets without one.
func NewDecoderBuffer(capacity int, opts ...Option) *DecoderBuffer {
	c := newConfig(opts)
	return &DecoderBuffer{
		buf:          NewBuffer(capacity),
		searchHeader: !c.noHeader,
	}
}

// Reset discards the packet decoded so far and starts a new one.
func (d *DecoderBuffer) Reset() {
	d.escaping = false
	d.headerFound = false
	d.buf.Reset()
}

// Bytes returns the packet decoded so far.  Once Feed has reported a complete
// packet, this is the whole packet, and it stays available until Reset.
func (d *DecoderBuffer) Bytes() []byte {
	return d.buf.Bytes()
}

// Escaping reports whether the last byte fed was an ESC whose designator has
// not arrived yet.
func (d *DecoderBuffer) Escaping() bool {
	return d.escaping
}

// Feed decodes bytes from input until either input runs out or the END byte
// that terminates the packet is seen.  It returns how many bytes of input
// were consumed, and whether the packet is complete.  When complete is true,
// any bytes of input past consumed belong to the next packet; call Reset
// before feeding them.
//
// On error the returned error is a *BufferError whose Pos equals consumed.
// The decoder keeps whatever it decoded before the failure.
func (d *DecoderBuffer) Feed(input []byte) (consumed int, complete bool, err error) {
	i := 0

	// The header is only looked for once per packet.
	if d.buf.IsEmpty() && d.searchHeader && !d.headerFound {
		if len(input) == 0 || input[0] != End {
			return 0, false, &BufferError{Pos: 0, Code: BadHeaderDecode}
		}
		i++
		d.headerFound = true
	}

	for i < len(input) {
		c := input[i]
		i++

		if d.escaping {
			d.escaping = false
			switch c {
			case EscEnd:
				c = End
			case EscEsc:
				c = Esc
			default:
				return i, false, &BufferError{Pos: i, Code: BadEscapeSequenceDecode}
			}
		} else {
			switch c {
			case End:
				return i, true, nil
			case Esc:
				d.escaping = true
				continue
			}
		}

		if err := d.buf.Put(c); err != nil {
			return i, false, &BufferError{Pos: i, Code: BufferFull}
		}
	}

	return i, false, nil
}
