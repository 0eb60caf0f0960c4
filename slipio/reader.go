// Package slipio adapts the incremental codecs in package slip to io.Reader
// and io.Writer streams, such as a serial port.
package slipio

import (
	"io"

	"github.com/dcreager/slip-buffers-go/slip"
	"github.com/pkg/errors"
)

var header = []byte{slip.End}

// Reader splits a SLIP byte stream into packets.
type Reader struct {
	r    io.Reader
	dec  *slip.DecoderBuffer
	opts options

	buf     []byte
	pending []byte
	err     error

	// resyncing is set after a malformed packet, while input is skipped up
	// to the next run of END bytes.
	resyncing bool
	sawEnd    bool

	packets int
	dropped int
}

// NewReader returns a Reader that decodes packets from r.
func NewReader(r io.Reader, opt ...Option) *Reader {
	opts := checkOptions(opt)
	return &Reader{
		r:    r,
		dec:  slip.NewDecoderBuffer(opts.capacity, opts.codecOptions()...),
		opts: opts,
		buf:  make([]byte, opts.readSize),
	}
}

// Packets returns the number of packets returned so far.
func (r *Reader) Packets() int {
	return r.packets
}

// Dropped returns the number of malformed packets discarded so far.
func (r *Reader) Dropped() int {
	return r.dropped
}

// ReadPacket returns the next packet in the stream.  The returned slice is a
// copy and remains valid after further reads.
//
// At the end of the stream ReadPacket returns io.EOF, or
// io.ErrUnexpectedEOF if the stream stopped in the middle of a packet.
// Malformed packets are reported through the OnErrorOption callback, and
// returned unless it asks to resync.
func (r *Reader) ReadPacket() ([]byte, error) {
	for {
		if len(r.pending) == 0 {
			if err := r.fill(); err != nil {
				return nil, err
			}
			continue
		}

		if r.resyncing {
			r.skip()
			continue
		}

		input := r.pending
		consumed, complete, err := r.dec.Feed(input)
		r.pending = input[consumed:]
		if err != nil {
			r.dropped++
			r.opts.logger.Warn("dropping malformed packet",
				"error", err,
				"decoded", len(r.dec.Bytes()),
				"packet", r.packets+r.dropped)
			r.dec.Reset()
			r.resyncing = true
			// An END that broke an escape sequence also ended the packet.
			r.sawEnd = consumed > 0 && input[consumed-1] == slip.End
			if r.opts.onError(err) == Stop {
				return nil, err
			}
			continue
		}
		if !complete {
			continue
		}

		packet := make([]byte, len(r.dec.Bytes()))
		copy(packet, r.dec.Bytes())
		r.dec.Reset()
		if len(packet) == 0 && !r.opts.keepEmpty {
			r.opts.logger.Debug("skipping empty packet")
			continue
		}
		r.packets++
		return packet, nil
	}
}

// fill reads more input into pending.  A read error is held back until every
// byte that came with it has been decoded.
func (r *Reader) fill() error {
	if r.err == nil {
		n, err := r.r.Read(r.buf)
		r.pending = r.buf[:n]
		if err != nil && err != io.EOF {
			err = errors.Wrap(err, "slipio: read")
		}
		r.err = err
		if n > 0 || err == nil {
			return nil
		}
	}

	if r.err != io.EOF {
		return r.err
	}
	if !r.resyncing && (len(r.dec.Bytes()) > 0 || r.dec.Escaping()) {
		r.opts.logger.Warn("stream ended inside a packet", "decoded", len(r.dec.Bytes()))
		return io.ErrUnexpectedEOF
	}
	return io.EOF
}

// skip discards pending input up to the end of the current run of END bytes.
// A decoder that expects a header is handed one END from that run, so the
// packet that follows decodes normally.
func (r *Reader) skip() {
	for len(r.pending) > 0 {
		c := r.pending[0]
		if c == slip.End {
			r.sawEnd = true
		} else if r.sawEnd {
			r.resyncing = false
			if !r.opts.noHeader {
				// Cannot fail: the decoder was reset and is awaiting a header.
				_, _, _ = r.dec.Feed(header)
			}
			r.opts.logger.Debug("resynchronised")
			return
		}
		r.pending = r.pending[1:]
	}
}
