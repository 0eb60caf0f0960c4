package slipio

import (
	"io"

	"github.com/dcreager/slip-buffers-go/slip"
	"github.com/pkg/errors"
)

// ErrCapacityTooSmall is returned by a Writer whose encoder buffer cannot
// hold even one escaped byte.
var ErrCapacityTooSmall = errors.New("slipio: encoder capacity too small")

// Writer frames packets onto a byte stream.  Packets of any length are
// accepted; the encoder output is written to the underlying io.Writer
// whenever the encoder buffer fills up, so memory use stays bounded by the
// configured capacity.
type Writer struct {
	w    io.Writer
	enc  *slip.EncoderBuffer
	opts options

	packets int
}

// NewWriter returns a Writer that frames packets onto w.
func NewWriter(w io.Writer, opt ...Option) *Writer {
	opts := checkOptions(opt)
	return &Writer{
		w:    w,
		enc:  slip.NewEncoderBuffer(opts.capacity, opts.codecOptions()...),
		opts: opts,
	}
}

// Packets returns the number of packets written so far.
func (w *Writer) Packets() int {
	return w.packets
}

// WritePacket frames p as a single packet and writes it out.
func (w *Writer) WritePacket(p []byte) error {
	w.enc.Reset()

	for len(p) > 0 {
		n, err := w.enc.Feed(p)
		p = p[n:]
		if err == nil {
			break
		}
		if err := w.drain(err); err != nil {
			return err
		}
	}

	for {
		err := w.enc.Finish()
		if err == nil {
			break
		}
		if err := w.drain(err); err != nil {
			return err
		}
	}

	if err := w.flush(); err != nil {
		return err
	}
	w.packets++
	w.opts.logger.Debug("wrote packet", "packet", w.packets)
	return nil
}

// Write frames p as a single packet.  It implements io.Writer, so that a
// Writer can be handed to code that emits one message per Write call.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WritePacket(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// drain makes room in a full encoder by flushing its output.
func (w *Writer) drain(err error) error {
	if !errors.Is(err, slip.BufferFull) {
		return err
	}
	if len(w.enc.Bytes()) == 0 {
		return errors.Wrapf(ErrCapacityTooSmall, "capacity %d", w.opts.capacity)
	}
	return w.flush()
}

func (w *Writer) flush() error {
	if _, err := w.w.Write(w.enc.Bytes()); err != nil {
		return errors.Wrap(err, "slipio: write")
	}
	w.enc.ResetOutput()
	return nil
}
