package slip

import "fmt"

// Code identifies why an encoder, decoder or buffer operation failed.  Every
// Code is itself an error, so it can be compared with errors.Is against any
// error returned by this package.
type Code uint8

const (
	// BufferFull is returned when a byte must be stored but the buffer is at
	// capacity.
	BufferFull Code = iota + 1
	// BadHeaderDecode is returned when a decoder that expects a leading END
	// byte sees something else.
	BadHeaderDecode
	// BadEscapeSequenceDecode is returned when an ESC byte is followed by
	// anything other than ESC_END or ESC_ESC.
	BadEscapeSequenceDecode
	// NoOutputSpaceForHeader is returned when an encoder has no room for the
	// leading END byte.
	NoOutputSpaceForHeader
	// NoOutputSpaceForEndByte is returned when an encoder has no room for the
	// trailing END byte.
	NoOutputSpaceForEndByte
)

func (c Code) Error() string {
	switch c {
	case BufferFull:
		return "buffer full"
	case BadHeaderDecode:
		return "malformed header"
	case BadEscapeSequenceDecode:
		return "malformed escape sequence"
	case NoOutputSpaceForHeader:
		return "insufficient space in output buffer for header"
	case NoOutputSpaceForEndByte:
		return "insufficient space in output buffer for end byte"
	}
	return fmt.Sprintf("slip error %d", uint8(c))
}

func (c Code) String() string {
	return c.Error()
}

// BufferError reports a failed Feed or Finish call.  Pos is the number of
// bytes of that call's input that were consumed when the failure happened, so
// a caller can always advance its own read cursor by Pos.
type BufferError struct {
	Pos  int
	Code Code
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("slip: %v at offset %d", e.Code, e.Pos)
}

// Unwrap returns e.Code.
func (e *BufferError) Unwrap() error {
	return e.Code
}

// Is lets the encoder's out-of-space codes also match BufferFull, since both
// are a full output buffer underneath.
func (e *BufferError) Is(target error) bool {
	if target != BufferFull {
		return false
	}
	return e.Code == NoOutputSpaceForHeader || e.Code == NoOutputSpaceForEndByte
}
