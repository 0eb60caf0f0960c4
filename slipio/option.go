package slipio

import "github.com/dcreager/slip-buffers-go/slip"

// ErrorAction tells a Reader what to do after a malformed packet.
type ErrorAction int

const (
	// Stop returns the error from ReadPacket.  The Reader resynchronises
	// anyway, so ReadPacket may be called again afterwards.
	Stop ErrorAction = iota
	// Resync drops the malformed packet and continues with the next one.
	Resync
)

// Default configuration values.
const (
	// defaultCapacity bounds both a decoded packet and one encoder flush.
	defaultCapacity = 4096
	// defaultReadSize is how many bytes a Reader asks its source for at once.
	defaultReadSize = 512
)

type options struct {
	capacity  int
	readSize  int
	noHeader  bool
	keepEmpty bool
	onError   func(error) ErrorAction
	logger    Logger
}

// Option configures a Reader or Writer.
type Option func(*options)

// CapacityOption sets the size of the codec buffer.  For a Reader this is the
// largest packet that can be received; for a Writer it is how much encoded
// output is collected before it is written to the transport.
func CapacityOption(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// ReadSizeOption sets how many bytes a Reader reads from its source per call.
func ReadSizeOption(n int) Option {
	return func(o *options) {
		o.readSize = n
	}
}

// NoHeaderOption disables the leading END byte on both sides.
func NoHeaderOption() Option {
	return func(o *options) {
		o.noHeader = true
	}
}

// KeepEmptyOption makes a Reader return empty packets instead of skipping
// them.
func KeepEmptyOption() Option {
	return func(o *options) {
		o.keepEmpty = true
	}
}

// OnErrorOption sets the callback invoked when a Reader meets a malformed or
// oversized packet.  The default stops on every error.
func OnErrorOption(cb func(error) ErrorAction) Option {
	return func(o *options) {
		o.onError = cb
	}
}

// LoggerOption sets the logger.  If not set, the default slog logger is used.
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func checkOptions(opt []Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	if opts.capacity <= 0 {
		opts.capacity = defaultCapacity
	}
	if opts.readSize <= 0 {
		opts.readSize = defaultReadSize
	}
	if opts.onError == nil {
		opts.onError = func(error) ErrorAction { return Stop }
	}
	if opts.logger == nil {
		opts.logger = defaultLogger()
	}
	return opts
}

func (o *options) codecOptions() []slip.Option {
	if o.noHeader {
		return []slip.Option{slip.WithoutHeader()}
	}
	return nil
}
