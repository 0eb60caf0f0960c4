package slip

// Protocol bytes.
const (
	End    = 0xc0
	Esc    = 0xdb
	EscEnd = 0xdc
	EscEsc = 0xdd
)

type config struct {
	noHeader bool
}

// An Option configures a DecoderBuffer or EncoderBuffer.  Options are only
// accepted by the constructors, so a buffer's configuration cannot change
// while a packet is in flight.
type Option func(*config)

// WithoutHeader disables the leading END byte.  An encoder will not write
// one, and a decoder will not require one.
func WithoutHeader() Option {
	return func(c *config) {
		c.noHeader = true
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}
