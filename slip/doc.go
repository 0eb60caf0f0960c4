// Package slip provides incremental SLIP (RFC 1055) framing over fixed-capacity
// buffers.  A packet is byte-stuffed so that the END byte (0xc0) never appears
// inside it, and is then terminated with END.  Senders may also emit a leading
// END "header" to flush any line noise that the receiver has accumulated.
//
// Both directions are driven piece by piece.  A DecoderBuffer accepts raw
// bytes in whatever chunks the transport hands over, and reports how many of
// them it consumed and whether a packet is complete.  An EncoderBuffer accepts
// payload bytes and produces the stuffed wire form.  Neither ever grows its
// storage past the capacity chosen at construction; running out of room is an
// ordinary error that the caller can recover from.
package slip
