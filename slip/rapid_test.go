package slip_test

import (
	"testing"

	"github.com/dcreager/slip-buffers-go/slip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// payload favours the protocol bytes so that stuffing is exercised often.
var payload = rapid.SliceOfN(
	rapid.OneOf(
		rapid.Byte(),
		rapid.SampledFrom([]byte{slip.End, slip.Esc, slip.EscEnd, slip.EscEsc}),
	),
	0, 64,
)

func encode(t require.TestingT, input []byte, opts ...slip.Option) []byte {
	enc := slip.NewEncoderBuffer(2*len(input)+2, opts...)
	consumed, err := enc.Feed(input)
	require.NoError(t, err)
	require.Equal(t, len(input), consumed)
	require.NoError(t, enc.Finish())
	return append([]byte(nil), enc.Bytes()...)
}

// decodeChunks feeds chunks to a fresh decoder and returns the decoded bytes
// and whether the packet completed.
func decodeChunks(t require.TestingT, capacity int, chunks [][]byte, opts ...slip.Option) ([]byte, bool) {
	dec := slip.NewDecoderBuffer(capacity, opts...)
	for _, chunk := range chunks {
		consumed, complete, err := dec.Feed(chunk)
		require.NoError(t, err)
		if complete {
			return dec.Bytes(), true
		}
		require.Equal(t, len(chunk), consumed)
	}
	return dec.Bytes(), false
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := payload.Draw(t, "input").([]byte)
		encoded := encode(t, input)
		assert.Equal(t, len(input)+countEscapes(input)+2, len(encoded))

		// A decoder of capacity N accepts any payload of up to N-2 bytes.
		decoded, complete := decodeChunks(t, len(input)+2, [][]byte{encoded})
		assert.True(t, complete)
		assert.Equal(t, input, append([]byte{}, decoded...))
	})
}

func countEscapes(input []byte) int {
	n := 0
	for _, c := range input {
		if c == slip.End || c == slip.Esc {
			n++
		}
	}
	return n
}

func TestRoundTripWithoutHeader(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := payload.Draw(t, "input").([]byte)
		encoded := encode(t, input, slip.WithoutHeader())
		decoded, complete := decodeChunks(t, len(input), [][]byte{encoded}, slip.WithoutHeader())
		assert.True(t, complete)
		assert.Equal(t, input, append([]byte{}, decoded...))
	})
}

func TestChunkBoundaryEquivalence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := payload.Draw(t, "input").([]byte)
		encoded := encode(t, input)
		// Leave the terminator off sometimes so that incomplete packets are
		// compared too.
		if rapid.Bool().Draw(t, "truncate").(bool) {
			encoded = encoded[:len(encoded)-1]
		}
		split := rapid.IntRange(0, len(encoded)).Draw(t, "split").(int)

		whole, wholeComplete := decodeChunks(t, 64, [][]byte{encoded})
		wholeBytes := append([]byte{}, whole...)

		var chunks [][]byte
		if split > 0 {
			chunks = append(chunks, encoded[:split])
		}
		chunks = append(chunks, encoded[split:])
		parts, partsComplete := decodeChunks(t, 64, chunks)

		assert.Equal(t, wholeComplete, partsComplete)
		assert.Equal(t, wholeBytes, append([]byte{}, parts...))
	})
}

func TestEncodeChunkEquivalence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := payload.Draw(t, "input").([]byte)
		split := rapid.IntRange(0, len(input)).Draw(t, "split").(int)

		enc := slip.NewEncoderBuffer(2*len(input) + 2)
		_, err := enc.Feed(input[:split])
		require.NoError(t, err)
		_, err = enc.Feed(input[split:])
		require.NoError(t, err)
		require.NoError(t, enc.Finish())

		assert.Equal(t, encode(t, input), enc.Bytes())
	})
}
