package slipio_test

import (
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/dcreager/slip-buffers-go/slip"
	"github.com/dcreager/slip-buffers-go/slipio"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var packet = rapid.SliceOfN(
	rapid.OneOf(
		rapid.Byte(),
		rapid.SampledFrom([]byte{slip.End, slip.Esc}),
	),
	1, 40,
)

func TestRoundTripPackets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		packets := rapid.SliceOf(packet).Draw(t, "packets").([][]byte)
		capacity := rapid.IntRange(2, 16).Draw(t, "capacity").(int)
		readSize := rapid.IntRange(1, 16).Draw(t, "readSize").(int)
		var opts []slipio.Option
		if rapid.Bool().Draw(t, "noHeader").(bool) {
			opts = append(opts, slipio.NoHeaderOption())
		}
		opts = append(opts, quiet)

		var wire bytes.Buffer
		w := slipio.NewWriter(&wire, append(opts, slipio.CapacityOption(capacity))...)
		for _, p := range packets {
			require.NoError(t, w.WritePacket(p))
		}

		src := iotest.HalfReader(bytes.NewReader(wire.Bytes()))
		r := slipio.NewReader(src, append(opts, slipio.CapacityOption(40), slipio.ReadSizeOption(readSize))...)
		got := readAll(t, r)
		if len(packets) == 0 {
			packets = nil
		}
		if diff := cmp.Diff(packets, got); diff != "" {
			t.Fatalf("packets mismatch (-want +got):\n%s", diff)
		}
	})
}
