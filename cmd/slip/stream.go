package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dcreager/slip-buffers-go/slipio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxLine bounds a single input line for --lines and roundtrip.
const maxLine = 1 << 20

func encodeStream(cfg config, logger *zap.Logger, in io.Reader, out io.Writer, lines bool) error {
	bw := bufio.NewWriter(out)
	w := slipio.NewWriter(bw, cfg.writerOptions(zapLogger{logger.Sugar()})...)

	if lines {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(nil, maxLine)
		for scanner.Scan() {
			if err := w.WritePacket(scanner.Bytes()); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	} else {
		payload, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		if err := w.WritePacket(payload); err != nil {
			return err
		}
	}

	logger.Debug("encoded", zap.Int("packets", w.Packets()))
	return bw.Flush()
}

// decodeStream writes each packet read from in to out.  With hex, each packet
// is one line of hex; otherwise the raw packets are written back to back, so
// their boundaries are not preserved.
func decodeStream(cfg config, logger *zap.Logger, in io.Reader, out io.Writer, hex bool) error {
	bw := bufio.NewWriter(out)
	r := slipio.NewReader(in, cfg.readerOptions(zapLogger{logger.Sugar()})...)

	for {
		packet, err := r.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			bw.Flush()
			return err
		}
		if hex {
			_, err = fmt.Fprintf(bw, "% x\n", packet)
		} else {
			_, err = bw.Write(packet)
		}
		if err != nil {
			return fmt.Errorf("writing packet %d: %w", r.Packets(), err)
		}
	}

	logger.Info("decoded",
		zap.Int("packets", r.Packets()),
		zap.Int("dropped", r.Dropped()))
	return bw.Flush()
}

// scanLines sends each line of in on the returned channel until in is
// exhausted or ctx is done.  Exactly one error (nil at a clean end) is put on
// errc before the channel is closed.  A read blocked on in is abandoned, not
// interrupted, when ctx is done.
func scanLines(ctx context.Context, in io.Reader) (<-chan []byte, <-chan error) {
	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(nil, maxLine)
		for scanner.Scan() {
			select {
			case lines <- append([]byte(nil), scanner.Bytes()...):
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// roundTrip frames each line of in with an encoder, decodes it again on the
// other side of a pipe, and checks that every packet comes out unchanged.  It
// returns the number of packets checked.
func roundTrip(ctx context.Context, cfg config, logger *zap.Logger, in io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	parent := ctx

	pr, pw := io.Pipe()
	g, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, func() {
		pw.CloseWithError(ctx.Err())
	})
	defer stop()

	// A round trip cannot tell a dropped packet from a missing one.
	cfg.Resync = false
	lg := zapLogger{logger.Sugar()}
	lines, scanErr := scanLines(ctx, in)
	sent := make(chan []byte, 1)
	checked := 0

	g.Go(func() error {
		defer close(sent)
		w := slipio.NewWriter(pw, cfg.writerOptions(lg)...)
		for {
			var p []byte
			select {
			case line, ok := <-lines:
				if !ok {
					if err := <-scanErr; err != nil {
						pw.CloseWithError(err)
						return fmt.Errorf("reading input: %w", err)
					}
					return pw.Close()
				}
				p = line
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.WritePacket(p); err != nil {
				return err
			}
			select {
			case sent <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		r := slipio.NewReader(pr, append(cfg.readerOptions(lg), slipio.KeepEmptyOption())...)
		for {
			got, err := r.ReadPacket()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				pr.CloseWithError(err)
				return fmt.Errorf("packet %d: %w", checked, err)
			}
			want, ok := <-sent
			if !ok {
				return fmt.Errorf("unexpected packet after %d packets", checked)
			}
			if !bytes.Equal(got, want) {
				err := fmt.Errorf("packet %d: got %q, want %q", checked, got, want)
				pr.CloseWithError(err)
				return err
			}
			checked++
		}
	})

	err := g.Wait()
	if perr := parent.Err(); perr != nil {
		return checked, perr
	}
	if err != nil {
		return checked, err
	}
	logger.Info("round trip complete", zap.Int("packets", checked))
	return checked, nil
}
