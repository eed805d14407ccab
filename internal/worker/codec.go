package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"spectre/internal/domain/types"
)

// maxLineBytes bounds a single inbound JSON line.
const maxLineBytes = 64 * 1024

// Serve runs wk over newline-delimited JSON: one Request per line read from r,
// one Response per line written to w. It returns once r is exhausted and every
// response has been written, or when ctx is done.
//
// A line that does not decode is answered with an error response instead of
// ending the stream.
func Serve(ctx context.Context, wk *Worker, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan types.Request)
	rejects := make(chan types.Response)
	out := wk.Run(ctx, in)

	// The reader may stay blocked on r after ctx is done; Serve does not wait for it.
	readDone := make(chan error, 1)
	go func() {
		readDone <- readRequests(ctx, r, in, rejects)
		close(in)
		close(rejects)
	}()

	if err := writeResponses(w, out, rejects, cancel); err != nil {
		return err
	}
	select {
	case err := <-readDone:
		if err != nil {
			return fmt.Errorf("read requests: %w", err)
		}
	default:
	}
	return ctx.Err()
}

func readRequests(ctx context.Context, r io.Reader, in chan<- types.Request, rejects chan<- types.Response) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var req types.Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := types.Response{
				Error: fmt.Sprintf("Malformed request: %v.", err),
				Cause: types.CauseInternal,
			}
			select {
			case rejects <- resp:
			case <-ctx.Done():
				return nil
			}
			continue
		}

		select {
		case in <- req:
		case <-ctx.Done():
			return nil
		}
	}
	return sc.Err()
}

// writeResponses encodes responses until the worker's stream closes. After a
// write error it keeps draining so producers never block, and cancels the
// serve context.
func writeResponses(w io.Writer, out <-chan types.Response, rejects <-chan types.Response, cancel context.CancelFunc) error {
	enc := json.NewEncoder(w)
	var writeErr error
	write := func(resp types.Response) {
		if writeErr != nil {
			return
		}
		if err := enc.Encode(resp); err != nil {
			writeErr = fmt.Errorf("write response: %w", err)
			cancel()
		}
	}

	for {
		select {
		case resp, ok := <-out:
			if !ok {
				return writeErr
			}
			write(resp)
		case resp, ok := <-rejects:
			if !ok {
				rejects = nil
				continue
			}
			write(resp)
		}
	}
}
