// Package session captures the output byte stream of a process, mirrors it
// to the user and feeds it to a chunk processor.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
)

// ChunkSize is the read size for both capture modes.
const ChunkSize = 1024

// ChunkProcessor consumes captured output. The monitor implements it.
type ChunkProcessor interface {
	ProcessChunk(data []byte)
}

// Pipe copies in to out in chunks, handing each chunk to p before it is
// mirrored. It returns nil at EOF and ctx.Err() when cancelled.
func Pipe(ctx context.Context, in io.Reader, out io.Writer, p ChunkProcessor) error {
	type result struct {
		data []byte
		err  error
	}
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	chunks := make(chan result)
	go func() {
		defer close(chunks)
		for {
			buf := make([]byte, ChunkSize)
			n, err := in.Read(buf)
			select {
			case chunks <- result{buf[:n], err}:
			case <-readCtx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-chunks:
			if !ok {
				return ctx.Err()
			}
			if len(r.data) > 0 {
				p.ProcessChunk(r.data)
				if _, err := out.Write(r.data); err != nil {
					return fmt.Errorf("mirror output: %w", err)
				}
			}
			if errors.Is(r.err, io.EOF) {
				return nil
			}
			if r.err != nil {
				return fmt.Errorf("read input: %w", r.err)
			}
		}
	}
}

// SplitCommand turns the positional arguments into an argv. A single
// argument containing spaces is split with shell quoting rules.
func SplitCommand(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no command given")
	}
	if len(args) > 1 || !strings.ContainsAny(args[0], " \t") {
		return args, nil
	}
	argv, err := shlex.Split(args[0])
	if err != nil {
		return nil, fmt.Errorf("split command %q: %w", args[0], err)
	}
	if len(argv) == 0 {
		return nil, errors.New("no command given")
	}
	return argv, nil
}
