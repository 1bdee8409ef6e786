//go:build !windows

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/qwertykeith/claudible/internal/log"
)

// Wrap runs argv on a pseudo-terminal attached to the user's terminal.
// Output is mirrored to stdout and fed to p. It returns the child's exit
// code; err is only set when the child could not be run.
func Wrap(ctx context.Context, argv []string, p ChunkProcessor) (int, error) {
	return wrap(ctx, argv, p, os.Stdin, os.Stdout)
}

func wrap(ctx context.Context, argv []string, p ChunkProcessor, stdin *os.File, stdout io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("no command given")
	}
	logger := log.For(log.CatSession)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, fmt.Errorf("start %s: %w", argv[0], err)
	}
	defer ptmx.Close()
	logger.Debug("wrapped process started", "argv", argv, "pid", cmd.Process.Pid)

	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		resize := make(chan os.Signal, 1)
		signal.Notify(resize, syscall.SIGWINCH)
		go func() {
			for range resize {
				if err := pty.InheritSize(stdin, ptmx); err != nil {
					logger.Debug("resize pty", "error", err)
				}
			}
		}()
		resize <- syscall.SIGWINCH
		defer func() {
			signal.Stop(resize)
			close(resize)
		}()

		state, err := term.MakeRaw(fd)
		if err != nil {
			logger.Warn("could not enter raw mode", "error", err)
		} else {
			defer func() { _ = term.Restore(fd, state) }()
		}
	}

	go func() { _, _ = io.Copy(ptmx, stdin) }()

	buf := make([]byte, ChunkSize)
	for {
		n, rerr := ptmx.Read(buf)
		if n > 0 {
			p.ProcessChunk(buf[:n])
			if _, werr := stdout.Write(buf[:n]); werr != nil {
				logger.Debug("mirror output", "error", werr)
			}
		}
		// Linux reports EIO once the child side closes
		if rerr != nil {
			break
		}
	}

	werr := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case werr == nil:
		return 0, nil
	case errors.As(werr, &exitErr):
		code := exitErr.ExitCode()
		logger.Debug("wrapped process exited", "code", code)
		return code, nil
	}
	return -1, fmt.Errorf("wait for %s: %w", argv[0], werr)
}
