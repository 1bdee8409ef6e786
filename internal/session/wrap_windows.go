//go:build windows

package session

import (
	"context"
	"errors"
)

func Wrap(context.Context, []string, ChunkProcessor) (int, error) {
	return -1, errors.New("wrap mode needs a unix pseudo-terminal; use --pipe")
}
