package audio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDeviceUnavailable marks a failure to open or start the output device.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

type Kind string

const (
	KindEbiten Kind = "ebiten"
	KindOto    Kind = "oto"
	KindPulse  Kind = "pulse"
	KindNull   Kind = "null"
)

// DefaultKind is oto: its context reports a missing device at startup,
// while ebiten's player only surfaces that error to a running game loop.
const DefaultKind = KindOto

func Kinds() []Kind {
	return []Kind{KindEbiten, KindOto, KindPulse, KindNull}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return DefaultKind, nil
	}
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown audio backend %q", s)
}

// Backend pulls samples from a source on its own goroutine between Start
// and Stop. Stop is idempotent.
type Backend interface {
	Start() error
	Stop() error
}

// Open prepares a backend of the given kind. Device errors wrap
// ErrDeviceUnavailable; an unknown kind does not.
func Open(kind Kind, sampleRate int, src SampleSource) (Backend, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	switch kind {
	case KindEbiten:
		return newEbitenBackend(sampleRate, src)
	case KindOto:
		return newOtoBackend(sampleRate, src)
	case KindPulse:
		return newPulseBackend(sampleRate, src)
	case KindNull:
		return NewNullBackend(sampleRate, src), nil
	}
	return nil, fmt.Errorf("unknown audio backend %q", kind)
}

func deviceError(kind Kind, err error) error {
	return fmt.Errorf("%s: %w: %w", kind, ErrDeviceUnavailable, err)
}

func errSampleRateMismatch(have, want int) error {
	return fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", have, want)
}
