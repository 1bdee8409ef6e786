//go:build !linux

package audio

import "errors"

func newPulseBackend(int, SampleSource) (Backend, error) {
	return nil, deviceError(KindPulse, errors.New("only supported on linux"))
}
