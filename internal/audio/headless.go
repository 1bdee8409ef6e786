//go:build headless

package audio

import "errors"

var errHeadless = errors.New("built with the headless tag")

func newEbitenBackend(int, SampleSource) (Backend, error) {
	return nil, deviceError(KindEbiten, errHeadless)
}

func newOtoBackend(int, SampleSource) (Backend, error) {
	return nil, deviceError(KindOto, errHeadless)
}
