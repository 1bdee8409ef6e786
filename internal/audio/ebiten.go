//go:build !headless

package audio

import (
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, errSampleRateMismatch(audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// ebitenBackend plays through ebiten's process-wide audio context. Ebiten
// mixes in stereo, so the mono source is duplicated.
type ebitenBackend struct {
	mu     sync.Mutex
	sr     int
	reader *StreamReader
	player *ebitaudio.Player
}

func newEbitenBackend(sampleRate int, src SampleSource) (Backend, error) {
	return &ebitenBackend{sr: sampleRate, reader: NewStreamReader(src, 2)}, nil
}

func (b *ebitenBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		return nil
	}
	ctx, err := sharedAudioContext(b.sr)
	if err != nil {
		return deviceError(KindEbiten, err)
	}
	pl, err := ctx.NewPlayerF32(b.reader)
	if err != nil {
		return deviceError(KindEbiten, err)
	}
	pl.Play()
	b.player = pl
	return nil
}

func (b *ebitenBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	b.player.Pause()
	err := b.player.Close()
	b.player = nil
	if cerr := b.reader.Close(); err == nil {
		err = cerr
	}
	return err
}
