//go:build !headless

package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		// The driver opens the device asynchronously; a failure only shows up
		// in Err once ready is closed.
		<-ready
		if err := ctx.Err(); err != nil {
			otoErr = err
			return
		}
		otoCtx = ctx
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, errSampleRateMismatch(otoRate, sampleRate)
	}
	return otoCtx, nil
}

// otoBackend drives oto directly in mono, skipping ebiten's mixer.
type otoBackend struct {
	mu     sync.Mutex
	sr     int
	reader *StreamReader
	player *oto.Player
}

func newOtoBackend(sampleRate int, src SampleSource) (Backend, error) {
	return &otoBackend{sr: sampleRate, reader: NewStreamReader(src, 1)}, nil
}

func (b *otoBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		return nil
	}
	ctx, err := sharedOtoContext(b.sr)
	if err != nil {
		return deviceError(KindOto, err)
	}
	p := ctx.NewPlayer(b.reader)
	p.Play()
	if err := p.Err(); err != nil {
		p.Close()
		return deviceError(KindOto, err)
	}
	b.player = p
	return nil
}

func (b *otoBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	b.player.Pause()
	err := b.player.Close()
	b.player = nil
	return err
}
