//go:build linux

package audio

import (
	"sync"

	"github.com/jfreymuth/pulse"
)

const pulseLatency = 0.05 // seconds

// pulseBackend talks the PulseAudio native protocol directly, so it works
// on PipeWire desktops without cgo.
type pulseBackend struct {
	mu     sync.Mutex
	sr     int
	src    SampleSource
	client *pulse.Client
	stream *pulse.PlaybackStream
}

func newPulseBackend(sampleRate int, src SampleSource) (Backend, error) {
	return &pulseBackend{sr: sampleRate, src: src}, nil
}

func (b *pulseBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stream != nil {
		return nil
	}
	c, err := pulse.NewClient(pulse.ClientApplicationName("claudible"))
	if err != nil {
		return deviceError(KindPulse, err)
	}
	reader := pulse.Float32Reader(func(buf []float32) (int, error) {
		b.src.Process(buf)
		return len(buf), nil
	})
	stream, err := c.NewPlayback(reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(b.sr),
		pulse.PlaybackLatency(pulseLatency),
	)
	if err != nil {
		c.Close()
		return deviceError(KindPulse, err)
	}
	stream.Start()
	b.client, b.stream = c, stream
	return nil
}

func (b *pulseBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stream == nil {
		return nil
	}
	b.stream.Stop()
	err := b.stream.Error()
	b.stream.Close()
	b.client.Close()
	b.stream, b.client = nil, nil
	return err
}
