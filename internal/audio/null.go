package audio

import (
	"sync"
	"sync/atomic"
	"time"
)

const nullBlocksPerSecond = 50

// NullBackend pulls from its source at real-time cadence and discards the
// result. It stands in for a device on machines without one.
type NullBackend struct {
	mu     sync.Mutex
	src    SampleSource
	block  int
	period time.Duration
	stop   chan struct{}
	done   chan struct{}
	pulled atomic.Int64
}

func NewNullBackend(sampleRate int, src SampleSource) *NullBackend {
	block := sampleRate / nullBlocksPerSecond
	if block < 1 {
		block = 1
	}
	return &NullBackend{
		src:    src,
		block:  block,
		period: time.Second / nullBlocksPerSecond,
	}
}

func (b *NullBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop != nil {
		return nil
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go b.run(b.stop, b.done)
	return nil
}

func (b *NullBackend) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	buf := make([]float32, b.block)
	t := time.NewTicker(b.period)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			b.src.Process(buf)
			b.pulled.Add(int64(len(buf)))
		}
	}
}

func (b *NullBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop == nil {
		return nil
	}
	close(b.stop)
	<-b.done
	b.stop, b.done = nil, nil
	return nil
}

// Pulled returns how many samples have been rendered so far.
func (b *NullBackend) Pulled() int64 {
	return b.pulled.Load()
}
