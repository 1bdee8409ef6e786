// Package mixer accumulates synthesized sounds and renders them, over a
// quiet background hum, for the audio backend.
package mixer

import (
	"math"
	"sync/atomic"

	"github.com/qwertykeith/claudible/internal/effects"
	"github.com/qwertykeith/claudible/internal/lfo"
)

const (
	DefaultSampleRate = 44100
	BufferSeconds     = 2
	DefaultVolume     = 0.5

	humAmp       = 0.008
	humWobbleHz  = 0.13
	humWobbleAmt = 0.3
)

var humFreqs = [...]float64{55.0, 55.3, 54.8}

type Option func(*mixerConfig)

type mixerConfig struct {
	sampleRate int
	volume     float64
	hum        bool
	masterBus  bool
	tap        func([]float32)
}

func WithSampleRate(sr int) Option {
	return func(cfg *mixerConfig) {
		if sr > 0 {
			cfg.sampleRate = sr
		}
	}
}

func WithVolume(v float64) Option {
	return func(cfg *mixerConfig) {
		cfg.volume = v
	}
}

// WithHum enables or disables the background hum.
func WithHum(enabled bool) Option {
	return func(cfg *mixerConfig) {
		cfg.hum = enabled
	}
}

// WithMasterBus runs the scaled mix through a compressor and soft clip so
// stacked sounds cannot exceed full scale. Off by default: the plain mix
// is the buffered sound plus hum, times the volume.
func WithMasterBus(enabled bool) Option {
	return func(cfg *mixerConfig) {
		cfg.masterBus = enabled
	}
}

// WithTap installs a callback invoked with every rendered block. It runs on
// the audio goroutine and must not retain dst or block.
func WithTap(tap func([]float32)) Option {
	return func(cfg *mixerConfig) {
		cfg.tap = tap
	}
}

// Mixer is the single reader of the ring buffer. Process must only be
// called from one goroutine at a time; Add and SetVolume are safe anywhere.
type Mixer struct {
	ring   *RingBuffer
	sr     float64
	volume atomic.Uint64 // float64 bits
	hum    bool
	phases [len(humFreqs)]float64
	wobble *lfo.Sine
	master *effects.Chain // nil unless WithMasterBus
	tap    func([]float32)
}

func New(opts ...Option) *Mixer {
	cfg := mixerConfig{sampleRate: DefaultSampleRate, volume: DefaultVolume, hum: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	m := &Mixer{
		ring:   NewRingBuffer(cfg.sampleRate * BufferSeconds),
		sr:     float64(cfg.sampleRate),
		hum:    cfg.hum,
		wobble: lfo.NewSine(humWobbleAmt, humWobbleHz, cfg.sampleRate),
		tap:    cfg.tap,
	}
	if cfg.masterBus {
		m.master = effects.NewChain(
			effects.NewCompressor(cfg.sampleRate, -6, 4, 5, 120, 0),
			effects.NewSoftClip(1, 0.98),
		)
	}
	m.SetVolume(cfg.volume)
	return m
}

// Add mixes samples into the buffer so they start playing on the next block.
func (m *Mixer) Add(samples []float32) {
	m.ring.Add(samples)
}

func (m *Mixer) SetVolume(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	v = min(max(v, 0), 1)
	m.volume.Store(math.Float64bits(v))
}

func (m *Mixer) Volume() float64 {
	return math.Float64frombits(m.volume.Load())
}

func (m *Mixer) Ring() *RingBuffer { return m.ring }

func (m *Mixer) SampleRate() int { return int(m.sr) }

// Process renders len(dst) mono samples.
func (m *Mixer) Process(dst []float32) {
	if m.hum {
		m.renderHum(dst)
	} else {
		clear(dst)
	}
	m.ring.Drain(dst)

	vol := float32(m.Volume())
	for i := range dst {
		dst[i] *= vol
	}
	if m.master != nil {
		m.master.ProcessBlock(dst)
	}
	if m.tap != nil {
		m.tap(dst)
	}
}

func (m *Mixer) renderHum(dst []float32) {
	for i := range dst {
		amp := humAmp * m.wobble.Gain()
		var s float64
		for k, f := range humFreqs {
			s += math.Sin(m.phases[k])
			m.phases[k] += 2 * math.Pi * f / m.sr
			if m.phases[k] >= 2*math.Pi {
				m.phases[k] -= 2 * math.Pi
			}
		}
		dst[i] = float32(amp * s)
	}
}
