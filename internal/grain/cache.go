// Package grain keeps a bank of pre-rendered grains for one material and
// turns play requests into pitched, glided waveforms for the mixer.
package grain

import (
	"math/rand/v2"
	"sync"

	"github.com/qwertykeith/claudible/internal/material"
	"github.com/qwertykeith/claudible/internal/synth"
)

const (
	DefaultRegenerateProbability = 0.4
	GlideFraction                = 0.3

	maxSemitoneOffset = 1.5
	minGain           = 0.6
	maxGain           = 1.0
)

// Sink receives finished waveforms. The mixer implements it.
type Sink interface {
	Add(samples []float32)
}

// Selection is the outcome of the random draws for one play.
type Selection struct {
	Index    int
	Semitone float64 // quantized
	Ratio    float64
	Gain     float64
}

type Option func(*cacheConfig)

type cacheConfig struct {
	sampleRate int
	ambient    *rand.Rand
	regenProb  float64
}

func WithSampleRate(sr int) Option {
	return func(cfg *cacheConfig) {
		if sr > 0 {
			cfg.sampleRate = sr
		}
	}
}

// WithAmbient sets the random source used for synthesis detail, untokened
// plays and regeneration. It must be safe for concurrent use.
func WithAmbient(rng *rand.Rand) Option {
	return func(cfg *cacheConfig) {
		if rng != nil {
			cfg.ambient = rng
		}
	}
}

func WithRegenerateProbability(p float64) Option {
	return func(cfg *cacheConfig) {
		cfg.regenProb = min(max(p, 0), 1)
	}
}

type slot struct {
	voice   synth.Voice
	samples []float32
}

type Cache struct {
	mu        sync.Mutex
	material  *material.Config
	sink      Sink
	sr        int
	ambient   *rand.Rand
	regenProb float64
	slots     []slot
	lastRatio float64
}

// New renders one grain per catalogue voice inside the material's octave
// range, in catalogue order.
func New(m *material.Config, sink Sink, opts ...Option) *Cache {
	cfg := cacheConfig{sampleRate: 44100, regenProb: DefaultRegenerateProbability}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ambient == nil {
		cfg.ambient = synth.NewAmbientSource()
	}
	c := &Cache{
		material:  m,
		sink:      sink,
		sr:        cfg.sampleRate,
		ambient:   cfg.ambient,
		regenProb: cfg.regenProb,
		lastRatio: 1,
	}
	for _, v := range voicesFor(m.OctaveMin, m.OctaveMax) {
		c.slots = append(c.slots, slot{voice: v, samples: synth.GenerateGrain(m, v, c.ambient, c.sr)})
	}
	return c
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Voices returns the voice of every slot in order.
func (c *Cache) Voices() []synth.Voice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]synth.Voice, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.voice
	}
	return out
}

func (c *Cache) source(token string) *rand.Rand {
	if token == "" {
		return c.ambient
	}
	return synth.NewTokenSource(Hash(token))
}

func (c *Cache) choose(rng *rand.Rand, n int) Selection {
	var sel Selection
	sel.Index = rng.IntN(n)
	sel.Semitone = Quantize(-maxSemitoneOffset + 2*maxSemitoneOffset*rng.Float64())
	sel.Ratio = Ratio(sel.Semitone)
	sel.Gain = minGain + (maxGain-minGain)*rng.Float64()
	return sel
}

// Choose returns the selection a play of token would make. A non-empty
// token always yields the same selection for the same cache size.
func (c *Cache) Choose(token string) Selection {
	n := c.Len()
	if n == 0 {
		return Selection{Ratio: 1, Gain: 1}
	}
	return c.choose(c.source(token), n)
}

// Play renders a grain for token and hands it to the sink. An empty token
// draws from the ambient source.
func (c *Cache) Play(token string) {
	rng := c.source(token)

	c.mu.Lock()
	if len(c.slots) == 0 {
		c.mu.Unlock()
		return
	}
	sel := c.choose(rng, len(c.slots))
	from := c.lastRatio
	c.lastRatio = sel.Ratio
	src := c.slots[sel.Index].samples
	c.mu.Unlock()

	// cached samples are only ever replaced, never written, so src is
	// safe to read without the lock
	out := Portamento(src, from, sel.Ratio, GlideFraction)
	for i := range out {
		out[i] *= float32(sel.Gain)
	}
	c.sink.Add(out)

	if c.ambient.Float64() < c.regenProb {
		c.Regenerate(c.ambient.IntN(len(c.slots)))
	}
}

// Regenerate re-renders slot i with fresh randomness.
func (c *Cache) Regenerate(i int) {
	c.mu.Lock()
	if i < 0 || i >= len(c.slots) {
		c.mu.Unlock()
		return
	}
	v := c.slots[i].voice
	c.mu.Unlock()

	samples := synth.GenerateGrain(c.material, v, c.ambient, c.sr)

	c.mu.Lock()
	c.slots[i].samples = samples
	c.mu.Unlock()
}

// Samples returns a copy of slot i.
func (c *Cache) Samples(i int) []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return append([]float32(nil), c.slots[i].samples...)
}
