// Package claudible turns terminal output into ambient sound. An Engine
// synthesizes grains, chimes and attention tones for one material and
// mixes them onto an audio device; the monitor package decides when to
// play them.
package claudible

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/qwertykeith/claudible/internal/audio"
	"github.com/qwertykeith/claudible/internal/events"
	"github.com/qwertykeith/claudible/internal/grain"
	"github.com/qwertykeith/claudible/internal/log"
	"github.com/qwertykeith/claudible/internal/material"
	"github.com/qwertykeith/claudible/internal/mixer"
	"github.com/qwertykeith/claudible/internal/synth"
)

const DefaultSampleRate = mixer.DefaultSampleRate

type Option func(*engineConfig)

type engineConfig struct {
	volume     float64
	sampleRate int
	backend    audio.Kind
	seed       *uint64
	sampleTap  func([]float32)
	logger     *slog.Logger
	hum        bool
	masterBus  bool
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		volume:     mixer.DefaultVolume,
		sampleRate: DefaultSampleRate,
		backend:    audio.DefaultKind,
		hum:        true,
	}
}

// WithVolume sets the initial master volume, clamped to [0, 1].
func WithVolume(v float64) Option {
	return func(cfg *engineConfig) {
		cfg.volume = v
	}
}

func WithSampleRate(sr int) Option {
	return func(cfg *engineConfig) {
		cfg.sampleRate = sr
	}
}

func WithBackend(kind audio.Kind) Option {
	return func(cfg *engineConfig) {
		cfg.backend = kind
	}
}

// WithSeed makes every ambient random draw reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *engineConfig) {
		cfg.seed = &seed
	}
}

// WithSampleTap installs a callback invoked with each rendered mono block.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) Option {
	return func(cfg *engineConfig) {
		cfg.sampleTap = tap
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.logger = l
	}
}

// WithHum enables or disables the background hum.
func WithHum(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.hum = enabled
	}
}

// WithMasterBus compresses and soft-clips the final mix.
func WithMasterBus(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.masterBus = enabled
	}
}

var openBackend = audio.Open

type Engine struct {
	mu       sync.Mutex
	material *material.Config
	sr       int
	kind     audio.Kind
	ambient  *rand.Rand
	mixer    *mixer.Mixer
	cache    *grain.Cache
	backend  audio.Backend
	logger   *slog.Logger
}

var _ events.Handler = (*Engine)(nil)

func NewEngine(m *material.Config, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, errors.New("material is required")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	kind, err := audio.ParseKind(string(cfg.backend))
	if err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = log.For(log.CatAudio)
	}

	var ambient *rand.Rand
	if cfg.seed != nil {
		ambient = synth.NewSeededAmbientSource(*cfg.seed)
	} else {
		ambient = synth.NewAmbientSource()
	}

	mix := mixer.New(
		mixer.WithSampleRate(cfg.sampleRate),
		mixer.WithVolume(cfg.volume),
		mixer.WithHum(cfg.hum),
		mixer.WithMasterBus(cfg.masterBus),
		mixer.WithTap(cfg.sampleTap),
	)
	cache := grain.New(m, mix,
		grain.WithSampleRate(cfg.sampleRate),
		grain.WithAmbient(ambient),
	)
	cfg.logger.Debug("engine ready", "material", m.Name, "voices", cache.Len(), "sampleRate", cfg.sampleRate)

	return &Engine{
		material: m,
		sr:       cfg.sampleRate,
		kind:     kind,
		ambient:  ambient,
		mixer:    mix,
		cache:    cache,
		logger:   cfg.logger,
	}, nil
}

// PlayGrain mixes in one grain. A non-empty token always picks the same
// voice and pitch; an empty one picks at random.
func (e *Engine) PlayGrain(token string) {
	e.cache.Play(token)
}

func (e *Engine) PlayChime() {
	e.mixer.Add(synth.GenerateChime(e.material, e.ambient, e.sr))
}

func (e *Engine) PlayAttention() {
	e.mixer.Add(synth.GenerateAttention(e.material, e.ambient, e.sr))
}

func (e *Engine) Grain(token string) { e.PlayGrain(token) }
func (e *Engine) Chime()             { e.PlayChime() }
func (e *Engine) Attention()         { e.PlayAttention() }

// Start opens the audio device and begins rendering. Device failures wrap
// audio.ErrDeviceUnavailable.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend != nil {
		return nil
	}
	b, err := openBackend(e.kind, e.sr, e.mixer)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	if err := b.Start(); err != nil {
		return fmt.Errorf("start audio: %w", err)
	}
	e.backend = b
	e.logger.Info("audio started", "backend", string(e.kind), "sampleRate", e.sr)
	return nil
}

// Stop closes the audio device. Safe to call more than once.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend == nil {
		return nil
	}
	err := e.backend.Stop()
	e.backend = nil
	e.logger.Debug("audio stopped", "backend", string(e.kind))
	return err
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.backend != nil
}

func (e *Engine) SetVolume(v float64) { e.mixer.SetVolume(v) }

func (e *Engine) Volume() float64 { return e.mixer.Volume() }

// Material returns a copy of the engine's material.
func (e *Engine) Material() material.Config { return *e.material }

func (e *Engine) Mixer() *mixer.Mixer { return e.mixer }

func (e *Engine) SampleRate() int { return e.sr }

func (e *Engine) Backend() audio.Kind { return e.kind }
