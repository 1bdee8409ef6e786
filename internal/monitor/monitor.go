// Package monitor turns a stream of output bytes into sound triggers.
//
// In forward mode output drives sound: characters fire throttled grains,
// runs of newlines fire a chime and a long silence fires one attention
// signal. In reverse mode output only marks activity and the background
// loop plays an ambient chime and grains while the stream is idle.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/qwertykeith/claudible/internal/events"
	"github.com/qwertykeith/claudible/internal/log"
)

const (
	DefaultAttentionAfter      = 30 * time.Second
	DefaultIdleDelay           = 3 * time.Second
	DefaultMaxGrainsPerSecond  = 30
	DefaultNewlineThreshold    = 3
	DefaultForwardTick         = time.Second
	DefaultReverseGrainsPerSec = 12
	StopTimeout                = time.Second
)

// Stats counts what the monitor has fired since construction.
type Stats struct {
	GrainsFired     int64
	GrainsThrottled int64
	Chimes          int64
	Attentions      int64
}

type Option func(*Monitor)

func WithAttentionAfter(d time.Duration) Option {
	return func(m *Monitor) { m.attentionAfter = d }
}

func WithReverse(enabled bool) Option {
	return func(m *Monitor) { m.reverse = enabled }
}

func WithClock(c Clock) Option {
	return func(m *Monitor) {
		if c != nil {
			m.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTickInterval overrides the background loop period.
func WithTickInterval(d time.Duration) Option {
	return func(m *Monitor) { m.tickInterval = d }
}

func WithIdleDelay(d time.Duration) Option {
	return func(m *Monitor) { m.idleDelay = d }
}

func WithMaxGrainsPerSecond(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.minGrainInterval = time.Second / time.Duration(n)
		}
	}
}

func WithNewlineThreshold(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.newlineThreshold = n
		}
	}
}

type Monitor struct {
	h      events.Handler
	clock  Clock
	logger *slog.Logger

	reverse          bool
	attentionAfter   time.Duration
	idleDelay        time.Duration
	tickInterval     time.Duration
	minGrainInterval time.Duration
	newlineThreshold int

	mu             sync.Mutex
	lastActivity   time.Time
	lastGrain      time.Time
	newlineRun     int
	attentionFired bool
	ambient        bool
	running        bool
	stats          Stats
	repeater       *Repeater
}

func New(h events.Handler, opts ...Option) *Monitor {
	m := &Monitor{
		h:                h,
		clock:            systemClock{},
		logger:           log.For(log.CatMonitor),
		attentionAfter:   DefaultAttentionAfter,
		idleDelay:        DefaultIdleDelay,
		minGrainInterval: time.Second / DefaultMaxGrainsPerSecond,
		newlineThreshold: DefaultNewlineThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tickInterval <= 0 {
		if m.reverse {
			m.tickInterval = time.Second / DefaultReverseGrainsPerSec
		} else {
			m.tickInterval = DefaultForwardTick
		}
	}
	m.lastActivity = m.clock.Now()
	m.repeater = NewRepeater(m.tickInterval, m.tick, m.logger)
	return m
}

func (m *Monitor) Reverse() bool { return m.reverse }

// ProcessChunk feeds one chunk of output. It never fails: invalid UTF-8
// decodes to U+FFFD. Triggers run on the caller's goroutine after the
// monitor's lock is released.
func (m *Monitor) ProcessChunk(data []byte) {
	if len(data) == 0 {
		return
	}
	m.mu.Lock()
	now := m.clock.Now()
	m.lastActivity = now
	m.attentionFired = false
	if m.reverse {
		m.mu.Unlock()
		return
	}

	var fired []events.Event
	for _, r := range string(data) {
		if r == '\n' {
			m.newlineRun++
			if m.newlineRun >= m.newlineThreshold {
				m.newlineRun = 0
				m.stats.Chimes++
				fired = append(fired, events.Event{Kind: events.Chime})
			}
			continue
		}
		m.newlineRun = 0
		if now.Sub(m.lastGrain) < m.minGrainInterval {
			m.stats.GrainsThrottled++
			continue
		}
		m.lastGrain = now
		m.stats.GrainsFired++
		fired = append(fired, events.Event{Kind: events.Grain, Token: string(r)})
	}
	m.mu.Unlock()

	m.dispatch(fired)
}

func (m *Monitor) tick() {
	m.mu.Lock()
	idle := m.clock.Now().Sub(m.lastActivity)
	var fired []events.Event
	if m.reverse {
		switch {
		case idle >= m.idleDelay:
			if !m.ambient {
				m.ambient = true
				m.stats.Chimes++
				fired = append(fired, events.Event{Kind: events.Chime})
			}
			m.stats.GrainsFired++
			fired = append(fired, events.Event{Kind: events.Grain})
		case m.ambient:
			m.ambient = false
		}
	} else if idle >= m.attentionAfter && !m.attentionFired {
		m.attentionFired = true
		m.stats.Attentions++
		fired = append(fired, events.Event{Kind: events.Attention})
	}
	m.mu.Unlock()

	m.dispatch(fired)
}

func (m *Monitor) dispatch(fired []events.Event) {
	for _, e := range fired {
		events.Dispatch(m.h, e)
	}
}

// Start begins the background loop and treats now as the last activity.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.lastActivity = m.clock.Now()
	m.mu.Unlock()

	m.repeater.Start(context.Background())
	m.logger.Debug("monitor started", "reverse", m.reverse, "tick", m.tickInterval)
}

// Stop halts the background loop, waiting at most StopTimeout. Safe to call
// more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	if !m.repeater.Stop(StopTimeout) {
		m.logger.Warn("background loop did not stop in time")
	}
	st := m.Stats()
	m.logger.Debug("monitor stopped",
		"grains", st.GrainsFired,
		"throttled", st.GrainsThrottled,
		"chimes", st.Chimes,
		"attentions", st.Attentions,
	)
}

func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Ambient reports whether reverse-mode idle playback is active.
func (m *Monitor) Ambient() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ambient
}
