package monitor

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwertykeith/claudible/internal/events"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Grain(token string) { r.add(events.Event{Kind: events.Grain, Token: token}) }
func (r *recorder) Chime()             { r.add(events.Event{Kind: events.Chime}) }
func (r *recorder) Attention()         { r.add(events.Event{Kind: events.Attention}) }

func (r *recorder) add(e events.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) count(k events.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSingleChunkFiresOneGrain(t *testing.T) {
	rec := &recorder{}
	m := New(rec, WithClock(newFakeClock()), WithLogger(quietLogger()))

	m.ProcessChunk([]byte(strings.Repeat("a", 200)))

	require.Equal(t, 1, rec.count(events.Grain))
	st := m.Stats()
	assert.Equal(t, int64(1), st.GrainsFired)
	assert.Equal(t, int64(199), st.GrainsThrottled)
}

func TestGrainThrottleCeiling(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithClock(clk), WithLogger(quietLogger()))

	// one character every millisecond for a simulated second
	for i := 0; i < 1000; i++ {
		m.ProcessChunk([]byte("x"))
		clk.Advance(time.Millisecond)
	}
	got := rec.count(events.Grain)
	require.LessOrEqual(t, got, DefaultMaxGrainsPerSecond)
	require.GreaterOrEqual(t, got, DefaultMaxGrainsPerSecond-1)
}

func TestGrainTokensAreCharacters(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithClock(clk), WithLogger(quietLogger()))

	m.ProcessChunk([]byte("q"))
	clk.Advance(time.Second)
	m.ProcessChunk([]byte{0xff})

	require.Len(t, rec.events, 2)
	assert.Equal(t, "q", rec.events[0].Token)
	assert.Equal(t, "\uFFFD", rec.events[1].Token)
}

func TestNewlineRunFiresChime(t *testing.T) {
	rec := &recorder{}
	m := New(rec, WithClock(newFakeClock()), WithLogger(quietLogger()))

	m.ProcessChunk([]byte("\n\n\n"))
	require.Equal(t, 1, rec.count(events.Chime))
	require.Equal(t, 0, m.newlineRun)

	m.ProcessChunk([]byte("\n"))
	require.Equal(t, 1, rec.count(events.Chime), "fourth newline must not chime")

	m.ProcessChunk([]byte("\n\n"))
	require.Equal(t, 2, rec.count(events.Chime))
}

func TestNewlineRunResetByOtherCharacters(t *testing.T) {
	rec := &recorder{}
	m := New(rec, WithClock(newFakeClock()), WithLogger(quietLogger()))

	m.ProcessChunk([]byte("\n\nb\n"))
	m.ProcessChunk([]byte("\n"))
	assert.Equal(t, 0, rec.count(events.Chime))
	assert.Equal(t, 2, m.newlineRun)
}

func TestNewlineRunSpansChunks(t *testing.T) {
	rec := &recorder{}
	m := New(rec, WithClock(newFakeClock()), WithLogger(quietLogger()))

	m.ProcessChunk([]byte("\n"))
	m.ProcessChunk([]byte("\n"))
	m.ProcessChunk([]byte("\n"))
	assert.Equal(t, 1, rec.count(events.Chime))
}

func TestEmptyChunkIsIgnored(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithClock(clk), WithAttentionAfter(time.Second), WithLogger(quietLogger()))

	clk.Advance(2 * time.Second)
	m.ProcessChunk(nil)
	m.tick()
	assert.Equal(t, 1, rec.count(events.Attention), "empty chunk must not count as activity")
}

func TestAttentionFiresOncePerIdlePeriod(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithClock(clk), WithAttentionAfter(time.Second), WithLogger(quietLogger()))

	clk.Advance(500 * time.Millisecond)
	m.tick()
	require.Equal(t, 0, rec.count(events.Attention))

	clk.Advance(500 * time.Millisecond)
	m.tick()
	require.Equal(t, 1, rec.count(events.Attention))

	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		m.tick()
	}
	require.Equal(t, 1, rec.count(events.Attention))

	m.ProcessChunk([]byte("z"))
	clk.Advance(time.Second)
	m.tick()
	require.Equal(t, 2, rec.count(events.Attention))
	assert.Equal(t, int64(2), m.Stats().Attentions)
}

func TestAttentionWithRealLoop(t *testing.T) {
	rec := &recorder{}
	m := New(rec,
		WithAttentionAfter(50*time.Millisecond),
		WithTickInterval(10*time.Millisecond),
		WithLogger(quietLogger()),
	)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return rec.count(events.Attention) == 1 },
		2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.count(events.Attention))
}

func TestReverseModeIgnoresContent(t *testing.T) {
	rec := &recorder{}
	m := New(rec, WithReverse(true), WithClock(newFakeClock()), WithLogger(quietLogger()))

	m.ProcessChunk([]byte("hello\n\n\n\n"))
	assert.Empty(t, rec.kinds())
	assert.True(t, m.Reverse())
	assert.Equal(t, time.Second/DefaultReverseGrainsPerSec, m.tickInterval)
}

func TestReverseModeAmbientCycle(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithReverse(true), WithClock(clk), WithLogger(quietLogger()))
	step := m.tickInterval

	m.ProcessChunk([]byte("busy"))
	clk.Advance(2 * time.Second)
	m.tick()
	require.Empty(t, rec.kinds())

	clk.Advance(time.Second)
	m.tick()
	require.Equal(t, []events.Kind{events.Chime, events.Grain}, rec.kinds())
	require.True(t, m.Ambient())

	for i := 0; i < 3; i++ {
		clk.Advance(step)
		m.tick()
	}
	require.Equal(t, 1, rec.count(events.Chime))
	require.Equal(t, 4, rec.count(events.Grain))

	m.ProcessChunk([]byte("more"))
	clk.Advance(step)
	m.tick()
	require.False(t, m.Ambient())
	require.Equal(t, 4, rec.count(events.Grain))

	// a second idle period chimes again
	clk.Advance(DefaultIdleDelay)
	m.tick()
	require.Equal(t, 2, rec.count(events.Chime))
	require.Equal(t, 5, rec.count(events.Grain))
}

func TestReverseModeNeverFiresAttention(t *testing.T) {
	rec := &recorder{}
	clk := newFakeClock()
	m := New(rec, WithReverse(true), WithClock(clk), WithAttentionAfter(time.Second), WithLogger(quietLogger()))

	clk.Advance(time.Minute)
	m.tick()
	assert.Equal(t, 0, rec.count(events.Attention))
}

func TestHandlerMayCallBackIntoMonitor(t *testing.T) {
	var m *Monitor
	var seen atomic.Int64
	h := events.Funcs{OnGrain: func(string) { seen.Store(m.Stats().GrainsFired) }}
	m = New(h, WithClock(newFakeClock()), WithLogger(quietLogger()))

	done := make(chan struct{})
	go func() {
		m.ProcessChunk([]byte("a"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler deadlocked on the monitor lock")
	}
	assert.Equal(t, int64(1), seen.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	m := New(&recorder{}, WithTickInterval(5*time.Millisecond), WithLogger(quietLogger()))
	m.Stop()

	m.Start()
	m.Start()
	require.True(t, m.Running())

	start := time.Now()
	m.Stop()
	m.Stop()
	assert.False(t, m.Running())
	assert.Less(t, time.Since(start), StopTimeout+100*time.Millisecond)
}

func TestRepeaterSurvivesPanics(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil))

	var calls atomic.Int64
	r := NewRepeater(5*time.Millisecond, func() {
		if calls.Add(1) == 1 {
			panic("first tick")
		}
	}, logger)
	r.Start(t.Context())

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.True(t, r.Stop(time.Second))
	require.True(t, r.Stop(time.Second))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, buf.String(), "first tick")
}

func TestRepeaterStopsTicking(t *testing.T) {
	var calls atomic.Int64
	r := NewRepeater(2*time.Millisecond, func() { calls.Add(1) }, quietLogger())
	r.Start(t.Context())
	require.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, time.Millisecond)
	require.True(t, r.Stop(time.Second))

	n := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, calls.Load())
}

type lockedWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
