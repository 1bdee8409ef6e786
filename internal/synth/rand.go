package synth

import (
	"math/rand/v2"
	"sync"
	"time"
)

// lockedSource serializes a PCG so one *rand.Rand can be shared by the
// ingestion goroutine, the monitor's timer and the engine.
type lockedSource struct {
	mu  sync.Mutex
	src *rand.PCG
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	v := s.src.Uint64()
	s.mu.Unlock()
	return v
}

// NewAmbientSource returns the process-wide, non-deterministic source used
// for synthesis detail and untokened playback. Safe for concurrent use.
func NewAmbientSource() *rand.Rand {
	return NewSeededAmbientSource(uint64(time.Now().UnixNano()))
}

// NewSeededAmbientSource is NewAmbientSource with a fixed seed, for
// reproducible offline renders.
func NewSeededAmbientSource(seed uint64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)})
}

// NewTokenSource returns a deterministic source for one token hash. Not safe
// for concurrent use; callers create one per playback.
func NewTokenSource(seed uint32) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
