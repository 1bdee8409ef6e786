// Package scope turns the mixer's output into something drawable: a ring of
// recent samples, an FFT and a smoothed log-frequency spectrum.
package scope

import (
	"math"
	"math/cmplx"
	"sync"
)

const (
	FFTSize        = 2048
	DefaultRingLen = 1 << 17
)

// Analyzer keeps the most recent mono samples. Tap is called from the audio
// thread and only copies.
type Analyzer struct {
	mu       sync.Mutex
	ring     []float32
	writePos int
	total    int64
}

func NewAnalyzer(ringLen int) *Analyzer {
	if ringLen < FFTSize {
		ringLen = FFTSize
	}
	return &Analyzer{ring: make([]float32, ringLen)}
}

func (a *Analyzer) Tap(samples []float32) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.writePos] = s
		a.writePos = (a.writePos + 1) % len(a.ring)
	}
	a.total += int64(len(samples))
	a.mu.Unlock()
}

// Total is the number of samples tapped so far.
func (a *Analyzer) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Snapshot copies the latest n samples, oldest first. Slots never written
// read as zero.
func (a *Analyzer) Snapshot(n int) []float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	size := len(a.ring)
	if n > size {
		n = size
	}
	out := make([]float32, n)
	start := (a.writePos - n + size) % size
	for i := range out {
		out[i] = a.ring[(start+i)%size]
	}
	return out
}

// FFT computes a radix-2 FFT in place. len(x) must be a power of two.
func FFT(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	bits := 0
	for m := n; m > 1; m >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := 0
		for b := 0; b < bits; b++ {
			if i&(1<<b) != 0 {
				j |= 1 << (bits - 1 - b)
			}
		}
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		wn := -2.0 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				t := cmplx.Rect(1, wn*float64(k)) * x[start+k+half]
				x[start+k+half] = x[start+k] - t
				x[start+k] = x[start+k] + t
			}
		}
	}
}

// FindZeroCrossing returns the first rising zero crossing within searchLen
// samples, or 0. Used to hold the waveform still between frames.
func FindZeroCrossing(samples []float32, searchLen int) int {
	if searchLen > len(samples)-2 {
		searchLen = len(samples) - 2
	}
	for i := 1; i < searchLen; i++ {
		if samples[i-1] <= 0 && samples[i] > 0 {
			return i
		}
	}
	return 0
}
