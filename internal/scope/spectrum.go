package scope

import (
	"math"
	"math/cmplx"
)

const (
	MinBars = 16
	MaxBars = 256

	floorDB = -80.0
	topHz   = 18000.0
)

// Spectrum maps FFT magnitudes onto log-spaced bars in 0..1 with a fast
// attack and slower release, so bars fall smoothly between frames.
type Spectrum struct {
	sampleRate int
	bins       []float64
	buf        []complex128
}

func NewSpectrum(sampleRate int) *Spectrum {
	return &Spectrum{sampleRate: sampleRate, buf: make([]complex128, FFTSize)}
}

// Update analyses the last FFTSize samples and returns the smoothed bars.
// The returned slice is reused by the next call.
func (s *Spectrum) Update(samples []float32, numBars int) []float64 {
	numBars = min(max(numBars, MinBars), MaxBars)
	if len(s.bins) != numBars {
		s.bins = make([]float64, numBars)
	}
	if len(samples) < FFTSize {
		return s.bins
	}

	// Hann window.
	for i := range FFTSize {
		w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(FFTSize-1)))
		s.buf[i] = complex(float64(samples[len(samples)-FFTSize+i])*w, 0)
	}
	FFT(s.buf)

	half := FFTSize / 2
	minBin := 1
	maxBin := min(int(float64(half)*topHz/(float64(s.sampleRate)/2)), half)
	logMin := math.Log(float64(minBin))
	logMax := math.Log(float64(maxBin))

	for i := range numBars {
		lo := int(math.Exp(logMin + float64(i)/float64(numBars)*(logMax-logMin)))
		hi := int(math.Exp(logMin + float64(i+1)/float64(numBars)*(logMax-logMin)))
		if hi <= lo {
			hi = lo + 1
		}
		hi = min(hi, half)

		sum := 0.0
		for b := lo; b < hi; b++ {
			sum += cmplx.Abs(s.buf[b])
		}
		avg := sum / float64(hi-lo)

		db := 20.0 * math.Log10(avg/float64(FFTSize)+1e-10)
		norm := min(max((db-floorDB)/-floorDB, 0), 1)

		prev := s.bins[i]
		if norm > prev {
			s.bins[i] = prev*0.3 + norm*0.7
		} else {
			s.bins[i] = prev*0.85 + norm*0.15
		}
	}
	return s.bins
}

// BarFrequency is the lower edge in Hz of bar i out of numBars.
func (s *Spectrum) BarFrequency(i, numBars int) float64 {
	half := FFTSize / 2
	maxBin := min(int(float64(half)*topHz/(float64(s.sampleRate)/2)), half)
	bin := math.Exp(float64(i) / float64(numBars) * math.Log(float64(maxBin)))
	return bin * float64(s.sampleRate) / FFTSize
}

// AutoGain follows the waveform peak with a fast attack and slow release.
type AutoGain struct {
	peak float64
}

const minPeak = 0.01

// Update folds in a new frame and returns the current peak estimate.
func (g *AutoGain) Update(samples []float32) float64 {
	var peak float32
	for _, s := range samples {
		peak = max(peak, s, -s)
	}
	target := max(float64(peak), minPeak)
	if target > g.peak {
		g.peak = g.peak*0.3 + target*0.7
	} else {
		g.peak = g.peak*0.995 + target*0.005
	}
	g.peak = max(g.peak, minPeak)
	return g.peak
}
