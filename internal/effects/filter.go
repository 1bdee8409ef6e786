package effects

import "math"

// OnePole is a first-order RC filter. The low-pass keeps the smoothed state;
// the high-pass subtracts it from the input.
type OnePole struct {
	alpha float64
	state float64
	high  bool
}

// Alpha returns the smoothing coefficient for an RC filter at cutoff Hz.
// A cutoff at or above Nyquist gives 1 (no smoothing).
func Alpha(sampleRate int, cutoff float64) float64 {
	if cutoff <= 0 {
		return 0
	}
	if cutoff >= float64(sampleRate)/2 {
		return 1
	}
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)
	return dt / (rc + dt)
}

func NewLowPass(sampleRate int, cutoff float64) *OnePole {
	return &OnePole{alpha: Alpha(sampleRate, cutoff)}
}

func NewHighPass(sampleRate int, cutoff float64) *OnePole {
	return &OnePole{alpha: Alpha(sampleRate, cutoff), high: true}
}

func (f *OnePole) Step(x float64) float64 {
	f.state += f.alpha * (x - f.state)
	if f.high {
		return x - f.state
	}
	return f.state
}

func (f *OnePole) Process(x float32) float32 {
	return float32(f.Step(float64(x)))
}

func (f *OnePole) Reset() { f.state = 0 }

// Filter runs f over in and returns a new slice.
func (f *OnePole) Filter(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Step(x)
	}
	return out
}
