package effects

import "math"

// Tap is one early reflection of a MultiTap reverb.
type Tap struct {
	DelaySec float64
	Gain     float64
	Damped   bool // read from the low-passed copy of the input
}

// GrainTapsMs are the fixed reflection times used for grains before room
// scaling.
var GrainTapsMs = [6]float64{23, 37, 53, 79, 113, 149}

// GrainTaps builds the six grain reflections scaled by room size. Gains decay
// as 0.55^(k+1) times wet; taps beyond the second are damped.
func GrainTaps(roomSize, wet float64) []Tap {
	taps := make([]Tap, len(GrainTapsMs))
	gain := 1.0
	for k, ms := range GrainTapsMs {
		gain *= 0.55
		taps[k] = Tap{
			DelaySec: ms / 1000 * roomSize,
			Gain:     gain * wet,
			Damped:   k >= 2,
		}
	}
	return taps
}

// MultiTap mixes delayed copies of dry into a buffer of outLen samples.
// Reflections landing past outLen are cut. dampCutoff <= 0 disables damping.
func MultiTap(dry []float64, sampleRate int, taps []Tap, dampCutoff float64, outLen int) []float64 {
	if outLen < len(dry) {
		outLen = len(dry)
	}
	out := make([]float64, outLen)
	copy(out, dry)

	var damped []float64
	for _, tp := range taps {
		if tp.Damped && dampCutoff > 0 {
			damped = NewLowPass(sampleRate, dampCutoff).Filter(dry)
			break
		}
	}

	for _, tp := range taps {
		if tp.Gain == 0 {
			continue
		}
		offset := int(math.Round(tp.DelaySec * float64(sampleRate)))
		if offset < 0 || offset >= outLen {
			continue
		}
		src := dry
		if tp.Damped && damped != nil {
			src = damped
		}
		for i, x := range src {
			j := offset + i
			if j >= outLen {
				break
			}
			out[j] += x * tp.Gain
		}
	}
	return out
}
