package grain

import (
	"math"

	"github.com/qwertykeith/claudible/internal/synth"
)

// minor pentatonic degrees, with the octave above for snapping from the top
var pentatonic = []float64{0, 3, 5, 7, 10, 12}

// Hash is the djb2 XOR variant over the code points of token. It is stable
// across processes so a token always selects the same grain.
func Hash(token string) uint32 {
	h := uint32(5381)
	for _, r := range token {
		h = (h * 33) ^ uint32(r)
	}
	return h
}

// Quantize snaps a semitone offset to the nearest minor pentatonic degree
// within its octave. Ties go to the lower degree.
func Quantize(semitone float64) float64 {
	octave := math.Floor(semitone / 12)
	rem := semitone - octave*12
	best := pentatonic[0]
	for _, d := range pentatonic[1:] {
		if math.Abs(rem-d) < math.Abs(rem-best) {
			best = d
		}
	}
	return octave*12 + best
}

// Ratio converts semitones to a playback rate.
func Ratio(semitone float64) float64 {
	return math.Pow(2, semitone/12)
}

// Portamento resamples in so its playback rate glides linearly from from to
// to over the first glideFraction of the grain, then holds to. The output
// is as long as needed to play the whole grain.
func Portamento(in []float32, from, to, glideFraction float64) []float32 {
	n := len(in)
	if n == 0 {
		return []float32{}
	}
	if from <= 0 {
		from = to
	}
	if to <= 0 {
		return append([]float32(nil), in...)
	}
	glide := int(float64(n) * glideFraction)
	env := make([]float64, int(math.Ceil(float64(n)/math.Min(from, to)))+1)
	for i := range env {
		if i < glide {
			env[i] = from + (to-from)*float64(i)/float64(glide)
		} else {
			env[i] = to
		}
	}

	src := make([]float64, n)
	for i, v := range in {
		src[i] = float64(v)
	}
	warped := synth.Warp(src, env)
	out := make([]float32, len(warped))
	for i, v := range warped {
		out[i] = float32(v)
	}
	return out
}
