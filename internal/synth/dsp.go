package synth

import "math"

// Warp resamples in along a time-varying playback rate. env[i] is the rate
// used to step from output sample i to i+1; the read position is the
// cumulative sum of env. Output stops early once the read position passes
// the end of in.
func Warp(in []float64, env []float64) []float64 {
	out := make([]float64, 0, len(env))
	if len(in) == 0 {
		return out
	}
	last := float64(len(in) - 1)
	pos := 0.0
	for _, rate := range env {
		if pos > last {
			break
		}
		out = append(out, interp(in, pos))
		pos += rate
	}
	return out
}

func interp(in []float64, pos float64) float64 {
	idx := int(pos)
	frac := pos - float64(idx)
	if idx+1 >= len(in) {
		return in[len(in)-1]
	}
	return in[idx]*(1-frac) + in[idx+1]*frac
}

// applyAttack ramps the first attackMs linearly from 0 to 1.
func applyAttack(buf []float64, attackMs float64, sampleRate float64) {
	n := int(attackMs / 1000 * sampleRate)
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		buf[i] *= float64(i) / float64(n)
	}
}

// fadeTail applies a raised-cosine fade to everything from start onward.
func fadeTail(buf []float64, start int) {
	tail := len(buf) - start
	if tail <= 0 {
		return
	}
	for i := start; i < len(buf); i++ {
		x := float64(i-start) / float64(tail)
		buf[i] *= 0.5 * (1 + math.Cos(math.Pi*x))
	}
}

// normalize scales buf so its peak magnitude equals ceiling. Silence stays
// silence.
func normalize(buf []float64, ceiling float64) {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	scale := ceiling / peak
	for i := range buf {
		buf[i] *= scale
	}
}

func toFloat32(buf []float64) []float32 {
	out := make([]float32, len(buf))
	for i, v := range buf {
		out[i] = float32(v)
	}
	return out
}

// dampCutoff maps a 0..1 damping amount to a low-pass cutoff for late
// reflections. Zero disables damping.
func dampCutoff(damping float64) float64 {
	if damping <= 0 {
		return 0
	}
	if damping > 1 {
		damping = 1
	}
	return 800 + 12000*(1-damping)
}

// Peak returns the largest absolute sample value.
func Peak(buf []float32) float64 {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}
