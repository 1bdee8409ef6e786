package grain

import "github.com/qwertykeith/claudible/internal/synth"

var catalogue = []synth.Voice{
	{Name: "sub-deep", Octave: -3, NoiseMult: 0.3, DecayMult: 0.5, DurationMult: 1.8},
	{Name: "sub-soft", Octave: -3, NoiseMult: 0.1, DecayMult: 0.7, DurationMult: 1.5},

	{Name: "low-warm", Octave: -2, NoiseMult: 0.4, DecayMult: 0.6, DurationMult: 1.5},
	{Name: "low-thud", Octave: -2, NoiseMult: 1.2, DecayMult: 1.1, DurationMult: 1.2},
	{Name: "low-round", Octave: -2, NoiseMult: 0.2, DecayMult: 0.8, DurationMult: 1.4},

	{Name: "mid-low-body", Octave: -1, NoiseMult: 0.6, DecayMult: 0.8, DurationMult: 1.2},
	{Name: "mid-low-tap", Octave: -1, NoiseMult: 1.3, DecayMult: 1.2, DurationMult: 1.0},

	{Name: "base-bright", Octave: 0, NoiseMult: 1.0, DecayMult: 1.0, DurationMult: 1.0},
	{Name: "base-soft", Octave: 0, NoiseMult: 0.5, DecayMult: 0.8, DurationMult: 1.1},
	{Name: "base-sharp", Octave: 0, NoiseMult: 1.6, DecayMult: 1.4, DurationMult: 0.8},

	{Name: "high-glint", Octave: 1, NoiseMult: 0.8, DecayMult: 1.3, DurationMult: 0.8},
	{Name: "high-tick", Octave: 1, NoiseMult: 1.5, DecayMult: 1.6, DurationMult: 0.6},

	{Name: "air-sparkle", Octave: 2, NoiseMult: 0.7, DecayMult: 1.5, DurationMult: 0.7},
	{Name: "air-dust", Octave: 2, NoiseMult: 1.8, DecayMult: 2.0, DurationMult: 0.5},

	{Name: "ultra-pin", Octave: 3, NoiseMult: 0.5, DecayMult: 2.0, DurationMult: 0.5},
	{Name: "ultra-mist", Octave: 3, NoiseMult: 2.0, DecayMult: 2.5, DurationMult: 0.4},
}

// Catalogue returns every voice descriptor, ordered from the lowest register
// to the highest.
func Catalogue() []synth.Voice {
	return append([]synth.Voice(nil), catalogue...)
}

// voicesFor keeps the catalogue entries inside [lo, hi]. An empty result
// falls back to the octave-0 voices.
func voicesFor(lo, hi int) []synth.Voice {
	var out []synth.Voice
	for _, v := range catalogue {
		if v.Octave >= lo && v.Octave <= hi {
			out = append(out, v)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, v := range catalogue {
		if v.Octave == 0 {
			out = append(out, v)
		}
	}
	return out
}
