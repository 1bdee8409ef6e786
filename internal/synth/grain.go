package synth

import (
	"math"
	"math/rand/v2"

	"github.com/qwertykeith/claudible/internal/effects"
	"github.com/qwertykeith/claudible/internal/material"
)

const (
	GrainCeiling     = 0.4
	ChimeCeiling     = 0.35
	AttentionCeiling = 0.3

	ChimeDuration     = 0.35
	AttentionDuration = 0.8

	reverbTailSec     = 0.020
	noiseDecay        = 150.0
	defaultNoiseCutHz = 4000.0
)

// GenerateGrain renders one grain of m in the register and variant of v.
// Zero partials or a zero duration give silence, never an error.
func GenerateGrain(m *material.Config, v Voice, rng *rand.Rand, sampleRate int) []float32 {
	sr := float64(sampleRate)
	n := int(m.GrainDuration * v.durationMult() * sr)
	if n <= 0 {
		return []float32{}
	}
	grain := make([]float64, n)
	if len(m.Partials) == 0 {
		return toFloat32(grain)
	}

	decayMult := v.decayMult()
	octaveMul := math.Pow(2, float64(v.Octave))
	spread := 1.0
	if m.FreqSpread > 0 {
		spread += uniform(rng, -m.FreqSpread, m.FreqSpread)
	}

	for i, p := range m.Partials {
		detune := 0.0
		if m.DetuneCents > 0 {
			detune = uniform(rng, -m.DetuneCents, m.DetuneCents)
		}
		phase := rng.Float64() * 2 * math.Pi
		freq := m.BaseFreq * octaveMul * p.Ratio * math.Pow(2, detune/1200) * spread
		if freq >= sr/2 {
			continue
		}
		w := 2 * math.Pi * freq / sr
		decay := m.DecayRate(i) * decayMult
		for k := range grain {
			t := float64(k) / sr
			grain[k] += p.Amp * math.Sin(w*float64(k)+phase) * math.Exp(-decay*t)
		}
	}

	if gain := m.AttackNoise * v.NoiseMult; gain > 0 {
		cutoff := m.NoiseCutoff
		if cutoff <= 0 {
			cutoff = defaultNoiseCutHz
		}
		hp := effects.NewHighPass(sampleRate, cutoff)
		div := math.Max(decayMult, 0.5)
		for k := range grain {
			t := float64(k) / sr
			grain[k] += gain * hp.Step(rng.NormFloat64()) * math.Exp(-noiseDecay*t/div)
		}
	}

	applyAttack(grain, m.AttackMs, sr)

	if m.HasPitchDrop() {
		grain = pitchDrop(grain, m.PitchDrop, v.Octave)
	}

	if m.ReverbWet > 0 {
		room := m.RoomSize
		if room <= 0 {
			room = 1
		}
		outLen := n + int(reverbTailSec*sr)
		grain = effects.MultiTap(grain, sampleRate, effects.GrainTaps(room, m.ReverbWet), dampCutoff(m.ReverbDamping), outLen)
		fadeTail(grain, n)
	}

	normalize(grain, GrainCeiling*m.Volume)
	return toFloat32(grain)
}

// pitchDropExponent bends low registers further than high ones.
func pitchDropExponent(octave int) float64 {
	return math.Max(0.25, 1-0.25*float64(octave))
}

func pitchDrop(grain []float64, drop float64, octave int) []float64 {
	n := len(grain)
	if n < 2 {
		return grain
	}
	end := math.Pow(drop, pitchDropExponent(octave))
	env := make([]float64, n)
	for i := range env {
		env[i] = 1 + (end-1)*float64(i)/float64(n-1)
	}
	out := Warp(grain, env)
	if len(out) < n {
		out = append(out, make([]float64, n-len(out))...)
	}
	return out
}
