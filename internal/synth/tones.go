package synth

import (
	"math"
	"math/rand/v2"

	"github.com/qwertykeith/claudible/internal/effects"
	"github.com/qwertykeith/claudible/internal/material"
)

// root, fifth, octave
var chimeVoicing = []float64{1.0, 1.5, 2.0}

// root, major third
var attentionNotes = []float64{1.0, 1.25}

func leadPartials(m *material.Config, limit int) []material.Partial {
	if len(m.Partials) == 0 {
		return []material.Partial{{Ratio: 1, Amp: 1}}
	}
	if len(m.Partials) < limit {
		limit = len(m.Partials)
	}
	return m.Partials[:limit]
}

func roomOf(m *material.Config) float64 {
	if m.RoomSize <= 0 {
		return 1
	}
	return m.RoomSize
}

// GenerateChime renders the soft completion chime: a low root/fifth/octave
// voicing with a swelling envelope and a longer tail than grains.
func GenerateChime(m *material.Config, rng *rand.Rand, sampleRate int) []float32 {
	sr := float64(sampleRate)
	n := int(ChimeDuration * sr)
	out := make([]float64, n)
	partials := leadPartials(m, 3)

	for _, c := range chimeVoicing {
		for _, p := range partials {
			freq := m.BaseFreq * 0.5 * c * p.Ratio
			phase := rng.Float64() * 2 * math.Pi
			if freq >= sr/2 {
				continue
			}
			w := 2 * math.Pi * freq / sr
			for k := range out {
				t := float64(k) / sr
				env := math.Exp(-3*t) * math.Sin(math.Pi*t/ChimeDuration)
				out[k] += 0.3 * p.Amp * math.Sin(w*float64(k)+phase) * env
			}
		}
	}

	room := roomOf(m) * 1.5
	wet := math.Min(1, m.ReverbWet+0.3)
	out = effects.MultiTap(out, sampleRate, effects.GrainTaps(room, wet), dampCutoff(m.ReverbDamping), n)
	out = effects.NewReverb(sampleRate, math.Min(room, 2), 0.6, m.ReverbDamping, 0.35).Apply(out)

	normalize(out, ChimeCeiling*m.Volume)
	return toFloat32(out)
}

// GenerateAttention renders the two-note rising idle signal.
func GenerateAttention(m *material.Config, rng *rand.Rand, sampleRate int) []float32 {
	sr := float64(sampleRate)
	n := int(AttentionDuration * sr)
	out := make([]float64, n)
	partials := leadPartials(m, 2)
	noteLen := n / len(attentionNotes)
	noteSec := AttentionDuration / float64(len(attentionNotes))

	for i, pitch := range attentionNotes {
		start := i * noteLen
		for _, p := range partials {
			freq := m.BaseFreq * 0.4 * pitch * p.Ratio
			phase := rng.Float64() * 2 * math.Pi
			if freq >= sr/2 {
				continue
			}
			w := 2 * math.Pi * freq / sr
			for k := 0; k < noteLen; k++ {
				t := float64(k) / sr
				s := math.Sin(math.Pi * t / noteSec)
				out[start+k] += 0.25 * p.Amp * math.Sin(w*float64(k)+phase) * s * s
			}
		}
	}

	room := roomOf(m) * 2
	wet := math.Min(1, m.ReverbWet+0.2)
	out = effects.MultiTap(out, sampleRate, effects.GrainTaps(room, wet), dampCutoff(m.ReverbDamping), n)
	out = effects.NewReverb(sampleRate, math.Min(room, 2), 0.5, m.ReverbDamping, 0.3).Apply(out)

	normalize(out, AttentionCeiling*m.Volume)
	return toFloat32(out)
}
