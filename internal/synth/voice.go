package synth

// Voice selects a register and timbral variant of a material's grain.
type Voice struct {
	Name         string
	Octave       int
	NoiseMult    float64
	DecayMult    float64
	DurationMult float64
}

// DefaultVoice plays the material as declared.
var DefaultVoice = Voice{Name: "base", NoiseMult: 1, DecayMult: 1, DurationMult: 1}

func (v Voice) decayMult() float64 {
	if v.DecayMult <= 0 {
		return 1
	}
	return v.DecayMult
}

func (v Voice) durationMult() float64 {
	if v.DurationMult <= 0 {
		return 1
	}
	return v.DurationMult
}
