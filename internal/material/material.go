package material

import (
	"errors"
	"fmt"
)

// Partial is one overtone of a material: a frequency ratio against the base
// frequency and its relative amplitude.
type Partial struct {
	Ratio float64 `yaml:"ratio"`
	Amp   float64 `yaml:"amp"`
}

// Config is the immutable synthesis parameter bundle for one sound character.
// Engines take it by pointer and never write to it.
type Config struct {
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	BaseFreq      float64   `yaml:"base_freq"`
	Partials      []Partial `yaml:"partials"`
	DecayRates    []float64 `yaml:"decay_rates"`
	GrainDuration float64   `yaml:"grain_duration"` // seconds
	AttackNoise   float64   `yaml:"attack_noise"`   // 0..1
	NoiseCutoff   float64   `yaml:"noise_cutoff"`   // Hz, high-pass on the noise transient
	DetuneCents   float64   `yaml:"detune_cents"`
	ReverbWet     float64   `yaml:"reverb_wet"`     // 0..1
	ReverbDamping float64   `yaml:"reverb_damping"` // 0..1, higher is darker
	RoomSize      float64   `yaml:"room_size"`      // scales tap delays
	PitchDrop     float64   `yaml:"pitch_drop"`     // end ratio of the pitch envelope, 1 = none
	AttackMs      float64   `yaml:"attack_ms"`
	FreqSpread    float64   `yaml:"freq_spread"` // fractional per-grain spread
	Volume        float64   `yaml:"volume"`
	OctaveMin     int       `yaml:"octave_min"`
	OctaveMax     int       `yaml:"octave_max"`
}

const (
	MinOctave = -3
	MaxOctave = 3
)

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrUnknownSet      = errors.New("unknown sound set")
)

// DecayRate returns the decay rate for partial i. A short DecayRates list
// repeats its last entry; an empty one yields a moderate default.
func (c *Config) DecayRate(i int) float64 {
	if len(c.DecayRates) == 0 {
		return 10
	}
	if i < len(c.DecayRates) {
		return c.DecayRates[i]
	}
	return c.DecayRates[len(c.DecayRates)-1]
}

// HasPitchDrop reports whether grains of this material bend in pitch.
func (c *Config) HasPitchDrop() bool {
	return c.PitchDrop > 0 && c.PitchDrop != 1
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("material: name is required")
	}
	if c.BaseFreq <= 0 {
		return fmt.Errorf("material %q: base_freq must be positive", c.Name)
	}
	if c.GrainDuration < 0 {
		return fmt.Errorf("material %q: grain_duration must not be negative", c.Name)
	}
	if c.Volume < 0 {
		return fmt.Errorf("material %q: volume must not be negative", c.Name)
	}
	if c.OctaveMin > c.OctaveMax {
		return fmt.Errorf("material %q: octave range %d..%d is inverted", c.Name, c.OctaveMin, c.OctaveMax)
	}
	if c.OctaveMin < MinOctave || c.OctaveMax > MaxOctave {
		return fmt.Errorf("material %q: octave range must lie within %d..%d", c.Name, MinOctave, MaxOctave)
	}
	for i, p := range c.Partials {
		if p.Ratio <= 0 {
			return fmt.Errorf("material %q: partial %d has non-positive ratio", c.Name, i)
		}
	}
	return nil
}

// withDefaults fills the optional fields a hand-written YAML entry tends to
// leave out.
func (c Config) withDefaults() Config {
	if c.Volume == 0 {
		c.Volume = 1
	}
	if c.RoomSize == 0 {
		c.RoomSize = 1
	}
	if c.PitchDrop == 0 {
		c.PitchDrop = 1
	}
	if c.AttackMs == 0 {
		c.AttackMs = 2
	}
	if c.NoiseCutoff == 0 {
		c.NoiseCutoff = 4000
	}
	return c
}
