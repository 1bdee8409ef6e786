package material

const DefaultSet = "crystal"

var crystalSet = []Config{
	{
		Name:          "ice",
		Description:   "Brittle, very high, fast decay",
		BaseFreq:      2800,
		Partials:      []Partial{{1.0, 1.0}, {2.3, 0.6}, {4.1, 0.3}, {7.2, 0.15}},
		DecayRates:    []float64{12, 18, 25, 35},
		GrainDuration: 0.035,
		AttackNoise:   0.4,
		NoiseCutoff:   6000,
		DetuneCents:   8,
		ReverbWet:     0.3,
		ReverbDamping: 0.3,
		RoomSize:      0.8,
		PitchDrop:     1,
		AttackMs:      1,
		FreqSpread:    0.02,
		Volume:        0.9,
		OctaveMin:     -2,
		OctaveMax:     1,
	},
	{
		Name:          "glass",
		Description:   "Classic wine glass ping",
		BaseFreq:      1200,
		Partials:      []Partial{{1.0, 1.0}, {2.4, 0.7}, {4.2, 0.4}, {6.8, 0.2}},
		DecayRates:    []float64{8, 12, 18, 25},
		GrainDuration: 0.045,
		AttackNoise:   0.25,
		NoiseCutoff:   4000,
		DetuneCents:   5,
		ReverbWet:     0.4,
		ReverbDamping: 0.4,
		RoomSize:      1.0,
		PitchDrop:     1,
		AttackMs:      2,
		FreqSpread:    0.015,
		Volume:        1.0,
		OctaveMin:     -2,
		OctaveMax:     2,
	},
	{
		Name:          "crystal",
		Description:   "Pure with beating from close partial pairs",
		BaseFreq:      1800,
		Partials:      []Partial{{1.0, 1.0}, {2.01, 0.8}, {4.0, 0.5}, {4.03, 0.45}, {6.5, 0.2}},
		DecayRates:    []float64{6, 7, 10, 11, 16},
		GrainDuration: 0.050,
		AttackNoise:   0.15,
		NoiseCutoff:   5000,
		DetuneCents:   3,
		ReverbWet:     0.5,
		ReverbDamping: 0.35,
		RoomSize:      1.2,
		PitchDrop:     1,
		AttackMs:      2,
		FreqSpread:    0.01,
		Volume:        0.9,
		OctaveMin:     -2,
		OctaveMax:     1,
	},
	{
		Name:          "ceramic",
		Description:   "Duller, muted",
		BaseFreq:      600,
		Partials:      []Partial{{1.0, 1.0}, {2.8, 0.4}, {5.1, 0.15}},
		DecayRates:    []float64{15, 22, 30},
		GrainDuration: 0.040,
		AttackNoise:   0.35,
		NoiseCutoff:   3000,
		DetuneCents:   12,
		ReverbWet:     0.25,
		ReverbDamping: 0.6,
		RoomSize:      0.7,
		PitchDrop:     1,
		AttackMs:      2,
		FreqSpread:    0.03,
		Volume:        1.0,
		OctaveMin:     -1,
		OctaveMax:     2,
	},
	{
		Name:          "bell",
		Description:   "Metallic, longer ring",
		BaseFreq:      900,
		Partials:      []Partial{{1.0, 1.0}, {2.0, 0.8}, {3.6, 0.6}, {5.4, 0.4}, {8.2, 0.2}},
		DecayRates:    []float64{4, 5, 7, 10, 14},
		GrainDuration: 0.055,
		AttackNoise:   0.3,
		NoiseCutoff:   4500,
		DetuneCents:   6,
		ReverbWet:     0.6,
		ReverbDamping: 0.25,
		RoomSize:      1.4,
		PitchDrop:     1,
		AttackMs:      1.5,
		FreqSpread:    0.01,
		Volume:        0.8,
		OctaveMin:     -3,
		OctaveMax:     1,
	},
	{
		Name:          "droplet",
		Description:   "Pitch bend down, liquid",
		BaseFreq:      1400,
		Partials:      []Partial{{1.0, 1.0}, {2.2, 0.5}, {3.8, 0.2}},
		DecayRates:    []float64{10, 15, 22},
		GrainDuration: 0.045,
		AttackNoise:   0.5,
		NoiseCutoff:   3500,
		DetuneCents:   4,
		ReverbWet:     0.45,
		ReverbDamping: 0.45,
		RoomSize:      1.0,
		PitchDrop:     0.79, // roughly four semitones down
		AttackMs:      1,
		FreqSpread:    0.04,
		Volume:        1.0,
		OctaveMin:     -2,
		OctaveMax:     2,
	},
	{
		Name:          "click",
		Description:   "Sharp mechanical click, keyboard-like",
		BaseFreq:      3500,
		Partials:      []Partial{{1.0, 1.0}, {2.5, 0.3}},
		DecayRates:    []float64{40, 60},
		GrainDuration: 0.020,
		AttackNoise:   0.7,
		NoiseCutoff:   7000,
		DetuneCents:   15,
		ReverbWet:     0.1,
		ReverbDamping: 0.7,
		RoomSize:      0.5,
		PitchDrop:     1,
		AttackMs:      0.5,
		FreqSpread:    0.05,
		Volume:        0.85,
		OctaveMin:     -3,
		OctaveMax:     0,
	},
}

var softSet = []Config{
	{
		Name:          "felt",
		Description:   "Muffled hammer on felt",
		BaseFreq:      420,
		Partials:      []Partial{{1.0, 1.0}, {2.0, 0.35}, {3.0, 0.12}},
		DecayRates:    []float64{18, 26, 34},
		GrainDuration: 0.060,
		AttackNoise:   0.15,
		NoiseCutoff:   1800,
		DetuneCents:   4,
		ReverbWet:     0.35,
		ReverbDamping: 0.8,
		RoomSize:      1.1,
		PitchDrop:     1,
		AttackMs:      4,
		FreqSpread:    0.01,
		Volume:        1.0,
		OctaveMin:     -1,
		OctaveMax:     2,
	},
	{
		Name:          "wood",
		Description:   "Hollow wooden knock",
		BaseFreq:      520,
		Partials:      []Partial{{1.0, 1.0}, {2.76, 0.5}, {5.4, 0.2}},
		DecayRates:    []float64{22, 30, 45},
		GrainDuration: 0.040,
		AttackNoise:   0.45,
		NoiseCutoff:   2500,
		DetuneCents:   10,
		ReverbWet:     0.2,
		ReverbDamping: 0.65,
		RoomSize:      0.8,
		PitchDrop:     0.94,
		AttackMs:      1,
		FreqSpread:    0.03,
		Volume:        1.0,
		OctaveMin:     -1,
		OctaveMax:     2,
	},
	{
		Name:          "marimba",
		Description:   "Warm tuned bar",
		BaseFreq:      660,
		Partials:      []Partial{{1.0, 1.0}, {4.0, 0.4}, {9.9, 0.1}},
		DecayRates:    []float64{9, 16, 30},
		GrainDuration: 0.070,
		AttackNoise:   0.1,
		NoiseCutoff:   3000,
		DetuneCents:   2,
		ReverbWet:     0.4,
		ReverbDamping: 0.5,
		RoomSize:      1.2,
		PitchDrop:     1,
		AttackMs:      2,
		FreqSpread:    0.0,
		Volume:        0.9,
		OctaveMin:     -2,
		OctaveMax:     1,
	},
	{
		Name:          "rain",
		Description:   "Scattered drops on a window",
		BaseFreq:      2200,
		Partials:      []Partial{{1.0, 1.0}, {1.9, 0.4}},
		DecayRates:    []float64{25, 40},
		GrainDuration: 0.030,
		AttackNoise:   0.6,
		NoiseCutoff:   5000,
		DetuneCents:   20,
		ReverbWet:     0.5,
		ReverbDamping: 0.4,
		RoomSize:      1.5,
		PitchDrop:     0.7,
		AttackMs:      0.5,
		FreqSpread:    0.08,
		Volume:        0.8,
		OctaveMin:     -1,
		OctaveMax:     3,
	},
	{
		Name:          "pebble",
		Description:   "Small stones tapping",
		BaseFreq:      1600,
		Partials:      []Partial{{1.0, 1.0}, {3.1, 0.45}, {6.3, 0.2}},
		DecayRates:    []float64{30, 45, 60},
		GrainDuration: 0.025,
		AttackNoise:   0.55,
		NoiseCutoff:   4000,
		DetuneCents:   14,
		ReverbWet:     0.15,
		ReverbDamping: 0.55,
		RoomSize:      0.6,
		PitchDrop:     1,
		AttackMs:      0.5,
		FreqSpread:    0.05,
		Volume:        0.9,
		OctaveMin:     -2,
		OctaveMax:     1,
	},
}
