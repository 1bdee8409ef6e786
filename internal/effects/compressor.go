package effects

import "math"

// Compressor is a peak-following compressor for the master bus. Overlapping
// grains can stack well past unity; it pulls the sum back before the soft
// clip.
type Compressor struct {
	thresholdDB  float64
	thresholdLin float64
	slope        float64 // 1 - 1/ratio
	attack       float64
	release      float64
	makeup       float64
	env          float64
}

// NewCompressor builds a compressor. Ratios below 1 are treated as 1 (no
// compression); non-positive times make the envelope follow instantly.
func NewCompressor(sampleRate int, thresholdDB, ratio, attackMs, releaseMs, makeupDB float64) *Compressor {
	ratio = max(ratio, 1)
	sr := float64(sampleRate)
	return &Compressor{
		thresholdDB:  thresholdDB,
		thresholdLin: dbToGain(thresholdDB),
		slope:        1 - 1/ratio,
		attack:       followCoeff(attackMs, sr),
		release:      followCoeff(releaseMs, sr),
		makeup:       dbToGain(makeupDB),
	}
}

func followCoeff(ms, sr float64) float64 {
	if ms <= 0 || sr <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/(ms*sr/1000))
}

func dbToGain(db float64) float64 { return math.Pow(10, db/20) }

func (c *Compressor) Process(x float32) float32 {
	level := math.Abs(float64(x))
	k := c.release
	if level > c.env {
		k = c.attack
	}
	c.env += k * (level - c.env)

	g := c.makeup
	if c.env > c.thresholdLin {
		g *= dbToGain(-c.GainReductionDB())
	}
	return float32(float64(x) * g)
}

// GainReductionDB is the attenuation the envelope currently calls for, 0
// while it sits below the threshold.
func (c *Compressor) GainReductionDB() float64 {
	if c.env <= c.thresholdLin {
		return 0
	}
	return (20*math.Log10(c.env) - c.thresholdDB) * c.slope
}

func (c *Compressor) Reset() { c.env = 0 }
