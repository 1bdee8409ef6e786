// Package lfo provides the slow sine modulator that makes the mixer's hum
// breathe.
package lfo

import "math"

// Sine is a sine LFO bound to one sample rate. Next returns values in
// [-depth, +depth], starting at zero phase.
type Sine struct {
	depth float64
	inc   float64 // phase increment per sample, in cycles
	phase float64 // [0, 1)
}

func NewSine(depth, rateHz float64, sampleRate int) *Sine {
	l := &Sine{depth: depth}
	if sampleRate > 0 && rateHz > 0 {
		l.inc = rateHz / float64(sampleRate)
	}
	return l
}

// Next advances one sample.
func (l *Sine) Next() float64 {
	if !l.Active() {
		return 0
	}
	v := l.depth * math.Sin(2*math.Pi*l.phase)
	l.phase += l.inc
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}
	return v
}

// Gain is 1 + Next, the multiplier form used for tremolo.
func (l *Sine) Gain() float64 { return 1 + l.Next() }

func (l *Sine) Active() bool { return l.depth != 0 && l.inc != 0 }

func (l *Sine) Phase() float64 { return l.phase }

func (l *Sine) Reset() { l.phase = 0 }
