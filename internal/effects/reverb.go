package effects

// Reverb is a mono Schroeder reverb: four damped feedback combs in parallel
// feeding two allpass diffusers. Chimes and attention tones use it for a
// longer tail than the grain reflections give.
type Reverb struct {
	combs     [4]comb
	diffusers [2]allpass
	wet       float64
}

// Comb and allpass lengths relative to the room's base delay; the
// irregular ratios keep the combs' resonances from lining up.
var (
	combRatios    = [4]float64{1, 1.117, 1.271, 1.437}
	allpassRatios = [2]float64{0.347, 0.213}
)

const (
	baseDelaySec = 0.05
	minBaseDelay = 10
	allpassGain  = 0.5
)

// NewReverb builds a reverb. roomSize scales the delay lengths (1 is a 50 ms
// base comb), feedback sets the decay, damping (0..1) darkens each pass
// through the combs, wet is the output mix.
func NewReverb(sampleRate int, roomSize, feedback, damping, wet float64) *Reverb {
	base := max(int(float64(sampleRate)*roomSize*baseDelaySec), minBaseDelay)
	fb := clamp(feedback, 0, 0.95)
	damp := clamp(damping, 0, 0.95)
	r := &Reverb{wet: clamp(wet, 0, 1)}
	for i, ratio := range combRatios {
		r.combs[i] = comb{line: newDelayLine(int(float64(base) * ratio)), feedback: fb, damp: damp}
	}
	for i, ratio := range allpassRatios {
		r.diffusers[i] = allpass{line: newDelayLine(int(float64(base) * ratio)), gain: allpassGain}
	}
	return r
}

func (r *Reverb) step(x float64) float64 {
	var acc float64
	for i := range r.combs {
		acc += r.combs[i].step(x)
	}
	acc /= float64(len(r.combs))
	for i := range r.diffusers {
		acc = r.diffusers[i].step(acc)
	}
	return x*(1-r.wet) + acc*r.wet
}

func (r *Reverb) Process(x float32) float32 { return float32(r.step(float64(x))) }

// Apply runs the reverb over a whole buffer, returning a new slice.
func (r *Reverb) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = r.step(x)
	}
	return out
}

func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].line.reset()
		r.combs[i].lp = 0
	}
	for i := range r.diffusers {
		r.diffusers[i].line.reset()
	}
}

type delayLine struct {
	buf []float64
	pos int
}

func newDelayLine(n int) delayLine {
	return delayLine{buf: make([]float64, max(n, 1))}
}

// read returns the sample written len(buf) steps ago.
func (d *delayLine) read() float64 { return d.buf[d.pos] }

func (d *delayLine) write(v float64) {
	d.buf[d.pos] = v
	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
}

func (d *delayLine) reset() {
	clear(d.buf)
	d.pos = 0
}

type comb struct {
	line     delayLine
	feedback float64
	damp     float64
	lp       float64
}

func (c *comb) step(x float64) float64 {
	out := c.line.read()
	c.lp = out*(1-c.damp) + c.lp*c.damp
	c.line.write(x + c.lp*c.feedback)
	return out
}

type allpass struct {
	line delayLine
	gain float64
}

func (a *allpass) step(x float64) float64 {
	delayed := a.line.read()
	a.line.write(x + delayed*a.gain)
	return delayed - x
}
