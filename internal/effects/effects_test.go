package effects

import (
	"math"
	"testing"
)

func TestReverbProducesTail(t *testing.T) {
	r := NewReverb(44100, 0.5, 0.7, 0.2, 0.5)
	r.Process(1.0)
	var peak float64
	for i := 0; i < 10000; i++ {
		peak = max(peak, math.Abs(float64(r.Process(0))))
	}
	if peak < 0.001 {
		t.Error("expected reverb tail")
	}
}

func tailEnergy(r *Reverb, from, to int) float64 {
	in := make([]float64, to)
	in[0] = 1
	var e float64
	for _, v := range r.Apply(in)[from:] {
		e += v * v
	}
	return e
}

func TestReverbDampingShortensTail(t *testing.T) {
	bright := tailEnergy(NewReverb(44100, 0.5, 0.8, 0, 1), 3000, 30000)
	dark := tailEnergy(NewReverb(44100, 0.5, 0.8, 0.8, 1), 3000, 30000)
	if dark >= bright {
		t.Fatalf("damped tail energy %v, want below undamped %v", dark, bright)
	}
}

func TestReverbResetSilences(t *testing.T) {
	r := NewReverb(44100, 0.5, 0.7, 0.3, 1)
	for i := 0; i < 100; i++ {
		r.Process(1)
	}
	r.Reset()
	for i := 0; i < 5000; i++ {
		if v := r.Process(0); v != 0 {
			t.Fatalf("sample %d after reset = %v, want 0", i, v)
		}
	}
}

func TestSoftClipBounded(t *testing.T) {
	s := NewSoftClip(2, 0.95)
	for _, x := range []float32{-10, -1, -0.2, 0, 0.2, 1, 10} {
		y := s.Process(x)
		if math.Abs(float64(y)) > 0.95 {
			t.Errorf("soft clip(%v) = %v, want inside ceiling", x, y)
		}
		if x != 0 && (y > 0) != (x > 0) {
			t.Errorf("soft clip(%v) = %v changed sign", x, y)
		}
	}
}

func TestCompressorReducesLoud(t *testing.T) {
	c := NewCompressor(44100, -10, 4, 1, 50, 0)
	var out float32
	for i := 0; i < 1000; i++ {
		out = c.Process(1.0)
	}
	if out >= 1.0 {
		t.Errorf("compressor should reduce loud signals, got %f", out)
	}
}

func TestCompressorPassesQuiet(t *testing.T) {
	c := NewCompressor(44100, -6, 4, 1, 50, 0)
	var out float32
	for i := 0; i < 1000; i++ {
		out = c.Process(0.1)
	}
	if math.Abs(float64(out)-0.1) > 1e-6 {
		t.Errorf("quiet signal altered: %f", out)
	}
}

func TestCompressorGainReduction(t *testing.T) {
	c := NewCompressor(44100, -6, 4, 1, 50, 0)
	if gr := c.GainReductionDB(); gr != 0 {
		t.Fatalf("idle gain reduction = %v, want 0", gr)
	}
	for i := 0; i < 44100; i++ {
		c.Process(1.0)
	}
	// 6 dB over the threshold at 4:1 leaves 1.5 dB of the overshoot.
	if gr := c.GainReductionDB(); math.Abs(gr-4.5) > 0.01 {
		t.Fatalf("gain reduction = %v, want ~4.5 dB", gr)
	}
	c.Reset()
	if gr := c.GainReductionDB(); gr != 0 {
		t.Fatalf("gain reduction after reset = %v, want 0", gr)
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	c := NewChain(NewSoftClip(1, 1), NewCompressor(44100, -20, 4, 1, 50, 0))
	buf := []float32{0.5, 0.5, 0.5}
	c.ProcessBlock(buf)
	for i, v := range buf {
		if v == 0 || v >= 0.5 {
			t.Errorf("buf[%d] = %v, want attenuated non-zero", i, v)
		}
	}
}

func TestHighPassRemovesDC(t *testing.T) {
	hp := NewHighPass(44100, 1000)
	var last float64
	for i := 0; i < 5000; i++ {
		last = hp.Step(1)
	}
	if math.Abs(last) > 1e-3 {
		t.Errorf("high-pass output on DC = %v, want ~0", last)
	}
}

func TestLowPassPassesDC(t *testing.T) {
	lp := NewLowPass(44100, 1000)
	var last float64
	for i := 0; i < 5000; i++ {
		last = lp.Step(1)
	}
	if math.Abs(last-1) > 1e-3 {
		t.Errorf("low-pass output on DC = %v, want ~1", last)
	}
}

func TestAlphaEdges(t *testing.T) {
	if a := Alpha(44100, 0); a != 0 {
		t.Errorf("alpha at 0 Hz = %v, want 0", a)
	}
	if a := Alpha(44100, 30000); a != 1 {
		t.Errorf("alpha above Nyquist = %v, want 1", a)
	}
}

func TestGrainTapsGeometric(t *testing.T) {
	taps := GrainTaps(1, 1)
	if len(taps) != 6 {
		t.Fatalf("taps = %d, want 6", len(taps))
	}
	want := 0.55
	for k, tp := range taps {
		if math.Abs(tp.Gain-want) > 1e-12 {
			t.Errorf("tap %d gain = %v, want %v", k, tp.Gain, want)
		}
		if tp.Damped != (k >= 2) {
			t.Errorf("tap %d damped = %v", k, tp.Damped)
		}
		want *= 0.55
	}
	if math.Abs(taps[0].DelaySec-0.023) > 1e-12 {
		t.Errorf("first tap delay = %v, want 0.023", taps[0].DelaySec)
	}
}

func TestMultiTapPlacesReflections(t *testing.T) {
	dry := make([]float64, 10)
	dry[0] = 1
	taps := []Tap{{DelaySec: 5.0 / 1000, Gain: 0.5}}
	out := MultiTap(dry, 1000, taps, 0, 20)
	if len(out) != 20 {
		t.Fatalf("len = %d, want 20", len(out))
	}
	if out[0] != 1 || out[5] != 0.5 {
		t.Fatalf("out[0]=%v out[5]=%v, want 1 and 0.5", out[0], out[5])
	}
}

func TestMultiTapCutsLateReflections(t *testing.T) {
	dry := []float64{1, 1, 1}
	taps := []Tap{{DelaySec: 1, Gain: 1}}
	out := MultiTap(dry, 1000, taps, 0, 3)
	for i, v := range out {
		if v != 1 {
			t.Fatalf("out[%d] = %v, want dry only", i, v)
		}
	}
}
