package synth

import (
	"math"
	"testing"

	"github.com/qwertykeith/claudible/internal/material"
)

const testRate = 44100

func allMaterials(t *testing.T) []*material.Config {
	t.Helper()
	var out []*material.Config
	for _, set := range material.Sets() {
		mats, err := material.Materials(set)
		if err != nil {
			t.Fatalf("materials(%q): %v", set, err)
		}
		out = append(out, mats...)
	}
	return out
}

func TestGrainPeakWithinCeiling(t *testing.T) {
	rng := NewSeededAmbientSource(1)
	for _, m := range allMaterials(t) {
		for _, oct := range []int{-3, 0, 3} {
			v := Voice{Octave: oct, NoiseMult: 1.5, DecayMult: 0.6, DurationMult: 1.4}
			g := GenerateGrain(m, v, rng, testRate)
			limit := GrainCeiling * m.Volume
			if p := Peak(g); p > limit+1e-6 {
				t.Errorf("%s octave %d: peak %f exceeds %f", m.Name, oct, p, limit)
			}
		}
	}
}

func TestGrainNormalizedToCeiling(t *testing.T) {
	m, err := material.Get("glass", material.DefaultSet)
	if err != nil {
		t.Fatalf("get glass: %v", err)
	}
	g := GenerateGrain(m, DefaultVoice, NewSeededAmbientSource(3), testRate)
	if p := Peak(g); math.Abs(p-GrainCeiling*m.Volume) > 1e-6 {
		t.Fatalf("peak = %f, want %f", p, GrainCeiling*m.Volume)
	}
}

func TestChimeAndAttentionCeilings(t *testing.T) {
	rng := NewSeededAmbientSource(2)
	sr := float64(testRate)
	for _, m := range allMaterials(t) {
		chime := GenerateChime(m, rng, testRate)
		if len(chime) != int(ChimeDuration*sr) {
			t.Fatalf("%s chime length = %d", m.Name, len(chime))
		}
		if p := Peak(chime); p > ChimeCeiling*m.Volume+1e-6 || p == 0 {
			t.Errorf("%s chime peak %f, want (0, %f]", m.Name, p, ChimeCeiling*m.Volume)
		}
		att := GenerateAttention(m, rng, testRate)
		if len(att) != int(AttentionDuration*sr) {
			t.Fatalf("%s attention length = %d", m.Name, len(att))
		}
		if p := Peak(att); p > AttentionCeiling*m.Volume+1e-6 || p == 0 {
			t.Errorf("%s attention peak %f, want (0, %f]", m.Name, p, AttentionCeiling*m.Volume)
		}
	}
}

func TestGrainDegenerateInputsAreSilent(t *testing.T) {
	rng := NewSeededAmbientSource(4)
	noPartials := &material.Config{Name: "empty", BaseFreq: 440, GrainDuration: 0.03, Volume: 1, ReverbWet: 0.5, RoomSize: 1}
	g := GenerateGrain(noPartials, DefaultVoice, rng, testRate)
	if len(g) == 0 {
		t.Fatalf("expected a silent buffer, got empty")
	}
	if p := Peak(g); p != 0 {
		t.Fatalf("peak = %f, want silence", p)
	}

	zeroDur := &material.Config{Name: "zero", BaseFreq: 440, Partials: []material.Partial{{Ratio: 1, Amp: 1}}, Volume: 1}
	if g := GenerateGrain(zeroDur, DefaultVoice, rng, testRate); len(g) != 0 {
		t.Fatalf("zero duration grain has %d samples", len(g))
	}
}

func TestGrainLengthIncludesReverbTail(t *testing.T) {
	m, err := material.Get("bell", material.DefaultSet)
	if err != nil {
		t.Fatalf("get bell: %v", err)
	}
	g := GenerateGrain(m, DefaultVoice, NewSeededAmbientSource(5), testRate)
	sr := float64(testRate)
	n := int(m.GrainDuration * sr)
	want := n + int(reverbTailSec*sr)
	if len(g) != want {
		t.Fatalf("len = %d, want %d", len(g), want)
	}
	if last := g[len(g)-1]; math.Abs(float64(last)) > 1e-3 {
		t.Fatalf("tail not faded: last sample %f", last)
	}
}

func TestGrainVoiceDurationScales(t *testing.T) {
	m := &material.Config{Name: "dry", BaseFreq: 440, Partials: []material.Partial{{Ratio: 1, Amp: 1}}, GrainDuration: 0.05, Volume: 1}
	short := GenerateGrain(m, Voice{DurationMult: 0.5}, NewSeededAmbientSource(6), testRate)
	long := GenerateGrain(m, Voice{DurationMult: 2}, NewSeededAmbientSource(6), testRate)
	sr := float64(testRate)
	if len(short) != int(m.GrainDuration*0.5*sr) || len(long) != int(m.GrainDuration*2*sr) {
		t.Fatalf("lengths = %d, %d", len(short), len(long))
	}
}

func TestGrainSeededIsDeterministic(t *testing.T) {
	m, err := material.Get("droplet", material.DefaultSet)
	if err != nil {
		t.Fatalf("get droplet: %v", err)
	}
	v := Voice{Octave: -1, NoiseMult: 1, DecayMult: 1, DurationMult: 1}
	a := GenerateGrain(m, v, NewTokenSource(99), testRate)
	b := GenerateGrain(m, v, NewTokenSource(99), testRate)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestPitchDropExponent(t *testing.T) {
	if got := pitchDropExponent(0); got != 1 {
		t.Errorf("octave 0 exponent = %f, want 1", got)
	}
	if got := pitchDropExponent(-2); got != 1.5 {
		t.Errorf("octave -2 exponent = %f, want 1.5", got)
	}
	if got := pitchDropExponent(3); got != 0.25 {
		t.Errorf("octave 3 exponent = %f, want 0.25 floor", got)
	}
}

func TestPitchDropKeepsLength(t *testing.T) {
	in := make([]float64, 1000)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.1)
	}
	out := pitchDrop(in, 0.7, 0)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
}

func TestWarpUnityIsIdentity(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4}
	env := []float64{1, 1, 1, 1, 1}
	out := Warp(in, env)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %f, want %f", i, out[i], in[i])
		}
	}
}

func TestWarpDoubleRateHalvesLength(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	env := make([]float64, len(in))
	for i := range env {
		env[i] = 2
	}
	out := Warp(in, env)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if out[4] != 8 {
		t.Fatalf("out[4] = %f, want 8", out[4])
	}
}

func TestWarpInterpolates(t *testing.T) {
	out := Warp([]float64{0, 10}, []float64{0.5, 0.5, 0.5})
	want := []float64{0, 5, 10}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}

func TestNormalizeSkipsSilence(t *testing.T) {
	buf := []float64{0, 0, 0}
	normalize(buf, 0.4)
	for _, v := range buf {
		if v != 0 || math.IsNaN(v) {
			t.Fatalf("silence altered: %v", buf)
		}
	}
}

func TestApplyAttackRamps(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1}
	applyAttack(buf, 4, 1000)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func BenchmarkGenerateGrain(b *testing.B) {
	m, err := material.Get("crystal", material.DefaultSet)
	if err != nil {
		b.Fatalf("get crystal: %v", err)
	}
	rng := NewSeededAmbientSource(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateGrain(m, DefaultVoice, rng, testRate)
	}
}
