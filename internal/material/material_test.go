package material

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinSetsValidate(t *testing.T) {
	for _, set := range Sets() {
		mats, err := Materials(set)
		if err != nil {
			t.Fatalf("materials(%q): %v", set, err)
		}
		if len(mats) == 0 {
			t.Fatalf("set %q is empty", set)
		}
		for _, m := range mats {
			if err := m.Validate(); err != nil {
				t.Errorf("set %q: %v", set, err)
			}
		}
	}
}

func TestDefaultSetComesFirst(t *testing.T) {
	sets := Sets()
	if len(sets) < 2 || sets[0] != DefaultSet {
		t.Fatalf("sets = %v, want %q first", sets, DefaultSet)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m, err := Get("glass", DefaultSet)
	if err != nil {
		t.Fatalf("get glass: %v", err)
	}
	m.BaseFreq = 1
	again, err := Get("glass", DefaultSet)
	if err != nil {
		t.Fatalf("get glass: %v", err)
	}
	if again.BaseFreq != 1200 {
		t.Fatalf("registry mutated through returned pointer: base freq %v", again.BaseFreq)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope", DefaultSet); !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("err = %v, want ErrUnknownMaterial", err)
	}
	if _, err := Get("glass", "nope"); !errors.Is(err, ErrUnknownSet) {
		t.Fatalf("err = %v, want ErrUnknownSet", err)
	}
}

func TestRandomIsSeedable(t *testing.T) {
	a, err := Random(DefaultSet, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, err := Random(DefaultSet, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if a.Name != b.Name {
		t.Fatalf("same seed picked %q and %q", a.Name, b.Name)
	}
}

func TestDecayRateRepeatsLast(t *testing.T) {
	c := Config{DecayRates: []float64{4, 9}}
	if got := c.DecayRate(5); got != 9 {
		t.Fatalf("DecayRate(5) = %v, want 9", got)
	}
	var empty Config
	if got := empty.DecayRate(0); got <= 0 {
		t.Fatalf("empty decay rate = %v, want positive default", got)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"no name", Config{BaseFreq: 100}},
		{"zero freq", Config{Name: "x"}},
		{"inverted octaves", Config{Name: "x", BaseFreq: 100, OctaveMin: 1, OctaveMax: 0}},
		{"octave out of range", Config{Name: "x", BaseFreq: 100, OctaveMin: -4}},
		{"bad ratio", Config{Name: "x", BaseFreq: 100, Partials: []Partial{{0, 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadFileRegistersSets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.yaml")
	doc := `
sets:
  studio:
    - name: tin
      description: Thin can
      base_freq: 1500
      partials:
        - {ratio: 1.0, amp: 1.0}
        - {ratio: 3.2, amp: 0.4}
      decay_rates: [20, 30]
      grain_duration: 0.03
      attack_noise: 0.3
      octave_min: -1
      octave_max: 1
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	added, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(added) != 1 || added[0] != "studio" {
		t.Fatalf("added = %v, want [studio]", added)
	}
	m, err := Get("tin", "studio")
	if err != nil {
		t.Fatalf("get tin: %v", err)
	}
	if m.Volume != 1 || m.RoomSize != 1 || m.PitchDrop != 1 {
		t.Fatalf("defaults not applied: %+v", m)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := "sets:\n  broken:\n    - name: bad\n      base_freq: -5\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for invalid material")
	}
}
