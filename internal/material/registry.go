package material

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

type registry struct {
	mu    sync.RWMutex
	order []string
	sets  map[string][]Config
}

var defaults = newRegistry()

func newRegistry() *registry {
	r := &registry{sets: make(map[string][]Config)}
	r.add(DefaultSet, crystalSet)
	r.add("soft", softSet)
	return r
}

func (r *registry) add(set string, cfgs []Config) {
	if _, ok := r.sets[set]; !ok {
		r.order = append(r.order, set)
	}
	cp := make([]Config, len(cfgs))
	copy(cp, cfgs)
	r.sets[set] = cp
}

func (r *registry) lookup(set string) ([]Config, error) {
	if set == "" {
		set = DefaultSet
	}
	cfgs, ok := r.sets[set]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSet, set, strings.Join(r.order, ", "))
	}
	return cfgs, nil
}

// Sets returns the sound set names in registration order.
func Sets() []string {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	return append([]string(nil), defaults.order...)
}

// List returns the material names of a set in declaration order.
func List(set string) ([]string, error) {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	cfgs, err := defaults.lookup(set)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cfgs))
	for i, c := range cfgs {
		names[i] = c.Name
	}
	return names, nil
}

// Materials returns copies of every material in a set.
func Materials(set string) ([]*Config, error) {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	cfgs, err := defaults.lookup(set)
	if err != nil {
		return nil, err
	}
	out := make([]*Config, len(cfgs))
	for i := range cfgs {
		c := cfgs[i]
		out[i] = &c
	}
	return out, nil
}

// Get returns a copy of the named material from set.
func Get(name, set string) (*Config, error) {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	cfgs, err := defaults.lookup(set)
	if err != nil {
		return nil, err
	}
	for i := range cfgs {
		if cfgs[i].Name == name {
			c := cfgs[i]
			return &c, nil
		}
	}
	names := make([]string, len(cfgs))
	for i, c := range cfgs {
		names[i] = c.Name
	}
	return nil, fmt.Errorf("%w: %q not in set %q (available: %s)", ErrUnknownMaterial, name, set, strings.Join(names, ", "))
}

// Random picks a material from set. A nil rng uses the global source.
func Random(set string, rng *rand.Rand) (*Config, error) {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	cfgs, err := defaults.lookup(set)
	if err != nil {
		return nil, err
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: set %q is empty", ErrUnknownMaterial, set)
	}
	var idx int
	if rng != nil {
		idx = rng.IntN(len(cfgs))
	} else {
		idx = rand.IntN(len(cfgs))
	}
	c := cfgs[idx]
	return &c, nil
}

// Register adds or replaces a set. Every material is validated first.
func Register(set string, cfgs []Config) error {
	if set == "" {
		return fmt.Errorf("material: set name is required")
	}
	if len(cfgs) == 0 {
		return fmt.Errorf("material: set %q has no materials", set)
	}
	filled := make([]Config, len(cfgs))
	for i, c := range cfgs {
		c = c.withDefaults()
		if err := c.Validate(); err != nil {
			return fmt.Errorf("set %q: %w", set, err)
		}
		filled[i] = c
	}
	defaults.mu.Lock()
	defaults.add(set, filled)
	defaults.mu.Unlock()
	return nil
}

type fileFormat struct {
	Sets map[string][]Config `yaml:"sets"`
}

// LoadFile reads custom sound sets from a YAML file and registers them.
// Returns the names of the sets it added, sorted.
func LoadFile(path string) ([]string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read materials file: %w", err)
	}
	slog.Info("Reading materials from " + resolved)

	var ff fileFormat
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("parse materials file %s: %w", resolved, err)
	}
	if len(ff.Sets) == 0 {
		return nil, fmt.Errorf("materials file %s defines no sets", resolved)
	}

	names := make([]string, 0, len(ff.Sets))
	for name := range ff.Sets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := Register(name, ff.Sets[name]); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func resolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
