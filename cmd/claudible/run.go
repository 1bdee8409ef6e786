package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qwertykeith/claudible"
	"github.com/qwertykeith/claudible/internal/audio"
	"github.com/qwertykeith/claudible/internal/config"
	"github.com/qwertykeith/claudible/internal/events"
	"github.com/qwertykeith/claudible/internal/log"
	"github.com/qwertykeith/claudible/internal/material"
	"github.com/qwertykeith/claudible/internal/monitor"
	"github.com/qwertykeith/claudible/internal/session"
)

// drainDelay lets the last grains ring out after piped input ends.
const drainDelay = 500 * time.Millisecond

// sleep is swapped out by tests.
var sleep = time.Sleep

func (a *app) run(ctx context.Context, args []string) error {
	cfg, err := config.Load(a.viper, a.opts.configPath)
	if err != nil {
		return err
	}
	lvl, _ := log.ParseLevel(cfg.LogLevel) // validated by Load
	log.Setup(lvl, a.stderr)

	if cfg.Materials != "" {
		added, err := material.LoadFile(cfg.Materials)
		if err != nil {
			return err
		}
		log.Info(log.CatConfig, "Loaded custom sound sets", "sets", added)
	}

	if a.opts.listCharacters {
		return a.listCharacters()
	}

	if a.opts.demo {
		return a.runDemo(ctx, cfg)
	}

	m, err := pickMaterial(cfg)
	if err != nil {
		return err
	}

	// Resolve the command before any audio opens so a bad command line fails fast.
	var argv []string
	if !a.opts.pipe {
		if len(args) == 0 {
			args = []string{defaultCommand}
		}
		if argv, err = session.SplitCommand(args); err != nil {
			return err
		}
	}

	engine, err := newEngine(m, cfg)
	if err != nil {
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}
	defer func() {
		if err := engine.Stop(); err != nil {
			log.ErrorErr(log.CatAudio, "Stopping audio", err)
		}
	}()

	label := m.Name
	if cfg.Reverse {
		label += " (reverse)"
	}
	fmt.Fprintf(a.stderr, "[claudible] %s - %s\n", label, m.Description)

	counter := &events.Counter{Next: engine}
	mon := monitor.New(counter,
		monitor.WithAttentionAfter(time.Duration(cfg.Attention*float64(time.Second))),
		monitor.WithReverse(cfg.Reverse),
		monitor.WithLogger(log.For(log.CatMonitor)),
	)
	mon.Start()
	defer func() {
		mon.Stop()
		st := mon.Stats()
		log.Info(log.CatMonitor, "Session finished",
			"grains", counter.Count(events.Grain),
			"throttled", st.GrainsThrottled,
			"chimes", counter.Count(events.Chime),
			"attentions", counter.Count(events.Attention),
		)
	}()

	if a.opts.pipe {
		err := session.Pipe(ctx, a.stdin, a.stdout, mon)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err == nil {
			sleep(drainDelay)
		}
		return err
	}

	code, err := session.Wrap(ctx, argv, mon)
	if err != nil {
		return err
	}
	a.exit = code
	return nil
}

func newEngine(m *material.Config, cfg config.Config) (*claudible.Engine, error) {
	kind, err := audio.ParseKind(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return claudible.NewEngine(m,
		claudible.WithVolume(cfg.Volume),
		claudible.WithBackend(kind),
		claudible.WithMasterBus(cfg.MasterBus),
		claudible.WithLogger(log.For(log.CatAudio)),
	)
}

// pickMaterial honours --character when given, otherwise picks at random
// from the set.
func pickMaterial(cfg config.Config) (*material.Config, error) {
	if cfg.Character != "" {
		return material.Get(cfg.Character, cfg.Set)
	}
	return material.Random(cfg.Set, nil)
}

func (a *app) listCharacters() error {
	for _, set := range material.Sets() {
		header := fmt.Sprintf("[%s]", set)
		if set == material.DefaultSet {
			header += " (default)"
		}
		fmt.Fprintln(a.stdout, header)
		mats, err := material.Materials(set)
		if err != nil {
			return err
		}
		for _, m := range mats {
			fmt.Fprintf(a.stdout, "  %s - %s\n", m.Name, m.Description)
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}
