//go:build !headless

// Command claudible-scope listens to stdin like `claudible --pipe` and shows
// what the engine plays: waveform, spectrum and event counts.
//
//	some-build-command 2>&1 | claudible-scope -c bell
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/qwertykeith/claudible"
	"github.com/qwertykeith/claudible/internal/audio"
	"github.com/qwertykeith/claudible/internal/config"
	"github.com/qwertykeith/claudible/internal/events"
	"github.com/qwertykeith/claudible/internal/log"
	"github.com/qwertykeith/claudible/internal/material"
	"github.com/qwertykeith/claudible/internal/monitor"
	"github.com/qwertykeith/claudible/internal/scope"
	"github.com/qwertykeith/claudible/internal/session"
)

const (
	windowW    = 960
	windowH    = 600
	minWindowW = 640
	minWindowH = 420
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[claudible-scope] %v\n", err)
		if errors.Is(err, audio.ErrDeviceUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("claudible-scope", pflag.ContinueOnError)
	def := config.Defaults()
	// The window's game loop is what surfaces ebiten's device errors.
	def.Backend = string(audio.KindEbiten)
	flags.StringP(config.KeySet, "s", def.Set, "Sound set")
	flags.StringP(config.KeyCharacter, "c", def.Character, "Sound character (default: random from the set)")
	flags.Float64P(config.KeyVolume, "v", def.Volume, "Volume 0..1")
	flags.Float64P(config.KeyAttention, "a", def.Attention, "Seconds of silence before the attention reminder")
	flags.BoolP(config.KeyReverse, "r", def.Reverse, "Ambient while idle, quiet while output flows")
	flags.String(config.KeyBackend, def.Backend, fmt.Sprintf("Audio backend %v", audio.Kinds()))
	flags.String(config.KeyMaterials, def.Materials, "YAML file with custom sound sets")
	flags.String(config.KeyLogLevel, def.LogLevel, "Log level")
	flags.Bool(config.KeyMasterBus, def.MasterBus, "Compress and soft-clip the mix")
	configPath := flags.String("config", "", "Config file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	cfg, err := config.LoadWithDefaults(v, *configPath, def)
	if err != nil {
		return err
	}
	lvl, _ := log.ParseLevel(cfg.LogLevel)
	log.Setup(lvl, os.Stderr)

	if cfg.Materials != "" {
		if _, err := material.LoadFile(cfg.Materials); err != nil {
			return err
		}
	}
	m, err := pickMaterial(cfg)
	if err != nil {
		return err
	}
	kind, err := audio.ParseKind(cfg.Backend)
	if err != nil {
		return err
	}

	analyzer := scope.NewAnalyzer(scope.DefaultRingLen)
	engine, err := claudible.NewEngine(m,
		claudible.WithVolume(cfg.Volume),
		claudible.WithBackend(kind),
		claudible.WithMasterBus(cfg.MasterBus),
		claudible.WithSampleTap(analyzer.Tap),
		claudible.WithLogger(log.For(log.CatAudio)),
	)
	if err != nil {
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Stop()

	counter := &events.Counter{Next: engine}
	mon := monitor.New(counter,
		monitor.WithAttentionAfter(time.Duration(cfg.Attention*float64(time.Second))),
		monitor.WithReverse(cfg.Reverse),
		monitor.WithLogger(log.For(log.CatMonitor)),
	)
	mon.Start()
	defer mon.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := newGame(engine, mon, counter, analyzer)
	go func() {
		err := session.Pipe(ctx, os.Stdin, io.Discard, mon)
		g.inputClosed(err)
	}()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("claudible scope - " + m.Name)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func pickMaterial(cfg config.Config) (*material.Config, error) {
	if cfg.Character != "" {
		return material.Get(cfg.Character, cfg.Set)
	}
	return material.Random(cfg.Set, nil)
}
