package main

import (
	"context"
	"fmt"
	"time"

	"github.com/qwertykeith/claudible/internal/config"
	"github.com/qwertykeith/claudible/internal/log"
	"github.com/qwertykeith/claudible/internal/material"
)

const (
	demoGrains     = 8
	demoGrainGap   = 60 * time.Millisecond
	demoChimeDelay = 150 * time.Millisecond
	demoPause      = 600 * time.Millisecond
)

// runDemo plays a short phrase on every character of the configured set.
func (a *app) runDemo(ctx context.Context, cfg config.Config) error {
	mats, err := material.Materials(cfg.Set)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "[claudible] demo of set %q\n", cfg.Set)

	for _, m := range mats {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(a.stderr, "  %s - %s\n", m.Name, m.Description)

		engine, err := newEngine(m, cfg)
		if err != nil {
			return err
		}
		if err := engine.Start(); err != nil {
			return err
		}
		for i := range demoGrains {
			engine.PlayGrain(string(rune('a' + i)))
			sleep(demoGrainGap)
		}
		sleep(demoChimeDelay)
		engine.PlayChime()
		sleep(demoPause)
		if err := engine.Stop(); err != nil {
			log.ErrorErr(log.CatAudio, "Stopping audio", err, "material", m.Name)
		}
	}
	return nil
}
