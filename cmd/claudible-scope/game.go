//go:build !headless

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/qwertykeith/claudible"
	"github.com/qwertykeith/claudible/internal/events"
	"github.com/qwertykeith/claudible/internal/monitor"
	"github.com/qwertykeith/claudible/internal/scope"
)

const volumeStep = 0.05

type game struct {
	engine   *claudible.Engine
	monitor  *monitor.Monitor
	counter  *events.Counter
	analyzer *scope.Analyzer
	spectrum *scope.Spectrum
	gain     scope.AutoGain

	scopeImg  *ebiten.Image
	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int

	mu     sync.Mutex
	status string
}

func newGame(e *claudible.Engine, mon *monitor.Monitor, counter *events.Counter, a *scope.Analyzer) *game {
	return &game{
		engine:    e,
		monitor:   mon,
		counter:   counter,
		analyzer:  a,
		spectrum:  scope.NewSpectrum(e.SampleRate()),
		textCache: make(map[string]*ebiten.Image, 256),
		viewW:     windowW,
		viewH:     windowH,
		status:    "Listening on stdin",
	}
}

// inputClosed is called from the pipe goroutine.
func (g *game) inputClosed(err error) {
	msg := "Input closed"
	if err != nil && !errors.Is(err, context.Canceled) {
		msg = "Input error: " + err.Error()
	}
	g.mu.Lock()
	g.status = msg
	g.mu.Unlock()
}

func (g *game) statusLine() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.engine.SetVolume(g.engine.Volume() + volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.engine.SetVolume(g.engine.Volume() - volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.counter.Grain(string(rune('a' + rand.IntN(26))))
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.counter.Chime()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.counter.Attention()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	w, h := g.viewW, g.viewH
	header := image.Rect(8, 8, w-8, 8+lineH+16)
	footer := image.Rect(8, h-8-2*lineH-20, w-8, h-8)
	scopeRect := image.Rect(8, header.Max.Y+8, w-8, footer.Min.Y-8)

	drawPanel(screen, header)
	drawDarkPanel(screen, scopeRect)
	drawSunkenPanel(screen, footer)

	mat := g.engine.Material()
	mode := "forward"
	if g.monitor.Reverse() {
		mode = "reverse"
	}
	g.drawText(screen, fmt.Sprintf("%s - %s [%s]", mat.Name, mat.Description, mode), header.Min.X+8, header.Min.Y+8)
	vol := fmt.Sprintf("Vol %d%%", int(g.engine.Volume()*100+0.5))
	g.drawText(screen, vol, header.Max.X-8-len(vol)*charW, header.Min.Y+8)

	g.drawScope(screen, scopeRect)

	st := g.monitor.Stats()
	counts := fmt.Sprintf("grains %d  throttled %d  chimes %d  attention %d",
		g.counter.Count(events.Grain), st.GrainsThrottled,
		g.counter.Count(events.Chime), g.counter.Count(events.Attention))
	g.drawText(screen, counts, footer.Min.X+8, footer.Min.Y+6)

	ambient := ""
	if g.monitor.Reverse() && g.monitor.Ambient() {
		ambient = "  (ambient)"
	}
	g.drawText(screen, g.statusLine()+ambient+"  |  Up/Down vol  G C A trigger  Esc quit", footer.Min.X+8, footer.Min.Y+6+lineH)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.viewW = max(outsideW, minWindowW)
	g.viewH = max(outsideH, minWindowH)
	return g.viewW, g.viewH
}

func (g *game) drawScope(screen *ebiten.Image, rect image.Rectangle) {
	inner := image.Rect(rect.Min.X+8, rect.Min.Y+8, rect.Max.X-8, rect.Max.Y-8)
	width, height := inner.Dx(), inner.Dy()
	if width <= 0 || height <= 0 {
		return
	}
	if g.scopeImg == nil || g.scopeImg.Bounds().Dx() != width || g.scopeImg.Bounds().Dy() != height {
		g.scopeImg = ebiten.NewImage(width, height)
	}
	g.scopeImg.Fill(color.RGBA{14, 16, 22, 255})

	snap := g.analyzer.Snapshot(scope.FFTSize)

	waveH := int(float64(height) * 0.45)
	g.drawWaveform(g.scopeImg, snap, width, waveH)
	ebitenutil.DrawRect(g.scopeImg, 0, float64(waveH), float64(width), 1, color.RGBA{50, 54, 68, 180})
	g.drawSpectrumBars(g.scopeImg, snap, width, height-waveH-1, waveH+1)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(g.scopeImg, op)
}

func (g *game) drawWaveform(dst *ebiten.Image, samples []float32, width, height int) {
	if len(samples) < 2 || width < 2 || height < 4 {
		return
	}
	midY := height / 2
	ebitenutil.DrawRect(dst, 0, float64(midY), float64(width), 1, color.RGBA{40, 44, 58, 100})

	gain := float64(midY-2) / g.gain.Update(samples)
	trigger := scope.FindZeroCrossing(samples, len(samples)/4)
	visible := max(len(samples)-trigger, 2)

	waveColor := color.RGBA{80, 200, 255, 220}
	prevX, prevY := 0, midY-int(float64(samples[trigger])*gain)
	for px := 1; px < width; px++ {
		si := min(trigger+px*visible/width, len(samples)-1)
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(dst, float64(prevX), float64(prevY), float64(px), float64(y), waveColor)
		prevX, prevY = px, y
	}
}

func (g *game) drawSpectrumBars(dst *ebiten.Image, samples []float32, width, height, yOffset int) {
	if width < 4 || height < 4 {
		return
	}
	bins := g.spectrum.Update(samples, width/3)
	barW := float64(width) / float64(len(bins))
	for i, v := range bins {
		barH := max(v*float64(height-4), 1)
		x := float64(i) * barW
		y := float64(yOffset) + float64(height-2) - barH
		r, gr, b := spectrumColor(v)
		ebitenutil.DrawRect(dst, x+1, y, barW-1, barH, color.RGBA{r, gr, b, 220})
	}
}

func spectrumColor(v float64) (uint8, uint8, uint8) {
	if v < 0.33 {
		t := v / 0.33
		return uint8(30 + 20*t), uint8(80 + 120*t), uint8(200 + 55*t)
	}
	if v < 0.66 {
		t := (v - 0.33) / 0.33
		return uint8(50 + 140*t), uint8(200 + 30*t), uint8(255 - 100*t)
	}
	t := (v - 0.66) / 0.34
	return uint8(190 + 65*t), uint8(230 - 100*t), uint8(155 - 100*t)
}
