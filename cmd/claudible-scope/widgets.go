//go:build !headless

package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale
)

var (
	bgColor       = color.RGBA{176, 180, 188, 255}
	panelColor    = color.RGBA{200, 202, 208, 255}
	borderColor   = color.RGBA{128, 128, 128, 255}
	bevelLight    = color.RGBA{255, 255, 255, 255}
	bevelDarker   = color.RGBA{64, 64, 64, 255}
	sunkenBgColor = color.RGBA{24, 24, 32, 255}
)

func drawPanel(screen *ebiten.Image, r image.Rectangle) {
	fillRect(screen, r, panelColor)
	bevel(screen, r, true)
}

func drawSunkenPanel(screen *ebiten.Image, r image.Rectangle) {
	fillRect(screen, r, sunkenBgColor)
	bevel(screen, r, false)
}

func drawDarkPanel(screen *ebiten.Image, r image.Rectangle) {
	fillRect(screen, r, color.Black)
	bevel(screen, r, false)
}

func fillRect(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	box(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c)
}

func box(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), c)
}

// bevel outlines r two pixels deep. Raised panels are lit from the top left;
// sunken ones swap the outer edge colours and shade the inner top left.
func bevel(screen *ebiten.Image, r image.Rectangle, raised bool) {
	x, y, w, h := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	lit, shade := color.Color(bevelLight), color.Color(bevelDarker)
	if !raised {
		lit, shade = borderColor, bevelLight
	}
	box(screen, x, y, w-1, 1, lit)
	box(screen, x, y+1, 1, h-2, lit)
	box(screen, x, y+h-1, w, 1, shade)
	box(screen, x+w-1, y, 1, h, shade)
	if raised {
		box(screen, x+1, y+h-2, w-3, 1, borderColor)
		box(screen, x+w-2, y+1, 1, h-3, borderColor)
		return
	}
	box(screen, x+1, y+1, w-3, 1, bevelDarker)
	box(screen, x+1, y+2, 1, h-4, bevelDarker)
}

// drawText renders debug-font text scaled up with a drop shadow. Rendered
// strings are cached since counters change only a few times a second.
func (g *game) drawText(screen *ebiten.Image, msg string, x, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		img = ebiten.NewImage(max(1, len([]rune(msg))*7), 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 1000 {
			g.textCache = make(map[string]*ebiten.Image, 256)
		}
		g.textCache[msg] = img
	}
	shadow := &ebiten.DrawImageOptions{}
	shadow.GeoM.Scale(textScale, textScale)
	shadow.GeoM.Translate(float64(x+2), float64(y+2))
	shadow.ColorScale.Scale(0, 0, 0, 1)
	screen.DrawImage(img, shadow)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}
