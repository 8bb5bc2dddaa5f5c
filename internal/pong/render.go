package pong

import (
	"fmt"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	TrailChar  = '·'
	NetChar    = '│'
	HandChar   = '░'
)

// Labels are the names drawn above each side.
type Labels struct {
	Left  string
	Right string
	Timer string
}

// Render draws the snapshot onto dst, scaling canvas pixels to cells.
// Row 0 holds the score line; the playfield uses the remaining rows.
func Render(dst *core.Screen, snap Snapshot, canvasW, canvasH float64, labels Labels) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 3 || h < 3 || canvasW <= 0 || canvasH <= 0 {
		return
	}

	fieldH := h - 1
	sx := float64(w) / canvasW
	sy := float64(fieldH) / canvasH
	toCell := func(p core.Vec2) (int, int) {
		x := core.Clamp(int(p.X*sx), 0, w-1)
		y := core.Clamp(int(p.Y*sy), 0, fieldH-1)
		return x, y + 1
	}

	// Net
	for y := 1; y < h; y += 2 {
		dst.SetColored(w/2, y, NetChar, core.ColorGray)
	}

	for _, r := range snap.Hands {
		x0, y0 := toCell(core.Vec2{X: r.Box.X, Y: r.Box.Y})
		x1, y1 := toCell(core.Vec2{X: r.Box.Right(), Y: r.Box.Bottom()})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, HandChar, core.ColorGreen)
			}
		}
	}

	drawPaddle := func(r core.Rect, c core.Color) {
		x0, y0 := toCell(core.Vec2{X: r.X, Y: r.Y})
		_, y1 := toCell(core.Vec2{X: r.X, Y: r.Bottom()})
		for y := y0; y <= y1; y++ {
			dst.SetColored(x0, y, PaddleChar, c)
		}
	}
	drawPaddle(snap.Left, core.ColorBrightCyan)
	drawPaddle(snap.Right, core.ColorBrightMagenta)

	for _, p := range snap.Trail {
		x, y := toCell(p)
		dst.SetColored(x, y, TrailChar, core.ColorYellow)
	}
	bx, by := toCell(snap.Render)
	dst.SetColored(bx, by, BallChar, core.ColorBrightYellow)

	// Score line
	score := fmt.Sprintf("%d - %d", snap.Score1, snap.Score2)
	dst.DrawTextCentered(0, score, core.ColorBrightWhite)
	dst.DrawTextColored(1, 0, labels.Left, core.ColorBrightCyan)
	if labels.Right != "" {
		dst.DrawTextColored(w-1-len([]rune(labels.Right)), 0, labels.Right, core.ColorBrightMagenta)
	}
	if labels.Timer != "" {
		dst.DrawTextColored(w/2+len(score)/2+3, 0, labels.Timer, core.ColorGray)
	}
}
