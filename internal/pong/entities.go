// Package pong implements the hand-pong physics: ball and paddle state,
// wall/paddle/hand collision resolution, speed clamping, scoring and the
// computer opponent. It never reads a clock; time only enters through the
// dt passed to Advance.
package pong

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// Side identifies one half of the canvas and the paddle that defends it.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Mode is the session mode the engine runs under.
type Mode int

const (
	ModeNone Mode = iota
	ModeSinglePlayer
	ModeTwoPlayer
)

// String returns the mode name used in flags and storage.
func (m Mode) String() string {
	switch m {
	case ModeSinglePlayer:
		return "single"
	case ModeTwoPlayer:
		return "two"
	default:
		return "none"
	}
}

// ParseMode converts a mode name ("single" or "two") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "singleplayer", "1":
		return ModeSinglePlayer, nil
	case "two", "twoplayer", "2":
		return ModeTwoPlayer, nil
	}
	return ModeNone, fmt.Errorf("pong: unknown mode %q", s)
}

// MaxHands returns how many tracked hands the mode accepts per tick.
func (m Mode) MaxHands() int {
	switch m {
	case ModeSinglePlayer:
		return 1
	case ModeTwoPlayer:
		return 2
	default:
		return 0
	}
}

// HandSides reports whether a hand on the given side may act in this mode.
func (m Mode) HandSides(s Side) bool {
	switch m {
	case ModeSinglePlayer:
		return s == SideLeft
	case ModeTwoPlayer:
		return true
	default:
		return false
	}
}

// Hitter tags the entity that last touched the ball.
type Hitter int

const (
	HitterNone Hitter = iota
	HitterLeftPaddle
	HitterRightPaddle
	HitterLeftHand
	HitterRightHand
)

// String returns the tag name.
func (h Hitter) String() string {
	switch h {
	case HitterLeftPaddle:
		return "leftPaddle"
	case HitterRightPaddle:
		return "rightPaddle"
	case HitterLeftHand:
		return "leftHand"
	case HitterRightHand:
		return "rightHand"
	default:
		return "none"
	}
}

func paddleHitter(s Side) Hitter {
	if s == SideRight {
		return HitterRightPaddle
	}
	return HitterLeftPaddle
}

func handHitter(s Side) Hitter {
	if s == SideRight {
		return HitterRightHand
	}
	return HitterLeftHand
}

// History is a fixed-capacity ring of recent ball positions, used for the trail.
type History struct {
	points []core.Vec2
	head   int // Index of the oldest entry
	size   int
}

// NewHistory creates an empty history holding up to n points.
func NewHistory(n int) History {
	if n < 1 {
		n = 1
	}
	return History{points: make([]core.Vec2, n)}
}

// Cap returns the ring capacity.
func (h *History) Cap() int {
	return len(h.points)
}

// Len returns the number of stored points.
func (h *History) Len() int {
	return h.size
}

// Push appends p, evicting the oldest point when full.
func (h *History) Push(p core.Vec2) {
	if len(h.points) == 0 {
		return
	}
	if h.size < len(h.points) {
		h.points[(h.head+h.size)%len(h.points)] = p
		h.size++
		return
	}
	h.points[h.head] = p
	h.head = (h.head + 1) % len(h.points)
}

// Fill replaces every slot with p.
func (h *History) Fill(p core.Vec2) {
	for i := range h.points {
		h.points[i] = p
	}
	h.head = 0
	h.size = len(h.points)
}

// Points returns the stored points, oldest first.
func (h *History) Points() []core.Vec2 {
	out := make([]core.Vec2, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.points[(h.head+i)%len(h.points)]
	}
	return out
}

// Ball is the simulated ball. Velocity is in pixels per second.
type Ball struct {
	Pos    core.Vec2 // Current simulated position (center)
	Prev   core.Vec2 // Position before the last tick
	Render core.Vec2 // Interpolated position for drawing
	Vel    core.Vec2
	Radius float64

	History History
}

// Speed returns |Vel|.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// ClampSpeed rescales Vel so its length lies in [minSpeed, maxSpeed],
// preserving direction. A zero velocity is left untouched.
func (b *Ball) ClampSpeed(minSpeed, maxSpeed float64) {
	speed := b.Speed()
	if speed == 0 || math.IsNaN(speed) {
		return
	}
	switch {
	case speed < minSpeed:
		b.Vel = b.Vel.Scale(minSpeed / speed)
	case speed > maxSpeed:
		b.Vel = b.Vel.Scale(maxSpeed / speed)
	}
}

// Paddle is a vertical paddle. X is fixed per side; VY is derived from the
// last commanded move and only feeds spin transfer.
type Paddle struct {
	X, Y float64
	W, H float64
	VY   float64
}

// Rect returns the paddle's box.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CenterY returns the vertical center of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + p.H/2
}

// ClampY keeps the paddle fully inside a canvas of the given height.
func (p *Paddle) ClampY(canvasH float64) {
	p.Y = core.ClampF(p.Y, 0, math.Max(0, canvasH-p.H))
}

// Score holds both counters and the anti-double-trigger tag.
type Score struct {
	Player1    int
	Player2    int
	LastHitter Hitter
}

// Of returns the points of the given side.
func (s Score) Of(side Side) int {
	if side == SideRight {
		return s.Player2
	}
	return s.Player1
}
