package pong

import (
	"math"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
)

// AIState is the controller's mode on its latest update.
type AIState int

const (
	AITracking AIState = iota
	AICentering
)

// String returns the state name.
func (s AIState) String() string {
	if s == AITracking {
		return "tracking"
	}
	return "centering"
}

// AIController drives the right paddle in single-player games. It keeps no
// state between calls beyond its tuning.
type AIController struct {
	Level         config.AILevel
	TrackingBand  float64
	CenteringBand float64
	CenteringRate float64
}

// NewAIController builds a controller for the difficulty.
func NewAIController(cfg config.AIConfig, d config.Difficulty) AIController {
	return AIController{
		Level:         cfg.Level(d),
		TrackingBand:  cfg.TrackingBand,
		CenteringBand: cfg.CenteringBand,
		CenteringRate: cfg.CenteringRate,
	}
}

// Update moves p one tick of dt seconds. While the ball approaches within the
// reaction distance the paddle chases it; otherwise it drifts back to center.
func (a AIController) Update(p *Paddle, b *Ball, canvasW, canvasH, dt float64) AIState {
	maxY := math.Max(0, canvasH-p.H)

	if b.Vel.X > 0 && math.Abs(b.Pos.X-p.X) < canvasW*a.Level.Reaction {
		diff := b.Pos.Y - p.CenterY()
		if math.Abs(diff) > a.TrackingBand {
			dir := core.Sign(diff)
			p.Y = core.ClampF(p.Y+dir*a.Level.Speed*dt, 0, maxY)
			p.VY = dir * a.Level.Speed
		} else {
			p.VY = 0
		}
		return AITracking
	}

	diff := canvasH/2 - p.CenterY()
	if math.Abs(diff) > a.CenteringBand {
		dir := core.Sign(diff)
		speed := a.Level.Speed * a.CenteringRate
		p.Y = core.ClampF(p.Y+dir*speed*dt, 0, maxY)
		p.VY = dir * speed
	} else {
		p.VY = 0
	}
	return AICentering
}
