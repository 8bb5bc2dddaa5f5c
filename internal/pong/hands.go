package pong

import (
	"math"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// HandRegion is the per-tick hit box derived from one hand's palm.
type HandRegion struct {
	HandID int
	Side   Side
	Palm   core.Rect // Bounds of the mirrored palm landmarks
	Box    core.Rect // Collision box around the palm center
}

// Center returns the palm center.
func (r HandRegion) Center() core.Vec2 {
	return r.Palm.Center()
}

// HandRegions returns the hit regions for this tick's eligible hands, in
// input order. Hands without landmarks have no region.
func (e *Engine) HandRegions() []HandRegion {
	regions := make([]HandRegion, 0, len(e.hands))
	for _, h := range e.hands {
		if r, ok := e.regionFor(h); ok {
			regions = append(regions, r)
		}
	}
	return regions
}

func (e *Engine) regionFor(h core.Hand) (HandRegion, bool) {
	points := h.PalmPoints(e.opts.Width, e.opts.Height)
	if len(points) == 0 {
		return HandRegion{}, false
	}
	palm := core.BoundsOf(points)
	side := e.sideOf(palm.Center().X)
	if !e.opts.Mode.HandSides(side) {
		return HandRegion{}, false
	}
	p := &e.Paddles[side]
	c := e.cfg.Collision
	return HandRegion{
		HandID: h.ID,
		Side:   side,
		Palm:   palm,
		Box:    core.RectAround(palm.Center(), p.W+c.HandMarginX, p.H+c.HandMarginY),
	}, true
}

// collideHands resolves the first hand region the ball touches.
func (e *Engine) collideHands() bool {
	for _, r := range e.HandRegions() {
		if e.hitHand(r) {
			return true
		}
	}
	return false
}

func (e *Engine) hitHand(r HandRegion) bool {
	b := &e.Ball
	c := e.cfg.Collision
	tag := handHitter(r.Side)

	if e.Score.LastHitter == tag || !core.CircleBoundsIntersectBox(b.Pos, b.Radius, r.Box) {
		return false
	}

	// Left hands send the ball right, right hands send it left.
	out := 1.0
	if r.Side == SideRight {
		out = -1
	}
	approaching := b.Vel.X*out < 0 || math.Abs(b.Vel.X) < c.HandTowardLenient
	if !approaching {
		return false
	}

	center := r.Center()
	rel := b.Pos.Sub(center)
	angle := math.Atan2(rel.Y, rel.X)
	speed := b.Speed() * c.HandSpeedup

	vx := math.Cos(angle)*speed + core.Jitter(e.rng, c.HandJitterX)
	vy := math.Sin(angle)*speed + core.Jitter(e.rng, c.HandJitterY)

	b.Vel = core.Vec2{X: out * math.Abs(vx), Y: vy}
	b.Pos.X = center.X + out*c.HandOffset
	e.Score.LastHitter = tag
	return true
}
