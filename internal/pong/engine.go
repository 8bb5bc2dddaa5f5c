package pong

import (
	"math"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
)

// Options selects the match an Engine simulates.
type Options struct {
	Mode       Mode
	Difficulty config.Difficulty
	Width      float64 // Canvas width in pixels
	Height     float64 // Canvas height in pixels
	Random     core.Random
}

// Point describes the outcome of a CheckScore call that scored.
type Point struct {
	Scorer Side
	Score  Score
	Won    bool
	Winner Side
}

// Engine owns the ball, both paddles and the score for one session.
// Callers mutate paddles only through ApplyHands; the ball changes only
// through Advance and the reset helpers.
type Engine struct {
	cfg  config.Config
	opts Options
	rng  core.Random
	ai   AIController

	Ball    Ball
	Paddles [2]Paddle
	Score   Score

	hands   []core.Hand
	tick    uint64
	aiState AIState
}

// NewEngine creates an engine with paddles placed and the first serve drawn.
func NewEngine(cfg config.Config, opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = float64(cfg.Canvas.Width)
	}
	if opts.Height <= 0 {
		opts.Height = float64(cfg.Canvas.Height)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}
	if opts.Random == nil {
		opts.Random = core.NewRandom(0)
	}

	e := &Engine{
		cfg:  cfg,
		opts: opts,
		rng:  opts.Random,
		ai:   NewAIController(cfg.AI, opts.Difficulty),
		Ball: Ball{
			Radius:  cfg.Ball.Radius,
			History: NewHistory(cfg.Ball.HistoryLength),
		},
	}
	e.Start()
	return e
}

// Start begins a new session: both scores are zeroed, paddles are centered
// and a fresh serve is drawn.
func (e *Engine) Start() {
	e.Score = Score{}
	e.tick = 0
	e.hands = nil
	e.ResetPaddles()
	e.ResetBall()
}

// Mode returns the session mode.
func (e *Engine) Mode() Mode {
	return e.opts.Mode
}

// Difficulty returns the difficulty preset.
func (e *Engine) Difficulty() config.Difficulty {
	return e.opts.Difficulty
}

// Size returns the canvas dimensions.
func (e *Engine) Size() (float64, float64) {
	return e.opts.Width, e.opts.Height
}

// Tick returns the number of Advance calls since Start.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// AIState returns the controller state from the latest tick.
func (e *Engine) AIState() AIState {
	return e.aiState
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// ResetBall serves from the canvas center in a random direction with a
// difficulty-scaled speed and clears the last hitter.
func (e *Engine) ResetBall() {
	center := core.Vec2{X: e.opts.Width / 2, Y: e.opts.Height / 2}
	mult := e.cfg.Difficulty.ServeMultiplier(e.opts.Difficulty)

	speed := (e.cfg.Ball.ServeSpeedMin + e.rng.Float64()*e.cfg.Ball.ServeSpeedRange) * mult
	vx := speed
	if e.rng.Float64() < 0.5 {
		vx = -speed
	}
	vy := core.Jitter(e.rng, e.cfg.Ball.ServeVertical) * mult

	e.Ball.Pos = center
	e.Ball.Prev = center
	e.Ball.Render = center
	e.Ball.Vel = core.Vec2{X: vx, Y: vy}
	e.Ball.History.Fill(center)
	e.Score.LastHitter = HitterNone
}

// ResetPaddles centers both paddles vertically near their edges and zeroes
// their velocity.
func (e *Engine) ResetPaddles() {
	w, h := e.cfg.Paddle.Width, e.cfg.Paddle.Height
	y := (e.opts.Height - h) / 2
	e.Paddles[SideLeft] = Paddle{X: e.cfg.Paddle.Inset, Y: y, W: w, H: h}
	e.Paddles[SideRight] = Paddle{X: e.opts.Width - e.cfg.Paddle.Inset - w, Y: y, W: w, H: h}
	for i := range e.Paddles {
		e.Paddles[i].ClampY(e.opts.Height)
	}
}

// Resize adopts new canvas dimensions, repositions the paddles and re-serves.
func (e *Engine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.opts.Width = width
	e.opts.Height = height
	e.ResetPaddles()
	e.ResetBall()
}

// ApplyHands records this tick's hands for collision and eases each
// controlled paddle toward its hand. Hands past the mode's limit are
// dropped; the first hand on a side steers that side's paddle.
func (e *Engine) ApplyHands(frame core.HandFrame) {
	frame = frame.Limit(e.opts.Mode.MaxHands())
	e.hands = frame.Hands

	var steered [2]bool
	for _, h := range frame.Hands {
		side := e.sideOf(h.Control.X)
		if !e.opts.Mode.HandSides(side) || steered[side] {
			continue
		}
		steered[side] = true
		e.steer(&e.Paddles[side], h.Control.Y)
	}
}

func (e *Engine) steer(p *Paddle, handY float64) {
	target := core.ClampF(handY-p.H/2, 0, math.Max(0, e.opts.Height-p.H))
	p.Y += (target - p.Y) * e.cfg.Gameplay.HandFollow
	p.VY = target - p.Y
	p.ClampY(e.opts.Height)
}

func (e *Engine) sideOf(x float64) Side {
	if x < e.opts.Width/2 {
		return SideLeft
	}
	return SideRight
}

// Advance runs one fixed physics tick of dt seconds.
func (e *Engine) Advance(dt float64) {
	e.tick++
	b := &e.Ball

	b.Prev = b.Pos
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	e.bounceWalls()

	// Hands take priority; a resolved hand hit skips the paddles this tick.
	if !e.collideHands() {
		e.collidePaddles()
	}

	if e.opts.Mode == ModeSinglePlayer {
		e.aiState = e.ai.Update(&e.Paddles[SideRight], b, e.opts.Width, e.opts.Height, dt)
	}

	b.ClampSpeed(e.cfg.Ball.MinSpeed, e.cfg.Ball.MaxSpeed)
	b.History.Push(b.Pos)
}

func (e *Engine) bounceWalls() {
	b := &e.Ball
	switch {
	case b.Pos.Y-b.Radius <= 0:
		b.Pos.Y = b.Radius
		b.Vel.Y = math.Abs(b.Vel.Y) + core.Jitter(e.rng, e.cfg.Collision.WallJitter)
	case b.Pos.Y+b.Radius >= e.opts.Height:
		b.Pos.Y = e.opts.Height - b.Radius
		b.Vel.Y = -math.Abs(b.Vel.Y) + core.Jitter(e.rng, e.cfg.Collision.WallJitter)
	}
}

// collidePaddles resolves at most one paddle contact, left side first.
func (e *Engine) collidePaddles() bool {
	b := &e.Ball
	for _, side := range [...]Side{SideLeft, SideRight} {
		p := &e.Paddles[side]
		tag := paddleHitter(side)
		if e.Score.LastHitter == tag || !withinSpan(b.Pos.Y, p) {
			continue
		}
		switch {
		case side == SideLeft && b.Vel.X < 0 && b.Pos.X-b.Radius <= p.X+p.W:
			b.Pos.X = p.X + p.W + b.Radius
			e.deflect(p, 1)
		case side == SideRight && b.Vel.X > 0 && b.Pos.X+b.Radius >= p.X:
			b.Pos.X = p.X - b.Radius
			e.deflect(p, -1)
		default:
			continue
		}
		e.Score.LastHitter = tag
		return true
	}
	return false
}

func withinSpan(y float64, p *Paddle) bool {
	return y >= p.Y && y <= p.Y+p.H
}

// deflect sends the ball away from p, speeding it up and adding spin from
// the hit offset and the paddle's motion. dir is the outward x direction.
func (e *Engine) deflect(p *Paddle, dir float64) {
	b := &e.Ball
	c := e.cfg.Collision

	offset := (b.Pos.Y-p.Y)/p.H - 0.5
	b.Vel.X = dir*math.Abs(b.Vel.X)*c.PaddleSpeedup + core.Jitter(e.rng, c.PaddleJitterX)
	b.Vel.Y += offset*c.PaddleSpin + p.VY*c.PaddleVelocityGain + core.Jitter(e.rng, c.PaddleJitterY)
}

// CheckScore awards a point when the ball leaves the canvas horizontally,
// re-serves and checks for a winner.
func (e *Engine) CheckScore() (Point, bool) {
	var scorer Side
	switch {
	case e.Ball.Pos.X <= 0:
		e.Score.Player2++
		scorer = SideRight
	case e.Ball.Pos.X >= e.opts.Width:
		e.Score.Player1++
		scorer = SideLeft
	default:
		return Point{}, false
	}

	e.ResetBall()
	winner, won := e.CheckWin()
	return Point{Scorer: scorer, Score: e.Score, Won: won, Winner: winner}, true
}

// CheckWin reports whether a side has reached the winning score.
func (e *Engine) CheckWin() (Side, bool) {
	win := e.cfg.Gameplay.WinScore
	switch {
	case e.Score.Player1 >= win:
		return SideLeft, true
	case e.Score.Player2 >= win:
		return SideRight, true
	default:
		return SideLeft, false
	}
}

// Interpolate sets the ball's render position between the last two
// simulated positions.
func (e *Engine) Interpolate(alpha float64) {
	e.Ball.Render = core.Lerp(e.Ball.Prev, e.Ball.Pos, core.ClampF(alpha, 0, 1))
}
