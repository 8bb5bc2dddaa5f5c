package pong

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
)

const tickDT = 1.0 / 60.0

func newTestEngine(mode Mode, rng core.Random) *Engine {
	return NewEngine(config.DefaultConfig(), Options{
		Mode:       mode,
		Difficulty: config.DifficultyNormal,
		Width:      1280,
		Height:     720,
		Random:     rng,
	})
}

func TestResetPaddlesPlacement(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))

	left, right := e.Paddles[SideLeft], e.Paddles[SideRight]
	assert.Equal(t, 50.0, left.X)
	assert.Equal(t, 1280.0-50-20, right.X)
	assert.Equal(t, 290.0, left.Y)
	assert.Equal(t, 290.0, right.Y)
	assert.Zero(t, left.VY)
	assert.Equal(t, 20.0, left.W)
	assert.Equal(t, 140.0, left.H)
}

func TestResetBallServe(t *testing.T) {
	tests := []struct {
		name       string
		difficulty config.Difficulty
		values     []float64
		expectedVX float64
		expectedVY float64
	}{
		// speed = (800 + r*400) * mult, direction flips below 0.5, vy = (r-0.5)*800*mult
		{"normal rightward", config.DifficultyNormal, []float64{0.5, 0.5, 0.5}, 750, 0},
		{"easy leftward", config.DifficultyEasy, []float64{0, 0.1, 1}, -440, 220},
		{"hard slowest upward", config.DifficultyHard, []float64{0, 0.9, 0}, 800, -400},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(config.DefaultConfig(), Options{
				Mode:       ModeTwoPlayer,
				Difficulty: tc.difficulty,
				Width:      1280,
				Height:     720,
				Random:     &core.SequenceRandom{Values: tc.values},
			})

			center := core.Vec2{X: 640, Y: 360}
			assert.Equal(t, center, e.Ball.Pos)
			assert.Equal(t, center, e.Ball.Prev)
			assert.Equal(t, center, e.Ball.Render)
			assert.InDelta(t, tc.expectedVX, e.Ball.Vel.X, 1e-9)
			assert.InDelta(t, tc.expectedVY, e.Ball.Vel.Y, 1e-9)
			assert.Equal(t, HitterNone, e.Score.LastHitter)
		})
	}
}

func TestWallBounceTop(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 100, Y: 14}
	e.Ball.Vel = core.Vec2{X: 500, Y: -200}

	e.Advance(tickDT)

	assert.Equal(t, 15.0, e.Ball.Pos.Y)
	assert.InDelta(t, 200, e.Ball.Vel.Y, 1e-9)
	assert.Equal(t, HitterNone, e.Score.LastHitter)
}

func TestWallBounceJitterBounded(t *testing.T) {
	for _, r := range []float64{0, 0.25, 0.75, 0.999} {
		e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
		e.rng = core.FixedRandom(r)
		e.Ball.Pos = core.Vec2{X: 100, Y: 14}
		e.Ball.Vel = core.Vec2{X: 500, Y: -200}

		e.Advance(tickDT)

		assert.Equal(t, 15.0, e.Ball.Pos.Y)
		assert.Greater(t, e.Ball.Vel.Y, 0.0)
		assert.InDelta(t, 200, e.Ball.Vel.Y, 25)
	}
}

func TestWallBounceBottom(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 640, Y: 702}
	e.Ball.Vel = core.Vec2{X: 500, Y: 300}

	e.Advance(tickDT)

	assert.Equal(t, 705.0, e.Ball.Pos.Y)
	assert.InDelta(t, -300, e.Ball.Vel.Y, 1e-9)
}

func TestWallBounceBallOnBoundary(t *testing.T) {
	// A ball resting exactly on a wall still bounces away from it.
	top := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.75))
	top.Ball.Pos = core.Vec2{X: 100, Y: 15}
	top.Ball.Vel = core.Vec2{X: 500, Y: 0}
	top.Advance(tickDT)
	assert.Equal(t, 15.0, top.Ball.Pos.Y)
	assert.InDelta(t, 12.5, top.Ball.Vel.Y, 1e-9)

	bottom := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.25))
	bottom.Ball.Pos = core.Vec2{X: 100, Y: 705}
	bottom.Ball.Vel = core.Vec2{X: 500, Y: 0}
	bottom.Advance(tickDT)
	assert.Equal(t, 705.0, bottom.Ball.Pos.Y)
	assert.InDelta(t, -12.5, bottom.Ball.Vel.Y, 1e-9)
}

func TestServeResetAfterScore(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	// Ball well above the left paddle's span, heading out.
	e.Ball.Pos = core.Vec2{X: 10, Y: 100}
	e.Ball.Vel = core.Vec2{X: -750, Y: 0}

	e.Advance(tickDT)
	point, scored := e.CheckScore()

	require.True(t, scored)
	assert.Equal(t, SideRight, point.Scorer)
	assert.False(t, point.Won)
	assert.Equal(t, 0, e.Score.Player1)
	assert.Equal(t, 1, e.Score.Player2)

	center := core.Vec2{X: 640, Y: 360}
	assert.Equal(t, center, e.Ball.Pos)
	trail := e.Ball.History.Points()
	require.Len(t, trail, 4)
	for _, p := range trail {
		assert.Equal(t, center, p)
	}
}

func TestCheckScoreRightEdge(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 1280, Y: 50}

	point, scored := e.CheckScore()
	require.True(t, scored)
	assert.Equal(t, SideLeft, point.Scorer)
	assert.Equal(t, 1, e.Score.Player1)

	_, scored = e.CheckScore()
	assert.False(t, scored, "ball was re-served to the center")
}

func TestCheckWin(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Score.Player1 = 4

	e.Ball.Pos.X = 1300
	point, scored := e.CheckScore()

	require.True(t, scored)
	assert.True(t, point.Won)
	assert.Equal(t, SideLeft, point.Winner)
	assert.Equal(t, 5, point.Score.Player1)

	e.Start()
	_, won := e.CheckWin()
	assert.False(t, won)
	assert.Zero(t, e.Score.Player1)
}

func TestLeftPaddleHit(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 90, Y: 360}
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}

	e.Advance(tickDT)

	assert.Equal(t, 85.0, e.Ball.Pos.X, "ball placed flush against the paddle")
	assert.InDelta(t, 660, e.Ball.Vel.X, 1e-9)
	assert.InDelta(t, 0, e.Ball.Vel.Y, 1e-9)
	assert.Equal(t, HitterLeftPaddle, e.Score.LastHitter)
}

func TestPaddleSpin(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Paddles[SideLeft].VY = 100
	// Hit a quarter of the paddle above its center.
	e.Ball.Pos = core.Vec2{X: 90, Y: 325}
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}

	e.Advance(tickDT)

	// -0.25*600 + 100*0.5
	assert.InDelta(t, -100, e.Ball.Vel.Y, 1e-9)
}

func TestRightPaddleHit(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 1190, Y: 360}
	e.Ball.Vel = core.Vec2{X: 600, Y: 0}

	e.Advance(tickDT)

	assert.Equal(t, 1195.0, e.Ball.Pos.X)
	assert.InDelta(t, -660, e.Ball.Vel.X, 1e-9)
	assert.Equal(t, HitterRightPaddle, e.Score.LastHitter)
	assert.Equal(t, paddleHitter(SideRight), e.Score.LastHitter)

	// The right paddle's tag does not block a left paddle hit.
	e.Ball.Pos = core.Vec2{X: 90, Y: 360}
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}
	e.Advance(tickDT)
	assert.Equal(t, paddleHitter(SideLeft), e.Score.LastHitter)
}

func TestPaddleMissOutsideSpan(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 90, Y: 600}
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}

	e.Advance(tickDT)

	assert.Less(t, e.Ball.Vel.X, 0.0)
	assert.Equal(t, HitterNone, e.Score.LastHitter)
}

func TestNoDoubleHit(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 90, Y: 360}
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}
	e.Advance(tickDT)
	require.Equal(t, HitterLeftPaddle, e.Score.LastHitter)

	// Force the ball back into the same paddle: the guard must hold.
	e.Ball.Vel = core.Vec2{X: -600, Y: 0}
	e.Advance(tickDT)

	assert.InDelta(t, -600, e.Ball.Vel.X, 1e-9)
	assert.Equal(t, HitterLeftPaddle, e.Score.LastHitter)
}

func TestSpeedClampZeroVelocity(t *testing.T) {
	b := Ball{Vel: core.Vec2{}}
	b.ClampSpeed(300, 1400)
	assert.Equal(t, core.Vec2{}, b.Vel)

	b.Vel = core.Vec2{X: 3, Y: 4}
	b.ClampSpeed(300, 1400)
	assert.InDelta(t, 300, b.Speed(), 1e-9)
	assert.InDelta(t, 180, b.Vel.X, 1e-9)

	b.Vel = core.Vec2{X: 3000, Y: -4000}
	b.ClampSpeed(300, 1400)
	assert.InDelta(t, 1400, b.Speed(), 1e-9)
	assert.Less(t, b.Vel.Y, 0.0)
}

func TestSpeedAndPaddleBoundsOverManyTicks(t *testing.T) {
	e := newTestEngine(ModeSinglePlayer, core.NewRandom(7))
	_, canvasH := e.Size()

	for i := 0; i < 20000; i++ {
		// A hand sweeping up and down drives the left paddle.
		y := 360 + 400*math.Sin(float64(i)/40)
		e.ApplyHands(core.HandFrame{Hands: []core.Hand{{Control: core.Vec2{X: 200, Y: y}}}})
		e.Advance(tickDT)

		speed := e.Ball.Speed()
		require.GreaterOrEqual(t, speed, 300-1e-9, "tick %d", i)
		require.LessOrEqual(t, speed, 1400+1e-9, "tick %d", i)
		for side, p := range e.Paddles {
			require.GreaterOrEqual(t, p.Y, 0.0, "paddle %d tick %d", side, i)
			require.LessOrEqual(t, p.Y, canvasH-p.H, "paddle %d tick %d", side, i)
		}

		if _, scored := e.CheckScore(); scored {
			if _, won := e.CheckWin(); won {
				e.Start()
			}
		}
	}
}

func TestRoundTerminates(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.NewRandom(3))
	// Shrink the paddles out of reach so every rally scores.
	for i := range e.Paddles {
		e.Paddles[i].H = 1
		e.Paddles[i].Y = 0
	}

	prevTotal := 0
	for tick := 0; tick < 10000; tick++ {
		e.Advance(tickDT)
		point, scored := e.CheckScore()
		if !scored {
			continue
		}
		total := point.Score.Player1 + point.Score.Player2
		require.Equal(t, prevTotal+1, total, "tick %d", tick)
		prevTotal = total
		if point.Won {
			assert.LessOrEqual(t, total, 9)
			assert.Equal(t, 5, point.Score.Of(point.Winner))
			return
		}
	}
	t.Fatal("round did not terminate")
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		e := newTestEngine(ModeTwoPlayer, core.NewRandom(42))
		for i := 0; i < 3000; i++ {
			hands := core.HandFrame{Hands: []core.Hand{
				{ID: 0, Control: core.Vec2{X: 100, Y: 360 + 300*math.Sin(float64(i)/30)}},
				{ID: 1, Control: core.Vec2{X: 1180, Y: 360 + 300*math.Cos(float64(i)/25)}},
			}}
			e.ApplyHands(hands)
			e.Advance(tickDT)
			e.CheckScore()
		}
		snap := e.Snapshot()
		return snap.Hash()
	}

	assert.Equal(t, run(), run())
}

func TestResize(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Pos = core.Vec2{X: 10, Y: 10}

	e.Resize(800, 400)

	assert.Equal(t, core.Vec2{X: 400, Y: 200}, e.Ball.Pos)
	assert.Equal(t, 800.0-50-20, e.Paddles[SideRight].X)
	assert.Equal(t, 130.0, e.Paddles[SideLeft].Y)

	e.Resize(0, 100)
	w, h := e.Size()
	assert.Equal(t, 800.0, w, "invalid sizes are ignored")
	assert.Equal(t, 400.0, h)
}

func TestInterpolate(t *testing.T) {
	e := newTestEngine(ModeTwoPlayer, core.FixedRandom(0.5))
	e.Ball.Prev = core.Vec2{X: 100, Y: 100}
	e.Ball.Pos = core.Vec2{X: 200, Y: 140}

	e.Interpolate(0.25)
	assert.InDelta(t, 125, e.Ball.Render.X, 1e-9)
	assert.InDelta(t, 110, e.Ball.Render.Y, 1e-9)

	e.Interpolate(2)
	assert.Equal(t, e.Ball.Pos, e.Ball.Render)
}
