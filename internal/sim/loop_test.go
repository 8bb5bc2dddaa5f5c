package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/pong"
)

func countingSampler(calls *int, frame core.HandFrame) core.HandSampler {
	return core.HandSamplerFunc(func(context.Context) (core.HandFrame, error) {
		*calls++
		return frame, nil
	})
}

func TestFrameRunsWholeTicks(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	calls := 0
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{Sampler: countingSampler(&calls, core.HandFrame{})})

	res := l.Frame(40)
	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, 2, calls, "one sample per fixed tick")
	assert.InDelta(t, 40-2*l.StepMS(), l.Accumulator(), 1e-9)
	assert.InDelta(t, 0.4, res.Alpha, 1e-9)

	res = l.Frame(5)
	assert.Equal(t, 0, res.Ticks)
	assert.Equal(t, 2, calls)

	assert.Equal(t, uint64(2), s.Engine().Tick())
	assert.Equal(t, uint64(2), l.Stats().Ticks)
	assert.Equal(t, uint64(2), l.Stats().Frames)
}

func TestFrameCapsLongDelta(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})

	res := l.Frame(5000)

	assert.Equal(t, 1, res.Ticks, "a stalled frame counts as exactly one step")
	assert.InDelta(t, 0, l.Accumulator(), 1e-9)
	assert.InDelta(t, l.StepMS(), float64(s.Elapsed())/float64(time.Millisecond), 1e-3)
}

func TestFrameIgnoresNegativeDelta(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})

	res := l.Frame(-30)
	assert.Equal(t, 0, res.Ticks)
	res = l.Frame(math.NaN())
	assert.Equal(t, 0, res.Ticks)
	assert.Zero(t, l.Accumulator())
}

func TestSamplingContinuesWhenIdle(t *testing.T) {
	s := NewSession(config.DefaultConfig(), SessionOptions{})
	calls := 0
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{Sampler: countingSampler(&calls, core.HandFrame{})})

	res := l.Frame(40)

	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, 2, calls)
	assert.Nil(t, s.Engine())
	assert.Zero(t, res.Alpha)
}

func TestInterpolationBetweenTicks(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})
	e := s.Engine()

	l.Frame(l.StepMS())
	prev, cur := e.Ball.Prev, e.Ball.Pos
	require.NotEqual(t, prev, cur)

	res := l.Frame(l.StepMS() / 2)

	assert.Equal(t, 0, res.Ticks)
	assert.InDelta(t, 0.5, res.Alpha, 1e-9)
	assert.InDelta(t, (prev.X+cur.X)/2, e.Ball.Render.X, 1e-6)
	assert.Equal(t, cur, e.Ball.Pos, "rendering never moves the simulated ball")
}

func TestSamplerFailuresDegradeToNoHands(t *testing.T) {
	tests := []struct {
		name    string
		sampler core.HandSampler
	}{
		{"error", core.HandSamplerFunc(func(context.Context) (core.HandFrame, error) {
			return core.HandFrame{Hands: []core.Hand{{Control: core.Vec2{X: 200, Y: 600}}}}, errors.New("camera gone")
		})},
		{"panic", core.HandSamplerFunc(func(context.Context) (core.HandFrame, error) {
			panic("tracker crashed")
		})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
			l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{Sampler: tc.sampler})
			start := s.Engine().Ball.Pos

			res := l.Frame(l.StepMS())
			l.Frame(l.StepMS())

			assert.Equal(t, 1, res.Ticks)
			assert.Equal(t, uint64(2), s.Engine().Tick(), "physics still ran")
			assert.NotEqual(t, start, s.Engine().Ball.Pos)
			assert.Equal(t, 290.0, s.Engine().Paddles[pong.SideLeft].Y, "no hand applied")
			assert.Equal(t, uint64(2), l.Stats().SampleErrors)
		})
	}
}

func TestSamplerOverrunDiscardsHands(t *testing.T) {
	steer := core.HandFrame{Hands: []core.Hand{{Control: core.Vec2{X: 200, Y: 600}}}}

	now := time.Unix(0, 0)
	slowClock := func() time.Time {
		now = now.Add(20 * time.Millisecond)
		return now
	}

	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	calls := 0
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{
		Sampler: countingSampler(&calls, steer),
		Clock:   slowClock,
	})

	l.Frame(l.StepMS())

	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), l.Stats().Overruns)
	assert.Equal(t, 290.0, s.Engine().Paddles[pong.SideLeft].Y)

	// The same sampler within budget steers the paddle.
	fast := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	fl := NewLoop(fast, config.DefaultConfig().Gameplay, LoopOptions{Sampler: countingSampler(&calls, steer)})
	fl.Frame(fl.StepMS())
	assert.Greater(t, fast.Engine().Paddles[pong.SideLeft].Y, 290.0)
}

func TestFixedTickDeterminism(t *testing.T) {
	deltas := []float64{16, 17, 33.4, 5, 300, 16.7, 12, 48, 0, 21}

	run := func() (uint64, uint64) {
		s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.NewRandom(99)})
		frameNo := 0
		sampler := core.HandSamplerFunc(func(context.Context) (core.HandFrame, error) {
			y := 360 + 300*math.Sin(float64(frameNo)/7)
			return core.HandFrame{Hands: []core.Hand{
				{ID: 0, Control: core.Vec2{X: 150, Y: y}},
				{ID: 1, Control: core.Vec2{X: 1100, Y: 720 - y}},
			}}, nil
		})
		l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{Sampler: sampler})
		for i := 0; i < 2000; i++ {
			frameNo = i
			l.Frame(deltas[i%len(deltas)])
			if s.State() == StateRoundEnd {
				require.NoError(t, s.PlayAgain())
			}
		}
		snap := s.Engine().Snapshot()
		return snap.Hash(), l.Stats().Ticks
	}

	h1, t1 := run()
	h2, t2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, t1, t2)
}

type recordingListener struct {
	scores [][2]int
	ends   []pong.Side
}

func (r *recordingListener) OnScoreChanged(p1, p2 int) {
	r.scores = append(r.scores, [2]int{p1, p2})
}

func (r *recordingListener) OnRoundEnd(winner pong.Side) {
	r.ends = append(r.ends, winner)
}

func TestRoundEndFreezesPhysics(t *testing.T) {
	rec := &recordingListener{}
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.NewRandom(1), Listener: rec})
	e := s.Engine()
	// Paddles out of reach: every rally scores.
	for i := range e.Paddles {
		e.Paddles[i].H = 1
		e.Paddles[i].Y = 0
	}
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})

	for n := 0; n < 20000; n++ {
		l.Frame(l.StepMS())
		if s.State() == StateRoundEnd {
			break
		}
	}
	require.Equal(t, StateRoundEnd, s.State())
	require.Len(t, rec.ends, 1)

	result := s.Result()
	assert.Equal(t, 5, max(result.Score1, result.Score2))
	assert.Equal(t, rec.ends[0], result.Winner)
	assert.Equal(t, result.WinnerName(), map[pong.Side]string{pong.SideLeft: "CyberServe", pong.SideRight: "EdgeRunner"}[result.Winner])

	// Initial 0-0 plus one signal per point.
	assert.Equal(t, [2]int{0, 0}, rec.scores[0])
	assert.Len(t, rec.scores, 1+result.Score1+result.Score2)
	for i := 1; i < len(rec.scores); i++ {
		prev, cur := rec.scores[i-1], rec.scores[i]
		assert.Equal(t, prev[0]+prev[1]+1, cur[0]+cur[1], "one point per rally")
	}

	tick, elapsed := e.Tick(), s.Elapsed()
	l.Frame(100)
	assert.Equal(t, tick, e.Tick(), "no physics after round end")
	assert.Equal(t, elapsed, s.Elapsed(), "timer stops after round end")

	require.NoError(t, s.PlayAgain())
	assert.True(t, s.Active())
	assert.Zero(t, e.Score.Player1+e.Score.Player2)
	assert.Zero(t, s.Elapsed())
	assert.Equal(t, [2]int{0, 0}, rec.scores[len(rec.scores)-1])
}

func TestElapsedFromDeltas(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})

	for n := 0; n < 6; n++ {
		l.Frame(200)
	}

	assert.InDelta(t, 1.2, s.Elapsed().Seconds(), 1e-9)
	assert.Equal(t, "00:01", s.ElapsedText())
}

func TestFrameAt(t *testing.T) {
	s := startSession(t, pong.ModeTwoPlayer, SessionOptions{Random: core.FixedRandom(0.5)})
	l := NewLoop(s, config.DefaultConfig().Gameplay, LoopOptions{})

	t0 := time.Unix(100, 0)
	assert.Equal(t, 0, l.FrameAt(t0).Ticks)
	assert.Equal(t, 2, l.FrameAt(t0.Add(40*time.Millisecond)).Ticks)
	assert.Equal(t, 1, l.FrameAt(t0.Add(10*time.Second)).Ticks)
}
