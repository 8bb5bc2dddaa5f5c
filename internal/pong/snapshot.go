package pong

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// Snapshot is the render-facing view of the engine after a frame: the
// interpolated ball, both paddle rectangles and the score.
type Snapshot struct {
	Tick       uint64       `yaml:"tick"`
	Ball       core.Vec2    `yaml:"ball"`
	Render     core.Vec2    `yaml:"render"`
	Velocity   core.Vec2    `yaml:"velocity"`
	Radius     float64      `yaml:"radius"`
	Trail      []core.Vec2  `yaml:"trail"`
	Left       core.Rect    `yaml:"left"`
	Right      core.Rect    `yaml:"right"`
	Score1     int          `yaml:"score1"`
	Score2     int          `yaml:"score2"`
	LastHitter string       `yaml:"last_hitter"`
	Hands      []HandRegion `yaml:"-"`
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:       e.tick,
		Ball:       e.Ball.Pos,
		Render:     e.Ball.Render,
		Velocity:   e.Ball.Vel,
		Radius:     e.Ball.Radius,
		Trail:      e.Ball.History.Points(),
		Left:       e.Paddles[SideLeft].Rect(),
		Right:      e.Paddles[SideRight].Rect(),
		Score1:     e.Score.Player1,
		Score2:     e.Score.Player2,
		LastHitter: e.Score.LastHitter.String(),
		Hands:      e.HandRegions(),
	}
}

// Hash returns an FNV-1a digest of the simulated state for determinism checks.
// The render position is excluded since it depends on frame timing.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	put(s.Tick)
	putF(s.Ball.X)
	putF(s.Ball.Y)
	putF(s.Velocity.X)
	putF(s.Velocity.Y)
	for _, p := range s.Trail {
		putF(p.X)
		putF(p.Y)
	}
	putF(s.Left.Y)
	putF(s.Right.Y)
	put(uint64(s.Score1)) //#nosec G115 -- scores are non-negative
	put(uint64(s.Score2)) //#nosec G115 -- scores are non-negative
	_, _ = h.Write([]byte(s.LastHitter))
	return h.Sum64()
}
