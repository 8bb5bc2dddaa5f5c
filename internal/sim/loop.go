package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
)

// ErrSampleOverrun reports a hand sampler that took longer than its budget.
var ErrSampleOverrun = errors.New("sim: hand sample exceeded its budget")

// LoopOptions configures a Loop.
type LoopOptions struct {
	// Sampler is polled once per fixed tick. Nil means no hands.
	Sampler core.HandSampler

	// Logger receives sampler failures. Defaults to a discard logger.
	Logger *log.Logger

	// SampleBudget bounds one Sample call. Zero selects one fixed step.
	SampleBudget time.Duration

	// Clock measures sampler duration. Defaults to time.Now; the simulation
	// itself only ever sees the deltas passed to Frame.
	Clock func() time.Time

	// Context is handed to the sampler. Defaults to context.Background.
	Context context.Context
}

// Stats counts loop activity.
type Stats struct {
	Frames       uint64
	Ticks        uint64
	SampleErrors uint64
	Overruns     uint64
}

// FrameResult describes one Frame call.
type FrameResult struct {
	Ticks int     // Fixed steps run during the frame
	Alpha float64 // Interpolation factor after the frame
}

// Loop is the fixed-timestep game clock. The host calls Frame (or FrameAt)
// once per rendered frame; Loop turns the variable frame delta into a whole
// number of fixed physics ticks and an interpolation factor.
type Loop struct {
	session *Session
	sampler core.HandSampler
	logger  *log.Logger
	clock   func() time.Time
	ctx     context.Context

	stepMS     float64
	maxDeltaMS float64
	budget     time.Duration

	accumulator float64
	alpha       float64
	lastFrame   time.Time
	degraded    bool
	stats       Stats
}

// NewLoop creates a loop driving session with the timing from cfg.
func NewLoop(session *Session, cfg config.GameplayConfig, opts LoopOptions) *Loop {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	stepMS := 1000 / float64(tickRate)
	maxDeltaMS := float64(cfg.MaxFrameDelta)
	if maxDeltaMS <= 0 {
		maxDeltaMS = 250
	}
	budget := opts.SampleBudget
	if budget <= 0 {
		budget = time.Duration(stepMS * float64(time.Millisecond))
	}

	return &Loop{
		session:    session,
		sampler:    opts.Sampler,
		logger:     opts.Logger,
		clock:      opts.Clock,
		ctx:        opts.Context,
		stepMS:     stepMS,
		maxDeltaMS: maxDeltaMS,
		budget:     budget,
	}
}

// Session returns the driven session.
func (l *Loop) Session() *Session { return l.session }

// StepMS returns the fixed timestep in milliseconds.
func (l *Loop) StepMS() float64 { return l.stepMS }

// Accumulator returns the unsimulated remainder in milliseconds.
func (l *Loop) Accumulator() float64 { return l.accumulator }

// Alpha returns the latest interpolation factor.
func (l *Loop) Alpha() float64 { return l.alpha }

// Stats returns the activity counters.
func (l *Loop) Stats() Stats { return l.stats }

// SetSampler replaces the hand source.
func (l *Loop) SetSampler(s core.HandSampler) { l.sampler = s }

// FrameAt runs a frame using the time since the previous FrameAt call.
// The first call only records the time.
func (l *Loop) FrameAt(now time.Time) FrameResult {
	if l.lastFrame.IsZero() {
		l.lastFrame = now
		return l.Frame(0)
	}
	delta := now.Sub(l.lastFrame)
	l.lastFrame = now
	return l.Frame(float64(delta) / float64(time.Millisecond))
}

// Frame advances the clock by deltaMS. A delta above the cap counts as
// exactly one fixed step. Hands are sampled once per fixed tick whether or
// not the session is Active; physics only runs while it is.
func (l *Loop) Frame(deltaMS float64) FrameResult {
	l.stats.Frames++
	if deltaMS < 0 || math.IsNaN(deltaMS) {
		deltaMS = 0
	}
	if deltaMS > l.maxDeltaMS {
		deltaMS = l.stepMS
	}

	l.session.addElapsed(deltaMS)
	l.accumulator += deltaMS

	dt := l.stepMS / 1000
	ticks := 0
	for l.accumulator >= l.stepMS {
		hands := l.sample()
		l.session.tick(hands, dt)
		l.accumulator -= l.stepMS
		ticks++
		l.stats.Ticks++
	}

	if l.session.Active() {
		l.alpha = l.accumulator / l.stepMS
		l.session.interpolate(l.alpha)
	}
	return FrameResult{Ticks: ticks, Alpha: l.alpha}
}

// sample polls the sampler once. Errors, panics and overruns yield an empty
// frame so the tick still completes.
func (l *Loop) sample() (frame core.HandFrame) {
	if l.sampler == nil {
		return core.HandFrame{}
	}

	defer func() {
		if r := recover(); r != nil {
			l.stats.SampleErrors++
			l.fail(fmt.Errorf("sim: hand sampler panic: %v", r))
			frame = core.HandFrame{}
		}
	}()

	ctx, cancel := context.WithTimeout(l.ctx, l.budget)
	defer cancel()

	start := l.clock()
	f, err := l.sampler.Sample(ctx)
	if elapsed := l.clock().Sub(start); elapsed > l.budget {
		l.stats.Overruns++
		l.fail(fmt.Errorf("%w: took %s, budget %s", ErrSampleOverrun, elapsed, l.budget))
		return core.HandFrame{}
	}
	if err != nil {
		l.stats.SampleErrors++
		l.fail(fmt.Errorf("sim: hand sampling failed: %w", err))
		return core.HandFrame{}
	}

	if l.degraded {
		l.degraded = false
		l.logger.Info("hand sampling recovered")
	}
	return f
}

// fail logs the first failure of a streak.
func (l *Loop) fail(err error) {
	if l.degraded {
		l.logger.Debug("hand sampling still failing", "error", err)
		return
	}
	l.degraded = true
	l.logger.Warn("hand sampling degraded; treating tick as having no hands", "error", err)
}
