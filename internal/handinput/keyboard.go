// Package handinput provides hand samplers for terminals, where no camera
// tracker is available: keyboard-driven virtual hands, scripted replays and
// an empty source. Every source registers itself with the registry.
package handinput

import (
	"context"
	"sync"

	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/registry"
)

// Virtual hand geometry in canvas pixels.
const (
	DefaultKeyStep = 48.0 // Vertical move per key press
	palmHalfWidth  = 30.0
	palmHalfHeight = 35.0
)

// Keyboard simulates up to two tracked hands steered by key presses.
// The left hand sits at 20% of the canvas width and the right one at 80%.
type Keyboard struct {
	mu        sync.Mutex
	w, h      float64
	step      float64
	landmarks bool
	y         [2]float64
	active    [2]bool
}

// NewKeyboard creates virtual hands centered vertically. Only the left hand
// is present until a right-hand key is pressed.
func NewKeyboard(canvasW, canvasH float64, landmarks bool) *Keyboard {
	k := &Keyboard{
		w:         canvasW,
		h:         canvasH,
		step:      DefaultKeyStep,
		landmarks: landmarks,
	}
	k.y[0] = canvasH / 2
	k.y[1] = canvasH / 2
	k.active[0] = true
	return k
}

// Resize adopts new canvas dimensions, keeping hands at the same relative height.
func (k *Keyboard) Resize(canvasW, canvasH float64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.h > 0 {
		for i := range k.y {
			k.y[i] = k.y[i] / k.h * canvasH
		}
	}
	k.w, k.h = canvasW, canvasH
}

// Press applies one key action. Non-movement actions are ignored.
func (k *Keyboard) Press(a core.Action) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch a {
	case core.ActionLeftUp:
		k.move(0, -k.step)
	case core.ActionLeftDown:
		k.move(0, k.step)
	case core.ActionRightUp:
		k.active[1] = true
		k.move(1, -k.step)
	case core.ActionRightDown:
		k.active[1] = true
		k.move(1, k.step)
	}
}

// Apply presses every movement action set in the frame.
func (k *Keyboard) Apply(in core.InputFrame) {
	for _, a := range []core.Action{core.ActionLeftUp, core.ActionLeftDown, core.ActionRightUp, core.ActionRightDown} {
		if in.Has(a) {
			k.Press(a)
		}
	}
}

func (k *Keyboard) move(i int, dy float64) {
	k.y[i] = core.ClampF(k.y[i]+dy, 0, k.h)
}

// Sample returns the current virtual hands. It never blocks.
func (k *Keyboard) Sample(_ context.Context) (core.HandFrame, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	xs := [2]float64{k.w * 0.2, k.w * 0.8}
	var frame core.HandFrame
	for i := range k.y {
		if !k.active[i] {
			continue
		}
		control := core.Vec2{X: xs[i], Y: k.y[i]}
		hand := core.Hand{ID: i, Control: control}
		if k.landmarks {
			hand.Landmarks = SyntheticLandmarks(control, k.w, k.h)
		}
		frame.Hands = append(frame.Hands, hand)
	}
	return frame, nil
}

// SyntheticLandmarks builds a full skeleton whose palm is centered on c.
// Coordinates are normalized and mirrored the way a camera tracker reports
// them, so mapping back to the canvas restores c.
func SyntheticLandmarks(c core.Vec2, canvasW, canvasH float64) []core.Landmark {
	lms := make([]core.Landmark, core.HandLandmarkCount)
	norm := func(x, y float64) core.Landmark {
		if canvasW <= 0 || canvasH <= 0 {
			return core.Landmark{}
		}
		return core.Landmark{X: 1 - x/canvasW, Y: y / canvasH}
	}

	mcpY := c.Y - palmHalfHeight
	mcpX := [4]float64{c.X - palmHalfWidth, c.X - palmHalfWidth/3, c.X + palmHalfWidth/3, c.X + palmHalfWidth}
	wrist := norm(c.X, c.Y+palmHalfHeight)

	// Thumb chain 1-4 leans out from the wrist, finger chains rise from each MCP.
	for i := range lms {
		lms[i] = wrist
	}
	for j := 1; j <= 4; j++ {
		lms[j] = norm(c.X-palmHalfWidth-float64(j)*8, c.Y+palmHalfHeight-float64(j)*12)
	}
	for f, x := range mcpX {
		base := core.LandmarkIndexMCP + f*4
		for j := 0; j < 4; j++ {
			lms[base+j] = norm(x, mcpY-float64(j)*18)
		}
	}
	return lms
}

func init() {
	registry.Register("keyboard", "virtual hands steered with W/S and the arrow keys",
		func(opts registry.Options) (core.HandSampler, error) {
			return NewKeyboard(opts.CanvasW, opts.CanvasH, opts.Landmarks), nil
		})
	registry.Register("none", "no hands; paddles stay where they were last commanded",
		func(registry.Options) (core.HandSampler, error) {
			return None{}, nil
		})
}

// None is a source that never reports hands.
type None struct{}

// Sample returns an empty frame.
func (None) Sample(context.Context) (core.HandFrame, error) {
	return core.HandFrame{}, nil
}
