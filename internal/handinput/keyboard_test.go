package handinput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/registry"
)

func TestKeyboardStartsWithLeftHand(t *testing.T) {
	k := NewKeyboard(1280, 720, false)

	frame, err := k.Sample(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Hands, 1)
	assert.Equal(t, core.Vec2{X: 256, Y: 360}, frame.Hands[0].Control)
	assert.Empty(t, frame.Hands[0].Landmarks)
}

func TestKeyboardPress(t *testing.T) {
	k := NewKeyboard(1280, 720, false)
	k.Press(core.ActionLeftUp)
	k.Press(core.ActionRightDown)
	k.Press(core.ActionConfirm)

	frame, err := k.Sample(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Hands, 2)
	assert.Equal(t, 360-DefaultKeyStep, frame.Hands[0].Control.Y)
	assert.Equal(t, core.Vec2{X: 1024, Y: 360 + DefaultKeyStep}, frame.Hands[1].Control)
	assert.Equal(t, 1, frame.Hands[1].ID)
}

func TestKeyboardClampsToCanvas(t *testing.T) {
	k := NewKeyboard(1280, 720, false)
	for n := 0; n < 50; n++ {
		k.Press(core.ActionLeftUp)
	}
	frame, _ := k.Sample(context.Background())
	assert.Equal(t, 0.0, frame.Hands[0].Control.Y)

	for n := 0; n < 50; n++ {
		k.Press(core.ActionLeftDown)
	}
	frame, _ = k.Sample(context.Background())
	assert.Equal(t, 720.0, frame.Hands[0].Control.Y)
}

func TestKeyboardApplyInputFrame(t *testing.T) {
	k := NewKeyboard(1280, 720, false)
	in := core.NewInputFrame()
	in.Set(core.ActionLeftDown)
	in.Set(core.ActionRightUp)

	k.Apply(in)

	frame, _ := k.Sample(context.Background())
	require.Len(t, frame.Hands, 2)
	assert.Equal(t, 360+DefaultKeyStep, frame.Hands[0].Control.Y)
	assert.Equal(t, 360-DefaultKeyStep, frame.Hands[1].Control.Y)
}

func TestKeyboardResizeKeepsRelativeHeight(t *testing.T) {
	k := NewKeyboard(1280, 720, false)
	k.Press(core.ActionLeftDown) // 408 of 720

	k.Resize(640, 360)

	frame, _ := k.Sample(context.Background())
	assert.InDelta(t, 204, frame.Hands[0].Control.Y, 1e-9)
	assert.InDelta(t, 128, frame.Hands[0].Control.X, 1e-9)
}

func TestSyntheticLandmarksPalmCenteredOnControl(t *testing.T) {
	c := core.Vec2{X: 300, Y: 200}
	hand := core.Hand{Control: c, Landmarks: SyntheticLandmarks(c, 1280, 720)}

	require.True(t, hand.HasPalm())
	palm := core.BoundsOf(hand.PalmPoints(1280, 720))
	assert.InDelta(t, 300, palm.Center().X, 1e-6)
	assert.InDelta(t, 200, palm.Center().Y, 1e-6)
	assert.InDelta(t, 2*palmHalfWidth, palm.W, 1e-6)
	assert.InDelta(t, 2*palmHalfHeight, palm.H, 1e-6)
}

func TestKeyboardWithLandmarks(t *testing.T) {
	k := NewKeyboard(1280, 720, true)
	frame, _ := k.Sample(context.Background())
	require.Len(t, frame.Hands, 1)
	assert.Len(t, frame.Hands[0].Landmarks, core.HandLandmarkCount)
}

func TestRegisteredSources(t *testing.T) {
	for _, name := range []string{"keyboard", "none", "replay"} {
		assert.True(t, registry.Exists(name), name)
	}

	s, err := registry.Create("none", registry.Options{})
	require.NoError(t, err)
	frame, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.True(t, frame.Empty())

	s, err = registry.Create("keyboard", registry.Options{CanvasW: 1280, CanvasH: 720})
	require.NoError(t, err)
	assert.IsType(t, &Keyboard{}, s)

	_, err = registry.Create("replay", registry.Options{})
	assert.Error(t, err)
}
