package core

import "context"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the host to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeftUp           // W - move the left virtual hand up
	ActionLeftDown         // S - move the left virtual hand down
	ActionRightUp          // Up arrow - move the right virtual hand up
	ActionRightDown        // Down arrow - move the right virtual hand down
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - play again after a round ends
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeftUp:
		return "LeftUp"
	case ActionLeftDown:
		return "LeftDown"
	case ActionRightUp:
		return "RightUp"
	case ActionRightDown:
		return "RightDown"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the keyboard state collected between two samples.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Palm landmark indices in the 21-point hand skeleton: the wrist and the four
// finger-base joints.
const (
	LandmarkWrist     = 0
	LandmarkIndexMCP  = 5
	LandmarkMiddleMCP = 9
	LandmarkRingMCP   = 13
	LandmarkPinkyMCP  = 17

	HandLandmarkCount = 21
)

// PalmLandmarkIndices lists the landmarks whose bounds approximate the palm.
var PalmLandmarkIndices = [...]int{
	LandmarkWrist,
	LandmarkIndexMCP,
	LandmarkMiddleMCP,
	LandmarkRingMCP,
	LandmarkPinkyMCP,
}

// Landmark is a tracked joint in normalized camera space: X and Y in [0, 1],
// X growing to the camera's right (the player's left).
type Landmark struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Hand is one tracked hand for a single physics tick.
type Hand struct {
	ID int `yaml:"id"`

	// Control is the steering point, already mapped to canvas pixels.
	Control Vec2 `yaml:"control"`

	// Landmarks is either empty or a full HandLandmarkCount skeleton.
	Landmarks []Landmark `yaml:"landmarks,omitempty"`
}

// HasPalm reports whether the hand carries enough landmarks for a hit region.
func (h Hand) HasPalm() bool {
	return len(h.Landmarks) > LandmarkPinkyMCP
}

// PalmPoints maps the palm landmarks into canvas pixels, mirroring X so the
// canvas matches a user facing the camera.
func (h Hand) PalmPoints(canvasW, canvasH float64) []Vec2 {
	if !h.HasPalm() {
		return nil
	}
	points := make([]Vec2, 0, len(PalmLandmarkIndices))
	for _, idx := range PalmLandmarkIndices {
		lm := h.Landmarks[idx]
		points = append(points, Vec2{
			X: (1 - lm.X) * canvasW,
			Y: lm.Y * canvasH,
		})
	}
	return points
}

// HandFrame is the snapshot of tracked hands for one physics tick.
// A frame with no hands is valid and common.
type HandFrame struct {
	Hands []Hand `yaml:"hands,omitempty"`
}

// Empty reports whether the frame carries no hands.
func (f HandFrame) Empty() bool {
	return len(f.Hands) == 0
}

// Limit returns a copy of f holding at most n hands, in input order.
func (f HandFrame) Limit(n int) HandFrame {
	if n < 0 {
		n = 0
	}
	if len(f.Hands) <= n {
		return f
	}
	hands := make([]Hand, n)
	copy(hands, f.Hands[:n])
	return HandFrame{Hands: hands}
}

// HandSampler supplies the tracked hands once per physics tick. Implementations
// must return promptly with their last known result rather than wait for new data.
type HandSampler interface {
	Sample(ctx context.Context) (HandFrame, error)
}

// HandSamplerFunc adapts a function to HandSampler.
type HandSamplerFunc func(ctx context.Context) (HandFrame, error)

// Sample calls f.
func (f HandSamplerFunc) Sample(ctx context.Context) (HandFrame, error) {
	return f(ctx)
}
