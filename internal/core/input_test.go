package core

import "testing"

func palmHand(x, y float64) Hand {
	lms := make([]Landmark, HandLandmarkCount)
	for i := range lms {
		lms[i] = Landmark{X: x, Y: y}
	}
	lms[LandmarkWrist] = Landmark{X: x, Y: y + 0.1}
	lms[LandmarkIndexMCP] = Landmark{X: x - 0.05, Y: y}
	lms[LandmarkPinkyMCP] = Landmark{X: x + 0.05, Y: y}
	return Hand{Landmarks: lms}
}

func TestPalmPointsMirrored(t *testing.T) {
	h := palmHand(0.25, 0.5)
	points := h.PalmPoints(1000, 500)
	if len(points) != len(PalmLandmarkIndices) {
		t.Fatalf("PalmPoints() returned %d points, expected %d", len(points), len(PalmLandmarkIndices))
	}

	b := BoundsOf(points)
	// Camera x 0.2..0.3 mirrors to canvas x 700..800.
	if b.X < 699.9 || b.Right() > 800.1 {
		t.Errorf("mirrored bounds = [%v, %v], expected [700, 800]", b.X, b.Right())
	}
	if b.Y < 249.9 || b.Bottom() > 300.1 {
		t.Errorf("vertical bounds = [%v, %v], expected [250, 300]", b.Y, b.Bottom())
	}
}

func TestHandWithoutLandmarks(t *testing.T) {
	h := Hand{Control: Vec2{10, 10}}
	if h.HasPalm() {
		t.Error("hand without landmarks should not report a palm")
	}
	if pts := h.PalmPoints(100, 100); pts != nil {
		t.Errorf("PalmPoints() = %v, expected nil", pts)
	}
}

func TestHandFrameLimit(t *testing.T) {
	f := HandFrame{Hands: []Hand{{ID: 0}, {ID: 1}, {ID: 2}}}

	limited := f.Limit(2)
	if len(limited.Hands) != 2 || limited.Hands[1].ID != 1 {
		t.Errorf("Limit(2) = %+v, expected first two hands", limited.Hands)
	}
	if len(f.Hands) != 3 {
		t.Error("Limit should not modify the original frame")
	}
	if !f.Limit(0).Empty() {
		t.Error("Limit(0) should be empty")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeftUp)
	if !f.Has(ActionLeftUp) || f.Has(ActionLeftDown) {
		t.Error("Has should report only set actions")
	}
	f.Clear()
	if f.Has(ActionLeftUp) {
		t.Error("Clear should reset actions")
	}
	if ActionRightDown.String() != "RightDown" {
		t.Errorf("String() = %q", ActionRightDown.String())
	}
}

func TestJitter(t *testing.T) {
	if j := Jitter(FixedRandom(0.5), 100); j != 0 {
		t.Errorf("Jitter at 0.5 = %v, expected 0", j)
	}
	if j := Jitter(FixedRandom(0), 100); j != -50 {
		t.Errorf("Jitter at 0 = %v, expected -50", j)
	}
	seq := &SequenceRandom{Values: []float64{0.1, 0.9}}
	if seq.Float64() != 0.1 || seq.Float64() != 0.9 || seq.Float64() != 0.1 {
		t.Error("SequenceRandom should cycle")
	}
}
