package handinput

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/registry"
)

const sampleScript = `
seed: 9
mode: two
difficulty: hard
frames:
  - delta_ms: 16.7
    repeat: 2
    hands:
      - id: 0
        control: {x: 200, y: 300}
  - delta_ms: 33.4
  - delta_ms: 8
    hands:
      - id: 1
        control: {x: 1000, y: 100}
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)

	assert.Equal(t, int64(9), s.Seed)
	assert.Equal(t, "two", s.Mode)
	assert.Equal(t, "hard", s.Difficulty)
	require.Len(t, s.Frames, 3)
	assert.Equal(t, 4, s.FrameCount())
	assert.Equal(t, 200.0, s.Frames[0].Hands[0].Control.X)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no frames", "seed: 1\n"},
		{"negative delta", "frames:\n  - delta_ms: -1\n"},
		{"partial skeleton", "frames:\n  - delta_ms: 16\n    hands:\n      - landmarks: [{x: 0.1, y: 0.1}]\n"},
		{"bad yaml", "frames: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestReplaySequence(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	r := NewReplay(s)
	ctx := context.Background()

	frame, _ := r.Sample(ctx)
	assert.True(t, frame.Empty(), "nothing before the first Next")

	var deltas []float64
	var handCounts []int
	for {
		d, ok := r.Next()
		if !ok {
			break
		}
		deltas = append(deltas, d)
		frame, err := r.Sample(ctx)
		require.NoError(t, err)
		handCounts = append(handCounts, len(frame.Hands))
	}

	assert.Equal(t, []float64{16.7, 16.7, 33.4, 8}, deltas)
	assert.Equal(t, []int{1, 1, 0, 1}, handCounts)

	frame, _ = r.Sample(ctx)
	assert.True(t, frame.Empty(), "exhausted replay reports no hands")
}

func TestReplayFromRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	s, err := registry.Create("replay", registry.Options{ScriptPath: path})
	require.NoError(t, err)
	r, ok := s.(*Replay)
	require.True(t, ok)

	d, ok := r.Next()
	assert.True(t, ok)
	assert.Equal(t, 16.7, d)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
