package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/core"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("test-static", "static test hands", func(opts Options) (core.HandSampler, error) {
		return core.HandSamplerFunc(func(context.Context) (core.HandFrame, error) {
			return core.HandFrame{Hands: []core.Hand{{Control: core.Vec2{X: opts.CanvasW / 2}}}}, nil
		}), nil
	})

	assert.True(t, Exists("test-static"))
	assert.False(t, Exists("missing"))

	s, err := Create("test-static", Options{CanvasW: 100})
	require.NoError(t, err)
	frame, err := s.Sample(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Hands, 1)
	assert.Equal(t, 50.0, frame.Hands[0].Control.X)

	var found bool
	for _, info := range List() {
		if info.Name == "test-static" {
			found = true
			assert.Equal(t, "static test hands", info.Description)
		}
	}
	assert.True(t, found)
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("missing", Options{})
	require.Error(t, err)

	boom := errors.New("boom")
	Register("test-failing", "always fails", func(Options) (core.HandSampler, error) {
		return nil, boom
	})
	_, err = Create("test-failing", Options{})
	require.ErrorIs(t, err, boom)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (core.HandSampler, error) { return nil, nil }
	Register("test-dup", "", f)
	assert.Panics(t, func() { Register("test-dup", "", f) })
}
