package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/handinput"
)

func script(t *testing.T, body string) *handinput.Script {
	t.Helper()
	s, err := handinput.ParseScript([]byte(body))
	require.NoError(t, err)
	return s
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSimulateHashIgnoresFrameSlicing(t *testing.T) {
	// 3010 ms of play cut into different frame sizes.
	fine := script(t, `
seed: 11
mode: two
difficulty: hard
frames:
  - delta_ms: 10
    repeat: 301
`)
	coarse := script(t, `
seed: 11
mode: two
difficulty: hard
frames:
  - delta_ms: 70
    repeat: 43
`)

	a, err := simulate(config.DefaultConfig(), fine, quietLogger(), false)
	require.NoError(t, err)
	b, err := simulate(config.DefaultConfig(), coarse, quietLogger(), false)
	require.NoError(t, err)

	assert.Equal(t, uint64(180), a.Snapshot.Tick)
	assert.Equal(t, a.Snapshot.Tick, b.Snapshot.Tick)
	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, uint64(301), a.Frames)
	assert.Equal(t, uint64(43), b.Frames)
}

func TestSimulateSeedChangesServe(t *testing.T) {
	body := `
seed: %d
frames:
  - delta_ms: 16
    repeat: 10
`
	a, err := simulate(config.DefaultConfig(), script(t, fmt.Sprintf(body, 1)), quietLogger(), false)
	require.NoError(t, err)
	b, err := simulate(config.DefaultConfig(), script(t, fmt.Sprintf(body, 2)), quietLogger(), false)
	require.NoError(t, err)

	assert.NotEqual(t, a.Hash, b.Hash)
	assert.Equal(t, "single", a.Mode)
	assert.Equal(t, "normal", a.Difficulty)
	assert.Equal(t, "replay", a.Players[0])
	assert.Equal(t, "Active", a.State)
}

func TestSimulateHandsMovePaddle(t *testing.T) {
	s := script(t, `
seed: 3
mode: single
frames:
  - delta_ms: 20
    repeat: 60
    hands:
      - id: 0
        control: {x: 200, y: 100}
`)
	r, err := simulate(config.DefaultConfig(), s, quietLogger(), false)
	require.NoError(t, err)

	// The paddle eases toward handY - height/2, clamped at the top.
	assert.InDelta(t, 30, r.Snapshot.Left.Y, 0.5)
}

func TestSimulateRejectsBadMode(t *testing.T) {
	s := script(t, `
mode: three
frames:
  - delta_ms: 16
`)
	_, err := simulate(config.DefaultConfig(), s, quietLogger(), false)
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	s := script(t, `
seed: 5
frames:
  - delta_ms: 16
    repeat: 3
`)
	r, err := simulate(config.DefaultConfig(), s, quietLogger(), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, r))
	out := buf.String()
	assert.True(t, strings.Contains(out, "hash: "+r.Hash) || strings.Contains(out, `hash: "`+r.Hash+`"`))
	assert.Contains(t, out, "snapshot:")
	assert.Contains(t, out, "mode: single")
}

func TestSimulateTestdataScript(t *testing.T) {
	s, err := handinput.LoadScript("testdata/rally.yaml")
	require.NoError(t, err)

	first, err := simulate(config.DefaultConfig(), s, quietLogger(), false)
	require.NoError(t, err)
	again, err := simulate(config.DefaultConfig(), s, quietLogger(), false)
	require.NoError(t, err)

	assert.Equal(t, "two", first.Mode)
	assert.Equal(t, first.Hash, again.Hash)
	assert.Equal(t, uint64(90+45+1+30), first.Frames)
	assert.NotEqual(t, first.Session, again.Session)
}
