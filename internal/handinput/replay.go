package handinput

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/registry"
)

// Script is a recorded session: a list of rendered frames with the frame
// delta and the hands seen during that frame.
type Script struct {
	Seed       int64         `yaml:"seed"`
	Mode       string        `yaml:"mode"`
	Difficulty string        `yaml:"difficulty"`
	Frames     []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is one rendered frame, optionally repeated.
type ScriptFrame struct {
	DeltaMS float64     `yaml:"delta_ms"`
	Repeat  int         `yaml:"repeat,omitempty"`
	Hands   []core.Hand `yaml:"hands,omitempty"`
}

// LoadScript reads a replay script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("handinput: read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("handinput: parse script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a replay script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Frames) == 0 {
		return nil, errors.New("script has no frames")
	}
	for i, f := range s.Frames {
		if f.DeltaMS < 0 {
			return nil, fmt.Errorf("frame %d: negative delta_ms", i)
		}
		if f.Repeat < 0 {
			return nil, fmt.Errorf("frame %d: negative repeat", i)
		}
		for _, h := range f.Hands {
			if n := len(h.Landmarks); n != 0 && n != core.HandLandmarkCount {
				return nil, fmt.Errorf("frame %d: hand %d has %d landmarks, want 0 or %d", i, h.ID, n, core.HandLandmarkCount)
			}
		}
	}
	return &s, nil
}

// FrameCount returns the number of rendered frames after expanding repeats.
func (s *Script) FrameCount() int {
	n := 0
	for _, f := range s.Frames {
		n += max(1, f.Repeat)
	}
	return n
}

// Replay plays a Script back. The driver calls Next once per rendered frame;
// Sample then reports that frame's hands for every tick within it.
type Replay struct {
	script  *Script
	index   int
	repeat  int
	current core.HandFrame
}

// NewReplay creates a replay positioned before the first frame.
func NewReplay(s *Script) *Replay {
	return &Replay{script: s}
}

// Next advances to the next rendered frame and returns its delta in
// milliseconds. ok is false once the script is exhausted.
func (r *Replay) Next() (deltaMS float64, ok bool) {
	for r.index < len(r.script.Frames) {
		f := r.script.Frames[r.index]
		if r.repeat < max(1, f.Repeat) {
			r.repeat++
			r.current = core.HandFrame{Hands: f.Hands}
			return f.DeltaMS, true
		}
		r.index++
		r.repeat = 0
	}
	r.current = core.HandFrame{}
	return 0, false
}

// Sample returns the hands of the current frame.
func (r *Replay) Sample(context.Context) (core.HandFrame, error) {
	return r.current, nil
}

func init() {
	registry.Register("replay", "hands recorded in a YAML script (--script)",
		func(opts registry.Options) (core.HandSampler, error) {
			if opts.ScriptPath == "" {
				return nil, errors.New("replay source needs a script path")
			}
			s, err := LoadScript(opts.ScriptPath)
			if err != nil {
				return nil, err
			}
			return NewReplay(s), nil
		})
}
