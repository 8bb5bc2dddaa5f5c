// Package names generates opponent and player display names.
package names

import (
	"strings"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// Fallbacks are used when no generator is configured.
var Fallbacks = []string{"CyberServe", "EdgeRunner", "WorkerBee"}

var (
	prefixes = []string{"Cyber", "Edge", "Worker", "Turbo", "Pixel", "Neon", "Quantum", "Rapid", "Solar", "Vector"}
	suffixes = []string{"Serve", "Runner", "Bee", "Spin", "Volley", "Smash", "Paddle", "Rally", "Bolt", "Drift"}
)

// Generator produces CamelCase names from a seeded source.
type Generator struct {
	rng core.Random
}

// New creates a generator drawing from rng.
func New(rng core.Random) *Generator {
	return &Generator{rng: rng}
}

// Next returns a fresh name such as "NeonVolley".
func (g *Generator) Next() string {
	return pick(g.rng, prefixes) + pick(g.rng, suffixes)
}

// Pair returns two distinct names.
func (g *Generator) Pair() (string, string) {
	a := g.Next()
	for n := 0; n < 8; n++ {
		b := g.Next()
		if b != a {
			return a, b
		}
	}
	return a, a + "2"
}

// Fallback returns the i-th fallback name, cycling.
func Fallback(i int) string {
	if i < 0 {
		i = -i
	}
	return Fallbacks[i%len(Fallbacks)]
}

// MaxUsernameLength is the longest username kept for the leaderboard.
const MaxUsernameLength = 20

// MinUsernameLength is the shortest username accepted.
const MinUsernameLength = 2

// Normalize trims a username and cuts it to MaxUsernameLength runes.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxUsernameLength {
		name = string(r[:MaxUsernameLength])
	}
	return name
}

// Valid reports whether name is long enough once trimmed.
func Valid(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= MinUsernameLength
}

func pick(rng core.Random, list []string) string {
	i := int(rng.Float64() * float64(len(list)))
	return list[core.Clamp(i, 0, len(list)-1)]
}
