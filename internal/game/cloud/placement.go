// Package cloud places the cube instances and repacks them every frame.
package cloud

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fogcubes/pkg/math"
)

// FacesPerCube is the number of texture indices carried per instance.
const FacesPerCube = 6

var (
	// ErrDrawExhausted is returned when boundedRandom cannot produce a usable value.
	ErrDrawExhausted = errors.New("cloud: bounded random draw exhausted")
	// ErrPlacementExhausted is returned when an instance cannot be separated
	// from its neighbours and the fallback policy is FallbackFail.
	ErrPlacementExhausted = errors.New("cloud: placement attempts exhausted")
)

// Fallback selects what happens when an instance cannot be placed.
type Fallback int

const (
	// FallbackRelax shrinks the separation for the offending instance and retries.
	FallbackRelax Fallback = iota
	// FallbackFail aborts the scene build.
	FallbackFail
)

// ParseFallback converts a config string to a Fallback.
func ParseFallback(s string) (Fallback, error) {
	switch s {
	case "", "relax":
		return FallbackRelax, nil
	case "fail":
		return FallbackFail, nil
	}
	return FallbackRelax, fmt.Errorf("unknown placement fallback %q", s)
}

// maxRelaxRounds bounds FallbackRelax; after this many shrinks the build fails.
const maxRelaxRounds = 32

// PlacementOptions tunes the generator.
type PlacementOptions struct {
	MinSeparation        float32
	MaxLocation          float32
	ZOffset              float32
	MaxDrawAttempts      int
	MaxPlacementAttempts int
	Fallback             Fallback
	RelaxFactor          float32
}

// DefaultPlacementOptions returns the classic scene parameters.
func DefaultPlacementOptions() PlacementOptions {
	return PlacementOptions{
		MinSeparation:        1.5,
		MaxLocation:          25,
		ZOffset:              15,
		MaxDrawAttempts:      1000,
		MaxPlacementAttempts: 10000,
		Fallback:             FallbackRelax,
		RelaxFactor:          0.9,
	}
}

// Instance is one cube of the cloud.
type Instance struct {
	Position  math.Vec3
	SpinAxisA math.Vec3
	SpinAxisB math.Vec3
	SpinRate  float32 // radians per degree of elapsed rotation
	Textures  [FacesPerCube]int
	Distance  float32
}

// PlacementStats reports how hard the generator had to work.
type PlacementStats struct {
	Redraws     int // positions rejected for being too close
	Relaxations int // instances placed with a reduced separation
	// MinSeparationUsed is the smallest separation any instance was checked against.
	MinSeparationUsed float32
}

// Generate creates count instances whose texture indices fall in [0, imageCount).
// Positions are pairwise at least opts.MinSeparation apart unless stats report
// a relaxation.
func Generate(count, imageCount int, rng RNG, opts PlacementOptions) ([]Instance, PlacementStats, error) {
	stats := PlacementStats{MinSeparationUsed: opts.MinSeparation}
	if count < 0 || imageCount <= 0 {
		return nil, stats, fmt.Errorf("invalid instance count %d or image count %d", count, imageCount)
	}

	g := generator{rng: rng, opts: opts}
	instances := make([]Instance, 0, count)

	for i := 0; i < count; i++ {
		pos, err := g.place(instances, &stats)
		if err != nil {
			return nil, stats, fmt.Errorf("instance %d: %w", i, err)
		}

		inst := Instance{Position: pos}
		if inst.SpinAxisA, err = g.axis(); err != nil {
			return nil, stats, fmt.Errorf("instance %d axis: %w", i, err)
		}
		if inst.SpinAxisB, err = g.axis(); err != nil {
			return nil, stats, fmt.Errorf("instance %d axis: %w", i, err)
		}
		inst.SpinRate = g.spinRate()
		for f := range inst.Textures {
			inst.Textures[f] = rng.IntN(imageCount)
		}
		instances = append(instances, inst)
	}

	return instances, stats, nil
}

type generator struct {
	rng  RNG
	opts PlacementOptions
}

// place draws positions until one clears every accepted instance.
func (g *generator) place(accepted []Instance, stats *PlacementStats) (math.Vec3, error) {
	sep := g.opts.MinSeparation
	for round := 0; ; round++ {
		for attempt := 0; attempt < g.opts.MaxPlacementAttempts; attempt++ {
			pos, err := g.position()
			if err != nil {
				return math.Vec3{}, err
			}
			if separated(pos, accepted, sep) {
				return pos, nil
			}
			stats.Redraws++
		}

		if g.opts.Fallback == FallbackFail || round >= maxRelaxRounds {
			return math.Vec3{}, fmt.Errorf("%w after %d attempts at separation %.3f",
				ErrPlacementExhausted, g.opts.MaxPlacementAttempts, sep)
		}
		sep *= g.opts.RelaxFactor
		stats.Relaxations++
		if sep < stats.MinSeparationUsed {
			stats.MinSeparationUsed = sep
		}
	}
}

func separated(pos math.Vec3, accepted []Instance, sep float32) bool {
	for j := range accepted {
		if pos.Distance(accepted[j].Position) < sep {
			return false
		}
	}
	return true
}

func (g *generator) position() (math.Vec3, error) {
	var p [3]float32
	for k := range p {
		v, err := g.boundedRandom()
		if err != nil {
			return math.Vec3{}, err
		}
		p[k] = v
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2] - g.opts.ZOffset}, nil
}

func (g *generator) axis() (math.Vec3, error) {
	var p [3]float32
	for k := range p {
		v, err := g.boundedRandom()
		if err != nil {
			return math.Vec3{}, err
		}
		p[k] = v
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}.Normalize(), nil
}

// spinRate is a whole number of degrees in [1, 4], in radians.
func (g *generator) spinRate() float32 {
	n := g.rng.IntN(5)
	for n == 0 {
		n = g.rng.IntN(5)
	}
	return math.Radians(float32(n))
}

// boundedRandom draws sign * a/(b+1) * c and halves it back into
// [-MaxLocation, MaxLocation]. Zero results are redrawn.
func (g *generator) boundedRandom() (float32, error) {
	maxLoc := g.opts.MaxLocation
	scale := int(maxLoc)
	if scale < 1 {
		scale = 1
	}

	for attempt := 0; attempt < g.opts.MaxDrawAttempts; attempt++ {
		a := float32(g.rng.IntN(100))
		b := g.rng.IntN(100)
		for b == 0 {
			b = g.rng.IntN(100)
		}
		sign := float32(1)
		if g.rng.IntN(10) < 5 {
			sign = -1
		}
		v := sign * (a / float32(b+1)) * float32(g.rng.IntN(scale))
		for v > maxLoc || v < -maxLoc {
			v /= 2
		}
		if v != 0 {
			return v, nil
		}
	}
	return 0, ErrDrawExhausted
}
