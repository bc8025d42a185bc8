// Package fog holds the distance-fog window the player can slide and toggle.
package fog

// Window limits applied when the fog window is shifted past either end.
const (
	FarMin  = 35
	FarMax  = 60
	NearMin = 0.1
	NearMax = 25
)

// State is the fog configuration passed to the cloud shader.
type State struct {
	Enabled bool
	Min     float32
	Max     float32
	Color   [4]float32
}

// Default returns fog on, spanning 0.1 to 25 in the clear color.
func Default() State {
	return State{
		Enabled: true,
		Min:     NearMin,
		Max:     NearMax,
		Color:   [4]float32{0.3, 0.3, 0.3, 1},
	}
}

// Toggle flips fog on or off.
func (s *State) Toggle() {
	s.Enabled = !s.Enabled
}

// Shift slides both fog distances by delta. Pushing the far edge past 60
// snaps the window to (35, 60); pulling the near edge under 0.1 snaps it
// back to (0.1, 25).
func (s *State) Shift(delta float32) {
	s.Min += delta
	s.Max += delta
	if delta > 0 && s.Max > FarMax {
		s.Min, s.Max = FarMin, FarMax
	}
	if delta < 0 && s.Min < NearMin {
		s.Min, s.Max = NearMin, NearMax
	}
}
