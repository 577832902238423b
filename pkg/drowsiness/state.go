package drowsiness

import "fmt"

// State is the emitted classification for a frame.
type State int

const (
	// Alert means eyes are open, or closed for less than the drowsy window.
	Alert State = iota
	// Drowsy means eyes have been closed for at least the drowsy window.
	Drowsy
	// NoFace means no face was detected in the frame.
	NoFace
)

var stateNames = map[State]string{
	Alert:  "ALERT",
	Drowsy: "DROWSY",
	NoFace: "NO_FACE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("drowsiness: unknown state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for st, name := range stateNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("drowsiness: unknown state %q", text)
}

// Classification is the result emitted once per frame.
type Classification struct {
	Frame  uint64 // 1-based frame number within the session
	State  State
	EAR    float64 // average EAR, valid only when HasEAR
	HasEAR bool
	Streak int // consecutive below-threshold frames including this one

	// Changed is set when State differs from the previous frame's State.
	Changed bool
}

// Label renders the status line shown on the video overlay.
func (c Classification) Label() string {
	if c.State == NoFace {
		return "No face"
	}
	if !c.HasEAR || IsDegenerate(c.EAR) {
		return c.State.String() + " (EAR: n/a)"
	}
	return fmt.Sprintf("%s (EAR: %.2f)", c.State, c.EAR)
}
