package drowsiness

import (
	"errors"
	"testing"
	"time"
)

func face(ear float64) FrameSignal {
	return FrameSignal{AverageEAR: ear, FaceDetected: true}
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestSession_DefaultScenario(t *testing.T) {
	s := newTestSession(t, DefaultConfig())
	if s.Required() != 60 {
		t.Fatalf("Required: got %d, want 60", s.Required())
	}

	for i := 1; i <= 59; i++ {
		c := s.Classify(face(0.10))
		if c.State != Alert {
			t.Fatalf("frame %d: got %v, want ALERT", i, c.State)
		}
		if c.Streak != i {
			t.Fatalf("frame %d: streak %d", i, c.Streak)
		}
	}

	c := s.Classify(face(0.10))
	if c.State != Drowsy {
		t.Fatalf("frame 60: got %v, want DROWSY", c.State)
	}
	if !c.Changed {
		t.Error("frame 60 should be marked as a state change")
	}
	if !c.HasEAR || c.EAR != 0.10 {
		t.Errorf("frame 60: EAR %v (%v), want 0.10", c.EAR, c.HasEAR)
	}

	c = s.Classify(face(0.30))
	if c.State != Alert {
		t.Errorf("frame 61: got %v, want ALERT", c.State)
	}
	if s.Streak() != 0 {
		t.Errorf("frame 61: streak %d, want 0", s.Streak())
	}
}

func TestSession_StaysDrowsy(t *testing.T) {
	cfg := Config{EARThreshold: 0.25, DrowsyTime: time.Second, FPS: 5}
	s := newTestSession(t, cfg)

	var states []State
	for i := 0; i < 8; i++ {
		states = append(states, s.Classify(face(0.05)).State)
	}

	want := []State{Alert, Alert, Alert, Alert, Drowsy, Drowsy, Drowsy, Drowsy}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("frame %d: got %v, want %v", i+1, states[i], want[i])
		}
	}
}

func TestSession_ResetRules(t *testing.T) {
	tests := []struct {
		name  string
		reset FrameSignal
	}{
		{name: "at threshold", reset: face(0.25)},
		{name: "above threshold", reset: face(0.40)},
		{name: "no face", reset: NoFaceSignal},
		{name: "degenerate geometry", reset: face(DegenerateEAR)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{EARThreshold: 0.25, DrowsyTime: time.Second, FPS: 4}
			s := newTestSession(t, cfg)

			for i := 0; i < 3; i++ {
				s.Classify(face(0.1))
			}
			s.Classify(tc.reset)
			if s.Streak() != 0 {
				t.Fatalf("streak after reset: got %d, want 0", s.Streak())
			}

			// The full run is needed again before DROWSY reappears.
			for i := 1; i < cfg.ConsecFramesRequired(); i++ {
				if c := s.Classify(face(0.1)); c.State != Alert {
					t.Fatalf("frame %d after reset: got %v, want ALERT", i, c.State)
				}
			}
			if c := s.Classify(face(0.1)); c.State != Drowsy {
				t.Errorf("got %v, want DROWSY after full run", c.State)
			}
		})
	}
}

func TestSession_NoFace(t *testing.T) {
	s := newTestSession(t, DefaultConfig())

	c := s.Classify(NoFaceSignal)
	if c.State != NoFace {
		t.Fatalf("got %v, want NO_FACE", c.State)
	}
	if c.HasEAR {
		t.Error("NO_FACE classification must not carry an EAR")
	}
	if len(s.Window()) != 0 {
		t.Errorf("no-face frames must not enter the window, got %v", s.Window())
	}

	c = s.Process(nil)
	if c.State != NoFace || c.Changed {
		t.Errorf("second no-face frame: state=%v changed=%v", c.State, c.Changed)
	}
}

func TestSession_WindowDoesNotGate(t *testing.T) {
	cfg := Config{EARThreshold: 0.25, DrowsyTime: time.Second, FPS: 3}
	s := newTestSession(t, cfg)

	for i := 0; i < 3; i++ {
		s.Classify(face(0.1))
	}
	s.Classify(face(0.3))
	if mean, _ := s.WindowMean(); mean >= cfg.EARThreshold {
		t.Fatalf("window mean %v should be below threshold", mean)
	}

	// A low window mean does not keep the session drowsy.
	if c := s.Classify(face(0.3)); c.State != Alert {
		t.Errorf("got %v, want ALERT despite low window mean", c.State)
	}
}

func TestSession_Stats(t *testing.T) {
	cfg := Config{EARThreshold: 0.25, DrowsyTime: time.Second, FPS: 2}
	s := newTestSession(t, cfg)

	seq := []FrameSignal{NoFaceSignal, face(0.1), face(0.1), face(0.3), face(0.1), face(0.1), face(0.1)}
	for _, sig := range seq {
		s.Classify(sig)
	}

	st := s.Stats()
	if st.ID == "" || st.ID != s.ID() {
		t.Errorf("ID: got %q", st.ID)
	}
	if st.Frames != uint64(len(seq)) {
		t.Errorf("Frames: got %d, want %d", st.Frames, len(seq))
	}
	if st.DrowsyEpisodes != 2 {
		t.Errorf("DrowsyEpisodes: got %d, want 2", st.DrowsyEpisodes)
	}
	if st.Counts[NoFace] != 1 || st.Counts[Drowsy] != 3 || st.Counts[Alert] != 3 {
		t.Errorf("Counts: got %v", st.Counts)
	}
	if st.Last != Drowsy || st.Streak != 3 {
		t.Errorf("Last=%v Streak=%d", st.Last, st.Streak)
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	a := newTestSession(t, DefaultConfig())
	b := newTestSession(t, DefaultConfig())
	if a.ID() == b.ID() {
		t.Error("sessions should have distinct IDs")
	}
}

func TestNewSession_InvalidConfig(t *testing.T) {
	_, err := NewSession(Config{EARThreshold: 0.25, DrowsyTime: time.Second})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
