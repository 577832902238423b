package drowsiness

import "github.com/google/uuid"

// Session owns the temporal state of one monitoring run: the streak counter
// and the smoothing window. It is not safe for concurrent use.
type Session struct {
	id       string
	config   Config
	required int

	streak int
	window *SmoothingWindow

	frames   uint64
	last     State
	episodes int
	counts   map[State]uint64
}

// Stats is a snapshot of session counters.
type Stats struct {
	ID             string           `json:"id"`
	Frames         uint64           `json:"frames"`
	Streak         int              `json:"streak"`
	Required       int              `json:"required"`
	DrowsyEpisodes int              `json:"drowsy_episodes"`
	Last           State            `json:"last"`
	Counts         map[State]uint64 `json:"counts"`
}

// NewSession validates cfg and creates a session with a fresh ID.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	required := cfg.ConsecFramesRequired()
	return &Session{
		id:       uuid.New().String(),
		config:   cfg,
		required: required,
		window:   NewSmoothingWindow(required),
		last:     Alert,
		counts:   make(map[State]uint64, len(stateNames)),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.config }

// Required returns the number of consecutive closed frames needed for Drowsy.
func (s *Session) Required() int { return s.required }

// Streak returns the current consecutive below-threshold frame count.
func (s *Session) Streak() int { return s.streak }

// Window returns the smoothing window contents, oldest first.
func (s *Session) Window() []float64 { return s.window.Values() }

// WindowMean returns the mean of the smoothing window.
func (s *Session) WindowMean() (float64, bool) { return s.window.Mean() }

// Process extracts the signal from d and classifies it.
func (s *Session) Process(d *Detection) Classification {
	return s.Classify(ExtractSignal(d))
}

// Classify advances the state machine by one frame.
//
// A frame without a face resets the streak. Otherwise the streak grows while the
// EAR stays below the threshold and resets on any frame at or above it. Drowsy is
// emitted once the streak reaches Required. The smoothing window is updated but
// never consulted here.
func (s *Session) Classify(sig FrameSignal) Classification {
	s.frames++
	c := Classification{Frame: s.frames}

	ear, ok := sig.EAR()
	switch {
	case !ok:
		s.streak = 0
		c.State = NoFace
	default:
		s.window.Push(ear)
		if ear < s.config.EARThreshold {
			s.streak++
		} else {
			s.streak = 0
		}
		c.EAR, c.HasEAR = ear, true
		c.State = Alert
		if s.streak >= s.required {
			c.State = Drowsy
		}
	}
	c.Streak = s.streak

	if c.State != s.last {
		c.Changed = true
		if c.State == Drowsy {
			s.episodes++
		}
	}
	s.last = c.State
	s.counts[c.State]++
	return c
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	counts := make(map[State]uint64, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	return Stats{
		ID:             s.id,
		Frames:         s.frames,
		Streak:         s.streak,
		Required:       s.required,
		DrowsyEpisodes: s.episodes,
		Last:           s.last,
		Counts:         counts,
	}
}
