package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
)

// StatusEvent is one classification as sent to dashboard clients.
// EAR is null for NO_FACE frames and degenerate eye geometry.
type StatusEvent struct {
	Session    string           `json:"session"`
	Frame      uint64           `json:"frame"`
	State      drowsiness.State `json:"state"`
	EAR        *float64         `json:"ear"`
	Degenerate bool             `json:"degenerate,omitempty"`
	Streak     int              `json:"streak"`
	Required   int              `json:"required"`
	Label      string           `json:"label"`
	Time       string           `json:"time"`
}

// ConfigInfo describes the session parameters.
type ConfigInfo struct {
	EARThreshold   float64 `json:"ear_threshold"`
	DrowsyTimeSec  float64 `json:"drowsy_time_sec"`
	FPS            float64 `json:"fps"`
	RequiredFrames int     `json:"required_frames"`
}

// SessionInfo is the /api/session response.
type SessionInfo struct {
	ID           string           `json:"id"`
	Running      bool             `json:"running"`
	Config       ConfigInfo       `json:"config"`
	Stats        drowsiness.Stats `json:"stats"`
	SourceErrors uint64           `json:"source_errors"`
	LastFrameAt  *time.Time       `json:"last_frame_at,omitempty"`
}

// WindowInfo is the /api/window response. Degenerate values are null.
type WindowInfo struct {
	Capacity int        `json:"capacity"`
	Values   []*float64 `json:"values"`
	Mean     *float64   `json:"mean"`
}

func (s *Server) event(c drowsiness.Classification) StatusEvent {
	ev := StatusEvent{
		Session:  s.monitor.SessionID(),
		Frame:    c.Frame,
		State:    c.State,
		Streak:   c.Streak,
		Required: s.monitor.Config().ConsecFramesRequired(),
		Label:    c.Label(),
		Time:     time.Now().Format("15:04:05.000"),
	}
	if c.HasEAR {
		if drowsiness.IsDegenerate(c.EAR) {
			ev.Degenerate = true
		} else {
			ear := c.EAR
			ev.EAR = &ear
		}
	}
	return ev
}

// handleStatus returns the most recent classification
func (s *Server) handleStatus(c *fiber.Ctx) error {
	st := s.monitor.Stats()
	if st.Frames == 0 {
		return c.Status(fiber.StatusNoContent).Send(nil)
	}
	return c.JSON(s.event(st.Last))
}

// handleSession returns the session configuration and counters
func (s *Server) handleSession(c *fiber.Ctx) error {
	cfg := s.monitor.Config()
	st := s.monitor.Stats()

	info := SessionInfo{
		ID:      s.monitor.SessionID(),
		Running: st.Running,
		Config: ConfigInfo{
			EARThreshold:   cfg.EARThreshold,
			DrowsyTimeSec:  cfg.DrowsyTime.Seconds(),
			FPS:            cfg.FPS,
			RequiredFrames: cfg.ConsecFramesRequired(),
		},
		Stats:        st.Session,
		SourceErrors: st.SourceErrors,
	}
	if !st.LastAt.IsZero() {
		at := st.LastAt
		info.LastFrameAt = &at
	}
	return c.JSON(info)
}

// handleWindow returns the smoothing window contents, oldest first
func (s *Server) handleWindow(c *fiber.Ctx) error {
	st := s.monitor.Stats()

	info := WindowInfo{
		Capacity: s.monitor.Config().ConsecFramesRequired(),
		Values:   make([]*float64, len(st.Window)),
	}
	for i, v := range st.Window {
		if drowsiness.IsDegenerate(v) {
			continue
		}
		v := v
		info.Values[i] = &v
	}
	if st.HasMean {
		mean := st.WindowMean
		info.Mean = &mean
	}
	return c.JSON(info)
}
