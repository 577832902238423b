// Package monitor drives a drowsiness Session from a live landmark feed.
//
// Frames are read on a producer goroutine and handed to a single consumer over
// an ordered channel, so the session sees frames exactly in arrival order.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/teslashibe/go-drowsy/internal/log"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
	"github.com/teslashibe/go-drowsy/pkg/landmarks"
)

// Publisher receives every classification. Implementations must not block.
type Publisher interface {
	Publish(c drowsiness.Classification)
}

// FramePublisher additionally receives the (possibly annotated) frame image.
type FramePublisher interface {
	PublishFrame(jpeg []byte)
}

// Annotator renders a classification onto a frame.
type Annotator interface {
	Annotate(jpeg []byte, c drowsiness.Classification) ([]byte, error)
}

// Observer records classifications and lost frames, e.g. for metrics.
type Observer interface {
	Observe(c drowsiness.Classification)
	SourceError()
}

// Options configures a Monitor.
type Options struct {
	// Buffer is the capacity of the capture hand-off channel.
	Buffer int

	// MaxSourceErrors ends the run after this many consecutive source errors.
	MaxSourceErrors int

	Annotator  Annotator
	Observer   Observer
	Publishers []Publisher
}

// DefaultOptions returns a small hand-off buffer and a five-error budget.
func DefaultOptions() Options {
	return Options{
		Buffer:          4,
		MaxSourceErrors: 5,
	}
}

// Stats is a snapshot of monitor and session state, safe to read from any goroutine.
type Stats struct {
	Frames       uint64
	SourceErrors uint64
	Last         drowsiness.Classification
	LastAt       time.Time
	Running      bool

	Session    drowsiness.Stats
	Window     []float64
	WindowMean float64
	HasMean    bool
}

// Monitor owns a Session for the lifetime of one feed.
type Monitor struct {
	source  Source
	session *drowsiness.Session
	opts    Options

	mu    sync.RWMutex
	stats Stats
}

type item struct {
	res landmarks.Result
	err error
}

// New creates a monitor classifying frames from source into session.
func New(source Source, session *drowsiness.Session, opts Options) *Monitor {
	def := DefaultOptions()
	if opts.Buffer <= 0 {
		opts.Buffer = def.Buffer
	}
	if opts.MaxSourceErrors <= 0 {
		opts.MaxSourceErrors = def.MaxSourceErrors
	}
	m := &Monitor{source: source, session: session, opts: opts}
	m.stats.Session = session.Stats()
	return m
}

// SessionID returns the monitored session's ID.
func (m *Monitor) SessionID() string {
	return m.session.ID()
}

// Config returns the monitored session's configuration.
func (m *Monitor) Config() drowsiness.Config {
	return m.session.Config()
}

// Stats returns a snapshot taken after the most recent frame.
func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := m.stats
	st.Window = append([]float64(nil), m.stats.Window...)
	return st
}

// Run classifies frames until ctx is cancelled or the source ends.
// It returns nil on cancellation or io.EOF. A contract violation in the
// landmark input, or too many consecutive source errors, ends the run with
// an error.
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	m.setRunning(true)
	defer m.setRunning(false)

	logger := log.With("session", m.session.ID())
	cfg := m.session.Config()
	logger.Info("monitor started",
		"threshold", cfg.EARThreshold,
		"drowsy_time", cfg.DrowsyTime,
		"fps", cfg.FPS,
		"required_frames", m.session.Required())

	frames := make(chan item, m.opts.Buffer)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.produce(ctx, frames)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	consecutive := 0
	for {
		var it item
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case it, ok = <-frames:
		}
		if !ok {
			return nil
		}

		if it.err != nil {
			if errors.Is(it.err, io.EOF) {
				logger.Info("source ended", "frames", m.Stats().Frames)
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			consecutive++
			m.sourceError()
			logger.Warn("frame lost", "error", it.err, "consecutive", consecutive)
			if consecutive >= m.opts.MaxSourceErrors {
				return fmt.Errorf("monitor: %d consecutive source errors: %w", consecutive, it.err)
			}
			continue
		}
		consecutive = 0

		if err := m.handle(it.res, logger); err != nil {
			return err
		}
	}
}

// produce reads the source into out, in order, until an EOF or cancellation.
func (m *Monitor) produce(ctx context.Context, out chan<- item) {
	defer close(out)
	for {
		res, err := m.source.Next(ctx)
		select {
		case out <- item{res: res, err: err}:
		case <-ctx.Done():
			return
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return
		}
	}
}

// handle classifies one frame and fans the result out.
func (m *Monitor) handle(res landmarks.Result, logger *slog.Logger) error {
	det, err := landmarks.ToDetection(res)
	if err != nil {
		return fmt.Errorf("monitor: frame %d: %w", m.Stats().Frames+1, err)
	}

	c := m.session.Process(det)
	sessionStats := m.session.Stats()
	window := m.session.Window()
	mean, hasMean := m.session.WindowMean()

	m.mu.Lock()
	m.stats.Frames++
	m.stats.Last = c
	m.stats.LastAt = time.Now()
	m.stats.Session = sessionStats
	m.stats.Window = window
	m.stats.WindowMean, m.stats.HasMean = mean, hasMean
	m.mu.Unlock()

	if c.Changed {
		logger.Info("state changed", "frame", c.Frame, "state", c.State, "ear", earAttr(c), "streak", c.Streak)
	} else {
		logger.Debug("frame classified", "frame", c.Frame, "state", c.State, "ear", earAttr(c), "streak", c.Streak)
	}

	if m.opts.Observer != nil {
		m.opts.Observer.Observe(c)
	}
	for _, p := range m.opts.Publishers {
		p.Publish(c)
	}
	m.publishFrame(res.Image, c, logger)
	return nil
}

func (m *Monitor) publishFrame(img []byte, c drowsiness.Classification, logger *slog.Logger) {
	if len(img) == 0 {
		return
	}
	var fps []FramePublisher
	for _, p := range m.opts.Publishers {
		if fp, ok := p.(FramePublisher); ok {
			fps = append(fps, fp)
		}
	}
	if len(fps) == 0 {
		return
	}
	if m.opts.Annotator != nil {
		annotated, err := m.opts.Annotator.Annotate(img, c)
		if err != nil {
			logger.Debug("overlay failed", "frame", c.Frame, "error", err)
		} else {
			img = annotated
		}
	}
	for _, fp := range fps {
		fp.PublishFrame(img)
	}
}

func (m *Monitor) sourceError() {
	m.mu.Lock()
	m.stats.SourceErrors++
	m.mu.Unlock()
	if m.opts.Observer != nil {
		m.opts.Observer.SourceError()
	}
}

func (m *Monitor) setRunning(v bool) {
	m.mu.Lock()
	m.stats.Running = v
	m.mu.Unlock()
}

func earAttr(c drowsiness.Classification) any {
	if !c.HasEAR {
		return nil
	}
	if drowsiness.IsDegenerate(c.EAR) {
		return "degenerate"
	}
	return fmt.Sprintf("%.3f", c.EAR)
}
