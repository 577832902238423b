package monitor

import (
	"context"
	"fmt"

	"github.com/teslashibe/go-drowsy/pkg/landmarks"
)

// Source yields one landmark result per frame in capture order.
// Next returns io.EOF when the feed ends.
type Source interface {
	Next(ctx context.Context) (landmarks.Result, error)
}

// FrameReader captures encoded frames.
type FrameReader interface {
	Read() (landmarks.Frame, error)
}

// DetectingSource runs each captured frame through a face-mesh detector.
type DetectingSource struct {
	reader   FrameReader
	detector landmarks.Detector
}

// NewDetectingSource pairs a frame reader with a detector.
func NewDetectingSource(reader FrameReader, detector landmarks.Detector) *DetectingSource {
	return &DetectingSource{reader: reader, detector: detector}
}

// Next captures one frame and detects landmarks on it.
func (s *DetectingSource) Next(ctx context.Context) (landmarks.Result, error) {
	if err := ctx.Err(); err != nil {
		return landmarks.Result{}, err
	}
	frame, err := s.reader.Read()
	if err != nil {
		return landmarks.Result{}, fmt.Errorf("capture: %w", err)
	}
	res, err := s.detector.Detect(ctx, frame)
	if err != nil {
		return landmarks.Result{}, fmt.Errorf("detect: %w", err)
	}
	return res, nil
}

// RecordingSource tees every result from a Source into a Recorder.
type RecordingSource struct {
	Source
	rec *landmarks.Recorder
}

// NewRecordingSource wraps src so every result is also written to rec.
func NewRecordingSource(src Source, rec *landmarks.Recorder) *RecordingSource {
	return &RecordingSource{Source: src, rec: rec}
}

// Next returns the wrapped source's next result after recording it.
func (s *RecordingSource) Next(ctx context.Context) (landmarks.Result, error) {
	res, err := s.Source.Next(ctx)
	if err != nil {
		return res, err
	}
	if err := s.rec.Record(res); err != nil {
		return res, err
	}
	return res, nil
}
