package landmarks

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// ReplaySource yields recorded results, one JSON object per line.
type ReplaySource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewReplay reads results from r. Blank lines are skipped.
func NewReplay(r io.Reader) *ReplaySource {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16<<20)
	rs := &ReplaySource{scanner: s}
	if c, ok := r.(io.Closer); ok {
		rs.closer = c
	}
	return rs
}

// OpenReplay opens a recording file.
func OpenReplay(path string) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	return NewReplay(f), nil
}

// Next returns the next recorded frame, or io.EOF when the recording ends.
func (s *ReplaySource) Next(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return Result{}, fmt.Errorf("replay line %d: %w", s.line+1, err)
			}
			return Result{}, io.EOF
		}
		s.line++
		raw := s.scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var res Result
		if err := json.Unmarshal(raw, &res); err != nil {
			return Result{}, fmt.Errorf("replay line %d: %w", s.line, err)
		}
		return res, nil
	}
}

// Close closes the underlying reader if it is closable.
func (s *ReplaySource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Recorder writes results in the format ReplaySource reads.
type Recorder struct {
	mu  sync.Mutex
	w   *bufio.Writer
	enc *json.Encoder
	c   io.Closer
	n   int
}

// NewRecorder writes to w.
func NewRecorder(w io.Writer) *Recorder {
	bw := bufio.NewWriter(w)
	rec := &Recorder{w: bw, enc: json.NewEncoder(bw)}
	if c, ok := w.(io.Closer); ok {
		rec.c = c
	}
	return rec
}

// CreateRecorder creates or truncates the file at path.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	return NewRecorder(f), nil
}

// Record appends one frame.
func (r *Recorder) Record(res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(res); err != nil {
		return fmt.Errorf("record frame %d: %w", r.n+1, err)
	}
	r.n++
	return nil
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Close flushes buffered frames and closes the writer if closable.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Flush(); err != nil {
		return err
	}
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}
