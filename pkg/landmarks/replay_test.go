package landmarks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecorderReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")

	rec, err := CreateRecorder(path)
	if err != nil {
		t.Fatalf("CreateRecorder failed: %v", err)
	}
	frames := []Result{
		{Width: 640, Height: 480},
		{Width: 640, Height: 480, Faces: []Face{{Landmarks: meshWithEyes(MeshSize, 0.02), Score: 0.9}}},
		{Width: 640, Height: 480, Image: []byte("jpeg bytes are not recorded")},
	}
	for _, f := range frames {
		if err := rec.Record(f); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if rec.Frames() != len(frames) {
		t.Errorf("Frames: got %d, want %d", rec.Frames(), len(frames))
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	src, err := OpenReplay(path)
	if err != nil {
		t.Fatalf("OpenReplay failed: %v", err)
	}
	defer src.Close()

	ctx := context.Background()
	for i := range frames {
		got, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if len(got.Faces) != len(frames[i].Faces) {
			t.Errorf("frame %d: got %d faces, want %d", i, len(got.Faces), len(frames[i].Faces))
		}
		if got.Image != nil {
			t.Errorf("frame %d: image should not round-trip", i)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReplay_SkipsBlankLines(t *testing.T) {
	input := "\n{\"width\":10,\"height\":10,\"faces\":[]}\n   \n{\"width\":20,\"height\":20,\"faces\":[]}\n"
	src := NewReplay(strings.NewReader(input))

	var widths []int
	for {
		res, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		widths = append(widths, res.Width)
	}
	if len(widths) != 2 || widths[0] != 10 || widths[1] != 20 {
		t.Errorf("got widths %v", widths)
	}
}

func TestReplay_BadLine(t *testing.T) {
	src := NewReplay(strings.NewReader("{\"width\":1,\"height\":1}\nnot json\n"))
	ctx := context.Background()

	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("first line: %v", err)
	}
	_, err := src.Next(ctx)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error naming line 2, got %v", err)
	}
}

func TestReplay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewReplay(bytes.NewReader([]byte("{}\n")))
	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
