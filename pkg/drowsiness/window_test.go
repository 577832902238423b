package drowsiness

import (
	"reflect"
	"testing"
)

func TestSmoothingWindow_Evicts(t *testing.T) {
	w := NewSmoothingWindow(3)
	for i := 1; i <= 5; i++ {
		w.Push(float64(i))
		if w.Len() > w.Cap() {
			t.Fatalf("push %d: len %d exceeds cap %d", i, w.Len(), w.Cap())
		}
	}

	want := []float64{3, 4, 5}
	if got := w.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values: got %v, want %v", got, want)
	}
}

func TestSmoothingWindow_PartiallyFilled(t *testing.T) {
	w := NewSmoothingWindow(4)
	w.Push(0.3)
	w.Push(0.1)

	if got := w.Values(); !reflect.DeepEqual(got, []float64{0.3, 0.1}) {
		t.Errorf("Values: got %v", got)
	}
	mean, ok := w.Mean()
	if !ok || mean < 0.199 || mean > 0.201 {
		t.Errorf("Mean: got %v (%v), want 0.2", mean, ok)
	}
}

func TestSmoothingWindow_NeverExceedsRequired(t *testing.T) {
	cfg := DefaultConfig()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	for i := 0; i < 10*cfg.ConsecFramesRequired(); i++ {
		s.Classify(FrameSignal{AverageEAR: float64(i), FaceDetected: true})
	}

	got := s.Window()
	if len(got) != cfg.ConsecFramesRequired() {
		t.Fatalf("window holds %d, want %d", len(got), cfg.ConsecFramesRequired())
	}
	if got[len(got)-1] != float64(10*cfg.ConsecFramesRequired()-1) {
		t.Errorf("most recent value should be last, got %v", got[len(got)-1])
	}
}

func TestSmoothingWindow_MinimumCapacity(t *testing.T) {
	w := NewSmoothingWindow(0)
	w.Push(1)
	w.Push(2)
	if w.Cap() != 1 || w.Len() != 1 || w.Values()[0] != 2 {
		t.Errorf("got cap=%d len=%d values=%v", w.Cap(), w.Len(), w.Values())
	}
}

func TestSmoothingWindow_MeanSkipsDegenerate(t *testing.T) {
	w := NewSmoothingWindow(3)
	if _, ok := w.Mean(); ok {
		t.Error("empty window should have no mean")
	}
	w.Push(DegenerateEAR)
	w.Push(0.4)
	mean, ok := w.Mean()
	if !ok || mean != 0.4 {
		t.Errorf("Mean: got %v (%v), want 0.4", mean, ok)
	}
}
