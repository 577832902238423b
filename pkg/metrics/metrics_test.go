package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe(drowsiness.Classification{State: drowsiness.NoFace, Changed: true})
	m.Observe(drowsiness.Classification{State: drowsiness.Alert, EAR: 0.3, HasEAR: true, Changed: true})
	m.Observe(drowsiness.Classification{State: drowsiness.Drowsy, EAR: 0.1, HasEAR: true, Streak: 60, Changed: true})
	m.Observe(drowsiness.Classification{State: drowsiness.Drowsy, EAR: 0.12, HasEAR: true, Streak: 61})

	if got := testutil.ToFloat64(m.frames.WithLabelValues("DROWSY")); got != 2 {
		t.Errorf("DROWSY frames: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.frames.WithLabelValues("NO_FACE")); got != 1 {
		t.Errorf("NO_FACE frames: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.episodes); got != 1 {
		t.Errorf("episodes: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ear); got != 0.12 {
		t.Errorf("ear: got %v, want 0.12", got)
	}
	if got := testutil.ToFloat64(m.streak); got != 61 {
		t.Errorf("streak: got %v, want 61", got)
	}
}

func TestObserve_Degenerate(t *testing.T) {
	m := New()
	m.Observe(drowsiness.Classification{State: drowsiness.Alert, EAR: 0.28, HasEAR: true})
	m.Observe(drowsiness.Classification{State: drowsiness.Alert, EAR: drowsiness.DegenerateEAR, HasEAR: true})

	if got := testutil.ToFloat64(m.degenerate); got != 1 {
		t.Errorf("degenerate: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ear); got != 0.28 {
		t.Errorf("ear gauge must keep the last finite value, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.SourceError()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"drowsy_source_errors_total 1",
		`drowsy_frames_total{state="ALERT"} 0`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
