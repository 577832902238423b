package drowsiness

// SmoothingWindow is a fixed-capacity FIFO of recent EAR values.
// Once full, each Push evicts the oldest value.
type SmoothingWindow struct {
	buf  []float64
	head int // index of the oldest value
	size int
}

// NewSmoothingWindow creates a window holding at most capacity values.
// A capacity below one is treated as one.
func NewSmoothingWindow(capacity int) *SmoothingWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SmoothingWindow{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest value when full.
func (w *SmoothingWindow) Push(v float64) {
	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = v
		w.size++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

// Values returns the contents ordered oldest first, most recent last.
func (w *SmoothingWindow) Values() []float64 {
	out := make([]float64, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// Len returns the number of values held.
func (w *SmoothingWindow) Len() int { return w.size }

// Cap returns the window capacity.
func (w *SmoothingWindow) Cap() int { return len(w.buf) }

// Mean returns the average of the finite values held, and false if there are none.
func (w *SmoothingWindow) Mean() (float64, bool) {
	sum, n := 0.0, 0
	for i := 0; i < w.size; i++ {
		v := w.buf[(w.head+i)%len(w.buf)]
		if IsDegenerate(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
