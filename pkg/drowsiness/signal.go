package drowsiness

// Detection carries the primary face's eyes for one frame.
type Detection struct {
	Left  EyeLandmarkSet
	Right EyeLandmarkSet
}

// FrameSignal is the per-frame alertness signal.
// AverageEAR is meaningful only when FaceDetected is true.
type FrameSignal struct {
	AverageEAR   float64
	FaceDetected bool
}

// NoFaceSignal is the signal for a frame without a detected face.
var NoFaceSignal = FrameSignal{}

// EAR returns the average EAR and whether it is present.
func (s FrameSignal) EAR() (float64, bool) {
	if !s.FaceDetected {
		return 0, false
	}
	return s.AverageEAR, true
}

// ExtractSignal averages both eyes' EAR. A nil detection yields NoFaceSignal.
// A single degenerate eye makes the average +Inf, so the frame reads as ALERT
// even when the other eye is closed.
func ExtractSignal(d *Detection) FrameSignal {
	if d == nil {
		return NoFaceSignal
	}
	left := ComputeEAR(d.Left)
	right := ComputeEAR(d.Right)
	return FrameSignal{
		AverageEAR:   (left + right) / 2,
		FaceDetected: true,
	}
}
