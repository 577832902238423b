package landmarks

import (
	"fmt"

	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
)

// ToDetection extracts the primary face's eyes scaled to pixel coordinates.
// It returns nil, nil when the result has no face. Malformed faces are
// reported as drowsiness.ErrContractViolation.
func ToDetection(r Result) (*drowsiness.Detection, error) {
	f := r.Primary()
	if f == nil {
		return nil, nil
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: %w (%dx%d)", drowsiness.ErrContractViolation, ErrBadDimensions, r.Width, r.Height)
	}
	if len(f.Landmarks) < MeshSize {
		return nil, fmt.Errorf("%w: %w (%d of %d points)", drowsiness.ErrContractViolation, ErrShortMesh, len(f.Landmarks), MeshSize)
	}

	w, h := float64(r.Width), float64(r.Height)
	return &drowsiness.Detection{
		Left:  eye(f.Landmarks, LeftEye, w, h),
		Right: eye(f.Landmarks, RightEye, w, h),
	}, nil
}

func eye(mesh []Landmark, idx [6]int, w, h float64) drowsiness.EyeLandmarkSet {
	var e drowsiness.EyeLandmarkSet
	for i, j := range idx {
		e[i] = drowsiness.Point2D{X: mesh[j].X * w, Y: mesh[j].Y * h}
	}
	return e
}
