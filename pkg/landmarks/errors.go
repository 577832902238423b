package landmarks

import "errors"

var (
	// ErrShortMesh is returned when a face has fewer than MeshSize landmarks.
	ErrShortMesh = errors.New("landmarks: face mesh too short")

	// ErrBadDimensions is returned when a result has non-positive frame dimensions.
	ErrBadDimensions = errors.New("landmarks: frame dimensions must be positive")

	// ErrDetectorClosed is returned when detecting on a closed detector.
	ErrDetectorClosed = errors.New("landmarks: detector closed")

	// ErrEmptyFrame is returned when a frame has no image data.
	ErrEmptyFrame = errors.New("landmarks: empty frame")
)
