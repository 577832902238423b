// Package landmarks adapts face-mesh detector output to drowsiness input.
//
// Detectors report a 468-point face mesh (478 with iris refinement) in normalized
// image coordinates. Only two fixed six-point eye contours are used.
package landmarks

// MeshSize is the number of points in the base face-mesh topology.
const MeshSize = 468

// Eye contour indices into the face mesh, ordered outer corner, upper outer,
// upper inner, inner corner, lower inner, lower outer.
var (
	LeftEye  = [6]int{33, 160, 158, 133, 153, 144}
	RightEye = [6]int{362, 385, 387, 263, 373, 380}
)

// Landmark is a face-mesh point in normalized (0-1) image coordinates.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Face is one detected face mesh.
type Face struct {
	Landmarks []Landmark `json:"landmarks"`
	Score     float64    `json:"score,omitempty"`
}

// Result is a detector's output for one frame. Faces are ranked, primary first.
type Result struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Faces  []Face `json:"faces"`

	// Image is the source JPEG, kept for overlay rendering. Never serialized.
	Image []byte `json:"-"`
}

// Primary returns the first-ranked face, or nil when none was detected.
func (r Result) Primary() *Face {
	if len(r.Faces) == 0 {
		return nil
	}
	return &r.Faces[0]
}

// Frame is an encoded camera frame handed to a Detector.
type Frame struct {
	JPEG   []byte
	Width  int
	Height int
}
