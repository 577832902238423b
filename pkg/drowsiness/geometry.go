package drowsiness

import (
	"fmt"
	"math"
)

// EyePoints is the number of contour points used per eye.
const EyePoints = 6

// Positions within an EyeLandmarkSet.
const (
	OuterCorner = iota
	UpperOuter
	UpperInner
	InnerCorner
	LowerInner
	LowerOuter
)

// DegenerateEAR is returned by ComputeEAR when the eye corners coincide.
var DegenerateEAR = math.Inf(1)

// Point2D is an image-plane coordinate in pixels.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// EyeLandmarkSet holds one eye's contour points ordered
// outer-corner, upper-outer, upper-inner, inner-corner, lower-inner, lower-outer.
type EyeLandmarkSet [EyePoints]Point2D

// NewEyeLandmarkSet copies pts into an EyeLandmarkSet.
// It fails with ErrContractViolation unless exactly six points are given.
func NewEyeLandmarkSet(pts []Point2D) (EyeLandmarkSet, error) {
	var eye EyeLandmarkSet
	if len(pts) != EyePoints {
		return eye, fmt.Errorf("%w: eye needs %d points, got %d", ErrContractViolation, EyePoints, len(pts))
	}
	copy(eye[:], pts)
	return eye, nil
}

// Translate returns the set shifted by d.
func (e EyeLandmarkSet) Translate(d Point2D) EyeLandmarkSet {
	for i := range e {
		e[i] = e[i].Add(d)
	}
	return e
}

// Width returns the corner-to-corner distance.
func (e EyeLandmarkSet) Width() float64 {
	return Distance(e[OuterCorner], e[InnerCorner])
}

// ComputeEAR returns the eye aspect ratio (A+B)/(2C) where A and B are the two
// vertical lid distances and C is the horizontal corner distance.
// When C is zero the result is DegenerateEAR.
func ComputeEAR(eye EyeLandmarkSet) float64 {
	a := Distance(eye[UpperOuter], eye[LowerOuter])
	b := Distance(eye[UpperInner], eye[LowerInner])
	c := eye.Width()
	if c == 0 {
		return DegenerateEAR
	}
	return (a + b) / (2 * c)
}

// IsDegenerate reports whether v is the degenerate-geometry sentinel.
func IsDegenerate(v float64) bool {
	return math.IsInf(v, 1)
}
