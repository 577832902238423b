// Package drowsiness classifies alertness from per-frame eye landmarks.
//
// Each frame's eye contours are reduced to an Eye Aspect Ratio (EAR). A Session
// feeds the per-frame average EAR through a consecutive-frame counter so that a
// DROWSY classification is raised only after sustained eye closure, while single
// blinks and frames without a face are ignored.
//
// A Session is owned by a single consumer. Frames must be classified in arrival
// order because the streak counter is order-sensitive.
package drowsiness
