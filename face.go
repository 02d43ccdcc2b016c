package vellus

import (
	"fmt"

	"github.com/hautec/vellus/utils"
)

// Quality gate limits. The absolute pixel thresholds assume the fixed
// reference capture resolution of the companion application.
const (
	MinFaceWidth  = 100
	MinFaceHeight = 120
	MaxYawDeg     = 25.0
	MaxPitchDeg   = 20.0
)

// BoundingBox is the face bounding box in image pixel space.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the box center point.
func (b BoundingBox) Center() Point {
	return Point{
		X: b.Left + b.Width/2,
		Y: b.Top + b.Height/2,
	}
}

// Landmarks holds the optional facial landmark positions supplied by the
// detector. A nil field means the detector did not report that landmark.
type Landmarks struct {
	LeftEye    *Point
	RightEye   *Point
	LeftMouth  *Point
	RightMouth *Point
	NoseBase   *Point
}

// FaceObservation is the engine facing result of an external face detector:
// a bounding box, the optional landmark set and the optional head rotation
// angles in degrees. The engine never calls back into a detector.
type FaceObservation struct {
	Box       BoundingBox
	Landmarks Landmarks

	// Head rotation angles in degrees, nil when the detector does not
	// estimate pose.
	Yaw   *float64
	Pitch *float64
}

// FaceQualityError reports why a detected face was rejected before scoring.
type FaceQualityError struct {
	Reason string
}

func (e *FaceQualityError) Error() string {
	return fmt.Sprintf("face quality insufficient: %s", e.Reason)
}

// CheckQuality validates that the face is large enough, frontal enough and
// carries the minimum landmark set. These are hard preconditions: a rejected
// face yields no scan result at all. The size boundaries are inclusive.
func (f *FaceObservation) CheckQuality() error {
	if f.Box.Width < MinFaceWidth || f.Box.Height < MinFaceHeight {
		return &FaceQualityError{Reason: "face too small"}
	}
	if f.Yaw != nil && utils.Abs(*f.Yaw) > MaxYawDeg {
		return &FaceQualityError{Reason: "face not facing forward"}
	}
	if f.Pitch != nil && utils.Abs(*f.Pitch) > MaxPitchDeg {
		return &FaceQualityError{Reason: "face tilted up or down"}
	}
	if f.Landmarks.LeftEye == nil || f.Landmarks.RightEye == nil {
		return &FaceQualityError{Reason: "eye landmarks missing"}
	}
	return nil
}
