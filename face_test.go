package vellus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFace() *FaceObservation {
	return &FaceObservation{
		Box: BoundingBox{Left: 40, Top: 30, Width: 200, Height: 240},
		Landmarks: Landmarks{
			LeftEye:  &Point{X: 100, Y: 120},
			RightEye: &Point{X: 180, Y: 120},
		},
	}
}

func TestFace_QualityGateSizeBoundaries(t *testing.T) {
	assert := assert.New(t)

	face := validFace()
	face.Box.Width = 99
	face.Box.Height = 200
	err := face.CheckQuality()
	assert.Error(err)
	assert.Contains(err.Error(), "face too small")

	// The boundary is inclusive.
	face.Box.Width = 100
	face.Box.Height = 120
	assert.NoError(face.CheckQuality())

	face.Box.Height = 119
	assert.Error(face.CheckQuality())
}

func TestFace_QualityGatePose(t *testing.T) {
	assert := assert.New(t)

	yaw := 30.0
	face := validFace()
	face.Yaw = &yaw

	err := face.CheckQuality()
	assert.Error(err)
	var qerr *FaceQualityError
	assert.ErrorAs(err, &qerr)
	assert.Equal("face not facing forward", qerr.Reason)

	// A large box does not rescue an averted face.
	face.Box.Width = 1000
	face.Box.Height = 1000
	assert.Error(face.CheckQuality())

	yaw = -30
	assert.Error(face.CheckQuality())

	yaw = 25
	assert.NoError(face.CheckQuality())

	pitch := 21.0
	face.Pitch = &pitch
	err = face.CheckQuality()
	assert.Error(err)
	assert.ErrorAs(err, &qerr)
	assert.Equal("face tilted up or down", qerr.Reason)
}

func TestFace_QualityGateLandmarks(t *testing.T) {
	assert := assert.New(t)

	face := validFace()
	face.Landmarks.RightEye = nil

	err := face.CheckQuality()
	assert.Error(err)
	assert.Contains(err.Error(), "eye landmarks missing")

	// Unknown pose is accepted; pigo style detectors report no angles.
	face = validFace()
	assert.Nil(face.Yaw)
	assert.NoError(face.CheckQuality())
}
