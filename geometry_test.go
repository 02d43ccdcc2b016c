package vellus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometry_FitSimilarityRoundTrip(t *testing.T) {
	assert := assert.New(t)

	triples := [][6]Point{
		{
			{120, 140}, {220, 138}, {170, 230},
			{-0.5, 0}, {0.5, 0}, {0, 0.6},
		},
		{
			{0, 0}, {10, 0}, {5, 8},
			{3, 3}, {13, 5}, {7, 12},
		},
		{
			{-40, 12}, {33, -7}, {91, 60},
			{0, 0}, {1, 1}, {2, 0},
		},
	}

	for _, tr := range triples {
		tf, err := FitSimilarity(tr[0], tr[1], tr[2], tr[3], tr[4], tr[5])
		assert.NoError(err)

		inv, err := tf.Invert()
		assert.NoError(err)

		for _, p := range tr[:3] {
			q := inv.Apply(tf.Apply(p))
			assert.InDelta(p.X, q.X, 1e-6)
			assert.InDelta(p.Y, q.Y, 1e-6)
		}
	}
}

func TestGeometry_ExactMappingOfAnchors(t *testing.T) {
	assert := assert.New(t)

	// An axis aligned eye pair with the mouth below maps exactly, since the
	// configuration is similar to the canonical one.
	eyeL := Point{100, 100}
	eyeR := Point{200, 100}
	mouth := Point{150, 160}

	tf, err := FitSimilarity(eyeL, eyeR, mouth, canonicalLeftEye, canonicalRightEye, canonicalMouth)
	assert.NoError(err)

	p := tf.Apply(eyeL)
	assert.InDelta(canonicalLeftEye.X, p.X, 1e-9)
	assert.InDelta(canonicalLeftEye.Y, p.Y, 1e-9)

	p = tf.Apply(mouth)
	assert.InDelta(canonicalMouth.X, p.X, 1e-9)
	assert.InDelta(canonicalMouth.Y, p.Y, 1e-9)

	// Inter-eye distance is 100px and 1.0 canonical.
	assert.InDelta(0.01, tf.Scale(), 1e-9)
}

func TestGeometry_RotationPreserved(t *testing.T) {
	assert := assert.New(t)

	// Rotate the canonical anchors by 30 degrees and scale by 250. The
	// fitted transform must recover the same rotation, not a reflection.
	angle := 30 * math.Pi / 180
	scale := 250.0
	rot := func(p Point) Point {
		return Point{
			X: scale * (p.X*math.Cos(angle) - p.Y*math.Sin(angle)),
			Y: scale * (p.X*math.Sin(angle) + p.Y*math.Cos(angle)),
		}
	}

	tf, err := FitSimilarity(
		rot(canonicalLeftEye), rot(canonicalRightEye), rot(canonicalMouth),
		canonicalLeftEye, canonicalRightEye, canonicalMouth,
	)
	assert.NoError(err)
	assert.InDelta(1/scale, tf.Scale(), 1e-9)
}

func TestGeometry_DegenerateSources(t *testing.T) {
	assert := assert.New(t)

	// Coincident points.
	_, err := FitSimilarity(
		Point{5, 5}, Point{5, 5}, Point{5, 5},
		Point{0, 0}, Point{1, 0}, Point{0, 1},
	)
	assert.ErrorIs(err, ErrDegenerateLandmarks)

	// The zero transform has no inverse.
	_, err = SimilarityTransform{}.Invert()
	assert.ErrorIs(err, ErrDegenerateLandmarks)
}
