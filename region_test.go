package vellus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegion_CanonicalTableIsWellFormed(t *testing.T) {
	assert := assert.New(t)

	for kind, r := range canonicalRegions {
		assert.Less(r.Left, r.Right, "region %s", RegionKind(kind))
		assert.Less(r.Top, r.Bottom, "region %s", RegionKind(kind))
	}

	// The front region is the calibration reference; its extents are fixed
	// design constants.
	assert.Equal(CanonicalRect{Left: -0.35, Top: -0.35, Right: 0.35, Bottom: 0.15}, canonicalRegions[Front])

	// The crown sits strictly above the eye line, the chin strictly below
	// the mouth.
	assert.Less(canonicalRegions[Crown].Bottom, 0.0)
	assert.Greater(canonicalRegions[Chin].Top, canonicalMouth.Y)
}

func TestRegion_KindNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(7, NumRegions)
	assert.Equal("front", Front.String())
	assert.Equal("jawline", Jawline.String())
	assert.Equal("unknown", RegionKind(42).String())
}

func TestRegion_ClampUnit(t *testing.T) {
	assert := assert.New(t)

	r := NormalizedRect{L: -0.5, T: 0.2, R: 1.8, B: 0.7}.clampUnit()
	assert.Equal(NormalizedRect{L: 0, T: 0.2, R: 1, B: 0.7}, r)

	// A rectangle entirely outside the unit square collapses onto the edge
	// while keeping L <= R and T <= B.
	r = NormalizedRect{L: 1.2, T: -3, R: 2.4, B: -1}.clampUnit()
	assert.True(r.L <= r.R)
	assert.True(r.T <= r.B)
	assert.Equal(NormalizedRect{L: 1, T: 0, R: 1, B: 0}, r)
}
