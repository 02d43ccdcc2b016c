package vellus

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// uniformRegion returns a region filled with a single color.
func uniformRegion(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// stripedRegion returns a region of alternating black and white vertical
// stripes, two pixels wide: maximal darkness contrast, strong gradients,
// zero saturation. Single pixel stripes would cancel out under the 3x3
// gradient kernels.
func stripedRegion(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if x%4 < 2 {
				v = 0xff
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}

func TestScorer_UniformRegionScoresZero(t *testing.T) {
	assert := assert.New(t)

	for _, c := range []color.NRGBA{
		{R: 0xc8, G: 0xa0, B: 0x8c, A: 0xff}, // skin tone
		{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	} {
		score, err := ScoreRegion(uniformRegion(32, 32, c), DefaultScorerParams())
		assert.NoError(err)
		assert.InDelta(0.0, score, 1e-9)
	}
}

func TestScorer_DenseDarkTextureScoresNearOne(t *testing.T) {
	assert := assert.New(t)

	score, err := ScoreRegion(stripedRegion(64, 64), DefaultScorerParams())
	assert.NoError(err)
	assert.Greater(score, 0.9)
}

func TestScorer_ScoreAlwaysInUnitInterval(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(42))
	params := []ScorerParams{
		DefaultScorerParams(),
		{EdgeWeight: 1, DarknessWeight: 0, SaturationPower: 1, PercentileThreshold: 0.5, BlurRadius: 2},
		{EdgeWeight: 0, DarknessWeight: 1, SaturationPower: 4, PercentileThreshold: 0.1, BlurRadius: 8},
		{EdgeWeight: 3.7, DarknessWeight: 9.1, SaturationPower: 2, PercentileThreshold: 1, BlurRadius: 1},
	}

	for trial := 0; trial < 10; trial++ {
		img := image.NewNRGBA(image.Rect(0, 0, 24, 24))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i] = uint8(rng.Intn(256))
			img.Pix[i+1] = uint8(rng.Intn(256))
			img.Pix[i+2] = uint8(rng.Intn(256))
			img.Pix[i+3] = 0xff
		}

		for _, p := range params {
			score, err := ScoreRegion(img, p)
			assert.NoError(err)
			assert.GreaterOrEqual(score, 0.0)
			assert.LessOrEqual(score, 1.0)
		}
	}
}

func TestScorer_WeightRenormalization(t *testing.T) {
	assert := assert.New(t)

	img := stripedRegion(32, 32)

	a := DefaultScorerParams()
	a.EdgeWeight, a.DarknessWeight = 0.9, 0.3

	b := DefaultScorerParams()
	b.EdgeWeight, b.DarknessWeight = 0.75, 0.25

	sa, err := ScoreRegion(img, a)
	assert.NoError(err)
	sb, err := ScoreRegion(img, b)
	assert.NoError(err)
	assert.InDelta(sa, sb, 1e-12)

	// A degenerate weight pair falls back to the defaults.
	c := DefaultScorerParams()
	c.EdgeWeight, c.DarknessWeight = 0, 0
	sc, err := ScoreRegion(img, c)
	assert.NoError(err)
	sd, err := ScoreRegion(img, DefaultScorerParams())
	assert.NoError(err)
	assert.Equal(sd, sc)
}

func TestScorer_SaturationSuppression(t *testing.T) {
	assert := assert.New(t)

	// Gray stripes versus saturated red-on-green stripes of comparable
	// luminance contrast: the saturated variant must score lower.
	colorful := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.NRGBA{R: 0xe0, G: 0x10, B: 0x10, A: 0xff}
			if x%4 < 2 {
				c = color.NRGBA{R: 0x10, G: 0xe0, B: 0x10, A: 0xff}
			}
			colorful.SetNRGBA(x, y, c)
		}
	}

	plain, err := ScoreRegion(stripedRegion(32, 32), DefaultScorerParams())
	assert.NoError(err)
	saturated, err := ScoreRegion(colorful, DefaultScorerParams())
	assert.NoError(err)
	assert.Less(saturated, plain)
}

func TestScorer_InvalidRegions(t *testing.T) {
	assert := assert.New(t)

	var ierr *InvalidRegionError

	_, err := ScoreRegion(nil, DefaultScorerParams())
	assert.ErrorAs(err, &ierr)

	_, err = ScoreRegion(image.NewNRGBA(image.Rect(0, 0, 0, 0)), DefaultScorerParams())
	assert.ErrorAs(err, &ierr)

	_, err = ScoreRegion(uniformRegion(2, 8, color.NRGBA{A: 0xff}), DefaultScorerParams())
	assert.ErrorAs(err, &ierr)
	assert.Contains(err.Error(), "2x8")

	// The minimum size to run at all is 3x3.
	_, err = ScoreRegion(uniformRegion(3, 3, color.NRGBA{A: 0xff}), DefaultScorerParams())
	assert.NoError(err)
}
