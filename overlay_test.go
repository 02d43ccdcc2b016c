package vellus

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlay_DrawResultTintsRegions(t *testing.T) {
	assert := assert.New(t)

	src := testImage()
	face := validFace()

	rects, err := LocateRegions(face)
	assert.NoError(err)

	res := &ScanResult{}
	for kind := 0; kind < NumRegions; kind++ {
		res.Regions[kind] = RegionScore{Kind: RegionKind(kind), Passed: kind%2 == 0}
	}

	overlay := DrawResult(src, face, rects, res)
	assert.Equal(src.Bounds(), overlay.Bounds())

	// The source image is left untouched.
	assert.Equal(color.NRGBA{R: 0xc8, G: 0xa0, B: 0x8c, A: 0xff}, src.NRGBAAt(5, 5))

	// The front region center picks up the green pass tint.
	r := pixelRect(face.Box, rects[Front])
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	tinted := overlay.NRGBAAt(cx, cy)
	assert.NotEqual(src.NRGBAAt(cx, cy), tinted)
	assert.Greater(tinted.G, tinted.R)
}
