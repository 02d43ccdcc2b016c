package vellus

import (
	"image"
	"image/color"
)

// Overlay tint colors of the debug rendering.
var (
	passTint = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x40, A: 0x60}
	failTint = color.NRGBA{R: 0xff, G: 0x41, B: 0x36, A: 0x60}
)

// DrawResult renders a debug overlay of the analysis: every region
// rectangle is tinted green or red depending on its pass state and outlined
// with the opaque tint color. The source image is left untouched.
func DrawResult(src image.Image, face *FaceObservation, rects [NumRegions]NormalizedRect, res *ScanResult) *image.NRGBA {
	base := imgToNRGBA(src)
	dst := image.NewNRGBA(base.Bounds())
	copy(dst.Pix, base.Pix)

	for kind := 0; kind < NumRegions; kind++ {
		tint := failTint
		if res.Regions[kind].Passed {
			tint = passTint
		}

		r := pixelRect(face.Box, rects[kind]).Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}
		tintRect(dst, r, tint)
		strokeRect(dst, r, color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: 0xff})
	}
	return dst
}

// tintRect composites the translucent tint over the rectangle using the
// source-over operator.
func tintRect(dst *image.NRGBA, r image.Rectangle, tint color.NRGBA) {
	a := uint32(tint.A)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8((uint32(tint.R)*a + uint32(dst.Pix[i+0])*(255-a)) / 255)
			dst.Pix[i+1] = uint8((uint32(tint.G)*a + uint32(dst.Pix[i+1])*(255-a)) / 255)
			dst.Pix[i+2] = uint8((uint32(tint.B)*a + uint32(dst.Pix[i+2])*(255-a)) / 255)
		}
	}
}

// strokeRect draws a one pixel outline around the rectangle.
func strokeRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetNRGBA(x, r.Min.Y, c)
		dst.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetNRGBA(r.Min.X, y, c)
		dst.SetNRGBA(r.Max.X-1, y, c)
	}
}
