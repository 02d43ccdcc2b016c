package vellus

import "image"

// epsilon keeps the relative darkness and saturation divisions finite on
// black pixels.
const epsilon = 1e-6

// luminance converts the image to a row major plane of perceptual luminance
// values in [0, 1], using the Rec. 709 channel weights.
func luminance(img *image.NRGBA) []float64 {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	plane := make([]float64, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := y*img.Stride + x*4
			r := float64(img.Pix[i]) / 255.0
			g := float64(img.Pix[i+1]) / 255.0
			b := float64(img.Pix[i+2]) / 255.0

			plane[y*dx+x] = 0.2126*r + 0.7152*g + 0.0722*b
		}
	}
	return plane
}

// saturation converts the image to a row major plane of the saturation
// proxy (max-min)/(max+min), in [0, 1]. Strongly saturated pixels are the
// colorful, non skin like ones the scorer suppresses.
func saturation(img *image.NRGBA) []float64 {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	plane := make([]float64, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := y*img.Stride + x*4
			r := float64(img.Pix[i]) / 255.0
			g := float64(img.Pix[i+1]) / 255.0
			b := float64(img.Pix[i+2]) / 255.0

			max, min := r, r
			if g > max {
				max = g
			}
			if b > max {
				max = b
			}
			if g < min {
				min = g
			}
			if b < min {
				min = b
			}
			plane[y*dx+x] = (max - min) / (max + min + epsilon)
		}
	}
	return plane
}
