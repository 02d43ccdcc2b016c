package vellus

import "math"

type kernel [3][3]float64

// Sobel gradient kernels.
// See https://en.wikipedia.org/wiki/Sobel_operator
var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelMax is the largest magnitude the kernels can produce on a [0, 1]
// plane, used to normalize magnitudes back into [0, 1].
var sobelMax = math.Sqrt(32)

// sobelPlane computes the normalized gradient magnitude of a row major
// luminance plane. Pixels outside the plane are clamped to the nearest
// border pixel, so the result has the same dimensions as the input.
func sobelPlane(plane []float64, width, height int) []float64 {
	mags := make([]float64, len(plane))

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= width {
			x = width - 1
		}
		if y < 0 {
			y = 0
		} else if y >= height {
			y = height - 1
		}
		return plane[y*width+x]
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumX, sumY float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					px := at(x+kx-1, y+ky-1)
					sumX += px * kernelX[ky][kx]
					sumY += px * kernelY[ky][kx]
				}
			}
			mags[y*width+x] = math.Sqrt(sumX*sumX+sumY*sumY) / sobelMax
		}
	}
	return mags
}
