// Stack blur adapted for a single channel float plane, used to obtain the
// smoothed skin baseline. The algorithm is described here:
// http://incubator.quasimondo.com/processing/fast_blur_deluxe.php

package vellus

// stackblurPlane blurs a row major plane with the given radius and returns
// a new plane of the same dimensions. A non positive radius returns a copy
// of the input.
func stackblurPlane(src []float64, width, height, radius int) []float64 {
	dst := make([]float64, len(src))
	if radius <= 0 {
		copy(dst, src)
		return dst
	}

	tmp := make([]float64, len(src))

	// Horizontal pass.
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		blurLine(len(row), radius,
			func(i int) float64 { return row[i] },
			func(i int, v float64) { tmp[y*width+i] = v })
	}

	// Vertical pass.
	for x := 0; x < width; x++ {
		blurLine(height, radius,
			func(i int) float64 { return tmp[i*width+x] },
			func(i int, v float64) { dst[i*width+x] = v })
	}
	return dst
}

// blurLine runs one stack blur pass over a single line. The moving stack
// keeps a triangularly weighted sum which is updated in constant time per
// pixel: the outgoing side loses one sample, the incoming side gains one.
func blurLine(n, radius int, get func(int) float64, set func(int, float64)) {
	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}

	var sum, sumIn, sumOut float64
	for i := -radius; i <= radius; i++ {
		v := get(clampIdx(i))
		weight := radius + 1 - absInt(i)
		sum += v * float64(weight)
		if i <= 0 {
			sumOut += v
		} else {
			sumIn += v
		}
	}

	denom := float64((radius + 1) * (radius + 1))
	for i := 0; i < n; i++ {
		set(i, sum/denom)

		sum -= sumOut
		sumOut -= get(clampIdx(i - radius))

		vin := get(clampIdx(i + radius + 1))
		sumIn += vin
		sum += sumIn

		vmid := get(clampIdx(i + 1))
		sumOut += vmid
		sumIn -= vmid
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
