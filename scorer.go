package vellus

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	// minRegionSize is the smallest region edge the scorer accepts.
	minRegionSize = 3

	// minScorableSize is the practical minimum below which the orchestrator
	// records a zero score without invoking the scorer at all.
	minScorableSize = 5

	// edgePercentile is the robust per scale threshold used for the
	// persistence measure: a pixel persists at a scale when its gradient
	// magnitude exceeds this percentile of the scale's magnitudes.
	edgePercentile = 0.8

	// contribPercentile normalizes the edge score sum, making it robust to
	// a handful of extreme pixels such as specular highlights.
	contribPercentile = 0.95
)

// scaleFactors are the downsampling factors of the multi scale edge
// analysis. Scale 1 catches fine vellus hair, the coarser scales catch
// terminal hair.
var scaleFactors = []int{1, 2, 4}

// InvalidRegionError reports a malformed pixel region handed to the scorer.
type InvalidRegionError struct {
	Width  int
	Height int
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region: %dx%d", e.Width, e.Height)
}

// ScorerParams are the tunable parameters of the region scorer.
// EdgeWeight and DarknessWeight are renormalized proportionally when the
// pair does not sum to 1.
type ScorerParams struct {
	EdgeWeight          float64
	DarknessWeight      float64
	SaturationPower     float64
	PercentileThreshold float64

	// BlurRadius of the stack blur producing the skin baseline.
	BlurRadius int

	// SaturationFloor keeps strongly saturated pixels suppressed but never
	// fully zeroed.
	SaturationFloor float64
}

// DefaultScorerParams returns the calibrated default parameter set.
func DefaultScorerParams() ScorerParams {
	return ScorerParams{
		EdgeWeight:          0.55,
		DarknessWeight:      0.45,
		SaturationPower:     2.0,
		PercentileThreshold: 0.25,
		BlurRadius:          4,
		SaturationFloor:     0.05,
	}
}

// normalizedWeights returns the edge and darkness weights scaled so they
// sum to 1. A degenerate pair falls back to the defaults.
func (p ScorerParams) normalizedWeights() (edge, darkness float64) {
	sum := p.EdgeWeight + p.DarknessWeight
	if sum <= 0 {
		d := DefaultScorerParams()
		return d.EdgeWeight, d.DarknessWeight
	}
	return p.EdgeWeight / sum, p.DarknessWeight / sum
}

// ScoreRegion converts a cropped pixel region into a hair density score in
// [0, 1] by combining multi scale edge strength, skin relative darkness and
// color saturation suppression.
func ScoreRegion(region *image.NRGBA, params ScorerParams) (float64, error) {
	if region == nil || len(region.Pix) == 0 {
		return 0, &InvalidRegionError{}
	}
	dx, dy := region.Bounds().Dx(), region.Bounds().Dy()
	if dx < minRegionSize || dy < minRegionSize {
		return 0, &InvalidRegionError{Width: dx, Height: dy}
	}

	edgeWeight, darknessWeight := params.normalizedWeights()

	lum := luminance(region)
	sat := saturation(region)

	// The blurred luminance approximates the bare skin tone absent fine
	// texture; measuring darkness against it makes the score robust to
	// global skin tone and lighting.
	baseline := stackblurPlane(lum, dx, dy, params.BlurRadius)

	darkness := make([]float64, len(lum))
	for i := range lum {
		d := (baseline[i] - lum[i]) / (baseline[i] + epsilon)
		if d > 0 {
			darkness[i] = d
		}
	}

	maxMag, persistence := multiScaleEdges(lum, dx, dy)

	var contribs []float64
	for i := range lum {
		if maxMag[i] <= 0 || darkness[i] <= 0 {
			continue
		}
		boost := math.Pow(1-sat[i], params.SaturationPower)
		if boost < params.SaturationFloor {
			boost = params.SaturationFloor
		}
		contribs = append(contribs, maxMag[i]*darkness[i]*boost*(1+persistence[i]))
	}

	darknessScore := clamp(topFractionMean(darkness, params.PercentileThreshold), 0, 1)

	var edgeScore float64
	if len(contribs) > 0 {
		p95 := percentile(contribs, contribPercentile)
		if p95 > epsilon {
			var sum float64
			for _, c := range contribs {
				sum += c
			}
			edgeScore = clamp(sum/(float64(len(contribs))*p95), 0, 1)
		}
	}

	return clamp(edgeWeight*edgeScore+darknessWeight*darknessScore, 0, 1), nil
}

// multiScaleEdges computes, per base resolution pixel, the maximum gradient
// magnitude across the analyzed scales and the fraction of scales at which
// the magnitude exceeded the robust per scale threshold.
func multiScaleEdges(lum []float64, dx, dy int) (maxMag, persistence []float64) {
	maxMag = make([]float64, len(lum))
	exceeds := make([]int, len(lum))

	var gray *image.Gray
	scales := 0

	for _, factor := range scaleFactors {
		sw, sh := dx/factor, dy/factor
		if sw < minRegionSize || sh < minRegionSize {
			continue
		}
		scales++

		plane := lum
		if factor > 1 {
			if gray == nil {
				gray = planeToGray(lum, dx, dy)
			}
			small := imaging.Resize(gray, sw, sh, imaging.Box)
			plane = luminance(small)
		}

		mags := sobelPlane(plane, sw, sh)
		threshold := percentile(mags, edgePercentile)

		// Resample the coarse magnitudes back to the base resolution by
		// nearest neighbor lookup.
		for y := 0; y < dy; y++ {
			sy := y * sh / dy
			for x := 0; x < dx; x++ {
				sx := x * sw / dx
				i := y*dx + x

				m := mags[sy*sw+sx]
				if m > maxMag[i] {
					maxMag[i] = m
				}
				if m > threshold && threshold > 0 {
					exceeds[i]++
				}
			}
		}
	}

	persistence = make([]float64, len(lum))
	if scales > 0 {
		for i, n := range exceeds {
			persistence[i] = float64(n) / float64(scales)
		}
	}
	return maxMag, persistence
}

// planeToGray converts a row major [0, 1] plane into a grayscale image so
// the imaging package can resize it.
func planeToGray(plane []float64, dx, dy int) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			gray.Pix[y*gray.Stride+x] = uint8(clamp(plane[y*dx+x], 0, 1)*255 + 0.5)
		}
	}
	return gray
}

// percentile returns the q-th percentile of the values using the nearest
// rank method. It copies the input, leaving the caller's slice untouched.
func percentile(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	idx := int(clamp(q, 0, 1) * float64(len(sorted)-1))
	return sorted[idx]
}

// topFractionMean returns the mean of the largest fraction of the values.
// At least one value is always taken.
func topFractionMean(vals []float64, fraction float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	n := int(clamp(fraction, 0, 1) * float64(len(sorted)))
	if n < 1 {
		n = 1
	}

	var sum float64
	for _, v := range sorted[:n] {
		sum += v
	}
	return sum / float64(n)
}
