package vellus

import (
	"errors"
	"math"
)

// ErrDegenerateLandmarks is returned when the three anchor points are
// collinear or coincident, in which case no similarity transform exists.
var ErrDegenerateLandmarks = errors.New("degenerate landmark triple")

// degenerateEps is the smallest acceptable sum of squared centered source
// coordinates. Below it the least squares denominator is considered zero.
const degenerateEps = 1e-9

// Point is a 2D point in image pixel space.
type Point struct {
	X float64
	Y float64
}

// SimilarityTransform is a rotation plus uniform scale plus translation,
// reflection excluded:
//
//	x' = A*x - B*y + Tx
//	y' = B*x + A*y + Ty
type SimilarityTransform struct {
	A  float64
	B  float64
	Tx float64
	Ty float64
}

// FitSimilarity computes the least squares best fit similarity transform
// mapping the source triple (s1, s2, s3) onto the target triple (t1, t2, t3).
// The closed form solution subtracts the centroids, solves for the cos-like
// and sin-like parameters and recovers the translation from the centroids.
func FitSimilarity(s1, s2, s3, t1, t2, t3 Point) (SimilarityTransform, error) {
	src := [3]Point{s1, s2, s3}
	dst := [3]Point{t1, t2, t3}

	var scx, scy, tcx, tcy float64
	for i := 0; i < 3; i++ {
		scx += src[i].X
		scy += src[i].Y
		tcx += dst[i].X
		tcy += dst[i].Y
	}
	scx /= 3
	scy /= 3
	tcx /= 3
	tcy /= 3

	var num, den, cross float64
	for i := 0; i < 3; i++ {
		sx, sy := src[i].X-scx, src[i].Y-scy
		tx, ty := dst[i].X-tcx, dst[i].Y-tcy

		num += sx*tx + sy*ty
		cross += sx*ty - sy*tx
		den += sx*sx + sy*sy
	}

	if den < degenerateEps {
		return SimilarityTransform{}, ErrDegenerateLandmarks
	}

	a := num / den
	b := cross / den

	return SimilarityTransform{
		A:  a,
		B:  b,
		Tx: tcx - a*scx + b*scy,
		Ty: tcy - b*scx - a*scy,
	}, nil
}

// Apply maps the point p through the transform.
func (t SimilarityTransform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X - t.B*p.Y + t.Tx,
		Y: t.B*p.X + t.A*p.Y + t.Ty,
	}
}

// Scale returns the uniform scale factor of the transform.
func (t SimilarityTransform) Scale() float64 {
	return math.Sqrt(t.A*t.A + t.B*t.B)
}

// Invert returns the inverse transform. It fails with ErrDegenerateLandmarks
// when the transform collapses the plane (zero scale).
func (t SimilarityTransform) Invert() (SimilarityTransform, error) {
	s2 := t.A*t.A + t.B*t.B
	if s2 < degenerateEps {
		return SimilarityTransform{}, ErrDegenerateLandmarks
	}

	ia := t.A / s2
	ib := -t.B / s2

	return SimilarityTransform{
		A:  ia,
		B:  ib,
		Tx: -(ia*t.Tx - ib*t.Ty),
		Ty: -(ib*t.Tx + ia*t.Ty),
	}, nil
}
