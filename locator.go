package vellus

import "errors"

// Bounding box relative anchor fallbacks, used when the detector did not
// report a landmark. The fractions approximate the average frontal face.
const (
	fallbackEyeYFrac    = 0.4
	fallbackLeftEyeX    = 0.35
	fallbackRightEyeX   = 0.65
	fallbackMouthYFrac  = 0.75
	fallbackNoseToMouth = 0.18
)

// resolveAnchors produces the three anchor points - left eye, right eye and
// mouth center - preferring the detected landmarks and substituting bounding
// box relative estimates for the missing ones. It never fails.
func resolveAnchors(f *FaceObservation) (eyeL, eyeR, mouth Point) {
	eyeL, eyeR, mouth = boxAnchors(f.Box)

	if p := f.Landmarks.LeftEye; p != nil {
		eyeL = *p
	}
	if p := f.Landmarks.RightEye; p != nil {
		eyeR = *p
	}

	switch {
	case f.Landmarks.LeftMouth != nil && f.Landmarks.RightMouth != nil:
		mouth = Point{
			X: (f.Landmarks.LeftMouth.X + f.Landmarks.RightMouth.X) / 2,
			Y: (f.Landmarks.LeftMouth.Y + f.Landmarks.RightMouth.Y) / 2,
		}
	case f.Landmarks.NoseBase != nil:
		mouth = Point{
			X: f.Landmarks.NoseBase.X,
			Y: f.Landmarks.NoseBase.Y + fallbackNoseToMouth*f.Box.Height,
		}
	}
	return eyeL, eyeR, mouth
}

// boxAnchors returns the pure bounding box relative anchor triple. For any
// box with positive extent the triple is never collinear.
func boxAnchors(b BoundingBox) (eyeL, eyeR, mouth Point) {
	eyeL = Point{X: b.Left + fallbackLeftEyeX*b.Width, Y: b.Top + fallbackEyeYFrac*b.Height}
	eyeR = Point{X: b.Left + fallbackRightEyeX*b.Width, Y: b.Top + fallbackEyeYFrac*b.Height}
	mouth = Point{X: b.Left + 0.5*b.Width, Y: b.Top + fallbackMouthYFrac*b.Height}
	return eyeL, eyeR, mouth
}

// LocateRegions projects the canonical region template onto the detected
// face and returns one normalized rectangle per region, indexed by
// RegionKind. The rectangles are fractions of the face bounding box and are
// always fully contained in the unit square.
//
// The locator never hard fails on a face that passed the quality gate: a
// degenerate landmark triple is retried with the geometric box anchors.
func LocateRegions(f *FaceObservation) ([NumRegions]NormalizedRect, error) {
	eyeL, eyeR, mouth := resolveAnchors(f)

	toImage, err := anchorsToImage(eyeL, eyeR, mouth)
	if errors.Is(err, ErrDegenerateLandmarks) {
		// Detected landmarks collapsed onto a line; the box anchors cannot.
		eyeL, eyeR, mouth = boxAnchors(f.Box)
		toImage, err = anchorsToImage(eyeL, eyeR, mouth)
	}
	if err != nil {
		return [NumRegions]NormalizedRect{}, err
	}

	var rects [NumRegions]NormalizedRect
	for kind, cr := range canonicalRegions {
		// The transform may rotate the rect; take the enclosing axis
		// aligned rectangle of the four mapped corners.
		corners := [4]Point{
			toImage.Apply(Point{X: cr.Left, Y: cr.Top}),
			toImage.Apply(Point{X: cr.Right, Y: cr.Top}),
			toImage.Apply(Point{X: cr.Left, Y: cr.Bottom}),
			toImage.Apply(Point{X: cr.Right, Y: cr.Bottom}),
		}
		l, r := corners[0].X, corners[0].X
		t, b := corners[0].Y, corners[0].Y
		for _, p := range corners[1:] {
			if p.X < l {
				l = p.X
			}
			if p.X > r {
				r = p.X
			}
			if p.Y < t {
				t = p.Y
			}
			if p.Y > b {
				b = p.Y
			}
		}

		rects[kind] = NormalizedRect{
			L: (l - f.Box.Left) / f.Box.Width,
			T: (t - f.Box.Top) / f.Box.Height,
			R: (r - f.Box.Left) / f.Box.Width,
			B: (b - f.Box.Top) / f.Box.Height,
		}.clampUnit()
	}
	return rects, nil
}

// anchorsToImage fits the image anchors against the canonical anchors and
// returns the inverse transform, mapping canonical space back to pixels.
func anchorsToImage(eyeL, eyeR, mouth Point) (SimilarityTransform, error) {
	toCanonical, err := FitSimilarity(
		eyeL, eyeR, mouth,
		canonicalLeftEye, canonicalRightEye, canonicalMouth,
	)
	if err != nil {
		return SimilarityTransform{}, err
	}
	return toCanonical.Invert()
}
