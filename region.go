package vellus

// RegionKind identifies one of the seven fixed anatomical skin zones
// scored by the engine.
type RegionKind int

const (
	Front RegionKind = iota
	Crown
	LeftSide
	RightSide
	UpperLip
	Chin
	Jawline

	// NumRegions is the fixed number of scored regions.
	NumRegions int = iota
)

// regionNames is indexed by RegionKind.
var regionNames = [NumRegions]string{
	"front",
	"crown",
	"left_side",
	"right_side",
	"upper_lip",
	"chin",
	"jawline",
}

func (k RegionKind) String() string {
	if k < 0 || int(k) >= NumRegions {
		return "unknown"
	}
	return regionNames[k]
}

// CanonicalRect is an axis aligned rectangle expressed in the landmark
// normalized coordinate system, where the inter-eye distance is 1.0, the
// left eye sits at (-0.5, 0), the right eye at (0.5, 0) and the mouth
// center at (0, 0.6). The Y axis grows downwards, like in image space.
type CanonicalRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Canonical anchor points of the region template.
var (
	canonicalLeftEye  = Point{X: -0.5, Y: 0}
	canonicalRightEye = Point{X: 0.5, Y: 0}
	canonicalMouth    = Point{X: 0, Y: 0.6}
)

// canonicalRegions is the single source of truth for the region geometry.
// The values are fixed design constants and are never mutated at runtime.
var canonicalRegions = [NumRegions]CanonicalRect{
	Front:     {Left: -0.35, Top: -0.35, Right: 0.35, Bottom: 0.15},
	Crown:     {Left: -0.45, Top: -1.05, Right: 0.45, Bottom: -0.45},
	LeftSide:  {Left: -0.95, Top: -0.15, Right: -0.55, Bottom: 0.55},
	RightSide: {Left: 0.55, Top: -0.15, Right: 0.95, Bottom: 0.55},
	UpperLip:  {Left: -0.25, Top: 0.38, Right: 0.25, Bottom: 0.56},
	Chin:      {Left: -0.22, Top: 0.68, Right: 0.22, Bottom: 1.0},
	Jawline:   {Left: -0.6, Top: 0.55, Right: 0.6, Bottom: 0.95},
}

// NormalizedRect expresses a rectangle as a fraction of the face bounding
// box. All components are kept inside [0, 1].
type NormalizedRect struct {
	L float64
	T float64
	R float64
	B float64
}

// clampUnit constrains all rectangle components into the unit interval and
// restores the L <= R, T <= B ordering if the clamping collapsed an edge.
func (r NormalizedRect) clampUnit() NormalizedRect {
	c := NormalizedRect{
		L: clamp(r.L, 0, 1),
		T: clamp(r.T, 0, 1),
		R: clamp(r.R, 0, 1),
		B: clamp(r.B, 0, 1),
	}
	if c.L > c.R {
		c.L, c.R = c.R, c.L
	}
	if c.T > c.B {
		c.T, c.B = c.B, c.T
	}
	return c
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
