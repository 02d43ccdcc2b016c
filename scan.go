package vellus

import (
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"
)

// scanState tracks the progress of a single analysis.
type scanState int

const (
	stateValidating scanState = iota
	stateLocating
	stateScoring
	stateComplete
	stateFailed
)

// ErrNoImage is returned when the analysis is invoked without a decoded
// source image.
var ErrNoImage = errors.New("no source image")

// ThresholdSet holds the three calibrated pass thresholds supplied per
// analysis. The sides threshold applies to both side regions and to the
// jawline; the upper lip and chin thresholds are derived from the front
// threshold (see thresholdFor), keeping the number of user visible
// calibration knobs at three.
type ThresholdSet struct {
	Front float64
	Crown float64
	Sides float64
}

// DefaultThresholds returns the uncalibrated threshold defaults.
func DefaultThresholds() ThresholdSet {
	return ThresholdSet{Front: 0.15, Crown: 0.15, Sides: 0.15}
}

// thresholdFor selects the pass threshold of a region.
func (t ThresholdSet) thresholdFor(kind RegionKind) float64 {
	switch kind {
	case Front:
		return t.Front
	case Crown:
		return t.Crown
	case UpperLip:
		return clamp(t.Front*1.25, 0.70, 0.95)
	case Chin:
		return clamp(t.Front*0.75, 0.50, 0.65)
	default:
		return t.Sides
	}
}

// RegionScore is the outcome of scoring a single region.
type RegionScore struct {
	Kind   RegionKind
	Score  float64
	Passed bool
}

// ScanResult holds one RegionScore per region in canonical order, plus the
// elapsed analysis time. The engine retains no reference to it after return.
type ScanResult struct {
	Regions [NumRegions]RegionScore
	Elapsed time.Duration
}

// Scanner sequences quality gate, region location, per region cropping and
// scoring into a complete analysis. A Scanner is stateless between calls
// and safe for concurrent use.
type Scanner struct {
	Params ScorerParams

	// Parallel enables scoring the seven regions concurrently. The regions
	// are mutually independent: each reads the shared source buffer and
	// writes only its own result slot.
	Parallel bool

	// scoreFn computes the density score of one cropped region.
	scoreFn func(*image.NRGBA, ScorerParams) (float64, error)
}

// NewScanner returns a Scanner with the given scorer parameters and
// parallel region scoring enabled.
func NewScanner(params ScorerParams) *Scanner {
	return &Scanner{Params: params, Parallel: true, scoreFn: ScoreRegion}
}

// scan carries the state of one analysis run.
type scan struct {
	state scanState
}

// fail moves the run into its failed terminal state.
func (r *scan) fail(err error) error {
	r.state = stateFailed
	return err
}

// Analyze runs a full scan of the detected face on the source image and
// returns either a complete seven entry result or a single failure reason.
// Per region failures are absorbed: a region that cannot be scored degrades
// to score 0 and passed=false instead of aborting the scan.
func (s *Scanner) Analyze(img image.Image, face *FaceObservation, thresholds ThresholdSet) (*ScanResult, error) {
	start := time.Now()
	run := &scan{state: stateValidating}

	if img == nil {
		return nil, run.fail(ErrNoImage)
	}
	if face == nil {
		return nil, run.fail(&FaceQualityError{Reason: "no face observation"})
	}
	if err := face.CheckQuality(); err != nil {
		return nil, run.fail(err)
	}

	run.state = stateLocating
	rects, err := LocateRegions(face)
	if err != nil {
		// Unreachable for a quality passed face; treated as an internal
		// failure of the whole analysis.
		return nil, run.fail(fmt.Errorf("locating regions: %w", err))
	}

	run.state = stateScoring
	src := imgToNRGBA(img)

	res := &ScanResult{}
	score := func(kind RegionKind) {
		threshold := thresholds.thresholdFor(kind)
		value := s.scoreOne(src, face.Box, rects[kind])

		res.Regions[kind] = RegionScore{
			Kind:   kind,
			Score:  value,
			Passed: value >= threshold,
		}
	}

	if s.Parallel {
		var g errgroup.Group
		for kind := 0; kind < NumRegions; kind++ {
			kind := RegionKind(kind)
			g.Go(func() error {
				score(kind)
				return nil
			})
		}
		// The workers report no errors; per region failures are already
		// degraded to zero scores.
		_ = g.Wait()
	} else {
		for kind := 0; kind < NumRegions; kind++ {
			score(RegionKind(kind))
		}
	}

	run.state = stateComplete
	res.Elapsed = time.Since(start)
	return res, nil
}

// scoreOne crops one region out of the source image and scores it. Any
// failure, including a panic inside the scorer, degrades to a zero score.
func (s *Scanner) scoreOne(src *image.NRGBA, box BoundingBox, rect NormalizedRect) (value float64) {
	defer func() {
		if recover() != nil {
			value = 0
		}
	}()

	crop := cropRegion(src, box, rect)
	if crop == nil {
		return 0
	}
	if crop.Bounds().Dx() < minScorableSize || crop.Bounds().Dy() < minScorableSize {
		return 0
	}

	scoreFn := s.scoreFn
	if scoreFn == nil {
		scoreFn = ScoreRegion
	}
	score, err := scoreFn(crop, s.Params)
	if err != nil {
		return 0
	}
	return score
}
