// Package detector is the reference face detection collaborator of the
// scoring engine. It wraps the pigo cascade classifier and converts its
// detections into the FaceObservation consumed by the engine.
//
// pigo reports a bounding circle (row, column, scale) and, with the puploc
// cascade, the pupil positions. It does not estimate head pose, so the
// yaw and pitch fields of the observation stay unset.
package detector

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	pigo "github.com/esimov/pigo/core"

	"github.com/hautec/vellus"
)

const (
	// qualityThreshold filters out low confidence detections.
	qualityThreshold = 5.0

	// perturbs is the number of perturbations the pupil localizer runs.
	perturbs = 63
)

// ErrNoFace is returned when no face of sufficient quality was detected.
var ErrNoFace = errors.New("no face detected")

// Detector holds the unpacked cascade classifiers.
type Detector struct {
	faceClassifier   *pigo.Pigo
	puplocClassifier *pigo.PuplocCascade
}

// New reads and unpacks the cascade files from the given directory. The
// facefinder cascade is required; the puploc cascade is optional and, when
// present, enables eye landmark localization.
func New(cascadeDir string) (*Detector, error) {
	cascade, err := os.ReadFile(filepath.Join(cascadeDir, "facefinder"))
	if err != nil {
		return nil, fmt.Errorf("error reading the facefinder cascade file: %v", err)
	}

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	faceClassifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the facefinder cascade file: %v", err)
	}

	d := &Detector{faceClassifier: faceClassifier}

	plc, err := os.ReadFile(filepath.Join(cascadeDir, "puploc"))
	if err == nil {
		d.puplocClassifier, err = pigo.NewPuplocCascade().UnpackCascade(plc)
		if err != nil {
			return nil, fmt.Errorf("error unpacking the puploc cascade file: %v", err)
		}
	}

	return d, nil
}

// DetectFace runs the cascade classifier over the image and returns the
// best detection as a FaceObservation. Exactly one face is returned: when
// several are found, the one with the highest detection score wins.
func (d *Detector) DetectFace(img image.Image) (*vellus.FaceObservation, error) {
	pixels := pigo.RgbToGrayscale(img)
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	imgParams := pigo.ImageParams{
		Pixels: pixels,
		Rows:   dy,
		Cols:   dx,
		Dim:    dx,
	}
	cParams := pigo.CascadeParams{
		MinSize:     60,
		MaxSize:     max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: imgParams,
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.faceClassifier.RunCascade(cParams, 0.0)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = d.faceClassifier.ClusterDetections(dets, 0.2)

	best := pigo.Detection{}
	for _, det := range dets {
		if det.Q >= qualityThreshold && det.Q > best.Q {
			best = det
		}
	}
	if best.Scale == 0 {
		return nil, ErrNoFace
	}

	face := &vellus.FaceObservation{
		Box: vellus.BoundingBox{
			Left:   float64(best.Col - best.Scale/2),
			Top:    float64(best.Row - best.Scale/2),
			Width:  float64(best.Scale),
			Height: float64(best.Scale),
		},
	}

	if d.puplocClassifier != nil {
		face.Landmarks.LeftEye = d.detectPupil(best, imgParams, -1)
		face.Landmarks.RightEye = d.detectPupil(best, imgParams, 1)
	}

	return face, nil
}

// detectPupil localizes one pupil inside the detected face region. The side
// is -1 for the left eye and 1 for the right one.
func (d *Detector) detectPupil(face pigo.Detection, imgParams pigo.ImageParams, side int) *vellus.Point {
	puploc := pigo.Puploc{
		Row:      face.Row - int(0.085*float32(face.Scale)),
		Col:      face.Col + side*int(0.185*float32(face.Scale)),
		Scale:    float32(face.Scale) * 0.4,
		Perturbs: perturbs,
	}

	eye := d.puplocClassifier.RunDetector(puploc, imgParams, 0.0, false)
	if eye.Row <= 0 || eye.Col <= 0 {
		return nil
	}
	return &vellus.Point{X: float64(eye.Col), Y: float64(eye.Row)}
}
