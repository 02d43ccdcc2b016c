package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hautec/vellus"
)

// calibration mirrors the YAML calibration file. Zero values fall back to
// the flag supplied (or default) settings.
type calibration struct {
	Thresholds struct {
		Front float64 `yaml:"front"`
		Crown float64 `yaml:"crown"`
		Sides float64 `yaml:"sides"`
	} `yaml:"thresholds"`

	Scorer struct {
		EdgeWeight          float64 `yaml:"edge_weight"`
		DarknessWeight      float64 `yaml:"darkness_weight"`
		SaturationPower     float64 `yaml:"saturation_power"`
		PercentileThreshold float64 `yaml:"percentile_threshold"`
		BlurRadius          int     `yaml:"blur_radius"`
		SaturationFloor     float64 `yaml:"saturation_floor"`
	} `yaml:"scorer"`
}

// loadCalibration reads the YAML calibration file and overlays its non zero
// values onto the given thresholds and scorer parameters.
func loadCalibration(path string, t *vellus.ThresholdSet, p *vellus.ScorerParams) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read the calibration file: %v", err)
	}

	var c calibration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("unable to parse the calibration file: %v", err)
	}

	if c.Thresholds.Front > 0 {
		t.Front = c.Thresholds.Front
	}
	if c.Thresholds.Crown > 0 {
		t.Crown = c.Thresholds.Crown
	}
	if c.Thresholds.Sides > 0 {
		t.Sides = c.Thresholds.Sides
	}

	if c.Scorer.EdgeWeight > 0 {
		p.EdgeWeight = c.Scorer.EdgeWeight
	}
	if c.Scorer.DarknessWeight > 0 {
		p.DarknessWeight = c.Scorer.DarknessWeight
	}
	if c.Scorer.SaturationPower > 0 {
		p.SaturationPower = c.Scorer.SaturationPower
	}
	if c.Scorer.PercentileThreshold > 0 {
		p.PercentileThreshold = c.Scorer.PercentileThreshold
	}
	if c.Scorer.BlurRadius > 0 {
		p.BlurRadius = c.Scorer.BlurRadius
	}
	if c.Scorer.SaturationFloor > 0 {
		p.SaturationFloor = c.Scorer.SaturationFloor
	}
	return nil
}
