/*
Package vellus estimates localized facial hair density on a single photograph
by scoring seven anatomically anchored skin regions for the edge and darkness
texture characteristic of fine hair growth.

The package does not detect faces itself: it consumes a FaceObservation
produced by an external detector (a pigo based reference adapter is provided
in the detector subpackage) together with the decoded source image.

The package provides a command line interface, supporting various flags for
the calibration thresholds and the scorer tuning parameters. To check the
supported commands type:

	$ vellus --help

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"fmt"
		"github.com/hautec/vellus"
	)

	func main() {
		s := vellus.NewScanner(vellus.DefaultScorerParams())

		res, err := s.Analyze(img, face, vellus.DefaultThresholds())
		if err != nil {
			fmt.Printf("Error analyzing image: %s", err.Error())
		}

		for _, rs := range res.Regions {
			fmt.Printf("%s: %.2f\n", rs.Kind, rs.Score)
		}
	}
*/
package vellus
