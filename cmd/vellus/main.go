package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/hautec/vellus"
	"github.com/hautec/vellus/detector"
	"github.com/hautec/vellus/utils"
)

const HelpBanner = `
┬  ┬┌─┐┬  ┬  ┬ ┬┌─┐
└┐┌┘├┤ │  │  │ │└─┐
 └┘ └─┘┴─┘┴─┘└─┘└─┘

Facial hair density estimation.
    Version: %s

`

// pipeName is the file name that indicates stdin is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source image")
	destination = flag.String("out", "", "Debug overlay image destination")
	cascadeDir  = flag.String("cc", "cascade", "Cascade classifier directory")
	configFile  = flag.String("config", "", "YAML calibration file")
	front       = flag.Float64("front", 0.15, "Front region threshold")
	crown       = flag.Float64("crown", 0.15, "Crown region threshold")
	sides       = flag.Float64("sides", 0.15, "Side regions threshold")
	edge        = flag.Float64("edge", 0.55, "Edge score weight")
	darkness    = flag.Float64("darkness", 0.45, "Darkness score weight")
	satPower    = flag.Float64("satpower", 2.0, "Saturation suppression power")
	percentile  = flag.Float64("percentile", 0.25, "Darkness percentile fraction")
	blurRadius  = flag.Int("blur", 4, "Skin baseline blur radius")
	serial      = flag.Bool("serial", false, "Score the regions sequentially")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	thresholds := vellus.ThresholdSet{Front: *front, Crown: *crown, Sides: *sides}
	params := vellus.ScorerParams{
		EdgeWeight:          *edge,
		DarknessWeight:      *darkness,
		SaturationPower:     *satPower,
		PercentileThreshold: *percentile,
		BlurRadius:          *blurRadius,
		SaturationFloor:     vellus.DefaultScorerParams().SaturationFloor,
	}

	if len(*configFile) > 0 {
		if err := loadCalibration(*configFile, &thresholds, &params); err != nil {
			log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
		}
	}

	img, err := loadImage(*source)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ VELLUS", utils.StatusMessage),
		utils.DecorateText("is analyzing the image...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*80, true)
	spinner.Start()

	d, err := detector.New(*cascadeDir)
	if err != nil {
		spinner.Stop()
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	face, err := d.DetectFace(img)
	if err != nil {
		spinner.Stop()
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	scanner := vellus.NewScanner(params)
	scanner.Parallel = !*serial

	res, err := scanner.Analyze(img, face, thresholds)
	spinner.Stop()
	if err != nil {
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	printResult(res)

	if len(*destination) > 0 {
		if err := writeOverlay(*destination, img, face, res); err != nil {
			log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
		}
		fmt.Fprintf(os.Stderr, "\nThe overlay has been saved as: %s %s\n",
			utils.DecorateText(*destination, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// loadImage reads the source image from a local file, an URL or stdin.
func loadImage(src string) (image.Image, error) {
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if tmp != nil {
			defer os.Remove(tmp.Name())
			defer tmp.Close()
		}
		if err != nil {
			return nil, err
		}
		return vellus.DecodeImage(tmp.Name())
	}

	if src == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		img, _, err := image.Decode(os.Stdin)
		return img, err
	}

	return vellus.DecodeImage(src)
}

// printResult displays the per region scores as a colored table.
func printResult(res *vellus.ScanResult) {
	fmt.Printf("\n%-12s %8s %8s\n", "REGION", "SCORE", "STATUS")

	for _, rs := range res.Regions {
		status := utils.DecorateText("✘", utils.ErrorMessage)
		if rs.Passed {
			status = utils.DecorateText("✔", utils.SuccessMessage)
		}
		fmt.Printf("%-12s %8.3f %8s\n", rs.Kind, rs.Score, status)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(res.Elapsed), utils.SuccessMessage))
}

// writeOverlay renders the debug overlay and encodes it to the destination.
func writeOverlay(dst string, img image.Image, face *vellus.FaceObservation, res *vellus.ScanResult) error {
	rects, err := vellus.LocateRegions(face)
	if err != nil {
		return err
	}

	overlay := vellus.DrawResult(img, face, rects, res)

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %v", err)
	}
	defer out.Close()

	return vellus.EncodeImage(out, overlay)
}
