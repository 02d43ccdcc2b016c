package vellus

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hautec/vellus/utils"
	"golang.org/x/image/bmp"
)

// DecodeImage decodes an image file to type image.Image after sniffing its
// content type.
func DecodeImage(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %v", err)
	}
	defer file.Close()

	ctype, err := utils.DetectContentType(file.Name())
	if err != nil {
		return nil, err
	}

	if !strings.Contains(ctype.(string), "image") {
		return nil, fmt.Errorf("the source should be an image file")
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %v", err)
	}

	return img, nil
}

// EncodeImage encodes an image to a destination of type io.Writer. The
// encoding is picked from the file extension, defaulting to jpeg for
// non-file writers.
func EncodeImage(w io.Writer, img image.Image) error {
	switch w := w.(type) {
	case *os.File:
		ext := filepath.Ext(w.Name())
		switch ext {
		case "", ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		case ".png":
			return png.Encode(w, img)
		case ".bmp":
			return bmp.Encode(w, img)
		default:
			return errors.New("unsupported image format")
		}
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}
}

// cropRegion copies the pixels of a normalized face box rectangle out of the
// source image. The result is clamped to the image bounds; nil is returned
// when the clamped rectangle is empty.
func cropRegion(src *image.NRGBA, box BoundingBox, rect NormalizedRect) *image.NRGBA {
	r := pixelRect(box, rect).Intersect(src.Bounds())
	if r.Empty() {
		return nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		si := src.PixOffset(r.Min.X, r.Min.Y+y)
		di := dst.PixOffset(0, y)
		copy(dst.Pix[di:di+r.Dx()*4], src.Pix[si:si+r.Dx()*4])
	}
	return dst
}

// pixelRect converts a normalized face box rectangle to absolute pixel
// coordinates.
func pixelRect(box BoundingBox, rect NormalizedRect) image.Rectangle {
	return image.Rect(
		int(box.Left+rect.L*box.Width),
		int(box.Top+rect.T*box.Height),
		int(box.Left+rect.R*box.Width+0.5),
		int(box.Top+rect.B*box.Height+0.5),
	)
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}
	return dst
}
