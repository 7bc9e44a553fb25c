// Package enhance preprocesses scanned images before OCR. The pipeline
// converts to grayscale, binarizes with Otsu's global threshold, and
// dilates dark regions slightly to reconnect broken glyph strokes.
package enhance

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Config controls the enhancement pipeline.
type Config struct {
	// Binarize applies Otsu thresholding after the grayscale conversion.
	Binarize bool
	// Dilate grows dark regions by one pixel with a 3x3 kernel. Only
	// applied when Binarize is set.
	Dilate bool
	// MaxDimension downscales images whose width or height exceeds this
	// value, preserving aspect ratio. Zero disables downscaling.
	MaxDimension int
}

// DefaultConfig returns the default enhancement settings.
func DefaultConfig() Config {
	return Config{
		Binarize:     true,
		Dilate:       true,
		MaxDimension: 0,
	}
}

// Enhancer preprocesses images for recognition.
type Enhancer struct {
	config Config
}

// New creates an Enhancer with default settings.
func New() *Enhancer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an Enhancer with the given settings.
func NewWithConfig(config Config) *Enhancer {
	return &Enhancer{config: config}
}

// Enhance decodes an image, runs the configured pipeline, and re-encodes
// the result as PNG. JPEG and PNG inputs are accepted.
func (e *Enhancer) Enhance(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	gray := toGray(img)
	if e.config.MaxDimension > 0 {
		gray = downscale(gray, e.config.MaxDimension)
	}
	if e.config.Binarize {
		gray = threshold(gray, otsuThreshold(gray))
		if e.config.Dilate {
			gray = dilate(gray)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// toGray converts any image to 8-bit grayscale.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// downscale shrinks the image so neither dimension exceeds maxDim,
// using Catmull-Rom resampling. Images already within bounds are
// returned unchanged.
func downscale(gray *image.Gray, maxDim int) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return gray
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewGray(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, bounds, draw.Src, nil)
	return dst
}

// otsuThreshold computes the global threshold that minimizes intra-class
// variance of the grayscale histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 128
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumBg    float64
		weightBg int
		bestVar  float64
		best     uint8
	)
	for i := 0; i < 256; i++ {
		weightBg += hist[i]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(i) * float64(hist[i])

		meanBg := sumBg / float64(weightBg)
		meanFg := (sum - sumBg) / float64(weightFg)
		diff := meanBg - meanFg
		between := float64(weightBg) * float64(weightFg) * diff * diff
		if between > bestVar {
			bestVar = between
			best = uint8(i)
		}
	}
	return best
}

// threshold maps pixels at or below t to black and the rest to white.
func threshold(gray *image.Gray, t uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y <= t {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// dilate grows black regions by one pixel using a 3x3 kernel.
func dilate(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := uint8(255)
		neighbors:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X ||
						ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					if gray.GrayAt(nx, ny).Y == 0 {
						v = 0
						break neighbors
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}
