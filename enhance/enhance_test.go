package enhance

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG renders a grayscale test image to PNG bytes.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

// decodeGray decodes PNG bytes back into a grayscale image.
func decodeGray(t *testing.T, data []byte) *image.Gray {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		b := img.Bounds()
		gray = image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				gray.Set(x, y, img.At(x, y))
			}
		}
	}
	return gray
}

func TestEnhanceRejectsGarbage(t *testing.T) {
	e := New()
	if _, err := e.Enhance([]byte("not an image")); err == nil {
		t.Error("Enhance() on garbage input should fail")
	}
}

func TestEnhanceBinarizes(t *testing.T) {
	// Half dark, half light: Otsu should split the two populations so
	// the output contains only pure black and pure white.
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(40)
			if x >= 5 {
				v = 210
			}
			src.SetGray(x, y, color.Gray{Y: v})
		}
	}

	out, err := New().Enhance(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Enhance() failed: %v", err)
	}

	gray := decodeGray(t, out)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := gray.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
	if gray.GrayAt(0, 5).Y != 0 {
		t.Error("dark half should binarize to black")
	}
	if gray.GrayAt(9, 5).Y != 255 {
		t.Error("light half should binarize to white")
	}
}

func TestEnhanceDilateGrowsDarkRegions(t *testing.T) {
	// A single dark pixel in a light field should grow to a 3x3 block.
	src := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			src.SetGray(x, y, color.Gray{Y: 230})
		}
	}
	src.SetGray(4, 4, color.Gray{Y: 10})

	out, err := New().Enhance(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Enhance() failed: %v", err)
	}

	gray := decodeGray(t, out)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if gray.GrayAt(4+dx, 4+dy).Y != 0 {
				t.Errorf("pixel (%d,%d) = %d, want 0 after dilation",
					4+dx, 4+dy, gray.GrayAt(4+dx, 4+dy).Y)
			}
		}
	}
	if gray.GrayAt(0, 0).Y != 255 {
		t.Error("far corner should stay white")
	}
}

func TestEnhanceDownscales(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	e := NewWithConfig(Config{MaxDimension: 50})
	out, err := e.Enhance(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Enhance() failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("dimensions = %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestEnhanceNoOpConfig(t *testing.T) {
	// With everything disabled the pipeline is just grayscale + re-encode.
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(60 * y)})
		}
	}

	e := NewWithConfig(Config{})
	out, err := e.Enhance(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Enhance() failed: %v", err)
	}

	gray := decodeGray(t, out)
	if gray.Bounds() != src.Bounds() {
		t.Errorf("bounds changed: %v -> %v", src.Bounds(), gray.Bounds())
	}
	if gray.GrayAt(0, 2).Y != 120 {
		t.Errorf("pixel value changed: got %d, want 120", gray.GrayAt(0, 2).Y)
	}
}

func TestOtsuThresholdBimodal(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 2))
	for x := 0; x < 10; x++ {
		gray.SetGray(x, 0, color.Gray{Y: 50})
		gray.SetGray(x, 1, color.Gray{Y: 200})
	}

	got := otsuThreshold(gray)
	if got < 50 || got >= 200 {
		t.Errorf("otsuThreshold() = %d, want a value between the two modes", got)
	}
}
