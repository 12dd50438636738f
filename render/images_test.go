package render

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, width, height int, alpha uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 50, B: 50, A: alpha})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImage_ResizesWideImages(t *testing.T) {
	data := pngBytes(t, 1000, 400, 255)

	out, err := ProcessImage(data, 500)
	if err != nil {
		t.Fatalf("ProcessImage error: %v", err)
	}
	cfgOut, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("could not decode processed image: %v", err)
	}
	if cfgOut.Width != 500 {
		t.Fatalf("expected width 500, got %d", cfgOut.Width)
	}
	if cfgOut.Height != 200 {
		t.Fatalf("aspect ratio not preserved: height %d", cfgOut.Height)
	}
	if format != "jpeg" {
		t.Fatalf("opaque image should encode as jpeg, got %s", format)
	}
}

func TestProcessImage_KeepsNarrowImagesAtSize(t *testing.T) {
	data := pngBytes(t, 300, 200, 255)

	out, err := ProcessImage(data, 500)
	if err != nil {
		t.Fatalf("ProcessImage error: %v", err)
	}
	cfgOut, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("could not decode processed image: %v", err)
	}
	if cfgOut.Width != 300 || cfgOut.Height != 200 {
		t.Fatalf("narrow image should keep its size, got %dx%d", cfgOut.Width, cfgOut.Height)
	}
}

func TestProcessImage_TransparencyStaysPNG(t *testing.T) {
	data := pngBytes(t, 800, 400, 128)

	out, err := ProcessImage(data, 500)
	if err != nil {
		t.Fatalf("ProcessImage error: %v", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("could not decode processed image: %v", err)
	}
	if format != "png" {
		t.Fatalf("image with alpha should encode as png, got %s", format)
	}
}

func TestProcessImage_RejectsGarbage(t *testing.T) {
	if _, err := ProcessImage([]byte("not an image"), 500); err == nil {
		t.Fatalf("expected an error for undecodable input")
	}
}
