package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ProcessImage resizes an image to at most maxWidth pixels wide (aspect
// ratio preserved, Lanczos) and re-encodes it: PNG when the source has
// transparency, JPEG quality 90 otherwise. The lossy path is a size
// tradeoff for photo-heavy reports, not a correctness requirement.
func ProcessImage(data []byte, maxWidth int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	opaque := isOpaque(img)

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if opaque {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90))
	} else {
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}
