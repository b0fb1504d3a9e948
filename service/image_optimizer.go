package service

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// MaxAnnotationDimension is the longest side sent to the vision model
	MaxAnnotationDimension = 1024
	annotationJPEGQuality  = 85
)

// OptimizeImage decodes a photo (PNG, JPEG, GIF, BMP, TIFF), fits it into maxDim x maxDim
// and re-encodes it as JPEG. Smaller photos are only re-encoded.
func OptimizeImage(imageData []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = MaxAnnotationDimension
	}
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		zap.S().Debugf("🔄 Resized image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: annotationJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
