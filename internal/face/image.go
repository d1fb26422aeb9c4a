package face

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kozaktomas/name-that-face/internal/constants"
)

var errTooLarge = errors.New("image dimensions exceed limit")

// ImageDecodeError reports bytes that do not decode as a raster image.
type ImageDecodeError struct {
	Err error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image could not be decoded: %v", e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

// DecodeImage decodes raw bytes and returns the image and its format name.
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &ImageDecodeError{Err: errMissingImage}
	}
	if err := checkDimensions(data); err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &ImageDecodeError{Err: err}
	}
	return img, format, nil
}

// checkDimensions reads only the image header and rejects images whose pixel
// buffer would exceed constants.MaxImagePixels.
func checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &ImageDecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &ImageDecodeError{Err: fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)}
	}
	if int64(cfg.Width)*int64(cfg.Height) > constants.MaxImagePixels {
		return &ImageDecodeError{Err: fmt.Errorf("%w: %dx%d", errTooLarge, cfg.Width, cfg.Height)}
	}
	return nil
}

// IsImage reports whether data decodes as an image.
func IsImage(data []byte) bool {
	_, _, err := DecodeImage(data)
	return err == nil
}

// Thumbnail renders the image scaled to fit within size x size and encodes it as JPEG.
// Images already smaller than size are re-encoded without scaling.
func Thumbnail(data []byte, size int) ([]byte, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var out image.Image = img
	if width > size || height > size {
		var newWidth, newHeight int
		if width > height {
			newWidth = size
			newHeight = max(1, int(float64(height)*float64(size)/float64(width)))
		} else {
			newHeight = size
			newWidth = max(1, int(float64(width)*float64(size)/float64(height)))
		}
		resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		out = resized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
