// Package imaging validates uploaded listing photos and renders preview thumbnails.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxPhotoBytes is the default upper bound on an accepted photo.
const MaxPhotoBytes = 5 << 20

// ThumbnailDimension is the maximum width or height of a preview thumbnail.
const ThumbnailDimension = 480

// JPEGQuality is the compression quality for thumbnail output.
const JPEGQuality = 80

var (
	ErrEmpty    = errors.New("photo is empty")
	ErrNotImage = errors.New("photo is not an image")
	ErrTooLarge = errors.New("photo is too large")
)

// Accept checks that data looks like an image and is no larger than maxBytes.
// The media type is sniffed from the bytes rather than trusted from the
// client. It returns the detected media type.
func Accept(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), maxBytes)
	}

	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, detected)
	}
	return detected, nil
}

// Thumbnail decodes data, downscales it so neither side exceeds maxDim and
// re-encodes it as JPEG.
func Thumbnail(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// PreviewDataURL returns a data: URL holding a thumbnail of data.
func PreviewDataURL(data []byte) (string, error) {
	thumb, err := Thumbnail(data, ThumbnailDimension)
	if err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(thumb), nil
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	// Calculate new dimensions preserving aspect ratio.
	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
