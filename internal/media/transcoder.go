// Package media turns uploaded images into the stored representation.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// JPEGType is the media type recorded for transcoded images.
const JPEGType = "image/jpeg"

// ErrEmptyUpload is returned for zero-length input.
var ErrEmptyUpload = errors.New("empty image upload")

// ImageTranscoder is the delegate services depend on.
type ImageTranscoder interface {
	Transcode(raw []byte) (domain.Image, error)
}

// Transcoder scales images to a fixed width and re-encodes them as JPEG.
type Transcoder struct {
	width   int
	quality int
}

// NewTranscoder builds a transcoder. Non-positive values fall back to 320px
// and JPEG quality 80.
func NewTranscoder(width, quality int) *Transcoder {
	if width <= 0 {
		width = 320
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Transcoder{width: width, quality: quality}
}

// Transcode decodes raw (jpeg, png, gif or webp), resizes it to the target
// width keeping the aspect ratio and encodes the result.
func (t *Transcoder) Transcode(raw []byte) (domain.Image, error) {
	if len(raw) == 0 {
		return domain.Image{}, ErrEmptyUpload
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return domain.Image{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return domain.Image{}, fmt.Errorf("decode image: zero size")
	}
	height := bounds.Dy() * t.width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, t.width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: t.quality}); err != nil {
		return domain.Image{}, fmt.Errorf("encode image: %w", err)
	}
	return domain.Image{Data: buf.Bytes(), Type: JPEGType}, nil
}
