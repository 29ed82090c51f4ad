// Package imagevariant produces resized renditions of uploaded images.
package imagevariant

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Variant is one resized rendition of a source image.
type Variant struct {
	Width int
	Data  []byte
}

// Resize decodes src and returns a rendition no wider than width, encoded in the given format.
// Sources narrower than width are re-encoded at their original size.
func Resize(src io.Reader, width int, format imaging.Format) (Variant, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return Variant{}, fmt.Errorf("decode image: %w", err)
	}

	return encode(resizeImage(img, width), format)
}

// ResizeAll decodes src once and renders every requested width.
func ResizeAll(src io.Reader, widths []int, format imaging.Format) ([]Variant, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	out := make([]Variant, 0, len(widths))
	for _, w := range widths {
		v, err := encode(resizeImage(img, w), format)
		if err != nil {
			return nil, fmt.Errorf("render %dpx: %w", w, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatFor maps a stored file extension to an encoder format.
func FormatFor(ext string) (imaging.Format, error) {
	switch ext {
	case "webp":
		// no webp encoder without cgo; variants of webp sources are stored as jpeg
		return imaging.JPEG, nil
	}
	return imaging.FormatFromExtension(ext)
}

func resizeImage(img image.Image, width int) image.Image {
	if img.Bounds().Dx() <= width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

func encode(img image.Image, format imaging.Format) (Variant, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return Variant{}, fmt.Errorf("encode image: %w", err)
	}
	return Variant{Width: img.Bounds().Dx(), Data: buf.Bytes()}, nil
}
