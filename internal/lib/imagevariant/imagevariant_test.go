package imagevariant

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOfWidth(t *testing.T, w, h int) []byte {
	t.Helper()

	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestResizeAll(t *testing.T) {
	src := pngOfWidth(t, 1000, 500)

	variants, err := ResizeAll(bytes.NewReader(src), []int{200, 800}, imaging.PNG)
	require.NoError(t, err)
	require.Len(t, variants, 2)

	assert.Equal(t, 200, variants[0].Width)
	assert.Equal(t, 800, variants[1].Width)

	decoded, _, err := image.Decode(bytes.NewReader(variants[0].Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dy())
}

func TestResize_SmallSourceKeepsSize(t *testing.T) {
	src := pngOfWidth(t, 120, 80)

	v, err := Resize(bytes.NewReader(src), 800, imaging.JPEG)
	require.NoError(t, err)
	assert.Equal(t, 120, v.Width)
}

func TestResize_NotAnImage(t *testing.T) {
	_, err := Resize(bytes.NewReader([]byte("plain text")), 200, imaging.JPEG)
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("png")
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, f)

	f, err = FormatFor("webp")
	require.NoError(t, err)
	assert.Equal(t, imaging.JPEG, f)

	_, err = FormatFor("bmpx")
	assert.Error(t, err)
}
