package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/imaging"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	xwebp "golang.org/x/image/webp"
)

func gradient(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			m.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return m
}

func noise(w, h int) *image.RGBA {
	r := rand.New(rand.NewPCG(1, 2))
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = uint8(r.UintN(256))
	}
	return m
}

func encodePNG(t *testing.T, m image.Image, level png.CompressionLevel) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	require.NoError(t, enc.Encode(&buf, m))
	return buf.Bytes()
}

func TestEncoder_Supports(t *testing.T) {
	e := imaging.NewEncoder()
	for ext, want := range map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".svg":  false,
		".webp": false,
		".gif":  false,
	} {
		assert.Equal(t, want, e.Supports(ext), ext)
	}
}

func TestEncoder_EncodeWebP(t *testing.T) {
	src := domain.Asset{Rel: "photos/cat.png", Contents: encodePNG(t, gradient(64, 32), png.DefaultCompression)}

	out, err := imaging.NewEncoder().EncodeWebP(src, 75)
	require.NoError(t, err)
	assert.Equal(t, "photos/cat.webp", out.Rel)

	m, err := xwebp.Decode(bytes.NewReader(out.Contents))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), m.Bounds())
}

func TestEncoder_RejectsCorruptInput(t *testing.T) {
	_, err := imaging.NewEncoder().EncodeWebP(domain.Asset{Rel: "bad.jpg", Contents: []byte("not a jpeg")}, 75)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image")
}

func TestCompressor_PNG(t *testing.T) {
	raw := encodePNG(t, gradient(128, 128), png.NoCompression)

	out, err := imaging.NewCompressor().Compress(domain.Asset{Rel: "g.png", Contents: raw}, ports.ImageOptions{})
	require.NoError(t, err)
	assert.Less(t, len(out.Contents), len(raw))

	m, err := png.Decode(bytes.NewReader(out.Contents))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), m.Bounds())
}

func TestCompressor_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noise(96, 96), &jpeg.Options{Quality: 100}))
	raw := buf.Bytes()

	out, err := imaging.NewCompressor().Compress(domain.Asset{Rel: "n.jpg", Contents: raw}, ports.ImageOptions{JPEGQuality: 40})
	require.NoError(t, err)
	assert.Less(t, len(out.Contents), len(raw))
}

func TestCompressor_NeverGrows(t *testing.T) {
	raw := encodePNG(t, noise(16, 16), png.BestCompression)

	out, err := imaging.NewCompressor().Compress(domain.Asset{Rel: "n.png", Contents: raw}, ports.ImageOptions{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out.Contents), len(raw))
}

func TestCompressor_SVG(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!-- exported -->
<svg xmlns="http://www.w3.org/2000/svg"   width="10"   height="10">
    <rect x="0.000" y="0.000" width="10" height="10" fill="#ff0000"/>
</svg>
`)

	out, err := imaging.NewCompressor().Compress(domain.Asset{Rel: "icon.svg", Contents: raw}, ports.ImageOptions{})
	require.NoError(t, err)
	assert.Less(t, len(out.Contents), len(raw))
	assert.NotContains(t, string(out.Contents), "exported")
	assert.Contains(t, string(out.Contents), "<svg")
}

func TestCompressor_WebPPassThrough(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, gradient(8, 8), &webp.Options{Quality: 75}))

	c := imaging.NewCompressor()
	out, err := c.Compress(domain.Asset{Rel: "a.webp", Contents: buf.Bytes()}, ports.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), out.Contents)

	_, err = c.Compress(domain.Asset{Rel: "b.webp", Contents: []byte("RIFF")}, ports.ImageOptions{})
	require.Error(t, err)
}

func TestCompressor_UnknownFormatPassesThrough(t *testing.T) {
	raw := []byte("GIF89a")
	out, err := imaging.NewCompressor().Compress(domain.Asset{Rel: "a.gif", Contents: raw}, ports.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, raw, out.Contents)
}
