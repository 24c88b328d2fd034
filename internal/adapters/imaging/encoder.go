// Package imaging generates WebP variants and recompresses images.
package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/chai2010/webp"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImageEncoder = (*Encoder)(nil)

// Encoder produces lossy WebP variants of PNG and JPEG images.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Supports reports whether ext names a format the encoder can decode.
func (e *Encoder) Supports(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// EncodeWebP decodes img and re-encodes it as WebP at the given quality.
func (e *Encoder) EncodeWebP(img domain.Asset, quality int) (domain.Asset, error) {
	m, _, err := image.Decode(bytes.NewReader(img.Contents))
	if err != nil {
		return domain.Asset{}, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "file", img.Rel)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, m, &webp.Options{Quality: float32(clampQuality(quality))}); err != nil {
		return domain.Asset{}, zerr.With(zerr.Wrap(err, domain.ErrImageEncodeFailed.Error()), "file", img.Rel)
	}

	out := img.WithExt(".webp")
	out.Contents = buf.Bytes()
	return out, nil
}

func clampQuality(q int) int {
	switch {
	case q <= 0:
		return domain.DefaultQuality
	case q > 100:
		return 100
	default:
		return q
	}
}
