package imaging

import (
	"bytes"
	"image/jpeg"
	"image/png"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	xwebp "golang.org/x/image/webp"
)

var _ ports.ImageCompressor = (*Compressor)(nil)

const mimeSVG = "image/svg+xml"

// Compressor recompresses images in their own format and keeps whichever
// encoding is smaller.
type Compressor struct {
	m *minify.M
}

// NewCompressor creates a new Compressor.
func NewCompressor() *Compressor {
	m := minify.New()
	m.AddFunc(mimeSVG, svg.Minify)
	return &Compressor{m: m}
}

// Compress returns img recompressed. Formats without a lossless or
// quality-bounded encoder are validated and passed through.
func (c *Compressor) Compress(img domain.Asset, opts ports.ImageOptions) (domain.Asset, error) {
	var (
		out []byte
		err error
	)

	switch img.Ext() {
	case ".png":
		out, err = c.png(img.Contents)
	case ".jpg", ".jpeg":
		out, err = c.jpeg(img.Contents, opts.JPEGQuality)
	case ".svg":
		out, err = c.m.Bytes(mimeSVG, img.Contents)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrImageEncodeFailed.Error())
		}
	case ".webp":
		// Already encoded by the WebP step or shipped as-is.
		if _, err = xwebp.DecodeConfig(bytes.NewReader(img.Contents)); err != nil {
			err = zerr.Wrap(err, domain.ErrImageDecodeFailed.Error())
		}
	}
	if err != nil {
		return domain.Asset{}, zerr.With(err, "file", img.Rel)
	}

	if out != nil && len(out) < len(img.Contents) {
		img.Contents = out
	}
	return img, nil
}

func (c *Compressor) png(data []byte) ([]byte, error) {
	m, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageDecodeFailed.Error())
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, m); err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageEncodeFailed.Error())
	}
	return buf.Bytes(), nil
}

func (c *Compressor) jpeg(data []byte, quality int) ([]byte, error) {
	m, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageDecodeFailed.Error())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, m, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageEncodeFailed.Error())
	}
	return buf.Bytes(), nil
}
