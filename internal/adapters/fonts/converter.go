// Package fonts converts between SFNT (TrueType/OpenType) and WOFF fonts.
package fonts

import (
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/image/font/sfnt"
)

var _ ports.FontConverter = (*Converter)(nil)

// Converter produces ttf, otf and woff outputs from ttf, otf or woff sources.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert returns one asset per format. woff2 and eot sources, which the
// converter cannot read, are returned unchanged.
func (c *Converter) Convert(font domain.Asset, formats []string) ([]domain.Asset, error) {
	var (
		sfntData []byte
		err      error
	)

	switch font.Ext() {
	case ".ttf", ".otf":
		sfntData = font.Contents
	case ".woff":
		sfntData, err = woffToSFNT(font.Contents)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFontConvertFailed.Error()), "file", font.Rel)
		}
	default:
		return []domain.Asset{font}, nil
	}

	if _, err := sfnt.Parse(sfntData); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFontConvertFailed.Error()), "file", font.Rel)
	}

	out := make([]domain.Asset, 0, len(formats))
	for _, format := range formats {
		format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
		ext := "." + format

		switch {
		case ext == font.Ext():
			out = append(out, font)
		case format == "ttf" || format == "otf":
			a := font.WithExt(ext)
			a.Contents = sfntData
			out = append(out, a)
		case format == "woff":
			w, err := sfntToWOFF(sfntData)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrFontConvertFailed.Error()), "file", font.Rel)
			}
			a := font.WithExt(ext)
			a.Contents = w
			out = append(out, a)
		default:
			return nil, zerr.With(zerr.With(domain.ErrUnsupportedFontFormat, "format", format), "file", font.Rel)
		}
	}
	return out, nil
}
