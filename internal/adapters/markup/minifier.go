package markup

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MarkupMinifier = (*Minifier)(nil)

const mimeHTML = "text/html"

// Minifier collapses insignificant whitespace in HTML. Comments, quotes,
// optional tags and embedded scripts and styles are preserved.
type Minifier struct {
	m *minify.M
}

// NewMinifier creates a new Minifier.
func NewMinifier() *Minifier {
	m := minify.New()
	m.Add(mimeHTML, &html.Minifier{
		KeepComments:        true,
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return &Minifier{m: m}
}

// Minify returns page with whitespace collapsed.
func (m *Minifier) Minify(page domain.Asset) (domain.Asset, error) {
	out, err := m.m.Bytes(mimeHTML, page.Contents)
	if err != nil {
		return domain.Asset{}, zerr.With(zerr.Wrap(err, domain.ErrMarkupMinifyFailed.Error()), "file", page.Rel)
	}
	page.Contents = out
	return page, nil
}
