// Package markup rewrites and minifies HTML pages.
package markup

import (
	"bytes"
	"errors"
	"io"
	"path"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
)

var _ ports.MarkupRewriter = (*WebPRewriter)(nil)

// convertible lists the image extensions that get a WebP sibling.
var convertible = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// WebPRewriter wraps convertible <img> elements in a <picture> that offers
// the WebP variant first. Everything else is copied byte for byte.
type WebPRewriter struct{}

// NewWebPRewriter creates a new WebPRewriter.
func NewWebPRewriter() *WebPRewriter {
	return &WebPRewriter{}
}

// Rewrite returns page with its image references rewritten.
func (r *WebPRewriter) Rewrite(page domain.Asset) (domain.Asset, error) {
	z := html.NewTokenizer(bytes.NewReader(page.Contents))
	var out bytes.Buffer
	out.Grow(len(page.Contents))
	pictures := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return domain.Asset{}, zerr.With(zerr.Wrap(z.Err(), domain.ErrMarkupRewriteFailed.Error()), "file", page.Rel)
		}

		// TagName lower-cases the tokenizer buffer in place.
		raw := bytes.Clone(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "picture":
				if tt == html.StartTagToken {
					pictures++
				}
			case "img":
				if pictures > 0 || !hasAttr {
					break
				}
				if variant, ok := webpVariant(imgSrc(z)); ok {
					out.WriteString(`<picture><source srcset="`)
					out.WriteString(html.EscapeString(variant))
					out.WriteString(`" type="image/webp">`)
					out.Write(raw)
					out.WriteString(`</picture>`)
					continue
				}
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "picture" && pictures > 0 {
				pictures--
			}
		}

		out.Write(raw)
	}

	page.Contents = out.Bytes()
	return page, nil
}

func imgSrc(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "src" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

// webpVariant swaps the extension of a convertible image reference for
// .webp, keeping any query or fragment.
func webpVariant(src string) (string, bool) {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
		return "", false
	}

	ref, suffix := src, ""
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		ref, suffix = src[:i], src[i:]
	}

	ext := path.Ext(ref)
	if !convertible[strings.ToLower(ext)] {
		return "", false
	}
	return strings.TrimSuffix(ref, ext) + ".webp" + suffix, true
}
