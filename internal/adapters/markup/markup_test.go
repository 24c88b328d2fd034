package markup_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/markup"
	"go.trai.ch/kiln/internal/core/domain"
)

func loadPage(t *testing.T) domain.Asset {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "page.html"))
	require.NoError(t, err)
	return domain.Asset{Rel: "index.html", Contents: data}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

func TestWebPRewriter_Golden(t *testing.T) {
	out, err := markup.NewWebPRewriter().Rewrite(loadPage(t))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "rewrite", out.Contents)
}

func TestWebPRewriter_Idempotent(t *testing.T) {
	r := markup.NewWebPRewriter()
	once, err := r.Rewrite(loadPage(t))
	require.NoError(t, err)
	twice, err := r.Rewrite(once)
	require.NoError(t, err)

	assert.Equal(t, string(once.Contents), string(twice.Contents))
}

func TestWebPRewriter_Fragments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "jpeg",
			in:   `<p><img src="a.jpeg"></p>`,
			want: `<p><picture><source srcset="a.webp" type="image/webp"><img src="a.jpeg"></picture></p>`,
		},
		{
			name: "fragment preserved",
			in:   `<img src="sprite.png#icon">`,
			want: `<picture><source srcset="sprite.webp#icon" type="image/webp"><img src="sprite.png#icon"></picture>`,
		},
		{
			name: "gif untouched",
			in:   `<img src="anim.gif">`,
			want: `<img src="anim.gif">`,
		},
		{
			name: "missing src untouched",
			in:   `<img alt="none">`,
			want: `<img alt="none">`,
		},
		{
			name: "uppercase tag keeps original text",
			in:   `<IMG SRC="x.png">`,
			want: `<picture><source srcset="x.webp" type="image/webp"><IMG SRC="x.png"></picture>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := markup.NewWebPRewriter().Rewrite(domain.Asset{Rel: "p.html", Contents: []byte(tt.in)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out.Contents))
		})
	}
}

func TestMinifier_CollapsesWhitespaceOnly(t *testing.T) {
	page := loadPage(t)

	out, err := markup.NewMinifier().Minify(page)
	require.NoError(t, err)

	assert.Less(t, len(out.Contents), len(page.Contents))
	assert.NotContains(t, string(out.Contents), "\n    <")
	assert.Contains(t, string(out.Contents), "<!-- hero -->")
	assert.Equal(t, stripSpace(string(page.Contents)), stripSpace(string(out.Contents)))
}

func TestMinifier_PreservesPreformatted(t *testing.T) {
	page := domain.Asset{Rel: "a.html", Contents: []byte("<pre>  keep\n  this</pre>")}

	out, err := markup.NewMinifier().Minify(page)
	require.NoError(t, err)
	assert.Contains(t, string(out.Contents), "<pre>  keep\n  this</pre>")
}
