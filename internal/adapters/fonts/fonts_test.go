package fonts_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fonts"
	"go.trai.ch/kiln/internal/core/domain"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func glyphs(t *testing.T, data []byte) int {
	t.Helper()
	f, err := sfnt.Parse(data)
	require.NoError(t, err)
	return f.NumGlyphs()
}

func TestWOFF_RoundTrip(t *testing.T) {
	woff, err := fonts.SFNTToWOFF(goregular.TTF)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x774F4646), binary.BigEndian.Uint32(woff))
	assert.Less(t, len(woff), len(goregular.TTF))
	assert.Equal(t, uint32(len(woff)), binary.BigEndian.Uint32(woff[8:]))

	back, err := fonts.WOFFToSFNT(woff)
	require.NoError(t, err)
	assert.Equal(t, glyphs(t, goregular.TTF), glyphs(t, back))

	again, err := fonts.SFNTToWOFF(back)
	require.NoError(t, err)
	assert.Equal(t, woff, again)
}

func TestWOFF_Malformed(t *testing.T) {
	_, err := fonts.WOFFToSFNT([]byte("wOFF"))
	require.Error(t, err)

	_, err = fonts.WOFFToSFNT(make([]byte, 64))
	require.Error(t, err)

	woff, err := fonts.SFNTToWOFF(goregular.TTF)
	require.NoError(t, err)
	_, err = fonts.WOFFToSFNT(woff[:len(woff)/2])
	require.Error(t, err)
}

func TestConverter_FromTTF(t *testing.T) {
	src := domain.Asset{Rel: "Go-Regular.ttf", Contents: goregular.TTF}

	out, err := fonts.NewConverter().Convert(src, []string{"ttf", "woff"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Go-Regular.ttf", out[0].Rel)
	assert.Equal(t, goregular.TTF, out[0].Contents)
	assert.Equal(t, "Go-Regular.woff", out[1].Rel)
	assert.Equal(t, "wOFF", string(out[1].Contents[:4]))
}

func TestConverter_FromWOFF(t *testing.T) {
	woff, err := fonts.SFNTToWOFF(goregular.TTF)
	require.NoError(t, err)

	out, err := fonts.NewConverter().Convert(domain.Asset{Rel: "sub/Go.woff", Contents: woff}, []string{"ttf", "woff"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "sub/Go.ttf", out[0].Rel)
	assert.Equal(t, glyphs(t, goregular.TTF), glyphs(t, out[0].Contents))
	assert.Equal(t, "sub/Go.woff", out[1].Rel)
	assert.Equal(t, woff, out[1].Contents)
}

func TestConverter_PassThrough(t *testing.T) {
	for _, rel := range []string{"a.woff2", "b.eot"} {
		src := domain.Asset{Rel: rel, Contents: []byte("opaque")}
		out, err := fonts.NewConverter().Convert(src, []string{"ttf", "woff"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Asset{src}, out)
	}
}

func TestConverter_Errors(t *testing.T) {
	c := fonts.NewConverter()

	_, err := c.Convert(domain.Asset{Rel: "bad.ttf", Contents: []byte("garbage")}, []string{"woff"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert font")

	_, err = c.Convert(domain.Asset{Rel: "Go.ttf", Contents: goregular.TTF}, []string{"woff2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported font format")
}
