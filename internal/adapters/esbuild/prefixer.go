package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StylePrefixer = (*Prefixer)(nil)

// Prefixer adds vendor prefixes and lowers CSS syntax for browser engines.
type Prefixer struct{}

// NewPrefixer creates a new Prefixer.
func NewPrefixer() *Prefixer {
	return &Prefixer{}
}

// Prefix rewrites css for browsers. When css carries a source map the
// result maps back to the original stylesheets.
func (p *Prefixer) Prefix(css domain.Asset, browsers []string) (domain.Asset, error) {
	engines, err := ParseEngines(browsers)
	if err != nil {
		return domain.Asset{}, err
	}

	withMap := len(css.SourceMap) > 0
	res := api.Transform(withInlineMap(css.Contents, css.SourceMap, true), api.TransformOptions{
		Loader:     api.LoaderCSS,
		Engines:    engines,
		Sourcefile: css.Rel,
		Sourcemap:  sourceMapMode(withMap),
		LogLevel:   api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		return domain.Asset{}, zerr.Wrap(syntaxError(css.Rel, res.Errors), domain.ErrStylePrefixFailed.Error())
	}

	css.Contents = res.Code
	css.SourceMap = nil
	if withMap {
		css.SourceMap = res.Map
	}
	return css, nil
}
