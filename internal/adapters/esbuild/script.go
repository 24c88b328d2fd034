package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ScriptTranspiler = (*Transpiler)(nil)
	_ ports.ScriptMinifier   = (*Minifier)(nil)
)

// Transpiler lowers JavaScript to the configured language level.
type Transpiler struct{}

// NewTranspiler creates a new Transpiler.
func NewTranspiler() *Transpiler {
	return &Transpiler{}
}

// Transpile rewrites script for opts.Target without minifying it.
func (t *Transpiler) Transpile(script domain.Asset, opts ports.ScriptOptions) (domain.Asset, error) {
	target, err := ParseTarget(opts.Target)
	if err != nil {
		return domain.Asset{}, err
	}

	res := api.Transform(string(script.Contents), api.TransformOptions{
		Loader:     api.LoaderJS,
		Target:     target,
		Sourcefile: script.Rel,
		Sourcemap:  sourceMapMode(opts.SourceMap),
		LogLevel:   api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		return domain.Asset{}, zerr.Wrap(syntaxError(script.Rel, res.Errors), domain.ErrScriptTranspileFailed.Error())
	}

	script.Contents = res.Code
	script.SourceMap = res.Map
	return script, nil
}

// Minifier removes whitespace and comments and shortens local identifiers.
type Minifier struct{}

// NewMinifier creates a new Minifier.
func NewMinifier() *Minifier {
	return &Minifier{}
}

// Minify compresses script. A source map carried by script is chained into
// the new one.
func (m *Minifier) Minify(script domain.Asset, opts ports.ScriptOptions) (domain.Asset, error) {
	target, err := ParseTarget(opts.Target)
	if err != nil {
		return domain.Asset{}, err
	}

	input := string(script.Contents)
	if opts.SourceMap {
		input = withInlineMap(script.Contents, script.SourceMap, false)
	}

	res := api.Transform(input, api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            target,
		Sourcefile:        script.Rel,
		Sourcemap:         sourceMapMode(opts.SourceMap),
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		return domain.Asset{}, zerr.Wrap(syntaxError(script.Rel, res.Errors), domain.ErrScriptMinifyFailed.Error())
	}

	script.Contents = res.Code
	script.SourceMap = res.Map
	return script, nil
}
