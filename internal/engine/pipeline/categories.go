package pipeline

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// buildStyles merges every stylesheet into the bundle, compiles and prefixes
// it, and writes the result with its source map.
func buildStyles(ctx context.Context, p *Pipeline, files []domain.SourceFile, _ io.Writer) ([]string, error) {
	cfg := p.opts.Config
	base := p.Base()
	opts := ports.StyleOptions{IncludePaths: []string{base}, SourceMap: true}

	compile := func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		return Each(func(a domain.Asset) (domain.Asset, error) {
			return p.tc.StyleCompiler.Compile(ctx, a, opts)
		})(ctx, assets)
	}
	prefix := Each(func(a domain.Asset) (domain.Asset, error) {
		return p.tc.Prefixer.Prefix(a, cfg.Styles.Browsers)
	})

	return p.process(ctx, files, Chain(
		Merge(cfg.Root, base, cfg.Styles.Bundle),
		compile,
		prefix,
		LinkSourceMap(true),
	))
}

// buildScripts transpiles and minifies each script. Source maps are only
// produced in development.
func buildScripts(ctx context.Context, p *Pipeline, files []domain.SourceFile, _ io.Writer) ([]string, error) {
	opts := ports.ScriptOptions{
		Target:    p.opts.Config.Scripts.Target,
		SourceMap: !p.opts.Mode.IsProduction(),
	}

	return p.process(ctx, files, Chain(
		Each(func(a domain.Asset) (domain.Asset, error) {
			return p.tc.Transpiler.Transpile(a, opts)
		}),
		Each(func(a domain.Asset) (domain.Asset, error) {
			return p.tc.ScriptMinifier.Minify(a, opts)
		}),
		When(opts.SourceMap, LinkSourceMap(false)),
	))
}

// buildMarkup rewrites image references and, in production, collapses
// whitespace.
func buildMarkup(ctx context.Context, p *Pipeline, files []domain.SourceFile, _ io.Writer) ([]string, error) {
	return p.process(ctx, files, Chain(
		Each(p.tc.Rewriter.Rewrite),
		When(p.opts.Mode.IsProduction(), Each(p.tc.MarkupMinifier.Minify)),
	))
}

// buildImages runs two passes: WebP variants of raster sources, then a
// recompressed copy of every source. Each pass skips up-to-date outputs.
// A WebP source always owns its output name, so no raster sharing its stem
// is encoded, and of several rasters sharing a stem only the first is.
func buildImages(ctx context.Context, p *Pipeline, files []domain.SourceFile, out io.Writer) ([]string, error) {
	cfg := p.opts.Config

	sources := make(map[string]bool, len(files))
	for _, f := range files {
		sources[f.Rel] = true
	}
	claimed := make(map[string]string, len(files))
	raster := make([]domain.SourceFile, 0, len(files))
	for _, f := range files {
		if !p.tc.Encoder.Supports(strings.ToLower(path.Ext(f.Rel))) {
			continue
		}
		name := webpName(f.Rel)
		if sources[name] {
			_, _ = fmt.Fprintf(out, "skipped WebP for %s: source %s takes precedence\n", f.Rel, name)
			continue
		}
		if owner, ok := claimed[name]; ok {
			_, _ = fmt.Fprintf(out, "skipped WebP for %s: %s already produces %s\n", f.Rel, owner, name)
			continue
		}
		claimed[name] = f.Rel
		raster = append(raster, f)
	}
	stale, err := p.stale(raster, webpName)
	if err != nil {
		return nil, err
	}
	written, err := p.process(ctx, stale, Each(func(a domain.Asset) (domain.Asset, error) {
		return p.tc.Encoder.EncodeWebP(a, cfg.Images.WebPQuality)
	}))
	if err != nil {
		return written, err
	}

	// Second pass: every source, recompressed in its own format.
	files, err = p.tc.Resolver.Resolve(cfg.Root, p.entry.Glob)
	if err != nil {
		return written, err
	}
	stale, err = p.stale(files, sameName)
	if err != nil {
		return written, err
	}
	compressed, err := p.process(ctx, stale, Each(func(a domain.Asset) (domain.Asset, error) {
		return p.tc.Compressor.Compress(a, ports.ImageOptions{JPEGQuality: cfg.Images.JPEGQuality})
	}))
	return append(written, compressed...), err
}

// buildFonts converts each out-of-date font into every configured format.
func buildFonts(ctx context.Context, p *Pipeline, files []domain.SourceFile, _ io.Writer) ([]string, error) {
	stale, err := p.stale(files, sameName)
	if err != nil {
		return nil, err
	}

	formats := p.opts.Config.Fonts.Formats
	return p.process(ctx, stale, func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		out := make([]domain.Asset, 0, len(assets)*len(formats))
		for _, a := range assets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			converted, err := p.tc.Fonts.Convert(a, formats)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil
	})
}
