package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

//go:generate mockgen -source=transform.go -destination=mocks/mock_transform.go -package=mocks

// StyleOptions configures stylesheet compilation.
type StyleOptions struct {
	// IncludePaths are searched when resolving @use and @import.
	IncludePaths []string
	SourceMap    bool
}

// StyleCompiler compiles a SCSS unit into CSS.
type StyleCompiler interface {
	// Compile returns the CSS asset for unit, named with a .css extension.
	// Syntax errors are reported as *domain.SyntaxError.
	Compile(ctx context.Context, unit domain.Asset, opts StyleOptions) (domain.Asset, error)
}

// StylePrefixer adds vendor prefixes for the given browser targets.
type StylePrefixer interface {
	Prefix(css domain.Asset, browsers []string) (domain.Asset, error)
}

// ScriptOptions configures script transformation.
type ScriptOptions struct {
	// Target is the language level, e.g. "es2015".
	Target    string
	SourceMap bool
}

// ScriptTranspiler lowers modern syntax to the configured target.
type ScriptTranspiler interface {
	// Transpile reports syntax errors as *domain.SyntaxError.
	Transpile(script domain.Asset, opts ScriptOptions) (domain.Asset, error)
}

// ScriptMinifier strips whitespace and comments and shortens identifiers.
type ScriptMinifier interface {
	Minify(script domain.Asset, opts ScriptOptions) (domain.Asset, error)
}

// MarkupRewriter rewrites image references to prefer WebP variants.
type MarkupRewriter interface {
	Rewrite(page domain.Asset) (domain.Asset, error)
}

// MarkupMinifier collapses insignificant whitespace.
type MarkupMinifier interface {
	Minify(page domain.Asset) (domain.Asset, error)
}

// ImageEncoder produces WebP variants of raster images.
type ImageEncoder interface {
	// Supports reports whether the source extension can be encoded.
	Supports(ext string) bool
	// EncodeWebP returns the WebP asset named with a .webp extension.
	EncodeWebP(img domain.Asset, quality int) (domain.Asset, error)
}

// ImageOptions configures image compression.
type ImageOptions struct {
	JPEGQuality int
}

// ImageCompressor shrinks images without changing their format.
type ImageCompressor interface {
	// Compress never returns an asset larger than its input.
	Compress(img domain.Asset, opts ImageOptions) (domain.Asset, error)
}

// FontConverter generates web font formats.
type FontConverter interface {
	// Convert returns one asset per requested format. Fonts the converter
	// cannot read are returned unchanged.
	Convert(font domain.Asset, formats []string) ([]domain.Asset, error)
}
