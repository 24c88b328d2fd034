package pipeline

import "go.trai.ch/kiln/internal/core/ports"

// Toolchain bundles the adapters the content pipelines are assembled from.
type Toolchain struct {
	Resolver  ports.SourceResolver
	Reader    ports.AssetReader
	Writer    ports.OutputWriter
	Staleness ports.StalenessChecker

	StyleCompiler ports.StyleCompiler
	Prefixer      ports.StylePrefixer

	Transpiler     ports.ScriptTranspiler
	ScriptMinifier ports.ScriptMinifier

	Rewriter       ports.MarkupRewriter
	MarkupMinifier ports.MarkupMinifier

	Encoder    ports.ImageEncoder
	Compressor ports.ImageCompressor

	Fonts ports.FontConverter
}
