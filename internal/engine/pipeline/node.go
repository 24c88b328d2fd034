package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/esbuild" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/fonts"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/fs"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/imaging" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/markup"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/sass"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// ToolchainNodeID is the unique identifier for the pipeline toolchain Graft node.
const ToolchainNodeID graft.ID = "engine.pipeline.toolchain"

func init() {
	graft.Register(graft.Node[*Toolchain]{
		ID:        ToolchainNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.ReaderNodeID,
			fs.WriterNodeID,
			fs.StalenessNodeID,
			sass.NodeID,
			esbuild.PrefixerNodeID,
			esbuild.TranspilerNodeID,
			esbuild.MinifierNodeID,
			markup.RewriterNodeID,
			markup.MinifierNodeID,
			imaging.EncoderNodeID,
			imaging.CompressorNodeID,
			fonts.NodeID,
		},
		Run: runToolchainNode,
	})
}

//nolint:cyclop // one lookup per adapter
func runToolchainNode(ctx context.Context) (*Toolchain, error) {
	resolver, err := graft.Dep[ports.SourceResolver](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.AssetReader](ctx)
	if err != nil {
		return nil, err
	}
	writer, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}
	staleness, err := graft.Dep[ports.StalenessChecker](ctx)
	if err != nil {
		return nil, err
	}
	compiler, err := graft.Dep[*sass.Compiler](ctx)
	if err != nil {
		return nil, err
	}
	prefixer, err := graft.Dep[*esbuild.Prefixer](ctx)
	if err != nil {
		return nil, err
	}
	transpiler, err := graft.Dep[*esbuild.Transpiler](ctx)
	if err != nil {
		return nil, err
	}
	scriptMinifier, err := graft.Dep[*esbuild.Minifier](ctx)
	if err != nil {
		return nil, err
	}
	rewriter, err := graft.Dep[*markup.WebPRewriter](ctx)
	if err != nil {
		return nil, err
	}
	markupMinifier, err := graft.Dep[*markup.Minifier](ctx)
	if err != nil {
		return nil, err
	}
	encoder, err := graft.Dep[*imaging.Encoder](ctx)
	if err != nil {
		return nil, err
	}
	compressor, err := graft.Dep[*imaging.Compressor](ctx)
	if err != nil {
		return nil, err
	}
	converter, err := graft.Dep[*fonts.Converter](ctx)
	if err != nil {
		return nil, err
	}

	return &Toolchain{
		Resolver:       resolver,
		Reader:         reader,
		Writer:         writer,
		Staleness:      staleness,
		StyleCompiler:  compiler,
		Prefixer:       prefixer,
		Transpiler:     transpiler,
		ScriptMinifier: scriptMinifier,
		Rewriter:       rewriter,
		MarkupMinifier: markupMinifier,
		Encoder:        encoder,
		Compressor:     compressor,
		Fonts:          converter,
	}, nil
}
