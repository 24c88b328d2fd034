package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// TranspilerNodeID is the Graft node for the script transpiler.
	TranspilerNodeID graft.ID = "adapter.esbuild.transpiler"
	// MinifierNodeID is the Graft node for the script minifier.
	MinifierNodeID graft.ID = "adapter.esbuild.minifier"
	// PrefixerNodeID is the Graft node for the vendor prefixer.
	PrefixerNodeID graft.ID = "adapter.esbuild.prefixer"
)

func init() {
	graft.Register(graft.Node[*Transpiler]{
		ID:        TranspilerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Transpiler, error) {
			return NewTranspiler(), nil
		},
	})

	graft.Register(graft.Node[*Minifier]{
		ID:        MinifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Minifier, error) {
			return NewMinifier(), nil
		},
	})

	graft.Register(graft.Node[*Prefixer]{
		ID:        PrefixerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Prefixer, error) {
			return NewPrefixer(), nil
		},
	})
}
