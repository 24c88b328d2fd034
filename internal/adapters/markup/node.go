package markup

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// RewriterNodeID is the Graft node for the WebP markup rewriter.
	RewriterNodeID graft.ID = "adapter.markup.rewriter"
	// MinifierNodeID is the Graft node for the HTML minifier.
	MinifierNodeID graft.ID = "adapter.markup.minifier"
)

func init() {
	graft.Register(graft.Node[*WebPRewriter]{
		ID:        RewriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*WebPRewriter, error) {
			return NewWebPRewriter(), nil
		},
	})

	graft.Register(graft.Node[*Minifier]{
		ID:        MinifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Minifier, error) {
			return NewMinifier(), nil
		},
	})
}
