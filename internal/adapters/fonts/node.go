package fonts

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the font converter Graft node.
const NodeID graft.ID = "adapter.fonts"

func init() {
	graft.Register(graft.Node[*Converter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Converter, error) {
			return NewConverter(), nil
		},
	})
}
