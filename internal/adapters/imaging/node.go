package imaging

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// EncoderNodeID is the Graft node for the WebP encoder.
	EncoderNodeID graft.ID = "adapter.imaging.encoder"
	// CompressorNodeID is the Graft node for the image compressor.
	CompressorNodeID graft.ID = "adapter.imaging.compressor"
)

func init() {
	graft.Register(graft.Node[*Encoder]{
		ID:        EncoderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Encoder, error) {
			return NewEncoder(), nil
		},
	})

	graft.Register(graft.Node[*Compressor]{
		ID:        CompressorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Compressor, error) {
			return NewCompressor(), nil
		},
	})
}
