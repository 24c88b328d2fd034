package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// WalkerNodeID is the Graft node for the file walker.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the Graft node for the content hasher.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ResolverNodeID is the Graft node for the glob resolver.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// ReaderNodeID is the Graft node for the asset reader.
	ReaderNodeID graft.ID = "adapter.fs.reader"
	// WriterNodeID is the Graft node for the output writer.
	WriterNodeID graft.ID = "adapter.fs.writer"
	// StalenessNodeID is the Graft node for the staleness checker.
	StalenessNodeID graft.ID = "adapter.fs.staleness"
	// CleanerNodeID is the Graft node for the output cleaner.
	CleanerNodeID graft.ID = "adapter.fs.cleaner"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.SourceResolver, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(walker), nil
		},
	})

	graft.Register(graft.Node[ports.AssetReader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AssetReader, error) {
			return NewReader(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(hasher), nil
		},
	})

	graft.Register(graft.Node[ports.StalenessChecker]{
		ID:        StalenessNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessChecker, error) {
			return NewStaleness(), nil
		},
	})

	graft.Register(graft.Node[ports.Cleaner]{
		ID:        CleanerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Cleaner, error) {
			return NewCleaner(), nil
		},
	})
}
