package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

//go:generate mockgen -source=reload.go -destination=mocks/mock_reload.go -package=mocks

// Broadcaster notifies live-reload clients of rebuilt output.
type Broadcaster interface {
	Broadcast(event domain.ReloadEvent)
}

// ServeOptions configures the development server.
type ServeOptions struct {
	// Root is the absolute directory served over HTTP.
	Root      string
	Port      int
	StartPath string
	// Open launches the default browser at the start path.
	Open bool
}

// ReloadServer serves the output directory and pushes reload events.
type ReloadServer interface {
	Broadcaster
	// Serve blocks until ctx is cancelled, returning nil on a clean shutdown.
	Serve(ctx context.Context, opts ServeOptions) error
}
