// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// Executor defines the interface for executing graph tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task, writing progress output to out.
	// Resident tasks block until ctx is cancelled and then return nil.
	Execute(ctx context.Context, task *domain.Task, out io.Writer) error
}
