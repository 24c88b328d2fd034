// Package runner executes pipeline graph tasks by kind.
package runner

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Runner)(nil)

// Job is a unit of work writing progress to out. Content pipelines and the
// watch loop both satisfy it.
type Job interface {
	Run(ctx context.Context, out io.Writer) error
}

// Options holds everything a Runner dispatches to.
type Options struct {
	Config    *domain.Config
	Cleaner   ports.Cleaner
	Pipelines map[domain.Category]Job
	Watch     Job
	Server    ports.ReloadServer
	// Open overrides Config.Server.Open, e.g. when stdout is not a terminal.
	Open bool
}

// Runner implements ports.Executor for the pipeline graph.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Execute runs task according to its kind.
func (r *Runner) Execute(ctx context.Context, task *domain.Task, out io.Writer) error {
	switch task.Kind {
	case domain.KindClean:
		return r.clean(out)
	case domain.KindContent:
		job, ok := r.opts.Pipelines[task.Category]
		if !ok {
			return zerr.With(domain.ErrMissingPathEntry, "category", task.Category.String())
		}
		return job.Run(ctx, out)
	case domain.KindWatch:
		if r.opts.Watch == nil {
			return zerr.With(domain.ErrUnknownTaskKind, "kind", task.Kind.String())
		}
		return r.opts.Watch.Run(ctx, out)
	case domain.KindServe:
		if r.opts.Server == nil {
			return zerr.With(domain.ErrUnknownTaskKind, "kind", task.Kind.String())
		}
		return r.opts.Server.Serve(ctx, ports.ServeOptions{
			Root:      r.opts.Config.OutputDir(),
			Port:      r.opts.Config.Server.Port,
			StartPath: r.opts.Config.Server.StartPath,
			Open:      r.opts.Open,
		})
	default:
		return zerr.With(domain.ErrUnknownTaskKind, "kind", task.Kind.String())
	}
}

func (r *Runner) clean(out io.Writer) error {
	cfg := r.opts.Config
	if err := r.opts.Cleaner.Clean(cfg.Root, cfg.Output); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "removed %s\n", cfg.Output)
	return nil
}
