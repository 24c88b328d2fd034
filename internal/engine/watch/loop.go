// Package watch re-runs content tasks when their sources change.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // Debouncer is shared with the adapter
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Source is the part of a content pipeline the loop needs.
type Source interface {
	Category() domain.Category
	// Base is the absolute directory the source glob is rooted at.
	Base() string
	// Matches reports whether an absolute path belongs to the source glob.
	Matches(path string) bool
}

// RerunFunc executes a content task once.
type RerunFunc func(ctx context.Context, task *domain.Task) error

// Options configures a Loop.
type Options struct {
	Root     string
	Debounce time.Duration
	Graph    *domain.Graph
	Sources  []Source
	Rerun    RerunFunc
}

// Loop watches every source base directory and schedules the owning
// category's task for each change. Runs of one category never overlap; a
// change during a run queues exactly one follow-up run.
type Loop struct {
	watcher ports.Watcher
	logger  ports.Logger
	opts    Options
}

// NewLoop creates a Loop.
func NewLoop(w ports.Watcher, logger ports.Logger, opts Options) *Loop {
	if opts.Debounce <= 0 {
		opts.Debounce = domain.DefaultWatchDebounce
	}
	return &Loop{watcher: w, logger: logger, opts: opts}
}

// Run blocks until ctx is cancelled. Task failures are logged and do not
// stop the loop.
func (l *Loop) Run(ctx context.Context, out io.Writer) error {
	bases := make([]string, 0, len(l.opts.Sources))
	tasks := make([]domain.Task, 0, len(l.opts.Sources))
	for _, src := range l.opts.Sources {
		task, ok := l.opts.Graph.GetTask(domain.NewInternedString(src.Category().String()))
		if !ok {
			return zerr.With(domain.ErrTaskNotFound, "task", src.Category().String())
		}
		tasks = append(tasks, task)
		bases = append(bases, src.Base())
	}
	roots := Roots(l.opts.Root, bases)

	if err := l.watcher.Start(ctx, roots...); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	defer func() { _ = l.watcher.Stop() }()

	_, _ = fmt.Fprintf(out, "watching %s\n", strings.Join(l.rel(roots), ", "))

	g, ctx := errgroup.WithContext(ctx)
	triggers := make(map[domain.Category]chan struct{}, len(l.opts.Sources))

	for i, src := range l.opts.Sources {
		trigger := make(chan struct{}, 1)
		triggers[src.Category()] = trigger

		task := &tasks[i]
		g.Go(func() error {
			l.worker(ctx, task, trigger)
			return nil
		})
	}

	debouncer := watcher.NewDebouncer(l.opts.Debounce, func(paths []string) {
		l.dispatch(out, paths, triggers)
	})

	g.Go(func() error {
		for ev := range l.watcher.Events() {
			debouncer.Add(ev.Path)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	return g.Wait()
}

func (l *Loop) worker(ctx context.Context, task *domain.Task, trigger <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			if err := l.opts.Rerun(ctx, task); err != nil && ctx.Err() == nil {
				l.logger.Error(err)
			}
		}
	}
}

// dispatch queues a run for every category matching one of paths.
func (l *Loop) dispatch(out io.Writer, paths []string, triggers map[domain.Category]chan struct{}) {
	for _, src := range l.opts.Sources {
		var changed []string
		for _, p := range paths {
			if src.Matches(p) {
				changed = append(changed, p)
			}
		}
		if len(changed) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(out, "%s changed: %s\n", src.Category(), strings.Join(l.rel(changed), ", "))
		select {
		case triggers[src.Category()] <- struct{}{}:
		default:
		}
	}
}

func (l *Loop) rel(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(l.opts.Root, p)
		if err != nil {
			r = p
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}
