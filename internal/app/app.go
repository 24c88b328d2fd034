// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/kiln/internal/engine/runner"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.trai.ch/kiln/internal/engine/watch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	toolchain    *pipeline.Toolchain
	cleaner      ports.Cleaner
	watcher      ports.Watcher
	server       ports.ReloadServer
	compiler     io.Closer

	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	toolchain *pipeline.Toolchain,
	cleaner ports.Cleaner,
	w ports.Watcher,
	server ports.ReloadServer,
	compiler io.Closer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		toolchain:    toolchain,
		cleaner:      cleaner,
		watcher:      w,
		server:       server,
		compiler:     compiler,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		interactive:  isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// WithOutput redirects task output and lifecycle messages.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithInteractive overrides terminal detection. The browser is only opened
// for interactive sessions.
func (a *App) WithInteractive(interactive bool) *App {
	a.interactive = interactive
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Production selects the build target; otherwise the dev target runs.
	Production bool
}

// Run loads the project configuration and executes the target selected by
// the mode. In development it blocks until ctx is cancelled.
//
//nolint:cyclop,funlen // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	// 1. Load the configuration
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Resolve mode, targets and graph
	mode := domain.ModeFromFlag(opts.Production)
	targets, err := domain.TargetTasks(mode.Target())
	if err != nil {
		return err
	}
	graph, err := domain.NewPipelineGraph(cfg.Registry)
	if err != nil {
		return err
	}

	lock, err := fs.AcquireLock(cfg.Root)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	if a.compiler != nil {
		defer func() { _ = a.compiler.Close() }()
	}

	// 3. Initialize Renderer and Telemetry
	renderer := linear.NewRenderer(a.stdout, a.stderr)
	bridge := telemetry.NewBridge(renderer)
	tp := setupOTel(bridge)

	// Shutdown runs after ctx is cancelled by an interrupt or the errgroup.
	shutdownCtx := context.WithoutCancel(ctx)
	tracer := telemetry.NewOTelTracer("kiln").WithRenderer(renderer)
	defer func() {
		err = errors.Join(err, tracer.Shutdown(shutdownCtx), tp.Shutdown(shutdownCtx))
	}()

	// 4. Assemble pipelines and the executor
	var broadcaster ports.Broadcaster
	if mode == domain.ModeDevelopment {
		broadcaster = a.server
	}
	pipelines, err := pipeline.New(a.toolchain, pipeline.Options{
		Config:      cfg,
		Mode:        mode,
		Broadcaster: broadcaster,
	})
	if err != nil {
		return err
	}

	jobs := make(map[domain.Category]runner.Job, len(pipelines))
	sources := make([]watch.Source, 0, len(pipelines))
	for _, c := range domain.Categories() {
		jobs[c] = pipelines[c]
		sources = append(sources, pipelines[c])
	}

	// The watch loop re-runs content tasks through the scheduler so each
	// re-run is traced like the initial build.
	var sched *scheduler.Scheduler
	loop := watch.NewLoop(a.watcher, a.logger, watch.Options{
		Root:     cfg.Root,
		Debounce: cfg.Watch.Debounce,
		Graph:    graph,
		Sources:  sources,
		Rerun: func(ctx context.Context, task *domain.Task) error {
			return sched.RunTask(ctx, task)
		},
	})

	executor := runner.New(runner.Options{
		Config:    cfg,
		Cleaner:   a.cleaner,
		Pipelines: jobs,
		Watch:     loop,
		Server:    a.server,
		Open:      cfg.Server.Open && a.interactive,
	})
	sched = scheduler.NewScheduler(executor, tracer)

	// 5. Run Renderer and Scheduler concurrently
	g, ctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	// Scheduler Routine
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(a.stderr, "Scheduler panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		if err := sched.Run(ctx, graph, targets); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	return g.Wait()
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
