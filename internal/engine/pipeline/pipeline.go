package pipeline

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options carries the per-run settings shared by every pipeline.
type Options struct {
	Config *domain.Config
	Mode   domain.Mode
	// Broadcaster receives a reload event after each run that changed output.
	// It may be nil.
	Broadcaster ports.Broadcaster
}

type builder func(ctx context.Context, p *Pipeline, files []domain.SourceFile, out io.Writer) ([]string, error)

// Pipeline is the content task of one asset category.
type Pipeline struct {
	entry domain.PathEntry
	tc    *Toolchain
	opts  Options
	build builder
}

// New assembles one pipeline per category of the configured registry.
func New(tc *Toolchain, opts Options) (map[domain.Category]*Pipeline, error) {
	builders := map[domain.Category]builder{
		domain.CategoryStyles:  buildStyles,
		domain.CategoryScripts: buildScripts,
		domain.CategoryMarkup:  buildMarkup,
		domain.CategoryImages:  buildImages,
		domain.CategoryFonts:   buildFonts,
	}

	out := make(map[domain.Category]*Pipeline, len(builders))
	for _, c := range domain.Categories() {
		entry, ok := opts.Config.Registry.Get(c)
		if !ok {
			return nil, zerr.With(domain.ErrMissingPathEntry, "category", c.String())
		}
		out[c] = &Pipeline{entry: entry, tc: tc, opts: opts, build: builders[c]}
	}
	return out, nil
}

// Category returns the asset category the pipeline builds.
func (p *Pipeline) Category() domain.Category {
	return p.entry.Category
}

// Base returns the absolute static directory of the source glob.
func (p *Pipeline) Base() string {
	return p.opts.Config.Abs(p.tc.Resolver.Base(p.entry.Glob))
}

// Matches reports whether the absolute path is a source of this pipeline.
func (p *Pipeline) Matches(path string) bool {
	return p.tc.Resolver.Match(p.opts.Config.Root, p.entry.Glob, path)
}

// Run builds the category once, reporting progress to out.
func (p *Pipeline) Run(ctx context.Context, out io.Writer) error {
	files, err := p.tc.Resolver.Resolve(p.opts.Config.Root, p.entry.Glob)
	if err != nil {
		return zerr.With(err, "category", p.Category().String())
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintf(out, "no sources matched %s\n", p.entry.Glob)
		return nil
	}

	written, err := p.build(ctx, p, files, out)
	for _, w := range written {
		_, _ = fmt.Fprintf(out, "wrote %s\n", p.outputRel(w))
	}
	if err != nil {
		return err
	}
	if len(written) == 0 {
		_, _ = fmt.Fprintf(out, "%d source(s), output up to date\n", len(files))
		return nil
	}

	p.broadcast(written)
	return nil
}

func (p *Pipeline) dest() string {
	return p.opts.Config.Abs(p.entry.Dest)
}

func (p *Pipeline) outputRel(abs string) string {
	rel, err := filepath.Rel(p.opts.Config.OutputDir(), abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

func (p *Pipeline) broadcast(written []string) {
	if p.opts.Broadcaster == nil || !p.Category().Broadcasts() {
		return
	}

	paths := make([]string, 0, len(written))
	for _, w := range written {
		if !strings.HasSuffix(w, domain.SourceMapExt) {
			paths = append(paths, p.outputRel(w))
		}
	}
	if len(paths) == 0 {
		return
	}

	p.opts.Broadcaster.Broadcast(domain.ReloadEvent{
		Category: p.Category(),
		Paths:    paths,
		Inject:   p.Category() == domain.CategoryStyles,
	})
}

// stale keeps the files whose output, named by rename, is missing or older
// than the source.
func (p *Pipeline) stale(files []domain.SourceFile, rename func(string) string) ([]domain.SourceFile, error) {
	dest := p.dest()
	out := make([]domain.SourceFile, 0, len(files))
	for _, f := range files {
		target := filepath.Join(dest, filepath.FromSlash(rename(f.Rel)))
		ok, err := p.tc.Staleness.Stale(f, target)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// process reads files, runs them through stage and writes the result.
func (p *Pipeline) process(ctx context.Context, files []domain.SourceFile, stage Stage) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	assets, err := p.tc.Reader.Read(files)
	if err != nil {
		return nil, err
	}
	assets, err = stage(ctx, assets)
	if err != nil {
		return nil, err
	}
	return p.tc.Writer.Write(p.dest(), assets)
}

func sameName(rel string) string {
	return rel
}

func webpName(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".webp"
}
