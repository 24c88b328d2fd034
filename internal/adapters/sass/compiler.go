// Package sass compiles SCSS through the Dart Sass embedded protocol.
package sass

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// BinaryEnv names the environment variable overriding the Dart Sass binary.
const BinaryEnv = "KILN_SASS_BINARY"

var _ ports.StyleCompiler = (*Compiler)(nil)

// Compiler implements ports.StyleCompiler. The Dart Sass process is started
// on first use and shared by every compilation until Close.
type Compiler struct {
	logger ports.Logger
	binary string

	mu         sync.Mutex
	transpiler *godartsass.Transpiler
}

// NewCompiler creates a Compiler that runs binary, or "sass" from PATH when
// binary is empty.
func NewCompiler(logger ports.Logger, binary string) *Compiler {
	return &Compiler{logger: logger, binary: binary}
}

// Compile compiles unit to CSS. unit.Source is used as the stylesheet URL,
// so relative imports resolve next to it.
func (c *Compiler) Compile(ctx context.Context, unit domain.Asset, opts ports.StyleOptions) (domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Asset{}, err
	}

	t, err := c.start()
	if err != nil {
		return domain.Asset{}, err
	}

	args := godartsass.Args{
		Source:                  string(unit.Contents),
		URL:                     fileURL(unit.Source),
		SourceSyntax:            godartsass.SourceSyntaxSCSS,
		OutputStyle:             godartsass.OutputStyleExpanded,
		IncludePaths:            opts.IncludePaths,
		EnableSourceMap:         opts.SourceMap,
		SourceMapIncludeSources: opts.SourceMap,
	}

	res, err := t.Execute(args)
	if err != nil {
		var sassErr godartsass.SassError
		if errors.As(err, &sassErr) {
			return domain.Asset{}, zerr.Wrap(locate(unit, args.URL, sassErr), domain.ErrStyleCompileFailed.Error())
		}
		return domain.Asset{}, zerr.With(zerr.Wrap(err, domain.ErrStyleCompileFailed.Error()), "unit", unit.Rel)
	}

	out := unit.WithExt(".css")
	out.Contents = []byte(res.CSS)
	out.SourceMap = nil
	if opts.SourceMap && res.SourceMap != "" {
		out.SourceMap = []byte(res.SourceMap)
	}
	return out, nil
}

// Close stops the Dart Sass process if it was started.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler == nil {
		return nil
	}
	err := c.transpiler.Close()
	c.transpiler = nil
	if errors.Is(err, godartsass.ErrShutdown) {
		return nil
	}
	return err
}

func (c *Compiler) start() (*godartsass.Transpiler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler != nil && !c.transpiler.IsShutDown() {
		return c.transpiler, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: c.binary,
		LogEventHandler:          c.onLogEvent,
	})
	if err != nil {
		binary := c.binary
		if binary == "" {
			binary = "sass"
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerStartFailed.Error()), "binary", binary)
	}
	c.transpiler = t
	return t, nil
}

func (c *Compiler) onLogEvent(ev godartsass.LogEvent) {
	if c.logger == nil || ev.Type == godartsass.LogEventTypeDebug {
		return
	}
	c.logger.Warn("sass: " + ev.Message)
}

// locate converts a Dart Sass failure into a SyntaxError naming the file the
// offending line came from. Failures inside the merged unit are mapped back
// through its origin table.
func locate(unit domain.Asset, unitURL string, e godartsass.SassError) error {
	span := e.Span
	column := span.Start.Column + 1

	if span.Url == "" || span.Url == unitURL {
		line := lineAt(unit.Contents, span.Start.Offset)
		file, fileLine := domain.Locate(unit.Origins, line)
		if file == "" {
			file, fileLine = unit.Rel, line
		}
		return &domain.SyntaxError{File: file, Line: fileLine, Column: column, Message: e.Message}
	}

	file := filePath(span.Url)
	line := 0
	if data, err := os.ReadFile(file); err == nil { //nolint:gosec // Path comes from the compiler's own import resolution
		line = lineAt(data, span.Start.Offset)
	}
	return &domain.SyntaxError{File: file, Line: line, Column: column, Message: e.Message}
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(src []byte, offset int) int {
	offset = min(max(offset, 0), len(src))
	return bytes.Count(src[:offset], []byte("\n")) + 1
}

func fileURL(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}

func filePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return raw
	}
	return filepath.FromSlash(u.Path)
}
