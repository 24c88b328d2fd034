package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements ports.SourceResolver with gobwas/glob patterns.
// A "**/" segment also matches zero directories, so "src/**/*.scss"
// matches both src/main.scss and src/a/b/main.scss.
type Resolver struct {
	walker   *Walker
	matchers sync.Map // glob -> *matcher
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

type matcher struct {
	globs []glob.Glob
}

func (m *matcher) match(rel string) bool {
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Resolve returns every file under root matched by pattern, sorted by path.
func (r *Resolver) Resolve(root, pattern string) ([]domain.SourceFile, error) {
	m, err := r.compile(pattern)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(root, filepath.FromSlash(r.Base(pattern)))
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return []domain.SourceFile{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceResolutionFailed.Error()), "path", base)
	}

	var files []domain.SourceFile
	for p, walkErr := range r.walker.WalkFiles(base, nil) {
		if walkErr != nil {
			return nil, zerr.With(zerr.Wrap(walkErr, domain.ErrSourceResolutionFailed.Error()), "path", p)
		}
		relRoot, err := filepath.Rel(root, p)
		if err != nil || !m.match(filepath.ToSlash(relRoot)) {
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", p)
		}

		relBase, _ := filepath.Rel(base, p)
		files = append(files, domain.SourceFile{
			Path:    p,
			Rel:     filepath.ToSlash(relBase),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b domain.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	if files == nil {
		files = []domain.SourceFile{}
	}
	return files, nil
}

// Match reports whether the absolute path p is matched by pattern.
// Invalid patterns match nothing.
func (r *Resolver) Match(root, pattern, p string) bool {
	m, err := r.compile(pattern)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return m.match(filepath.ToSlash(rel))
}

// Base returns the static directory prefix of pattern.
func (r *Resolver) Base(pattern string) string {
	return domain.GlobBase(pattern)
}

func (r *Resolver) compile(pattern string) (*matcher, error) {
	if cached, ok := r.matchers.Load(pattern); ok {
		return cached.(*matcher), nil
	}

	variants := expandDoubleStar(pattern)
	m := &matcher{globs: make([]glob.Glob, 0, len(variants))}
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidGlob.Error()), "glob", pattern)
		}
		m.globs = append(m.globs, g)
	}

	actual, _ := r.matchers.LoadOrStore(pattern, m)
	return actual.(*matcher), nil
}

// expandDoubleStar returns pattern plus every variant with one or more
// "**/" segments removed.
func expandDoubleStar(pattern string) []string {
	idx := strings.Index(pattern, "**/")
	if idx < 0 {
		return []string{pattern}
	}

	head, tail := pattern[:idx], pattern[idx+len("**/"):]
	var out []string
	for _, rest := range expandDoubleStar(tail) {
		out = append(out, head+"**/"+rest, head+rest)
	}
	return out
}
