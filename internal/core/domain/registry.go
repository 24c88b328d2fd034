package domain

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PathEntry binds a category to its source glob and destination directory.
// Both paths are relative to the project root and use forward slashes.
type PathEntry struct {
	Category Category
	Glob     string
	Dest     string
}

// Registry maps categories to their path entries.
type Registry struct {
	entries map[Category]PathEntry
}

// NewRegistry builds a registry from the given entries. Later entries for the
// same category replace earlier ones.
func NewRegistry(entries ...PathEntry) *Registry {
	r := &Registry{entries: make(map[Category]PathEntry, len(entries))}
	for _, e := range entries {
		r.entries[e.Category] = e
	}
	return r
}

// DefaultRegistry returns the conventional src/ → dist/ layout.
func DefaultRegistry() *Registry {
	return NewRegistry(
		PathEntry{Category: CategoryStyles, Glob: "src/styles/**/*.scss", Dest: "dist/css"},
		PathEntry{Category: CategoryScripts, Glob: "src/scripts/**/*.js", Dest: "dist/js"},
		PathEntry{Category: CategoryMarkup, Glob: "src/html/**/*.html", Dest: "dist/html"},
		PathEntry{Category: CategoryImages, Glob: "src/img/**/*.{png,jpg,jpeg,webp,svg}", Dest: "dist/img"},
		PathEntry{Category: CategoryFonts, Glob: FontGlob("src/fonts", DefaultFontExtensions()), Dest: "dist/fonts"},
	)
}

// FontGlob builds the font source glob from a directory and a list of extensions.
func FontGlob(dir string, extensions []string) string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 1 {
		return dir + "/**/*." + exts[0]
	}
	return dir + "/**/*.{" + strings.Join(exts, ",") + "}"
}

// GlobBase returns the leading directory segments of glob that contain no
// glob syntax, or "." when the first segment is already a pattern.
func GlobBase(glob string) string {
	segments := strings.Split(path.Clean(glob), "/")
	var static []string
	for _, seg := range segments[:len(segments)-1] {
		if strings.ContainsAny(seg, "*?[{") {
			break
		}
		static = append(static, seg)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}

// Set replaces the entry for e.Category.
func (r *Registry) Set(e PathEntry) {
	r.entries[e.Category] = e
}

// Get returns the entry for the category.
func (r *Registry) Get(c Category) (PathEntry, bool) {
	e, ok := r.entries[c]
	return e, ok
}

// Entries returns all entries in category build order.
func (r *Registry) Entries() []PathEntry {
	out := make([]PathEntry, 0, len(r.entries))
	for _, c := range Categories() {
		if e, ok := r.entries[c]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks that every category has a complete entry whose destination
// lies inside the output root, and that no source glob reaches into the
// output root or contains it.
func (r *Registry) Validate(output string) error {
	output = filepath.Clean(filepath.FromSlash(output))

	for _, c := range Categories() {
		e, ok := r.entries[c]
		if !ok {
			return zerr.With(ErrMissingPathEntry, "category", c.String())
		}
		if strings.TrimSpace(e.Glob) == "" {
			return zerr.With(zerr.With(ErrIncompletePathEntry, "category", c.String()), "field", "src")
		}
		if strings.TrimSpace(e.Dest) == "" {
			return zerr.With(zerr.With(ErrIncompletePathEntry, "category", c.String()), "field", "dest")
		}

		dest := filepath.Clean(filepath.FromSlash(e.Dest))
		rel, err := filepath.Rel(output, dest)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return zerr.With(zerr.With(ErrDestOutsideOutput, "category", c.String()), "dest", e.Dest)
		}

		base := filepath.Clean(filepath.FromSlash(GlobBase(e.Glob)))
		if within(output, base) || within(base, output) {
			return zerr.With(zerr.With(zerr.With(ErrSourceOverlapsOutput,
				"category", c.String()), "src", e.Glob), "output", filepath.ToSlash(output))
		}
	}

	dests := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		d := filepath.Clean(filepath.FromSlash(e.Dest))
		if slices.Contains(dests, d) {
			return zerr.With(ErrDuplicateDest, "dest", e.Dest)
		}
		dests = append(dests, d)
	}

	return nil
}

// within reports whether child equals parent or lies below it. Both paths
// are cleaned and relative to the same root.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
