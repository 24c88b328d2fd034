package domain

import (
	"path"
	"strings"
	"time"
)

// SourceFile is a file matched by a category glob.
type SourceFile struct {
	// Path is the absolute filesystem path.
	Path string
	// Rel is the slash-separated path relative to the glob base directory.
	// It is also the path of the output relative to the destination.
	Rel     string
	ModTime time.Time
}

// Asset is an in-memory file flowing through a pipeline.
type Asset struct {
	// Source is the absolute path of the file the asset was read from. Merged
	// assets have no single source.
	Source string
	// Rel is the output path relative to the category destination.
	Rel      string
	Contents []byte
	// SourceMap is written next to the asset as Rel + ".map" when non-empty.
	SourceMap []byte
	// Origins maps line ranges of a merged asset back to the files it was built from.
	Origins []Origin
	ModTime time.Time
}

// Origin records that the merged lines starting at Line (1-based) came from File.
type Origin struct {
	File string
	Line int
}

// Ext returns the lower-cased extension of the asset's output path.
func (a *Asset) Ext() string {
	return strings.ToLower(path.Ext(a.Rel))
}

// WithExt returns a copy of the asset whose output path has its extension replaced.
func (a Asset) WithExt(ext string) Asset {
	a.Rel = strings.TrimSuffix(a.Rel, path.Ext(a.Rel)) + ext
	return a
}

// Locate maps a 1-based merged line back to its originating file and line.
func Locate(origins []Origin, line int) (string, int) {
	file, start := "", 1
	for _, o := range origins {
		if o.Line > line {
			break
		}
		file, start = o.File, o.Line
	}
	return file, line - start + 1
}

// ReloadEvent is pushed to live-reload clients after a category rebuild.
type ReloadEvent struct {
	Category Category `json:"category"`
	// Paths are the changed output files relative to the output root.
	Paths []string `json:"paths"`
	// Inject asks clients to hot-swap stylesheets instead of reloading the page.
	Inject bool `json:"inject"`
}
