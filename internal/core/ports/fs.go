package ports

import "go.trai.ch/kiln/internal/core/domain"

//go:generate mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks

// SourceResolver expands category globs into source files.
type SourceResolver interface {
	// Resolve returns every regular file under root matching glob, sorted by path.
	// A glob that matches nothing yields an empty slice and no error.
	Resolve(root, glob string) ([]domain.SourceFile, error)
	// Match reports whether the absolute path is matched by glob.
	Match(root, glob, path string) bool
	// Base returns the static directory prefix of glob, relative to root.
	Base(glob string) string
}

// AssetReader loads source files into memory.
type AssetReader interface {
	Read(files []domain.SourceFile) ([]domain.Asset, error)
}

// OutputWriter writes assets below a destination directory.
type OutputWriter interface {
	// Write stores each asset at dir/asset.Rel, plus its source map when present.
	// Files whose content is unchanged are not rewritten. It returns the
	// absolute paths that were actually written.
	Write(dir string, assets []domain.Asset) ([]string, error)
}

// StalenessChecker compares source and destination modification times.
type StalenessChecker interface {
	// Stale reports whether dest is missing or older than src.
	Stale(src domain.SourceFile, dest string) (bool, error)
}

// Cleaner removes the output root.
type Cleaner interface {
	// Clean recursively removes output, which must lie strictly inside root.
	Clean(root, output string) error
}
