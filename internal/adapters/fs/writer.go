package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer writes assets, leaving byte-identical files in place.
type Writer struct {
	hasher *Hasher
	now    func() time.Time
}

// NewWriter creates a new Writer.
func NewWriter(hasher *Hasher) *Writer {
	return &Writer{hasher: hasher, now: time.Now}
}

// Write stores each asset and its source map below dir. It returns the
// absolute paths whose content changed. Unchanged files only have their
// modification time refreshed, so staleness checks treat them as up to date.
func (w *Writer) Write(dir string, assets []domain.Asset) ([]string, error) {
	var written []string
	for i := range assets {
		a := &assets[i]
		target := filepath.Join(dir, filepath.FromSlash(a.Rel))

		changed, err := w.writeFile(target, a.Contents)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, target)
		}

		if len(a.SourceMap) == 0 {
			continue
		}
		changed, err = w.writeFile(target+domain.SourceMapExt, a.SourceMap)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, target+domain.SourceMapExt)
		}
	}
	return written, nil
}

func (w *Writer) writeFile(target string, data []byte) (bool, error) {
	existing, err := w.hasher.ComputeFileHash(target)
	if err == nil && existing == w.hasher.HashBytes(data) {
		now := w.now()
		if err := os.Chtimes(target, now, now); err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", target)
		}
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", target)
	}
	if err := os.WriteFile(target, data, domain.FilePerm); err != nil { //nolint:gosec // Outputs are world-readable assets
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", target)
	}
	return true, nil
}
