package fs

import (
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AssetReader = (*Reader)(nil)

// Reader loads source files from disk.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads every file into an asset that keeps the source's relative path.
func (r *Reader) Read(files []domain.SourceFile) ([]domain.Asset, error) {
	assets := make([]domain.Asset, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", f.Path)
		}
		assets = append(assets, domain.Asset{
			Source:   f.Path,
			Rel:      f.Rel,
			Contents: data,
			ModTime:  f.ModTime,
		})
	}
	return assets, nil
}
