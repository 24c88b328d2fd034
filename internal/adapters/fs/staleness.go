package fs

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*Staleness)(nil)

// Staleness compares modification times between sources and their outputs.
type Staleness struct{}

// NewStaleness creates a new Staleness checker.
func NewStaleness() *Staleness {
	return &Staleness{}
}

// Stale reports whether dest is missing or strictly older than src.
func (s *Staleness) Stale(src domain.SourceFile, dest string) (bool, error) {
	info, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dest)
	}
	return src.ModTime.After(info.ModTime()), nil
}
