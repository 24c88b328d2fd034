package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Cleaner = (*Cleaner)(nil)

// Cleaner removes the output root.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes output and everything below it. output may be relative to
// root and must resolve to a directory strictly inside root.
func (c *Cleaner) Clean(root, output string) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	outAbs := output
	if !filepath.IsAbs(outAbs) {
		outAbs = filepath.Join(rootAbs, output)
	}
	outAbs = filepath.Clean(outAbs)

	rel, err := filepath.Rel(rootAbs, outAbs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(domain.ErrOutputPathOutsideRoot, "output", output)
	}

	// Remove the validated absolute path so exactly what was checked is deleted.
	if err := os.RemoveAll(outAbs); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "output", output)
	}
	return nil
}
