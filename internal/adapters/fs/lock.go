package fs

import (
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lock is an exclusive per-project lock backed by a lock file in the root.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the project lock without blocking. It fails with
// ErrProjectLocked when another process holds it.
func AcquireLock(root string) (*Lock, error) {
	path := filepath.Join(root, domain.LockFileName)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	if !ok {
		return nil, zerr.With(domain.ErrProjectLocked, "path", path)
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks the project.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
