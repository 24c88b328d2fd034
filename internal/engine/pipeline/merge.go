package pipeline

import (
	"bytes"
	"context"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
)

// Merge concatenates assets into one unit named bundle, located in dir so
// that relative imports resolve against the source tree. The origin table
// records where each input starts, using paths relative to root.
func Merge(root, dir, bundle string) Stage {
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		if len(assets) == 0 {
			return nil, nil
		}

		var (
			buf     bytes.Buffer
			origins = make([]domain.Origin, 0, len(assets))
			line    = 1
			latest  = assets[0].ModTime
		)
		for _, a := range assets {
			origins = append(origins, domain.Origin{File: displayPath(root, a.Source), Line: line})

			buf.Write(a.Contents)
			line += bytes.Count(a.Contents, []byte("\n"))
			if len(a.Contents) == 0 || a.Contents[len(a.Contents)-1] != '\n' {
				buf.WriteByte('\n')
				line++
			}

			if a.ModTime.After(latest) {
				latest = a.ModTime
			}
		}

		return []domain.Asset{{
			Source:   filepath.Join(dir, bundle),
			Rel:      bundle,
			Contents: buf.Bytes(),
			Origins:  origins,
			ModTime:  latest,
		}}, nil
	}
}

func displayPath(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}
