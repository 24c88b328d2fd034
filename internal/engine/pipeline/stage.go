// Package pipeline implements the per-category content tasks as chains of
// asset stages.
package pipeline

import (
	"context"
	"path"

	"go.trai.ch/kiln/internal/core/domain"
)

// Stage transforms the assets of one pipeline run.
type Stage func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error)

// Chain runs stages in order, feeding each the output of the previous one.
func Chain(stages ...Stage) Stage {
	return func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		var err error
		for _, s := range stages {
			if assets, err = s(ctx, assets); err != nil {
				return nil, err
			}
		}
		return assets, nil
	}
}

// Each applies fn to every asset independently.
func Each(fn func(domain.Asset) (domain.Asset, error)) Stage {
	return func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		out := make([]domain.Asset, 0, len(assets))
		for _, a := range assets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(a)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	}
}

// When returns s if cond holds and a pass-through stage otherwise.
func When(cond bool, s Stage) Stage {
	if cond {
		return s
	}
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		return assets, nil
	}
}

// LinkSourceMap appends a sourceMappingURL comment to every asset that
// carries a map, pointing at the sibling file the writer emits.
func LinkSourceMap(css bool) Stage {
	return Each(func(a domain.Asset) (domain.Asset, error) {
		if len(a.SourceMap) == 0 {
			return a, nil
		}
		name := path.Base(a.Rel) + domain.SourceMapExt

		var comment string
		if css {
			comment = "/*# sourceMappingURL=" + name + " */\n"
		} else {
			comment = "//# sourceMappingURL=" + name + "\n"
		}

		contents := make([]byte, 0, len(a.Contents)+len(comment)+1)
		contents = append(contents, a.Contents...)
		if len(contents) > 0 && contents[len(contents)-1] != '\n' {
			contents = append(contents, '\n')
		}
		a.Contents = append(contents, comment...)
		return a, nil
	})
}
