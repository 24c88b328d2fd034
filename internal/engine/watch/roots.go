package watch

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Roots reduces glob base directories to the set of directories to watch.
// A base that does not exist yet is replaced by its nearest existing
// ancestor inside root, and directories nested in another root are dropped.
func Roots(root string, bases []string) []string {
	var dirs []string
	for _, b := range bases {
		d := existingAncestor(root, b)
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	slices.Sort(dirs)

	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		nested := slices.ContainsFunc(out, func(parent string) bool {
			return strings.HasPrefix(d, parent+string(filepath.Separator))
		})
		if !nested {
			out = append(out, d)
		}
	}
	return out
}

func existingAncestor(root, dir string) string {
	root = filepath.Clean(root)
	dir = filepath.Clean(dir)
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		if dir == root {
			return root
		}
		parent := filepath.Dir(dir)
		if parent == dir || !strings.HasPrefix(parent, root) {
			return root
		}
		dir = parent
	}
}
