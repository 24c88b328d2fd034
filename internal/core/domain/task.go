package domain

// TaskKind selects how the runner executes a task.
type TaskKind uint8

const (
	// KindClean removes the output root.
	KindClean TaskKind = iota
	// KindContent runs a category pipeline once.
	KindContent
	// KindWatch watches the sources and re-runs content tasks until cancelled.
	KindWatch
	// KindServe runs the live-reload server until cancelled.
	KindServe
)

func (k TaskKind) String() string {
	switch k {
	case KindClean:
		return "clean"
	case KindContent:
		return "content"
	case KindWatch:
		return "watch"
	case KindServe:
		return "serve"
	default:
		return "unknown"
	}
}

// Task represents a node in the pipeline graph.
// It uses InternedString for names since they are compared on every scheduling step.
type Task struct {
	Name         InternedString
	Kind         TaskKind
	Category     Category
	Paths        PathEntry
	Dependencies []InternedString
	// Resident tasks run until their context is cancelled.
	Resident bool
}
