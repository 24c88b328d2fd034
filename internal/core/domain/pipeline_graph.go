package domain

import "go.trai.ch/zerr"

// Graph node and target names.
const (
	TaskClean = "clean"
	TaskWatch = "watch"
	TaskServe = "serve"

	// TargetBuild cleans the output root and runs every content task.
	TargetBuild = "build"
	// TargetDev runs the build, then watches and serves until interrupted.
	TargetDev = "dev"
)

// NewPipelineGraph builds the task graph for a registry:
//
//	clean → {styles, scripts, markup, images, fonts} → {watch, serve}
func NewPipelineGraph(r *Registry) (*Graph, error) {
	g := NewGraph()
	clean := NewInternedString(TaskClean)

	if err := g.AddTask(&Task{Name: clean, Kind: KindClean}); err != nil {
		return nil, err
	}

	content := make([]InternedString, 0, len(Categories()))
	for _, entry := range r.Entries() {
		name := NewInternedString(entry.Category.String())
		err := g.AddTask(&Task{
			Name:         name,
			Kind:         KindContent,
			Category:     entry.Category,
			Paths:        entry,
			Dependencies: []InternedString{clean},
		})
		if err != nil {
			return nil, err
		}
		content = append(content, name)
	}

	for _, svc := range []struct {
		name string
		kind TaskKind
	}{
		{TaskWatch, KindWatch},
		{TaskServe, KindServe},
	} {
		err := g.AddTask(&Task{
			Name:         NewInternedString(svc.name),
			Kind:         svc.kind,
			Dependencies: content,
			Resident:     true,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// TargetTasks expands a target name into the task names the scheduler runs.
// Dependencies are pulled in by the scheduler through the graph edges.
func TargetTasks(target string) ([]string, error) {
	switch target {
	case TargetBuild:
		names := make([]string, 0, len(Categories()))
		for _, c := range Categories() {
			names = append(names, c.String())
		}
		return names, nil
	case TargetDev:
		return []string{TaskWatch, TaskServe}, nil
	default:
		return nil, zerr.With(ErrUnknownTarget, "target", target)
	}
}
