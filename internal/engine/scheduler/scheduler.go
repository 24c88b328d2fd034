// Package scheduler runs the task graph: edges sequence tasks, and every task
// whose dependencies have succeeded runs concurrently.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates a dependency failed, so the task never ran.
	StatusSkipped TaskStatus = "Skipped"
)

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	executor ports.Executor
	tracer   ports.Tracer

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(executor ports.Executor, tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		executor:   executor,
		tracer:     tracer,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// initTaskStatuses initializes the status of tasks in the graph to Pending.
func (s *Scheduler) initTaskStatuses(tasks []domain.InternedString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range tasks {
		s.taskStatus[task] = StatusPending
	}
}

// updateStatus updates the status of a task.
func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Run executes targetNames and everything they depend on. A failed task
// does not cancel its siblings, but its dependents never start. A failed
// resident task stops the other resident tasks, since the run can no longer
// serve its purpose. The returned error joins every task failure.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, targetNames []string) error {
	if err := graph.Validate(); err != nil {
		return err
	}

	state, err := s.newRunState(ctx, graph, targetNames)
	if err != nil {
		return err
	}
	defer state.cancel()

	plannedTasks := make([]string, 0, len(state.tasks))
	depMap := make(map[string][]string, len(state.tasks))
	for task := range graph.Walk() {
		if _, ok := state.tasks[task.Name]; !ok {
			continue
		}
		name := task.Name.String()
		plannedTasks = append(plannedTasks, name)

		deps := make([]string, len(task.Dependencies))
		for i, dep := range task.Dependencies {
			deps[i] = dep.String()
		}
		depMap[name] = deps
	}

	s.tracer.EmitPlan(ctx, plannedTasks, depMap, targetNames)
	s.initTaskStatuses(state.allTasks)

	return state.runExecutionLoop()
}

// RunTask executes a single task outside of a graph run, traced like any
// scheduled task. The watcher uses it to re-run content tasks.
func (s *Scheduler) RunTask(ctx context.Context, task *domain.Task) error {
	s.updateStatus(task.Name, StatusRunning)
	if err := s.execute(ctx, task); err != nil {
		s.updateStatus(task.Name, StatusFailed)
		return zerr.With(zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error()), "task", task.Name.String())
	}
	s.updateStatus(task.Name, StatusCompleted)
	return nil
}

func (s *Scheduler) execute(ctx context.Context, t *domain.Task) error {
	ctx, span := s.tracer.Start(ctx, t.Name.String(),
		ports.WithAttribute("kiln.kind", t.Kind.String()),
	)
	defer span.End()

	if t.Category != "" {
		span.SetAttribute("kiln.category", t.Category.String())
	}

	err := s.executor.Execute(ctx, t, span)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

type result struct {
	task domain.InternedString
	err  error
}

type schedulerRunState struct {
	graph     *domain.Graph
	inDegree  map[domain.InternedString]int
	tasks     map[domain.InternedString]domain.Task
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	errs      error
	ctx       context.Context
	cancel    context.CancelFunc
	done      <-chan struct{}
	s         *Scheduler
	allTasks  []domain.InternedString
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	targetNames []string,
) (*schedulerRunState, error) {
	tasksToRun, allTasks, err := s.resolveTargetTasks(graph, targetNames)
	if err != nil {
		return nil, err
	}

	inDegree := make(map[domain.InternedString]int, len(tasksToRun))
	tasks := make(map[domain.InternedString]domain.Task, len(tasksToRun))

	for name := range tasksToRun {
		task, _ := graph.GetTask(name)
		tasks[name] = task

		degree := 0
		for _, dep := range task.Dependencies {
			if tasksToRun[dep] {
				degree++
			}
		}
		inDegree[name] = degree
	}

	// Seed the ready queue in topological order so runs are reproducible.
	var ready []domain.InternedString
	for task := range graph.Walk() {
		if tasksToRun[task.Name] && inDegree[task.Name] == 0 {
			ready = append(ready, task.Name)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	return &schedulerRunState{
		graph:     graph,
		inDegree:  inDegree,
		tasks:     tasks,
		ready:     ready,
		resultsCh: make(chan result, len(tasks)),
		ctx:       ctx,
		cancel:    cancel,
		done:      ctx.Done(),
		s:         s,
		allTasks:  allTasks,
	}, nil
}

func (s *Scheduler) resolveTargetTasks(
	graph *domain.Graph,
	targetNames []string,
) (map[domain.InternedString]bool, []domain.InternedString, error) {
	targets := make([]domain.InternedString, 0, len(targetNames))
	for _, nameStr := range targetNames {
		name := domain.NewInternedString(nameStr)
		if _, ok := graph.GetTask(name); !ok {
			return nil, nil, zerr.With(domain.ErrTaskNotFound, "task", nameStr)
		}
		targets = append(targets, name)
	}

	tasksToRun := make(map[domain.InternedString]bool)
	var allTasks []domain.InternedString

	queue := append([]domain.InternedString(nil), targets...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if tasksToRun[current] {
			continue
		}
		tasksToRun[current] = true
		allTasks = append(allTasks, current)

		task, _ := graph.GetTask(current)
		queue = append(queue, task.Dependencies...)
	}

	return tasksToRun, allTasks, nil
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.done:
			// Stop scheduling; in-flight tasks observe the same context.
			state.done = nil
		}
	}

	// Cancellation is only an error if it kept planned tasks from running.
	if skipped := state.skipRemaining(); skipped > 0 && state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}
	return state.errs
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		t := state.tasks[taskName]
		go func() {
			state.resultsCh <- result{task: t.Name, err: state.s.execute(state.ctx, &t)}
		}()
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		enhancedErr := zerr.With(zerr.Wrap(res.err, domain.ErrTaskExecutionFailed.Error()), "task", res.task.String())
		state.errs = errors.Join(state.errs, enhancedErr)
		state.s.updateStatus(res.task, StatusFailed)
		if state.tasks[res.task].Resident {
			state.cancel()
		}
		return
	}

	state.s.updateStatus(res.task, StatusCompleted)
	for _, dep := range state.graph.Dependents(res.task) {
		if _, ok := state.tasks[dep]; ok {
			state.inDegree[dep]--
			if state.inDegree[dep] == 0 {
				state.ready = append(state.ready, dep)
			}
		}
	}
}

// skipRemaining marks every task that never started and returns how many
// there were.
func (state *schedulerRunState) skipRemaining() int {
	state.s.mu.Lock()
	defer state.s.mu.Unlock()

	skipped := 0
	for _, name := range state.allTasks {
		if state.s.taskStatus[name] == StatusPending {
			state.s.taskStatus[name] = StatusSkipped
			skipped++
		}
	}
	return skipped
}
