package scheduler

import "go.trai.ch/kiln/internal/core/domain"

// Status returns the last known status of the named task.
func (s *Scheduler) Status(name string) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[domain.NewInternedString(name)]
}
