package scheduler

import "github.com/alexanderramin/foreman/internal/domain"

// successorIndex maps a predecessor id to the positions of the schedules that
// depend on it directly.
func successorIndex(schedules []domain.Schedule) map[string][]int {
	idx := make(map[string][]int)
	for i := range schedules {
		if schedules[i].HasPredecessor() {
			pred := *schedules[i].PredecessorID
			idx[pred] = append(idx[pred], i)
		}
	}
	return idx
}

// DirectDependents returns the schedules whose predecessor is id.
func DirectDependents(schedules []domain.Schedule, id string) []domain.Schedule {
	var out []domain.Schedule
	for _, i := range successorIndex(schedules)[id] {
		out = append(out, schedules[i])
	}
	return out
}

// Dependents returns every schedule that depends on id directly or
// transitively, in breadth-first order. id itself is never included, even if
// the persisted graph is corrupt and loops back to it.
func Dependents(schedules []domain.Schedule, id string) []domain.Schedule {
	successors := successorIndex(schedules)

	visited := map[string]bool{id: true}
	queue := []string{id}
	var out []domain.Schedule

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, i := range successors[current] {
			s := schedules[i]
			if visited[s.ID] {
				continue
			}
			visited[s.ID] = true
			out = append(out, s)
			queue = append(queue, s.ID)
		}
	}
	return out
}

// HasCycle reports whether making proposedPredecessorID the predecessor of id
// would close a loop: either they are the same schedule, or id already sits
// on the predecessor chain above proposedPredecessorID.
func HasCycle(schedules []domain.Schedule, id, proposedPredecessorID string) bool {
	if id == proposedPredecessorID {
		return true
	}

	byID := make(map[string]*domain.Schedule, len(schedules))
	for i := range schedules {
		byID[schedules[i].ID] = &schedules[i]
	}

	visited := make(map[string]bool)
	current := proposedPredecessorID
	for {
		if current == id {
			return true
		}
		if visited[current] {
			// A pre-existing loop that does not pass through id.
			return false
		}
		visited[current] = true

		s, ok := byID[current]
		if !ok || !s.HasPredecessor() {
			return false
		}
		current = *s.PredecessorID
	}
}
