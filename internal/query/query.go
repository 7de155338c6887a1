// Package query filters and orders task snapshots. All functions are pure:
// they take a snapshot slice and return a new one, so both store backends
// share a single ordering rule.
package query

import (
	"sort"

	"tempo/internal/models"
)

// Filter is a conjunction of optional equality predicates. A nil field
// imposes no constraint.
type Filter struct {
	Status    *models.Status
	Priority  *models.Priority
	Category  *models.Category
	Assignee  *string
	ProjectID *string
}

func (f Filter) matches(t models.Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Assignee != nil && t.Assignee != *f.Assignee {
		return false
	}
	if f.ProjectID != nil && t.ProjectID != *f.ProjectID {
		return false
	}
	return true
}

// Apply returns the tasks satisfying every supplied predicate.
func Apply(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Order sorts tasks by priority rank descending, then due date ascending.
// Tasks without a due date sort after dated ones within their priority
// tier. The sort is stable; further ties keep their incoming order.
func Order(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		}
		return a.DueDate.Before(*b.DueDate)
	})
	return out
}

// Limit truncates to the first n tasks. n <= 0 yields an empty result.
func Limit(tasks []models.Task, n int) []models.Task {
	if n <= 0 {
		return nil
	}
	if n > len(tasks) {
		n = len(tasks)
	}
	return tasks[:n]
}
