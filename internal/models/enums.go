package models

import "fmt"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the sort weight of a priority (urgent highest).
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority validates a raw priority string.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (want low, medium, high or urgent)", s)
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q (want todo, in_progress, review, completed or cancelled)", s)
}

// Category classifies what area of life a task belongs to.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryLearning Category = "learning"
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryOther    Category = "other"
)

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryWork, CategoryPersonal, CategoryLearning, CategoryHealth, CategoryFinance, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q (want work, personal, learning, health, finance or other)", s)
}
