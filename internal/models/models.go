package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single unit of work
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	Category       Category   `json:"category"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Dependencies   []string   `json:"dependencies,omitempty"`
	Assignee       string     `json:"assignee,omitempty"`
	ProjectID      string     `json:"project_id,omitempty"`
}

// AddHours adds h to the task's actual hours, treating unset as zero.
func (t *Task) AddHours(h float64) {
	if t.ActualHours == nil {
		t.ActualHours = new(float64)
	}
	*t.ActualHours += h
}

// Project groups related tasks with a timeline, team and budget
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
	TeamMembers []string   `json:"team_members,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TimeEntry records time spent on a task. An entry with no EndTime is an
// open (running) timer; DurationMinutes is populated when the entry closes.
type TimeEntry struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"task_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// Open reports whether the entry is a running timer.
func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}

// NewID returns a fresh entity identifier. Identifiers are generated here
// and never reused.
func NewID() string {
	return uuid.NewString()
}

// NewTask creates a task with a generated ID and both timestamps set to now.
func NewTask(title string, now time.Time) Task {
	return Task{
		ID:        NewID(),
		Title:     title,
		Priority:  PriorityMedium,
		Status:    StatusTodo,
		Category:  CategoryOther,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewProject creates a project with a generated ID and the default
// "active" status.
func NewProject(name string, now time.Time) Project {
	return Project{
		ID:        NewID(),
		Name:      name,
		Status:    "active",
		CreatedAt: now,
	}
}

// NewTimeEntry creates an open entry for a task starting at start.
func NewTimeEntry(taskID string, start time.Time) TimeEntry {
	return TimeEntry{
		ID:        NewID(),
		TaskID:    taskID,
		StartTime: start,
	}
}
