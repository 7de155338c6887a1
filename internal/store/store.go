// Package store defines the entity store abstraction shared by the
// in-memory and sqlite backends. Each backend is the authoritative mapping
// from identifier to record per entity kind; individual operations are
// atomic with respect to each other.
package store

import (
	"errors"
	"fmt"

	"tempo/internal/models"
)

// ErrNotFound is the sentinel every missing-record lookup unwraps to.
var ErrNotFound = errors.New("not found")

// Kind names an entity kind in errors.
type Kind string

const (
	KindTask      Kind = "task"
	KindProject   Kind = "project"
	KindTimeEntry Kind = "time entry"
)

// NotFoundError reports a lookup on an identifier that does not exist.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound builds a NotFoundError for the given kind and id.
func NotFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Store is the per-kind get/put/delete/list surface over entity records.
//
// Put inserts or replaces by identifier and always succeeds. Get and Delete
// return a NotFoundError for missing identifiers. List returns a snapshot
// in unspecified order; callers needing order sort explicitly.
//
// DeleteTask cascades: every time entry referencing the task is removed in
// the same atomic step, and the count removed is reported. DeleteProject
// does not cascade to tasks.
type Store interface {
	PutTask(t models.Task) error
	GetTask(id string) (models.Task, error)
	DeleteTask(id string) (models.Task, int, error)
	ListTasks() ([]models.Task, error)

	PutProject(p models.Project) error
	GetProject(id string) (models.Project, error)
	DeleteProject(id string) (models.Project, error)
	ListProjects() ([]models.Project, error)

	PutTimeEntry(e models.TimeEntry) error
	GetTimeEntry(id string) (models.TimeEntry, error)
	DeleteTimeEntry(id string) (models.TimeEntry, error)
	ListTimeEntries() ([]models.TimeEntry, error)

	// EntriesForTask returns every time entry referencing the task, and
	// OpenEntry the single open one if present. Neither checks that the
	// task itself exists.
	EntriesForTask(taskID string) ([]models.TimeEntry, error)
	OpenEntry(taskID string) (models.TimeEntry, bool, error)

	Close() error
}
