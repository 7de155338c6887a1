// Package memory is the in-memory store backend. It is the default backend
// and the reference for store semantics.
package memory

import (
	"sync"

	"tempo/internal/models"
	"tempo/internal/store"
)

// Store keeps all records in maps guarded by a single RWMutex, so every
// operation (including the task-delete cascade) is atomic with respect to
// the others. Records are stored and returned by value.
type Store struct {
	mu       sync.RWMutex
	tasks    map[string]models.Task
	projects map[string]models.Project
	entries  map[string]models.TimeEntry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		tasks:    make(map[string]models.Task),
		projects: make(map[string]models.Project),
		entries:  make(map[string]models.TimeEntry),
	}
}

func (s *Store) PutTask(t models.Task) error {
	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	s.mu.RLock()
	t, ok := s.tasks[id]
	s.mu.RUnlock()
	if !ok {
		return models.Task{}, store.NotFound(store.KindTask, id)
	}
	return t, nil
}

// DeleteTask removes the task and every time entry referencing it, and
// reports how many entries were cascaded away.
func (s *Store) DeleteTask(id string) (models.Task, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, 0, store.NotFound(store.KindTask, id)
	}
	delete(s.tasks, id)

	removed := 0
	for eid, e := range s.entries {
		if e.TaskID == id {
			delete(s.entries, eid)
			removed++
		}
	}
	return t, removed, nil
}

func (s *Store) ListTasks() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) PutProject(p models.Project) error {
	s.mu.Lock()
	s.projects[p.ID] = p
	s.mu.Unlock()
	return nil
}

func (s *Store) GetProject(id string) (models.Project, error) {
	s.mu.RLock()
	p, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return models.Project{}, store.NotFound(store.KindProject, id)
	}
	return p, nil
}

// DeleteProject removes only the project. Tasks keep their project_id;
// callers reassign or delete them explicitly.
func (s *Store) DeleteProject(id string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, store.NotFound(store.KindProject, id)
	}
	delete(s.projects, id)
	return p, nil
}

func (s *Store) ListProjects() ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *Store) PutTimeEntry(e models.TimeEntry) error {
	s.mu.Lock()
	s.entries[e.ID] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) GetTimeEntry(id string) (models.TimeEntry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return models.TimeEntry{}, store.NotFound(store.KindTimeEntry, id)
	}
	return e, nil
}

func (s *Store) DeleteTimeEntry(id string) (models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return models.TimeEntry{}, store.NotFound(store.KindTimeEntry, id)
	}
	delete(s.entries, id)
	return e, nil
}

func (s *Store) ListTimeEntries() ([]models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Store) EntriesForTask(taskID string) ([]models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []models.TimeEntry
	for _, e := range s.entries {
		if e.TaskID == taskID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) OpenEntry(taskID string) (models.TimeEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.TaskID == taskID && e.Open() {
			return e, true, nil
		}
	}
	return models.TimeEntry{}, false, nil
}

func (s *Store) Close() error {
	return nil
}
