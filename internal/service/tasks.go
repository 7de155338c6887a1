package service

import (
	"sort"
	"strings"
	"time"

	"tempo/internal/models"
	"tempo/internal/query"
)

// CreateTaskParams carries the raw caller input for a new task. Priority
// and category fall back to the session defaults when empty; DueDate is an
// ISO-8601 string or empty.
type CreateTaskParams struct {
	Title          string
	Description    string
	Priority       string
	Category       string
	DueDate        string
	EstimatedHours *float64
	Tags           []string
	Dependencies   []string
	ProjectID      string
	Assignee       string
}

// CreateTask validates the input and stores a new task. The project
// reference is advisory and not checked for existence.
func (s *Service) CreateTask(p CreateTaskParams) (models.Task, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}

	priority := s.settings.DefaultPriority
	if p.Priority != "" {
		parsed, err := models.ParsePriority(p.Priority)
		if err != nil {
			return models.Task{}, err
		}
		priority = parsed
	}

	category := s.settings.DefaultCategory
	if p.Category != "" {
		parsed, err := models.ParseCategory(p.Category)
		if err != nil {
			return models.Task{}, err
		}
		category = parsed
	}

	var due *time.Time
	if p.DueDate != "" {
		parsed, err := models.ParseTimestamp(p.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		due = &parsed
	}

	if p.EstimatedHours != nil && *p.EstimatedHours < 0 {
		return models.Task{}, ErrNegativeHours
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.NewTask(title, s.now())
	task.Description = p.Description
	task.Priority = priority
	task.Category = category
	task.DueDate = due
	task.EstimatedHours = p.EstimatedHours
	task.Tags = p.Tags
	task.Dependencies = p.Dependencies
	task.ProjectID = p.ProjectID
	task.Assignee = p.Assignee

	if err := s.store.PutTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// TaskPatch is a partial update: nil fields are left unchanged. Supplied
// fields are all validated before any of them is applied, so a bad value
// never leaves a half-updated task behind.
type TaskPatch struct {
	Title          *string
	Description    *string
	Priority       *string
	Status         *string
	Category       *string
	DueDate        *string
	EstimatedHours *float64
	ActualHours    *float64
	Tags           []string
	Assignee       *string
	ProjectID      *string
}

// UpdateTask applies a patch to an existing task and bumps its updated_at.
func (s *Service) UpdateTask(id string, patch TaskPatch) (models.Task, error) {
	// Validate everything up front.
	var (
		priority models.Priority
		status   models.Status
		category models.Category
		due      time.Time
		err      error
	)
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if patch.Priority != nil {
		if priority, err = models.ParsePriority(*patch.Priority); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Status != nil {
		if status, err = models.ParseStatus(*patch.Status); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Category != nil {
		if category, err = models.ParseCategory(*patch.Category); err != nil {
			return models.Task{}, err
		}
	}
	if patch.DueDate != nil {
		if due, err = models.ParseTimestamp(*patch.DueDate); err != nil {
			return models.Task{}, err
		}
	}
	if patch.EstimatedHours != nil && *patch.EstimatedHours < 0 {
		return models.Task{}, ErrNegativeHours
	}
	if patch.ActualHours != nil && *patch.ActualHours < 0 {
		return models.Task{}, ErrNegativeHours
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.GetTask(id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = priority
	}
	if patch.Status != nil {
		task.Status = status
	}
	if patch.Category != nil {
		task.Category = category
	}
	if patch.DueDate != nil {
		d := due
		task.DueDate = &d
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		task.ActualHours = patch.ActualHours
	}
	if patch.Tags != nil {
		task.Tags = patch.Tags
	}
	if patch.Assignee != nil {
		task.Assignee = *patch.Assignee
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	task.UpdatedAt = s.now()

	if err := s.store.PutTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes the task and cascades to its time entries, reporting
// how many entries went with it.
func (s *Service) DeleteTask(id string) (models.Task, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteTask(id)
}

// GetTask returns a single task.
func (s *Service) GetTask(id string) (models.Task, error) {
	return s.store.GetTask(id)
}

// TaskDetail is a task together with its time entries.
type TaskDetail struct {
	Task         models.Task
	Entries      []models.TimeEntry
	TotalMinutes int
}

// GetTaskDetail returns a task with its entries sorted by start time and
// the sum of their recorded minutes. The task and entry reads happen under
// the service mutex so a concurrent cascade cannot land between them.
func (s *Service) GetTaskDetail(id string) (TaskDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.GetTask(id)
	if err != nil {
		return TaskDetail{}, err
	}
	entries, err := s.store.EntriesForTask(id)
	if err != nil {
		return TaskDetail{}, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})

	total := 0
	for _, e := range entries {
		if e.DurationMinutes != nil {
			total += *e.DurationMinutes
		}
	}
	return TaskDetail{Task: task, Entries: entries, TotalMinutes: total}, nil
}

// ListTasks returns a filtered, ordered, limited view over the tasks.
// A limit of zero or less yields an empty result.
func (s *Service) ListTasks(f query.Filter, limit int) ([]models.Task, error) {
	tasks, err := s.store.ListTasks()
	if err != nil {
		return nil, err
	}
	return query.Limit(query.Order(query.Apply(tasks, f)), limit), nil
}

// TasksSnapshot returns every task in unspecified order.
func (s *Service) TasksSnapshot() ([]models.Task, error) {
	return s.store.ListTasks()
}
