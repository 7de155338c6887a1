package service

import (
	"fmt"
	"time"

	"tempo/internal/models"
)

// TimerStatus is the result of starting a timer. When AlreadyRunning is
// set, Entry is the pre-existing open entry: a double start is an
// informational success, not an error.
type TimerStatus struct {
	Task           models.Task
	Entry          models.TimeEntry
	AlreadyRunning bool
}

// TimerResult is the result of closing a time entry via stop or log.
type TimerResult struct {
	Task  models.Task
	Entry models.TimeEntry
}

// StartTimer opens a time entry for the task. Each task has at most one
// open entry; if a timer is already running the existing entry is reported
// instead of a new one being created.
func (s *Service) StartTimer(taskID, description string) (TimerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.GetTask(taskID)
	if err != nil {
		return TimerStatus{}, err
	}

	if open, ok, err := s.store.OpenEntry(taskID); err != nil {
		return TimerStatus{}, err
	} else if ok {
		return TimerStatus{Task: task, Entry: open, AlreadyRunning: true}, nil
	}

	entry := models.NewTimeEntry(taskID, s.now())
	entry.Description = description
	if err := s.store.PutTimeEntry(entry); err != nil {
		return TimerStatus{}, err
	}
	return TimerStatus{Task: task, Entry: entry}, nil
}

// StopTimer closes an open entry, selected either by entry id or by task
// id (resolved to that task's open entry). The elapsed time is truncated
// to whole minutes and added to the task's actual hours.
func (s *Service) StopTimer(entryID, taskID string) (TimerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.TimeEntry
	switch {
	case entryID != "":
		e, err := s.store.GetTimeEntry(entryID)
		if err != nil {
			return TimerResult{}, err
		}
		if !e.Open() {
			return TimerResult{}, ErrEntryClosed
		}
		entry = e
	case taskID != "":
		e, ok, err := s.store.OpenEntry(taskID)
		if err != nil {
			return TimerResult{}, err
		}
		if !ok {
			return TimerResult{}, fmt.Errorf("task %q: %w", taskID, ErrTimerNotRunning)
		}
		entry = e
	default:
		return TimerResult{}, ErrNoSelector
	}

	end := s.now()
	minutes := int(end.Sub(entry.StartTime).Minutes())
	entry.EndTime = &end
	entry.DurationMinutes = &minutes

	if err := s.store.PutTimeEntry(entry); err != nil {
		return TimerResult{}, err
	}

	task, err := s.creditTask(entry.TaskID, float64(minutes)/60)
	if err != nil {
		return TimerResult{}, err
	}
	return TimerResult{Task: task, Entry: entry}, nil
}

// LogTime records a closed entry directly, bypassing the running/idle
// machine: a running timer on the same task is unaffected. The duration is
// taken verbatim and must be positive; start defaults to now when empty.
func (s *Service) LogTime(taskID string, durationMinutes int, startTime, description string) (TimerResult, error) {
	if durationMinutes <= 0 {
		return TimerResult{}, ErrInvalidDuration
	}

	start := time.Time{}
	if startTime != "" {
		parsed, err := models.ParseTimestamp(startTime)
		if err != nil {
			return TimerResult{}, err
		}
		start = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetTask(taskID); err != nil {
		return TimerResult{}, err
	}

	if start.IsZero() {
		start = s.now()
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	entry := models.NewTimeEntry(taskID, start)
	entry.EndTime = &end
	entry.DurationMinutes = &durationMinutes
	entry.Description = description

	if err := s.store.PutTimeEntry(entry); err != nil {
		return TimerResult{}, err
	}

	task, err := s.creditTask(taskID, float64(durationMinutes)/60)
	if err != nil {
		return TimerResult{}, err
	}
	return TimerResult{Task: task, Entry: entry}, nil
}

// creditTask adds tracked hours to the task. Accumulation is additive:
// repeated stops and logs compound, they never overwrite.
func (s *Service) creditTask(taskID string, hours float64) (models.Task, error) {
	task, err := s.store.GetTask(taskID)
	if err != nil {
		return models.Task{}, err
	}
	task.AddHours(hours)
	task.UpdatedAt = s.now()
	if err := s.store.PutTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}
