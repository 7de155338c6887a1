package service

import "errors"

var (
	ErrStoreNil        = errors.New("store is nil")
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyName       = errors.New("name is required")
	ErrNegativeHours   = errors.New("hours must not be negative")
	ErrNegativeBudget  = errors.New("budget must not be negative")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrNoSelector      = errors.New("either a time entry id or a task id is required")

	// ErrEntryClosed and ErrTimerNotRunning are the invalid-state failures
	// of the timer: stopping an entry that is already closed, or stopping
	// by task when that task has no open entry.
	ErrEntryClosed     = errors.New("time entry is already stopped")
	ErrTimerNotRunning = errors.New("no active timer")
)
