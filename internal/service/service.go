// Package service exposes the operations the protocol layer calls: entity
// CRUD, the timer state machine and analytics collection. It owns the
// mutation discipline: every write sequence runs under a single service
// mutex, so no caller observes a partially applied change.
package service

import (
	"sync"
	"time"

	"tempo/internal/config"
	"tempo/internal/store"
)

// Service wires a store with the session settings.
type Service struct {
	store    store.Store
	settings config.Settings

	// mu serializes every sequence that spans multiple store calls: the
	// read-modify-write paths (timer transitions, patches, cascades) and
	// the multi-read aggregates (task detail, project status). Single-call
	// reads go to the store directly and see a consistent per-call snapshot.
	mu sync.Mutex

	// now is the clock; tests swap it for deterministic timers.
	now func() time.Time
}

// New creates a service over the given store.
func New(st store.Store, settings config.Settings) (*Service, error) {
	if st == nil {
		return nil, ErrStoreNil
	}
	return &Service{
		store:    st,
		settings: settings,
		now:      time.Now,
	}, nil
}

// Settings returns the immutable session settings.
func (s *Service) Settings() config.Settings {
	return s.settings
}
