package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"tempo/internal/models"
)

// Settings holds per-session user preferences. The core never mutates it.
type Settings struct {
	DefaultPriority models.Priority
	DefaultCategory models.Category
	Timezone        string
	WorkHoursPerDay float64
}

// Default returns the stock settings: medium priority, other category,
// UTC, 8-hour work days.
func Default() Settings {
	return Settings{
		DefaultPriority: models.PriorityMedium,
		DefaultCategory: models.CategoryOther,
		Timezone:        "UTC",
		WorkHoursPerDay: 8.0,
	}
}

// Load builds settings from TEMPO_* environment variables, falling back to
// defaults for anything unset. Malformed enum values are an error so a typo
// fails at startup rather than silently tracking under the wrong defaults.
func Load() (Settings, error) {
	s := Default()

	if v := os.Getenv("TEMPO_DEFAULT_PRIORITY"); v != "" {
		p, err := models.ParsePriority(v)
		if err != nil {
			return Settings{}, fmt.Errorf("TEMPO_DEFAULT_PRIORITY: %w", err)
		}
		s.DefaultPriority = p
	}
	if v := os.Getenv("TEMPO_DEFAULT_CATEGORY"); v != "" {
		c, err := models.ParseCategory(v)
		if err != nil {
			return Settings{}, fmt.Errorf("TEMPO_DEFAULT_CATEGORY: %w", err)
		}
		s.DefaultCategory = c
	}
	if v := os.Getenv("TEMPO_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			return Settings{}, fmt.Errorf("TEMPO_TIMEZONE: %w", err)
		}
		s.Timezone = v
	}
	if v := os.Getenv("TEMPO_WORK_HOURS_PER_DAY"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || h <= 0 {
			return Settings{}, fmt.Errorf("TEMPO_WORK_HOURS_PER_DAY: want a positive number, got %q", v)
		}
		s.WorkHoursPerDay = h
	}

	return s, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
