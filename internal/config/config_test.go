package config

import (
	"testing"

	"tempo/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEMPO_DEFAULT_PRIORITY", "")
	t.Setenv("TEMPO_DEFAULT_CATEGORY", "")
	t.Setenv("TEMPO_TIMEZONE", "")
	t.Setenv("TEMPO_WORK_HOURS_PER_DAY", "")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v, want nil", err)
	}
	if s != Default() {
		t.Fatalf("Load()=%+v, want defaults %+v", s, Default())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TEMPO_DEFAULT_PRIORITY", "high")
	t.Setenv("TEMPO_DEFAULT_CATEGORY", "work")
	t.Setenv("TEMPO_TIMEZONE", "America/New_York")
	t.Setenv("TEMPO_WORK_HOURS_PER_DAY", "6.5")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v, want nil", err)
	}
	if s.DefaultPriority != models.PriorityHigh {
		t.Fatalf("DefaultPriority=%s, want high", s.DefaultPriority)
	}
	if s.DefaultCategory != models.CategoryWork {
		t.Fatalf("DefaultCategory=%s, want work", s.DefaultCategory)
	}
	if s.Timezone != "America/New_York" {
		t.Fatalf("Timezone=%s, want America/New_York", s.Timezone)
	}
	if s.WorkHoursPerDay != 6.5 {
		t.Fatalf("WorkHoursPerDay=%v, want 6.5", s.WorkHoursPerDay)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"TEMPO_DEFAULT_PRIORITY", "critical"},
		{"TEMPO_DEFAULT_CATEGORY", "hobby"},
		{"TEMPO_TIMEZONE", "Mars/Olympus"},
		{"TEMPO_WORK_HOURS_PER_DAY", "-2"},
		{"TEMPO_WORK_HOURS_PER_DAY", "lots"},
	}
	for _, c := range cases {
		t.Run(c.key+"="+c.value, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() err=nil with %s=%s, want error", c.key, c.value)
			}
		})
	}
}

func TestLocationFallback(t *testing.T) {
	s := Default()
	s.Timezone = "Nowhere/Invalid"
	if loc := s.Location(); loc.String() != "UTC" {
		t.Fatalf("Location()=%s for invalid timezone, want UTC", loc)
	}
}
