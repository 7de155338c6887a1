// Package analytics aggregates tracked time over a trailing window.
// Collection takes one snapshot from the store; every aggregation after
// that is a pure function over the collected entries.
package analytics

import (
	"errors"
	"sort"
	"time"

	"tempo/internal/models"
	"tempo/internal/store"
)

// ErrInvalidWindow is returned when the expected-hours divisor of the
// productivity ratio would be non-positive.
var ErrInvalidWindow = errors.New("days and work hours per day must be positive")

// Entry is a closed time entry joined with its owning task.
type Entry struct {
	Entry models.TimeEntry
	Task  models.Task
}

// Minutes returns the entry's recorded duration.
func (e Entry) Minutes() int {
	if e.Entry.DurationMinutes == nil {
		return 0
	}
	return *e.Entry.DurationMinutes
}

// CollectWindow selects every closed entry whose start time falls within
// the trailing window of the given number of days and whose task still
// exists. Entries referencing a deleted task are silently excluded.
func CollectWindow(st store.Store, now time.Time, days int) ([]Entry, error) {
	entries, err := st.ListTimeEntries()
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -days)

	var out []Entry
	for _, e := range entries {
		if e.DurationMinutes == nil || e.StartTime.Before(cutoff) {
			continue
		}
		task, err := st.GetTask(e.TaskID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Entry: e, Task: task})
	}
	return out, nil
}

// FilterEntries narrows a collected set by task category and/or project.
func FilterEntries(entries []Entry, category *models.Category, projectID string) []Entry {
	var out []Entry
	for _, e := range entries {
		if category != nil && e.Task.Category != *category {
			continue
		}
		if projectID != "" && e.Task.ProjectID != projectID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TotalMinutes sums the recorded minutes across entries.
func TotalMinutes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes()
	}
	return total
}

// CategoryStat is the rollup for one category.
type CategoryStat struct {
	Category models.Category
	Minutes  int
	Percent  float64
}

// ByCategory sums minutes per task category, with each category's share of
// the window total. Sorted by minutes descending, category name ascending
// on ties. Percentages stay zero when the total is zero.
func ByCategory(entries []Entry) []CategoryStat {
	totals := make(map[models.Category]int)
	for _, e := range entries {
		totals[e.Task.Category] += e.Minutes()
	}

	grand := TotalMinutes(entries)

	stats := make([]CategoryStat, 0, len(totals))
	for cat, mins := range totals {
		s := CategoryStat{Category: cat, Minutes: mins}
		if grand > 0 {
			s.Percent = float64(mins) / float64(grand) * 100
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Minutes != stats[j].Minutes {
			return stats[i].Minutes > stats[j].Minutes
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// DayStat is the rollup for one calendar day.
type DayStat struct {
	Day     string // YYYY-MM-DD
	Minutes int
}

// ByDay sums minutes per calendar date of each entry's start time in the
// given location, sorted chronologically.
func ByDay(entries []Entry, loc *time.Location) []DayStat {
	totals := make(map[string]int)
	for _, e := range entries {
		day := e.Entry.StartTime.In(loc).Format("2006-01-02")
		totals[day] += e.Minutes()
	}

	stats := make([]DayStat, 0, len(totals))
	for day, mins := range totals {
		stats = append(stats, DayStat{Day: day, Minutes: mins})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Day < stats[j].Day })
	return stats
}

// TaskStat is the rollup for one task.
type TaskStat struct {
	TaskID  string
	Title   string
	Minutes int
}

// ByTask sums minutes per task, sorted by minutes descending then title,
// for most-time-consuming rankings. Callers slice for a top-N view.
func ByTask(entries []Entry) []TaskStat {
	totals := make(map[string]*TaskStat)
	for _, e := range entries {
		s, ok := totals[e.Task.ID]
		if !ok {
			s = &TaskStat{TaskID: e.Task.ID, Title: e.Task.Title}
			totals[e.Task.ID] = s
		}
		s.Minutes += e.Minutes()
	}

	stats := make([]TaskStat, 0, len(totals))
	for _, s := range totals {
		stats = append(stats, *s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Minutes != stats[j].Minutes {
			return stats[i].Minutes > stats[j].Minutes
		}
		return stats[i].Title < stats[j].Title
	})
	return stats
}

// ProductivityRatio expresses tracked minutes as a percentage of the
// expected working time for the window.
func ProductivityRatio(totalMinutes int, days int, workHoursPerDay float64) (float64, error) {
	if days <= 0 || workHoursPerDay <= 0 {
		return 0, ErrInvalidWindow
	}
	expected := workHoursPerDay * float64(days)
	return (float64(totalMinutes) / 60) / expected * 100, nil
}
