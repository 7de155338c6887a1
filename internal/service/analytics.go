package service

import (
	"tempo/internal/analytics"
	"tempo/internal/models"
)

// AnalyticsParams selects a trailing window, optionally narrowed by task
// category and/or project.
type AnalyticsParams struct {
	Days      int
	Category  string
	ProjectID string
}

// AnalyticsReport bundles the window rollups for rendering.
type AnalyticsReport struct {
	Days            int
	EntryCount      int
	TotalMinutes    int
	Categories      []analytics.CategoryStat
	Daily           []analytics.DayStat
	TopTasks        []analytics.TaskStat
	Ratio           float64
	WorkHoursPerDay float64
}

// Analytics aggregates closed time entries over the trailing window.
// Entries whose task was deleted are excluded.
func (s *Service) Analytics(p AnalyticsParams) (AnalyticsReport, error) {
	if p.Days <= 0 {
		return AnalyticsReport{}, analytics.ErrInvalidWindow
	}

	var category *models.Category
	if p.Category != "" {
		parsed, err := models.ParseCategory(p.Category)
		if err != nil {
			return AnalyticsReport{}, err
		}
		category = &parsed
	}

	entries, err := analytics.CollectWindow(s.store, s.now(), p.Days)
	if err != nil {
		return AnalyticsReport{}, err
	}
	entries = analytics.FilterEntries(entries, category, p.ProjectID)

	total := analytics.TotalMinutes(entries)
	ratio, err := analytics.ProductivityRatio(total, p.Days, s.settings.WorkHoursPerDay)
	if err != nil {
		return AnalyticsReport{}, err
	}

	return AnalyticsReport{
		Days:            p.Days,
		EntryCount:      len(entries),
		TotalMinutes:    total,
		Categories:      analytics.ByCategory(entries),
		Daily:           analytics.ByDay(entries, s.settings.Location()),
		TopTasks:        analytics.ByTask(entries),
		Ratio:           ratio,
		WorkHoursPerDay: s.settings.WorkHoursPerDay,
	}, nil
}
