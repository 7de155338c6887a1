// Package report renders structured results into the markdown/emoji text
// shown to the MCP client. It holds no state and performs no I/O.
package report

import (
	"fmt"
	"strings"
	"time"

	"tempo/internal/models"
	"tempo/internal/service"
)

func priorityEmoji(p models.Priority) string {
	switch p {
	case models.PriorityUrgent:
		return "🔴"
	case models.PriorityHigh:
		return "🟠"
	case models.PriorityMedium:
		return "🟡"
	case models.PriorityLow:
		return "🟢"
	}
	return "⚪"
}

func statusEmoji(s models.Status) string {
	switch s {
	case models.StatusTodo:
		return "📝"
	case models.StatusInProgress:
		return "🔄"
	case models.StatusReview:
		return "👀"
	case models.StatusCompleted:
		return "✅"
	case models.StatusCancelled:
		return "❌"
	}
	return "❓"
}

// title uppercases the first letter, keeping the rest as-is.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// duration formats minutes as "Xh Ym".
func duration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func date(t *time.Time) string {
	if t == nil {
		return "Not set"
	}
	return t.Format("2006-01-02")
}

// TaskCreated renders the create_task success response.
func TaskCreated(t models.Task) string {
	due := "No due date"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("✅ Task created successfully!\n"+
		"ID: %s\n"+
		"Title: %s\n"+
		"Priority: %s\n"+
		"Category: %s\n"+
		"Status: %s\n"+
		"Due: %s",
		t.ID, t.Title, t.Priority, t.Category, t.Status, due)
}

// TaskUpdated renders the update_task success response.
func TaskUpdated(t models.Task) string {
	return fmt.Sprintf("✅ Task updated successfully!\n"+
		"ID: %s\n"+
		"Title: %s\n"+
		"Status: %s\n"+
		"Priority: %s\n"+
		"Updated: %s",
		t.ID, t.Title, t.Status, t.Priority, t.UpdatedAt.Format("2006-01-02 15:04"))
}

// TaskDeleted renders the delete_task response with the cascade count.
func TaskDeleted(t models.Task, removedEntries int) string {
	return fmt.Sprintf("✅ Task deleted successfully!\n"+
		"Title: %s\n"+
		"Also removed %d associated time entries.",
		t.Title, removedEntries)
}

// TaskList renders a numbered, filtered task listing.
func TaskList(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "📝 No tasks found matching the criteria."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Found %d task(s):\n\n", len(tasks))
	for i, t := range tasks {
		due := "No due date"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		assignee := t.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}

		fmt.Fprintf(&b, "%d. %s %s **%s**\n", i+1, priorityEmoji(t.Priority), statusEmoji(t.Status), t.Title)
		fmt.Fprintf(&b, "   ID: %s\n", t.ID)
		fmt.Fprintf(&b, "   Priority: %s | Category: %s\n", title(string(t.Priority)), title(string(t.Category)))
		fmt.Fprintf(&b, "   Due: %s | Assignee: %s\n", due, assignee)
		if t.Description != "" {
			desc := t.Description
			if len(desc) > 100 {
				desc = desc[:100] + "..."
			}
			fmt.Fprintf(&b, "   Description: %s\n", desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TaskDetails renders the full single-task view with its time entries.
func TaskDetails(d service.TaskDetail) string {
	t := d.Task

	assignee := t.Assignee
	if assignee == "" {
		assignee = "Unassigned"
	}
	project := t.ProjectID
	if project == "" {
		project = "No project"
	}

	var b strings.Builder
	b.WriteString("📋 **Task Details**\n\n")
	fmt.Fprintf(&b, "**Title:** %s\n", t.Title)
	fmt.Fprintf(&b, "**ID:** %s\n", t.ID)
	fmt.Fprintf(&b, "**Status:** %s\n", title(string(t.Status)))
	fmt.Fprintf(&b, "**Priority:** %s\n", title(string(t.Priority)))
	fmt.Fprintf(&b, "**Category:** %s\n", title(string(t.Category)))
	fmt.Fprintf(&b, "**Assignee:** %s\n", assignee)
	fmt.Fprintf(&b, "**Project ID:** %s\n", project)
	fmt.Fprintf(&b, "**Created:** %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Updated:** %s\n", t.UpdatedAt.Format("2006-01-02 15:04"))

	if t.DueDate != nil {
		fmt.Fprintf(&b, "**Due Date:** %s\n", t.DueDate.Format("2006-01-02 15:04"))
	}
	if t.EstimatedHours != nil {
		fmt.Fprintf(&b, "**Estimated Hours:** %g\n", *t.EstimatedHours)
	}
	if t.ActualHours != nil {
		fmt.Fprintf(&b, "**Actual Hours:** %.1f\n", *t.ActualHours)
	}
	fmt.Fprintf(&b, "**Total Time Tracked:** %s\n", duration(d.TotalMinutes))

	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(t.Tags, ", "))
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&b, "**Dependencies:** %s\n", strings.Join(t.Dependencies, ", "))
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n**Description:**\n%s\n", t.Description)
	}

	if len(d.Entries) > 0 {
		fmt.Fprintf(&b, "\n**Time Entries (%d):**\n", len(d.Entries))
		entries := d.Entries
		if len(entries) > 5 {
			entries = entries[len(entries)-5:]
		}
		for _, e := range entries {
			dur := "Ongoing"
			if e.DurationMinutes != nil {
				dur = duration(*e.DurationMinutes)
			}
			fmt.Fprintf(&b, "- %s (%s)\n", e.StartTime.Format("2006-01-02 15:04"), dur)
			if e.Description != "" {
				fmt.Fprintf(&b, "  %s\n", e.Description)
			}
		}
	}
	return b.String()
}

// TimerStarted renders the start_timer response, covering both the fresh
// start and the informational already-running case.
func TimerStarted(st service.TimerStatus) string {
	if st.AlreadyRunning {
		return fmt.Sprintf("⏰ Timer already running for task '%s' since %s",
			st.Task.Title, st.Entry.StartTime.Format("15:04"))
	}
	return fmt.Sprintf("⏰ Timer started for task '%s'\n"+
		"Entry ID: %s\n"+
		"Started at: %s",
		st.Task.Title, st.Entry.ID, st.Entry.StartTime.Format("2006-01-02 15:04:05"))
}

// TimerStopped renders the stop_timer response.
func TimerStopped(res service.TimerResult) string {
	minutes := 0
	if res.Entry.DurationMinutes != nil {
		minutes = *res.Entry.DurationMinutes
	}
	hours := 0.0
	if res.Task.ActualHours != nil {
		hours = *res.Task.ActualHours
	}
	return fmt.Sprintf("⏹️ Timer stopped for task '%s'\n"+
		"Duration: %s\n"+
		"Total time on task: %.1f hours",
		res.Task.Title, duration(minutes), hours)
}

// TimeLogged renders the log_time response.
func TimeLogged(res service.TimerResult) string {
	minutes := 0
	if res.Entry.DurationMinutes != nil {
		minutes = *res.Entry.DurationMinutes
	}
	hours := 0.0
	if res.Task.ActualHours != nil {
		hours = *res.Task.ActualHours
	}
	return fmt.Sprintf("📝 Time logged for task '%s'\n"+
		"Duration: %s\n"+
		"Total time on task: %.1f hours",
		res.Task.Title, duration(minutes), hours)
}

// Analytics renders the get_time_analytics report.
func Analytics(r service.AnalyticsReport) string {
	if r.EntryCount == 0 {
		return fmt.Sprintf("📊 No time entries found for the last %d days.", r.Days)
	}

	totalHours := float64(r.TotalMinutes) / 60

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Time Analytics Report** (%d days)\n\n", r.Days)
	fmt.Fprintf(&b, "**Total Time Tracked:** %.1f hours (%d minutes)\n", totalHours, r.TotalMinutes)
	fmt.Fprintf(&b, "**Average per Day:** %.1f hours\n", totalHours/float64(r.Days))
	fmt.Fprintf(&b, "**Productivity Ratio:** %.1f%% (vs %gh/day target)\n\n", r.Ratio, r.WorkHoursPerDay)

	b.WriteString("**Time by Category:**\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "- %s: %.1fh (%.1f%%)\n", title(string(c.Category)), float64(c.Minutes)/60, c.Percent)
	}

	b.WriteString("\n**Daily Breakdown:**\n")
	for _, d := range r.Daily {
		fmt.Fprintf(&b, "- %s: %.1fh\n", d.Day, float64(d.Minutes)/60)
	}

	b.WriteString("\n**Top Tasks:**\n")
	top := r.TopTasks
	if len(top) > 5 {
		top = top[:5]
	}
	for _, t := range top {
		fmt.Fprintf(&b, "- %s: %.1fh\n", t.Title, float64(t.Minutes)/60)
	}
	return b.String()
}

// ProjectCreated renders the create_project response.
func ProjectCreated(p models.Project) string {
	budget := "Not set"
	if p.Budget != nil {
		budget = fmt.Sprintf("%g", *p.Budget)
	}
	return fmt.Sprintf("🚀 Project created successfully!\n"+
		"ID: %s\n"+
		"Name: %s\n"+
		"Team Members: %d\n"+
		"Budget: $%s\n"+
		"Timeline: %s to %s",
		p.ID, p.Name, len(p.TeamMembers), budget, date(p.StartDate), date(p.EndDate))
}

// ProjectStatus renders the get_project_status rollup.
func ProjectStatus(ps service.ProjectStatus) string {
	p := ps.Project

	team := "None"
	if len(p.TeamMembers) > 0 {
		team = strings.Join(p.TeamMembers, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Project Status: %s**\n\n", p.Name)
	fmt.Fprintf(&b, "**Progress:** %d/%d tasks completed (%.1f%%)\n", ps.CompletedTasks, ps.TotalTasks, ps.Progress)
	fmt.Fprintf(&b, "**Time Spent:** %.1f hours\n", float64(ps.TotalMinutes)/60)
	fmt.Fprintf(&b, "**Team Members:** %s\n", team)
	fmt.Fprintf(&b, "**Status:** %s\n", title(p.Status))
	if p.Budget != nil {
		fmt.Fprintf(&b, "**Budget Usage:** $%.2f / $%g (%.1f%%)\n", ps.EstimatedCost, *p.Budget, ps.BudgetUsage)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n**Description:** %s\n", p.Description)
	}

	if len(ps.StatusCounts) > 0 {
		b.WriteString("\n**Task Breakdown:**\n")
		for _, status := range []models.Status{
			models.StatusTodo, models.StatusInProgress, models.StatusReview,
			models.StatusCompleted, models.StatusCancelled,
		} {
			if count := ps.StatusCounts[status]; count > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", title(string(status)), count)
			}
		}
	}
	return b.String()
}
