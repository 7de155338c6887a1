package report

import (
	"fmt"
	"strings"

	"tempo/internal/models"
	"tempo/internal/service"
)

// Overview renders the tasks://all resource: system-wide counts and
// priority/category distributions.
func Overview(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "No tasks found in the system."
	}

	total := len(tasks)
	completed := 0
	inProgress := 0
	priorityCounts := make(map[models.Priority]int)
	categoryCounts := make(map[models.Category]int)

	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusInProgress:
			inProgress++
		}
		priorityCounts[t.Priority]++
		categoryCounts[t.Category]++
	}

	var b strings.Builder
	b.WriteString("# Task Management System Overview\n\n")
	fmt.Fprintf(&b, "**Total Tasks:** %d\n", total)
	fmt.Fprintf(&b, "**Completed:** %d (%.1f%%)\n", completed, float64(completed)/float64(total)*100)
	fmt.Fprintf(&b, "**In Progress:** %d\n\n", inProgress)

	b.WriteString("## Priority Distribution\n")
	for _, p := range []models.Priority{
		models.PriorityUrgent, models.PriorityHigh, models.PriorityMedium, models.PriorityLow,
	} {
		if count := priorityCounts[p]; count > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", title(string(p)), count)
		}
	}

	b.WriteString("\n## Category Distribution\n")
	for _, c := range []models.Category{
		models.CategoryWork, models.CategoryPersonal, models.CategoryLearning,
		models.CategoryHealth, models.CategoryFinance, models.CategoryOther,
	} {
		if count := categoryCounts[c]; count > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", title(string(c)), count)
		}
	}
	return b.String()
}

// Productivity renders the analytics://productivity resource over a
// 30-day report.
func Productivity(r service.AnalyticsReport) string {
	if r.EntryCount == 0 {
		return "No time tracking data found for the last 30 days."
	}

	totalHours := float64(r.TotalMinutes) / 60

	var b strings.Builder
	b.WriteString("# Productivity Analytics (Last 30 Days)\n\n")
	fmt.Fprintf(&b, "**Total Time Tracked:** %.1f hours\n", totalHours)
	fmt.Fprintf(&b, "**Average per Day:** %.1f hours\n", totalHours/float64(r.Days))
	fmt.Fprintf(&b, "**Total Sessions:** %d\n\n", r.EntryCount)

	b.WriteString("## Most Productive Categories\n")
	cats := r.Categories
	if len(cats) > 5 {
		cats = cats[:5]
	}
	for _, c := range cats {
		fmt.Fprintf(&b, "- %s: %.1f hours\n", title(string(c.Category)), float64(c.Minutes)/60)
	}

	b.WriteString("\n## Most Time-Consuming Tasks\n")
	top := r.TopTasks
	if len(top) > 5 {
		top = top[:5]
	}
	for _, t := range top {
		fmt.Fprintf(&b, "- %s: %.1f hours\n", t.Title, float64(t.Minutes)/60)
	}
	return b.String()
}

// ProjectsOverview renders the projects://overview resource.
func ProjectsOverview(projects []models.Project, tasks []models.Task) string {
	if len(projects) == 0 {
		return "No projects found in the system."
	}

	var b strings.Builder
	b.WriteString("# Projects Overview\n\n")
	fmt.Fprintf(&b, "**Total Projects:** %d\n\n", len(projects))

	for _, p := range projects {
		total, completed := 0, 0
		for _, t := range tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == models.StatusCompleted {
				completed++
			}
		}
		progress := 0.0
		if total > 0 {
			progress = float64(completed) / float64(total) * 100
		}

		fmt.Fprintf(&b, "## %s\n", p.Name)
		fmt.Fprintf(&b, "- **Status:** %s\n", title(p.Status))
		fmt.Fprintf(&b, "- **Progress:** %d/%d tasks (%.1f%%)\n", completed, total, progress)
		fmt.Fprintf(&b, "- **Team Size:** %d\n", len(p.TeamMembers))
		if p.Budget != nil {
			fmt.Fprintf(&b, "- **Budget:** $%g\n", *p.Budget)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HelpGuide is the static help://task-management resource.
func HelpGuide() string {
	return `# Task Management System Help Guide

## Core Concepts

### Tasks
Tasks are the fundamental unit of work in this system. Each task has:
- **Title**: Brief description of the work
- **Description**: Detailed information about the task
- **Priority**: low, medium, high, urgent
- **Status**: todo, in_progress, review, completed, cancelled
- **Category**: work, personal, learning, health, finance, other
- **Due Date**: When the task should be completed
- **Estimated Hours**: How long you think it will take
- **Actual Hours**: Time actually spent (tracked automatically)
- **Tags**: Custom labels for organization
- **Assignee**: Who is responsible for the task
- **Project ID**: Which project this task belongs to

### Projects
Projects group related tasks together and provide:
- **Timeline**: Start and end dates
- **Budget**: Financial constraints
- **Team Members**: People working on the project
- **Progress Tracking**: Overall completion status

### Time Tracking
The system automatically tracks time spent on tasks through:
- **Timers**: Start/stop time tracking for active work
- **Manual Logging**: Record time after the fact
- **Analytics**: Insights into productivity patterns

## Best Practices

1. **Create Clear Tasks**: Use descriptive titles and detailed descriptions
2. **Set Realistic Estimates**: Help with planning and resource allocation
3. **Use Categories**: Organize tasks by type for better insights
4. **Track Time Consistently**: Use timers or log time regularly
5. **Review Analytics**: Check productivity reports to improve efficiency
6. **Update Status**: Keep task status current for accurate progress tracking

## Workflow Tips

- Start with high-priority, urgent tasks
- Break large tasks into smaller, manageable pieces
- Use tags to create custom organization systems
- Set due dates to maintain momentum
- Review and update estimates based on actual time spent
`
}
