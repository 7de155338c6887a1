package report

import (
	"strings"
	"testing"
	"time"

	"tempo/internal/models"
	"tempo/internal/service"
)

var now = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func TestTaskCreated(t *testing.T) {
	task := models.NewTask("ship release", now)
	task.Priority = models.PriorityHigh

	out := TaskCreated(task)
	for _, want := range []string{"Task created successfully", task.ID, "ship release", "high", "No due date"} {
		if !strings.Contains(out, want) {
			t.Fatalf("TaskCreated() missing %q in:\n%s", want, out)
		}
	}

	due := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	task.DueDate = &due
	if out := TaskCreated(task); !strings.Contains(out, "2024-06-01 17:00") {
		t.Fatalf("TaskCreated() missing formatted due date in:\n%s", out)
	}
}

func TestTaskListEmpty(t *testing.T) {
	out := TaskList(nil)
	if !strings.Contains(out, "No tasks found") {
		t.Fatalf("TaskList(nil) = %q, want the empty-result message", out)
	}
}

func TestTaskListNumbersAndBadges(t *testing.T) {
	urgent := models.NewTask("urgent thing", now)
	urgent.Priority = models.PriorityUrgent
	second := models.NewTask("second thing", now)

	out := TaskList([]models.Task{urgent, second})
	if !strings.Contains(out, "Found 2 task(s)") {
		t.Fatalf("TaskList() missing count in:\n%s", out)
	}
	if !strings.Contains(out, "1. 🔴") {
		t.Fatalf("TaskList() missing urgent badge on first item in:\n%s", out)
	}
	if !strings.Contains(out, "2. ") || !strings.Contains(out, "second thing") {
		t.Fatalf("TaskList() missing numbered second item in:\n%s", out)
	}
}

func TestTimerStarted(t *testing.T) {
	task := models.NewTask("timed", now)
	entry := models.NewTimeEntry(task.ID, now)

	out := TimerStarted(service.TimerStatus{Task: task, Entry: entry})
	if !strings.Contains(out, "Timer started for task 'timed'") {
		t.Fatalf("TimerStarted() = %q, want start message", out)
	}

	out = TimerStarted(service.TimerStatus{Task: task, Entry: entry, AlreadyRunning: true})
	if !strings.Contains(out, "already running") || !strings.Contains(out, "14:30") {
		t.Fatalf("TimerStarted(running) = %q, want already-running message with start clock", out)
	}
}

func TestTimerStopped(t *testing.T) {
	task := models.NewTask("timed", now)
	task.AddHours(1.5)
	entry := models.NewTimeEntry(task.ID, now)
	minutes := 90
	end := now.Add(90 * time.Minute)
	entry.EndTime = &end
	entry.DurationMinutes = &minutes

	out := TimerStopped(service.TimerResult{Task: task, Entry: entry})
	if !strings.Contains(out, "Duration: 1h 30m") {
		t.Fatalf("TimerStopped() missing duration in:\n%s", out)
	}
	if !strings.Contains(out, "Total time on task: 1.5 hours") {
		t.Fatalf("TimerStopped() missing total hours in:\n%s", out)
	}
}

func TestAnalyticsEmpty(t *testing.T) {
	out := Analytics(service.AnalyticsReport{Days: 7})
	if !strings.Contains(out, "No time entries found for the last 7 days") {
		t.Fatalf("Analytics(empty) = %q, want empty-window message", out)
	}
}

func TestProjectStatusBudgetLine(t *testing.T) {
	project := models.NewProject("launch", now)
	budget := 1000.0
	project.Budget = &budget

	out := ProjectStatus(service.ProjectStatus{
		Project:        project,
		TotalTasks:     2,
		CompletedTasks: 1,
		Progress:       50,
		TotalMinutes:   120,
		EstimatedCost:  100,
		BudgetUsage:    10,
		StatusCounts: map[models.Status]int{
			models.StatusTodo:      1,
			models.StatusCompleted: 1,
		},
	})

	for _, want := range []string{
		"Project Status: launch",
		"1/2 tasks completed (50.0%)",
		"Time Spent: 2.0 hours",
		"$100.00 / $1000 (10.0%)",
		"Todo: 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("ProjectStatus() missing %q in:\n%s", want, out)
		}
	}
}

func TestDurationFormat(t *testing.T) {
	if got := duration(90); got != "1h 30m" {
		t.Fatalf("duration(90)=%q, want 1h 30m", got)
	}
	if got := duration(45); got != "0h 45m" {
		t.Fatalf("duration(45)=%q, want 0h 45m", got)
	}
}
