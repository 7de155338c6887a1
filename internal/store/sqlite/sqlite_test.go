package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tempo/internal/models"
	"tempo/internal/store"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tempo.db"))
	if err != nil {
		t.Fatalf("Open() err=%v, want nil", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTaskRoundTrip(t *testing.T) {
	s := openTemp(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	task := models.NewTask("persisted", now)
	task.Description = "survives restarts"
	task.Tags = []string{"infra", "storage"}
	due := now.AddDate(0, 0, 7)
	task.DueDate = &due
	est := 4.5
	task.EstimatedHours = &est

	if err := s.PutTask(task); err != nil {
		t.Fatalf("PutTask() err=%v, want nil", err)
	}

	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask() err=%v, want nil", err)
	}
	if got.Title != task.Title || got.Description != task.Description {
		t.Fatalf("GetTask()=%q/%q, want %q/%q", got.Title, got.Description, task.Title, task.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("DueDate=%v, want %v", got.DueDate, due)
	}
	if got.EstimatedHours == nil || *got.EstimatedHours != est {
		t.Fatalf("EstimatedHours=%v, want %v", got.EstimatedHours, est)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "infra" {
		t.Fatalf("Tags=%v, want [infra storage]", got.Tags)
	}
	if got.ActualHours != nil {
		t.Fatalf("ActualHours=%v round-tripped, want nil", got.ActualHours)
	}
}

func TestPutTaskUpserts(t *testing.T) {
	s := openTemp(t)

	task := models.NewTask("v1", time.Now().UTC())
	s.PutTask(task)

	task.Title = "v2"
	if err := s.PutTask(task); err != nil {
		t.Fatalf("PutTask() second err=%v, want nil", err)
	}

	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask() err=%v, want nil", err)
	}
	if got.Title != "v2" {
		t.Fatalf("Title=%q after upsert, want v2", got.Title)
	}

	tasks, _ := s.ListTasks()
	if len(tasks) != 1 {
		t.Fatalf("ListTasks() len=%d after upsert, want 1", len(tasks))
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.GetTask("missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetTask(missing) err=%v, want ErrNotFound", err)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	s := openTemp(t)
	now := time.Now().UTC()

	task := models.NewTask("doomed", now)
	s.PutTask(task)
	for i := 0; i < 2; i++ {
		s.PutTimeEntry(models.NewTimeEntry(task.ID, now))
	}

	got, removed, err := s.DeleteTask(task.ID)
	if err != nil {
		t.Fatalf("DeleteTask() err=%v, want nil", err)
	}
	if got.ID != task.ID || got.Title != "doomed" {
		t.Fatalf("DeleteTask()=%s/%q, want the deleted task back", got.ID, got.Title)
	}
	if removed != 2 {
		t.Fatalf("DeleteTask() removed=%d, want 2", removed)
	}

	entries, err := s.EntriesForTask(task.ID)
	if err != nil {
		t.Fatalf("EntriesForTask() err=%v, want nil", err)
	}
	if len(entries) != 0 {
		t.Fatalf("EntriesForTask() len=%d after cascade, want 0", len(entries))
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	s := openTemp(t)
	if _, _, err := s.DeleteTask("missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("DeleteTask(missing) err=%v, want ErrNotFound", err)
	}
}

func TestOpenEntry(t *testing.T) {
	s := openTemp(t)
	now := time.Now().UTC()

	task := models.NewTask("timed", now)
	s.PutTask(task)

	if _, ok, err := s.OpenEntry(task.ID); err != nil || ok {
		t.Fatalf("OpenEntry() ok=%v err=%v with no entries, want false/nil", ok, err)
	}

	entry := models.NewTimeEntry(task.ID, now)
	s.PutTimeEntry(entry)

	got, ok, err := s.OpenEntry(task.ID)
	if err != nil {
		t.Fatalf("OpenEntry() err=%v, want nil", err)
	}
	if !ok || got.ID != entry.ID {
		t.Fatalf("OpenEntry()=%s/%v, want %s/true", got.ID, ok, entry.ID)
	}

	end := now.Add(30 * time.Minute)
	mins := 30
	entry.EndTime = &end
	entry.DurationMinutes = &mins
	if err := s.PutTimeEntry(entry); err != nil {
		t.Fatalf("PutTimeEntry(close) err=%v, want nil", err)
	}

	if _, ok, _ := s.OpenEntry(task.ID); ok {
		t.Fatalf("OpenEntry() ok=true after close, want false")
	}

	got, err = s.GetTimeEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetTimeEntry() err=%v, want nil", err)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 30 {
		t.Fatalf("DurationMinutes=%v, want 30", got.DurationMinutes)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	s := openTemp(t)
	now := time.Now().UTC()

	project := models.NewProject("launch", now)
	project.TeamMembers = []string{"alice", "bob"}
	budget := 5000.0
	project.Budget = &budget
	s.PutProject(project)

	got, err := s.GetProject(project.ID)
	if err != nil {
		t.Fatalf("GetProject() err=%v, want nil", err)
	}
	if got.Name != "launch" || got.Status != "active" {
		t.Fatalf("GetProject()=%q/%q, want launch/active", got.Name, got.Status)
	}
	if len(got.TeamMembers) != 2 || got.Budget == nil || *got.Budget != budget {
		t.Fatalf("team=%v budget=%v, want 2 members and %v", got.TeamMembers, got.Budget, budget)
	}

	if _, err := s.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject() err=%v, want nil", err)
	}
	if _, err := s.GetProject(project.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetProject() after delete err=%v, want ErrNotFound", err)
	}
}
