package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"tempo/internal/models"
	"tempo/internal/store/memory"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func closedEntry(taskID string, start time.Time, minutes int) models.TimeEntry {
	e := models.NewTimeEntry(taskID, start)
	end := start.Add(time.Duration(minutes) * time.Minute)
	e.EndTime = &end
	e.DurationMinutes = &minutes
	return e
}

func seedTask(t *testing.T, st *memory.Store, title string, cat models.Category, projectID string) models.Task {
	t.Helper()
	task := models.NewTask(title, now)
	task.Category = cat
	task.ProjectID = projectID
	if err := st.PutTask(task); err != nil {
		t.Fatalf("PutTask() err=%v, want nil", err)
	}
	return task
}

func TestCollectWindowCutoff(t *testing.T) {
	st := memory.New()
	task := seedTask(t, st, "windowed", models.CategoryWork, "")

	st.PutTimeEntry(closedEntry(task.ID, now.Add(-2*24*time.Hour), 60))  // inside
	st.PutTimeEntry(closedEntry(task.ID, now.Add(-10*24*time.Hour), 60)) // outside
	st.PutTimeEntry(models.NewTimeEntry(task.ID, now.Add(-time.Hour)))   // open, excluded

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}
	if len(entries) != 1 {
		t.Fatalf("CollectWindow() len=%d, want 1", len(entries))
	}
	if entries[0].Minutes() != 60 {
		t.Fatalf("Minutes()=%d, want 60", entries[0].Minutes())
	}
}

func TestCollectWindowExcludesOrphans(t *testing.T) {
	st := memory.New()
	task := seedTask(t, st, "kept", models.CategoryWork, "")

	st.PutTimeEntry(closedEntry(task.ID, now.Add(-time.Hour), 30))

	orphan := closedEntry("deleted-task", now.Add(-time.Hour), 90)
	st.PutTimeEntry(orphan)

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}
	if len(entries) != 1 || entries[0].Task.ID != task.ID {
		t.Fatalf("CollectWindow() kept %d entries, want only the one with a live task", len(entries))
	}
}

func TestFilterEntries(t *testing.T) {
	st := memory.New()
	work := seedTask(t, st, "work", models.CategoryWork, "p1")
	personal := seedTask(t, st, "personal", models.CategoryPersonal, "p2")

	st.PutTimeEntry(closedEntry(work.ID, now.Add(-time.Hour), 60))
	st.PutTimeEntry(closedEntry(personal.ID, now.Add(-time.Hour), 30))

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}

	cat := models.CategoryWork
	got := FilterEntries(entries, &cat, "")
	if len(got) != 1 || got[0].Task.ID != work.ID {
		t.Fatalf("FilterEntries(work) len=%d, want 1 work entry", len(got))
	}

	got = FilterEntries(entries, nil, "p2")
	if len(got) != 1 || got[0].Task.ID != personal.ID {
		t.Fatalf("FilterEntries(p2) len=%d, want 1 p2 entry", len(got))
	}

	got = FilterEntries(entries, &cat, "p2")
	if len(got) != 0 {
		t.Fatalf("FilterEntries(work, p2) len=%d, want 0", len(got))
	}
}

func TestByCategoryShares(t *testing.T) {
	st := memory.New()
	work := seedTask(t, st, "w", models.CategoryWork, "")
	personal := seedTask(t, st, "p", models.CategoryPersonal, "")

	st.PutTimeEntry(closedEntry(work.ID, now.Add(-time.Hour), 120))
	st.PutTimeEntry(closedEntry(personal.ID, now.Add(-time.Hour), 30))

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}

	stats := ByCategory(entries)
	if len(stats) != 2 {
		t.Fatalf("ByCategory() len=%d, want 2", len(stats))
	}
	if stats[0].Category != models.CategoryWork || stats[0].Minutes != 120 {
		t.Fatalf("ByCategory()[0]=%s/%d, want work/120", stats[0].Category, stats[0].Minutes)
	}
	if math.Abs(stats[0].Percent-80) > 1e-9 {
		t.Fatalf("work share=%v, want 80", stats[0].Percent)
	}
	if math.Abs(stats[1].Percent-20) > 1e-9 {
		t.Fatalf("personal share=%v, want 20", stats[1].Percent)
	}
}

func TestByDay(t *testing.T) {
	st := memory.New()
	task := seedTask(t, st, "daily", models.CategoryWork, "")

	day1 := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	st.PutTimeEntry(closedEntry(task.ID, day1, 30))
	st.PutTimeEntry(closedEntry(task.ID, day1.Add(4*time.Hour), 15))
	st.PutTimeEntry(closedEntry(task.ID, day2, 60))

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}

	stats := ByDay(entries, time.UTC)
	if len(stats) != 2 {
		t.Fatalf("ByDay() len=%d, want 2", len(stats))
	}
	if stats[0].Day != "2024-06-13" || stats[0].Minutes != 45 {
		t.Fatalf("ByDay()[0]=%s/%d, want 2024-06-13/45", stats[0].Day, stats[0].Minutes)
	}
	if stats[1].Day != "2024-06-14" || stats[1].Minutes != 60 {
		t.Fatalf("ByDay()[1]=%s/%d, want 2024-06-14/60", stats[1].Day, stats[1].Minutes)
	}
}

func TestByTaskRanking(t *testing.T) {
	st := memory.New()
	big := seedTask(t, st, "big", models.CategoryWork, "")
	small := seedTask(t, st, "small", models.CategoryWork, "")

	st.PutTimeEntry(closedEntry(big.ID, now.Add(-time.Hour), 90))
	st.PutTimeEntry(closedEntry(big.ID, now.Add(-2*time.Hour), 30))
	st.PutTimeEntry(closedEntry(small.ID, now.Add(-time.Hour), 45))

	entries, err := CollectWindow(st, now, 7)
	if err != nil {
		t.Fatalf("CollectWindow() err=%v, want nil", err)
	}

	stats := ByTask(entries)
	if len(stats) != 2 {
		t.Fatalf("ByTask() len=%d, want 2", len(stats))
	}
	if stats[0].TaskID != big.ID || stats[0].Minutes != 120 {
		t.Fatalf("ByTask()[0]=%s/%d, want big/120", stats[0].Title, stats[0].Minutes)
	}
}

func TestProductivityRatio(t *testing.T) {
	got, err := ProductivityRatio(480, 7, 8)
	if err != nil {
		t.Fatalf("ProductivityRatio() err=%v, want nil", err)
	}
	want := 8.0 / 56.0 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ProductivityRatio(480,7,8)=%v, want %v", got, want)
	}

	if _, err := ProductivityRatio(60, 0, 8); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("ProductivityRatio(days=0) err=%v, want ErrInvalidWindow", err)
	}
	if _, err := ProductivityRatio(60, 7, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("ProductivityRatio(whpd=0) err=%v, want ErrInvalidWindow", err)
	}
}

func TestTotalMinutesEmpty(t *testing.T) {
	if got := TotalMinutes(nil); got != 0 {
		t.Fatalf("TotalMinutes(nil)=%d, want 0", got)
	}
	if stats := ByCategory(nil); len(stats) != 0 {
		t.Fatalf("ByCategory(nil) len=%d, want 0", len(stats))
	}
}
