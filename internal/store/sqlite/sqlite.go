// Package sqlite is the persistent store backend.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"tempo/internal/models"
	"tempo/internal/store"
)

//go:embed schema.sql
var schema string

// Store implements store.Store on top of a sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates a store backed by the database at path, initializing the
// schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// New opens the store at the default XDG data path.
func New() (*Store, error) {
	path, err := defaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "tempo")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "tempo.db"), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// encodeList marshals a string list for a JSON text column.
func encodeList(v []string) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var v []string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}
	return v
}

func (s *Store) PutTask(t models.Task) error {
	var due, est, act any
	if t.DueDate != nil {
		due = *t.DueDate
	}
	if t.EstimatedHours != nil {
		est = *t.EstimatedHours
	}
	if t.ActualHours != nil {
		act = *t.ActualHours
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, description, priority, status, category, due_date,
			created_at, updated_at, estimated_hours, actual_hours, tags, dependencies, assignee, project_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			priority = excluded.priority,
			status = excluded.status,
			category = excluded.category,
			due_date = excluded.due_date,
			updated_at = excluded.updated_at,
			estimated_hours = excluded.estimated_hours,
			actual_hours = excluded.actual_hours,
			tags = excluded.tags,
			dependencies = excluded.dependencies,
			assignee = excluded.assignee,
			project_id = excluded.project_id
	`, t.ID, t.Title, t.Description, string(t.Priority), string(t.Status), string(t.Category), due,
		t.CreatedAt, t.UpdatedAt, est, act, encodeList(t.Tags), encodeList(t.Dependencies), t.Assignee, t.ProjectID)
	return err
}

const taskColumns = `id, title, description, priority, status, category, due_date,
	created_at, updated_at, estimated_hours, actual_hours, tags, dependencies, assignee, project_id`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var (
		t         models.Task
		due       sql.NullTime
		est, act  sql.NullFloat64
		tags, dep string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.Category, &due,
		&t.CreatedAt, &t.UpdatedAt, &est, &act, &tags, &dep, &t.Assignee, &t.ProjectID)
	if err != nil {
		return models.Task{}, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	if est.Valid {
		v := est.Float64
		t.EstimatedHours = &v
	}
	if act.Valid {
		v := act.Float64
		t.ActualHours = &v
	}
	t.Tags = decodeList(tags)
	t.Dependencies = decodeList(dep)
	return t, nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Task{}, store.NotFound(store.KindTask, id)
	}
	return t, err
}

// DeleteTask removes the task and its time entries in one transaction and
// reports the number of entries removed. The task is read inside the same
// transaction so the returned value and count match the deleted rows.
func (s *Store) DeleteTask(id string) (models.Task, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Task{}, 0, err
	}
	defer tx.Rollback()

	t, err := scanTask(tx.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Task{}, 0, store.NotFound(store.KindTask, id)
	}
	if err != nil {
		return models.Task{}, 0, err
	}

	res, err := tx.Exec(`DELETE FROM time_entries WHERE task_id = ?`, id)
	if err != nil {
		return models.Task{}, 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, 0, err
	}

	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return models.Task{}, 0, err
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, 0, err
	}
	return t, int(removed), nil
}

func (s *Store) ListTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) PutProject(p models.Project) error {
	var start, end, budget any
	if p.StartDate != nil {
		start = *p.StartDate
	}
	if p.EndDate != nil {
		end = *p.EndDate
	}
	if p.Budget != nil {
		budget = *p.Budget
	}

	_, err := s.db.Exec(`
		INSERT INTO projects (id, name, description, start_date, end_date, status, team_members, budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			team_members = excluded.team_members,
			budget = excluded.budget
	`, p.ID, p.Name, p.Description, start, end, p.Status, encodeList(p.TeamMembers), budget, p.CreatedAt)
	return err
}

const projectColumns = `id, name, description, start_date, end_date, status, team_members, budget, created_at`

func scanProject(row interface{ Scan(...any) error }) (models.Project, error) {
	var (
		p          models.Project
		start, end sql.NullTime
		budget     sql.NullFloat64
		team       string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &p.Status, &team, &budget, &p.CreatedAt)
	if err != nil {
		return models.Project{}, err
	}
	if start.Valid {
		v := start.Time
		p.StartDate = &v
	}
	if end.Valid {
		v := end.Time
		p.EndDate = &v
	}
	if budget.Valid {
		v := budget.Float64
		p.Budget = &v
	}
	p.TeamMembers = decodeList(team)
	return p, nil
}

func (s *Store) GetProject(id string) (models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Project{}, store.NotFound(store.KindProject, id)
	}
	return p, err
}

func (s *Store) DeleteProject(id string) (models.Project, error) {
	p, err := s.GetProject(id)
	if err != nil {
		return models.Project{}, err
	}
	_, err = s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return p, err
}

func (s *Store) ListProjects() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) PutTimeEntry(e models.TimeEntry) error {
	var end, dur any
	if e.EndTime != nil {
		end = *e.EndTime
	}
	if e.DurationMinutes != nil {
		dur = *e.DurationMinutes
	}

	_, err := s.db.Exec(`
		INSERT INTO time_entries (id, task_id, start_time, end_time, description, duration_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			end_time = excluded.end_time,
			description = excluded.description,
			duration_minutes = excluded.duration_minutes
	`, e.ID, e.TaskID, e.StartTime, end, e.Description, dur)
	return err
}

const entryColumns = `id, task_id, start_time, end_time, description, duration_minutes`

func scanEntry(row interface{ Scan(...any) error }) (models.TimeEntry, error) {
	var (
		e   models.TimeEntry
		end sql.NullTime
		dur sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.TaskID, &e.StartTime, &end, &e.Description, &dur)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if end.Valid {
		v := end.Time
		e.EndTime = &v
	}
	if dur.Valid {
		v := int(dur.Int64)
		e.DurationMinutes = &v
	}
	return e, nil
}

func (s *Store) GetTimeEntry(id string) (models.TimeEntry, error) {
	e, err := scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.TimeEntry{}, store.NotFound(store.KindTimeEntry, id)
	}
	return e, err
}

func (s *Store) DeleteTimeEntry(id string) (models.TimeEntry, error) {
	e, err := s.GetTimeEntry(id)
	if err != nil {
		return models.TimeEntry{}, err
	}
	_, err = s.db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	return e, err
}

func (s *Store) ListTimeEntries() ([]models.TimeEntry, error) {
	return s.queryEntries(`SELECT ` + entryColumns + ` FROM time_entries`)
}

func (s *Store) EntriesForTask(taskID string) ([]models.TimeEntry, error) {
	return s.queryEntries(`SELECT `+entryColumns+` FROM time_entries WHERE task_id = ?`, taskID)
}

func (s *Store) OpenEntry(taskID string) (models.TimeEntry, bool, error) {
	e, err := scanEntry(s.db.QueryRow(`
		SELECT `+entryColumns+` FROM time_entries
		WHERE task_id = ? AND end_time IS NULL
	`, taskID))
	if err == sql.ErrNoRows {
		return models.TimeEntry{}, false, nil
	}
	if err != nil {
		return models.TimeEntry{}, false, err
	}
	return e, true, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]models.TimeEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
