package service

import (
	"strings"
	"time"

	"tempo/internal/models"
)

// CostPerHour is the reference rate used for budget usage estimates.
const CostPerHour = 50.0

// CreateProjectParams carries the raw caller input for a new project.
// Dates are ISO-8601 strings or empty; end before start is not validated.
type CreateProjectParams struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Budget      *float64
	TeamMembers []string
}

// CreateProject validates the input and stores a new project.
func (s *Service) CreateProject(p CreateProjectParams) (models.Project, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Project{}, ErrEmptyName
	}

	var start, end *time.Time
	if p.StartDate != "" {
		parsed, err := models.ParseTimestamp(p.StartDate)
		if err != nil {
			return models.Project{}, err
		}
		start = &parsed
	}
	if p.EndDate != "" {
		parsed, err := models.ParseTimestamp(p.EndDate)
		if err != nil {
			return models.Project{}, err
		}
		end = &parsed
	}

	if p.Budget != nil && *p.Budget < 0 {
		return models.Project{}, ErrNegativeBudget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := models.NewProject(name, s.now())
	project.Description = p.Description
	project.StartDate = start
	project.EndDate = end
	project.Budget = p.Budget
	project.TeamMembers = p.TeamMembers

	if err := s.store.PutProject(project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetProject returns a single project.
func (s *Service) GetProject(id string) (models.Project, error) {
	return s.store.GetProject(id)
}

// DeleteProject removes a project. Its tasks are left in place with a
// dangling project reference; callers reassign or delete them explicitly.
func (s *Service) DeleteProject(id string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteProject(id)
}

// ListProjects returns every project in unspecified order.
func (s *Service) ListProjects() ([]models.Project, error) {
	return s.store.ListProjects()
}

// ProjectStatus is the progress rollup for one project.
type ProjectStatus struct {
	Project        models.Project
	TotalTasks     int
	CompletedTasks int
	Progress       float64 // percent of tasks completed
	TotalMinutes   int
	StatusCounts   map[models.Status]int
	EstimatedCost  float64 // TotalMinutes at CostPerHour
	BudgetUsage    float64 // percent of budget, zero when no budget is set
}

// GetProjectStatus computes completion progress, tracked time and budget
// usage across the project's tasks. The rollup spans several store reads,
// so it runs under the service mutex to keep the snapshot consistent with
// concurrent mutations.
func (s *Service) GetProjectStatus(id string) (ProjectStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.store.GetProject(id)
	if err != nil {
		return ProjectStatus{}, err
	}

	tasks, err := s.store.ListTasks()
	if err != nil {
		return ProjectStatus{}, err
	}

	status := ProjectStatus{
		Project:      project,
		StatusCounts: make(map[models.Status]int),
	}

	for _, t := range tasks {
		if t.ProjectID != id {
			continue
		}
		status.TotalTasks++
		status.StatusCounts[t.Status]++
		if t.Status == models.StatusCompleted {
			status.CompletedTasks++
		}

		entries, err := s.store.EntriesForTask(t.ID)
		if err != nil {
			return ProjectStatus{}, err
		}
		for _, e := range entries {
			if e.DurationMinutes != nil {
				status.TotalMinutes += *e.DurationMinutes
			}
		}
	}

	if status.TotalTasks > 0 {
		status.Progress = float64(status.CompletedTasks) / float64(status.TotalTasks) * 100
	}

	status.EstimatedCost = float64(status.TotalMinutes) / 60 * CostPerHour
	if project.Budget != nil && *project.Budget > 0 {
		status.BudgetUsage = status.EstimatedCost / *project.Budget * 100
	}

	return status, nil
}
