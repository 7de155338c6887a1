package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/models"
	"tempo/internal/service"
	"tempo/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewProjects View = iota
	ViewTasks
)

type App struct {
	svc         *service.Service
	currentView View
	projectList *views.ProjectListView
	taskList    *views.TaskListView
	width       int
	height      int
}

// Creates a new application
func NewApp(svc *service.Service) *App {
	return &App{
		svc:         svc,
		currentView: ViewProjects,
		projectList: views.NewProjectListView(svc),
	}
}

func (a *App) Init() tea.Cmd {
	return a.projectList.Init()
}

func (a *App) openProject(project models.Project) tea.Cmd {
	a.currentView = ViewTasks
	a.taskList = views.NewTaskListView(a.svc, project)

	return tea.Batch(
		a.taskList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update project list size since it persists
		a.projectList.Update(msg)

	case views.SelectedProject:
		return a, a.openProject(msg.Project)

	case views.BackToProjects:
		a.currentView = ViewProjects
		return a, tea.Batch(
			a.projectList.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewTasks:
		if a.taskList != nil {
			return a.taskList.View()
		}
	}
	return a.projectList.View()
}
