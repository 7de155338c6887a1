package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tempo/internal/models"
	"tempo/internal/query"
	"tempo/internal/service"
	"tempo/internal/ui/keys"
	"tempo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// statusCycle is the order the f key walks the status filter through. The
// leading empty string means no filter.
var statusCycle = []models.Status{
	"",
	models.StatusTodo,
	models.StatusInProgress,
	models.StatusReview,
	models.StatusCompleted,
	models.StatusCancelled,
}

// nextStatus is the state the c key advances a task to.
var nextStatus = map[models.Status]models.Status{
	models.StatusTodo:       models.StatusInProgress,
	models.StatusInProgress: models.StatusReview,
	models.StatusReview:     models.StatusCompleted,
	models.StatusCompleted:  models.StatusTodo,
	models.StatusCancelled:  models.StatusTodo,
}

// BackToProjects signals to go back to the project list.
type BackToProjects struct{}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type detailLoadedMsg struct {
	detail service.TaskDetail
}

type statusMsg string

// TaskListView is the task board for one project.
type TaskListView struct {
	svc     *service.Service
	project models.Project
	tasks   []models.Task
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	cursor      int
	scrollY     int
	searchInput textinput.Model
	searching   bool
	filterIdx   int // index into statusCycle

	// Task creation
	creating     bool
	newTitle     textinput.Model
	newPriority  textinput.Model
	newDue       textinput.Model
	newEstimate  textinput.Model
	createFocus  int // 0=title, 1=priority, 2=due, 3=estimate, 4=save
	createFields int

	// Read-only detail view with time entries
	viewing bool
	detail  service.TaskDetail

	confirmingDelete bool
	deleteTargetID   string

	statusText string
	errText    string
}

func NewTaskListView(svc *service.Service, project models.Project) *TaskListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	newTitle := textinput.New()
	newTitle.Placeholder = "Task title"
	newTitle.CharLimit = 200

	newPriority := textinput.New()
	newPriority.Placeholder = "low/medium/high/urgent"
	newPriority.CharLimit = 10

	newDue := textinput.New()
	newDue.Placeholder = "2024-12-31 (optional)"
	newDue.CharLimit = 25

	newEstimate := textinput.New()
	newEstimate.Placeholder = "hours (optional)"
	newEstimate.CharLimit = 6

	return &TaskListView{
		svc:          svc,
		project:      project,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		searchInput:  search,
		newTitle:     newTitle,
		newPriority:  newPriority,
		newDue:       newDue,
		newEstimate:  newEstimate,
		createFields: 5,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	f := query.Filter{ProjectID: &v.project.ID}
	if st := statusCycle[v.filterIdx]; st != "" {
		s := st
		f.Status = &s
	}

	tasks, err := v.svc.ListTasks(f, 200)
	if err != nil {
		return err
	}

	if search := strings.ToLower(strings.TrimSpace(v.searchInput.Value())); search != "" {
		matched := tasks[:0]
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Title), search) {
				matched = append(matched, t)
			}
		}
		tasks = matched
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (v *TaskListView) loadDetail() tea.Msg {
	if len(v.tasks) == 0 || v.cursor >= len(v.tasks) {
		return nil
	}
	detail, err := v.svc.GetTaskDetail(v.tasks[v.cursor].ID)
	if err != nil {
		return err
	}
	return detailLoadedMsg{detail: detail}
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		return v, nil

	case detailLoadedMsg:
		v.viewing = true
		v.detail = msg.detail
		return v, nil

	case statusMsg:
		v.statusText = string(msg)
		v.errText = ""
		return v, v.loadTasks

	case error:
		v.errText = msg.Error()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.viewing {
			return v.updateViewing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input swallows keys while focused.
	if v.searching {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.searching = false
			v.searchInput.Blur()
			v.searchInput.Reset()
			return v, v.loadTasks
		case key.Matches(msg, v.keys.Enter):
			v.searching = false
			v.searchInput.Blur()
			return v, v.loadTasks
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			return v, tea.Batch(cmd, v.loadTasks)
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if len(v.tasks) > 0 {
			return v, v.loadDetail
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if len(v.tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = v.tasks[v.cursor].ID
			return v, nil
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.filterIdx = (v.filterIdx + 1) % len(statusCycle)
		v.cursor = 0
		v.scrollY = 0
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Timer):
		if len(v.tasks) > 0 {
			return v, v.toggleTimer(v.tasks[v.cursor].ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Cycle):
		if len(v.tasks) > 0 {
			return v, v.advanceStatus(v.tasks[v.cursor])
		}
		return v, nil
	}

	return v, nil
}

// toggleTimer stops the task's open timer if one is running, otherwise
// starts one.
func (v *TaskListView) toggleTimer(taskID string) tea.Cmd {
	return func() tea.Msg {
		res, err := v.svc.StopTimer("", taskID)
		if err == nil {
			minutes := 0
			if res.Entry.DurationMinutes != nil {
				minutes = *res.Entry.DurationMinutes
			}
			return statusMsg(fmt.Sprintf("Timer stopped: %dm on %s", minutes, res.Task.Title))
		}
		if !errors.Is(err, service.ErrTimerNotRunning) {
			return err
		}

		status, err := v.svc.StartTimer(taskID, "")
		if err != nil {
			return err
		}
		return statusMsg("Timer started: " + status.Task.Title)
	}
}

func (v *TaskListView) advanceStatus(task models.Task) tea.Cmd {
	return func() tea.Msg {
		next := string(nextStatus[task.Status])
		updated, err := v.svc.UpdateTask(task.ID, service.TaskPatch{Status: &next})
		if err != nil {
			return err
		}
		return statusMsg(fmt.Sprintf("%s → %s", updated.Title, updated.Status))
	}
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		task, removed, err := v.svc.DeleteTask(v.deleteTargetID)
		if err != nil {
			v.errText = err.Error()
			return v, nil
		}
		return v, func() tea.Msg {
			return statusMsg(fmt.Sprintf("Deleted %s (%d time entries)", task.Title, removed))
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewing = false
		return v, nil
	case key.Matches(msg, v.keys.Timer):
		v.viewing = false
		return v, v.toggleTimer(v.detail.Task.ID)
	case key.Matches(msg, v.keys.Delete):
		v.viewing = false
		v.confirmingDelete = true
		v.deleteTargetID = v.detail.Task.ID
		return v, nil
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *TaskListView) startNewTask() {
	v.creating = true
	v.createFocus = 0
	v.newTitle.Reset()
	v.newPriority.Reset()
	v.newDue.Reset()
	v.newEstimate.Reset()
	v.updateCreateFocus()
}

func (v *TaskListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitCreate()

	case key.Matches(msg, v.keys.Tab):
		v.createFocus = (v.createFocus + 1) % v.createFields
		v.updateCreateFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.createFocus = (v.createFocus + v.createFields - 1) % v.createFields
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.createFocus < v.createFields-1 {
			v.createFocus++
			v.updateCreateFocus()
			return v, nil
		}
		return v.submitCreate()
	}

	var cmd tea.Cmd
	switch v.createFocus {
	case 0:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 1:
		v.newPriority, cmd = v.newPriority.Update(msg)
	case 2:
		v.newDue, cmd = v.newDue.Update(msg)
	case 3:
		v.newEstimate, cmd = v.newEstimate.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) submitCreate() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(v.newTitle.Value())
	if title == "" {
		return v, nil
	}

	params := service.CreateTaskParams{
		Title:     title,
		Priority:  strings.TrimSpace(v.newPriority.Value()),
		DueDate:   strings.TrimSpace(v.newDue.Value()),
		ProjectID: v.project.ID,
	}
	if raw := strings.TrimSpace(v.newEstimate.Value()); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v.errText = "invalid estimate: " + raw
			return v, nil
		}
		params.EstimatedHours = &hours
	}

	task, err := v.svc.CreateTask(params)
	if err != nil {
		v.errText = err.Error()
		return v, nil
	}

	v.creating = false
	return v, func() tea.Msg {
		return statusMsg("Created " + task.Title)
	}
}

func (v *TaskListView) updateCreateFocus() {
	v.newTitle.Blur()
	v.newPriority.Blur()
	v.newDue.Blur()
	v.newEstimate.Blur()

	switch v.createFocus {
	case 0:
		v.newTitle.Focus()
	case 1:
		v.newPriority.Focus()
	case 2:
		v.newDue.Focus()
	case 3:
		v.newEstimate.Focus()
	}
}

func (v *TaskListView) ensureVisible() {
	// Each task item is 2 lines + 1 margin.
	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := availableHeight / 3
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}
	if v.viewing {
		return v.renderDetail()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	if v.errText != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(styles.Current.Error).Render(v.errText))
	} else if v.statusText != "" {
		b.WriteString("\n" + v.styles.StatusBar.Render(v.statusText))
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title := s.Title.Render(v.project.Name)
	if st := statusCycle[v.filterIdx]; st != "" {
		title += s.TitleMuted.Render("  [" + string(st) + "]")
	}

	if !v.searching && strings.TrimSpace(v.searchInput.Value()) == "" {
		return title
	}

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-8, 10, 30)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		searchStyle.Width(searchWidth).Render(v.searchInput.View()),
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := availableHeight / 3
	if visibleItems < 1 {
		visibleItems = 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.tasks))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.tasks[i], i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	priority := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Bold(true).
		Render(string(task.Priority))
	status := lipgloss.NewStyle().
		Foreground(styles.StatusColor(task.Status)).
		Render(string(task.Status))

	titleLine := priority + " " + status + "  " + task.Title

	var meta []string
	if task.DueDate != nil {
		meta = append(meta, "due "+task.DueDate.Format("Jan 2"))
	}
	if task.ActualHours != nil && *task.ActualHours > 0 {
		meta = append(meta, fmt.Sprintf("%.1fh logged", *task.ActualHours))
	}
	meta = append(meta, string(task.Category))
	metaLine := s.TitleMuted.Render(strings.Join(meta, " • "))

	var titleStyle, metaStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		metaStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		metaStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		metaStyle.Render(metaLine),
	) + "\n"
}

func (v *TaskListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle := s.Input
	priorityStyle := s.Input
	dueStyle := s.Input
	estimateStyle := s.Input
	btnStyle := s.Button

	switch v.createFocus {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		priorityStyle = s.InputFocused
	case 2:
		dueStyle = s.InputFocused
	case 3:
		estimateStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.newTitle.View()),
		"",
		"Priority:",
		priorityStyle.Width(26).Render(v.newPriority.View()),
		"",
		"Due date:",
		dueStyle.Width(26).Render(v.newDue.View()),
		"",
		"Estimated hours:",
		estimateStyle.Width(20).Render(v.newEstimate.View()),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDetail() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	textWidth := clamp(contentWidth-10, 20, 70)

	task := v.detail.Task

	desc := task.Description
	if desc == "" {
		desc = s.TitleMuted.Render("No description")
	}

	var entryLines []string
	if len(v.detail.Entries) == 0 {
		entryLines = append(entryLines, s.TitleMuted.Render("No time entries"))
	} else {
		for _, e := range v.detail.Entries {
			line := e.StartTime.Format("Jan 2 15:04")
			if e.Open() {
				line += "  " + lipgloss.NewStyle().Foreground(styles.Current.Accent).Render("running")
			} else if e.DurationMinutes != nil {
				line += fmt.Sprintf("  %dm", *e.DurationMinutes)
			}
			if e.Description != "" {
				line += "  " + s.TitleMuted.Render(e.Description)
			}
			entryLines = append(entryLines, line)
		}
	}

	hours := 0.0
	if task.ActualHours != nil {
		hours = *task.ActualHours
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(task.Title),
		"",
		s.TitleMuted.Render("Priority / Status"),
		lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render(string(task.Priority))+
			"  "+
			lipgloss.NewStyle().Foreground(styles.StatusColor(task.Status)).Render(string(task.Status)),
		"",
		s.TitleMuted.Render("Description"),
		lipgloss.NewStyle().Width(textWidth).Render(desc),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Time (%dm tracked, %.1fh credited)", v.detail.TotalMinutes, hours)),
		lipgloss.JoinVertical(lipgloss.Left, entryLines...),
		"",
		s.Help.Render(
			fmt.Sprintf("%s timer • %s delete • %s back",
				s.HelpKey.Render("s"),
				s.HelpKey.Render("d"),
				s.HelpKey.Render("esc"),
			),
		),
	)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	return styles.CenterView(padded, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s view • %s new • %s del • %s timer • %s status • %s search • %s filter • %s back • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render("Its time entries are deleted with it."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
