package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tempo/internal/models"
	"tempo/internal/query"
	"tempo/internal/report"
	"tempo/internal/service"
)

type createTaskTool struct {
	svc *service.Service
}

func newCreateTaskTool(svc *service.Service) *createTaskTool {
	return &createTaskTool{svc: svc}
}

func (t *createTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task with comprehensive details."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Brief description of the work")),
		mcp.WithString("description", mcp.Description("Detailed information about the task")),
		mcp.WithString("priority", mcp.Description("low, medium, high or urgent (defaults to the configured priority)")),
		mcp.WithString("category", mcp.Description("work, personal, learning, health, finance or other (defaults to the configured category)")),
		mcp.WithString("due_date", mcp.Description("Due date in ISO format, e.g. 2024-12-31T23:59:59Z")),
		mcp.WithNumber("estimated_hours", mcp.Description("Expected effort in hours")),
		mcp.WithArray("tags", mcp.Description("Labels for organization"), mcp.WithStringItems()),
		mcp.WithString("project_id", mcp.Description("Project this task belongs to")),
		mcp.WithString("assignee", mcp.Description("Who is responsible for the task")),
	)
}

func (t *createTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := newArgReader(req.GetArguments())

	params := service.CreateTaskParams{
		Title:          title,
		Description:    req.GetString("description", ""),
		Priority:       req.GetString("priority", ""),
		Category:       req.GetString("category", ""),
		DueDate:        req.GetString("due_date", ""),
		EstimatedHours: args.optFloat("estimated_hours"),
		Tags:           args.stringList("tags"),
		ProjectID:      req.GetString("project_id", ""),
		Assignee:       req.GetString("assignee", ""),
	}
	if err := args.Err(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := t.svc.CreateTask(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TaskCreated(task)), nil
}

type updateTaskTool struct {
	svc *service.Service
}

func newUpdateTaskTool(svc *service.Service) *updateTaskTool {
	return &updateTaskTool{svc: svc}
}

func (t *updateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task. Only supplied fields change; the whole update is rejected if any field is invalid."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Task to update")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("priority", mcp.Description("low, medium, high or urgent")),
		mcp.WithString("status", mcp.Description("todo, in_progress, review, completed or cancelled")),
		mcp.WithString("category", mcp.Description("work, personal, learning, health, finance or other")),
		mcp.WithString("due_date", mcp.Description("New due date in ISO format")),
		mcp.WithNumber("estimated_hours", mcp.Description("New estimate in hours")),
		mcp.WithNumber("actual_hours", mcp.Description("Override for tracked hours")),
		mcp.WithArray("tags", mcp.Description("Replacement tag list"), mcp.WithStringItems()),
		mcp.WithString("assignee", mcp.Description("New assignee")),
		mcp.WithString("project_id", mcp.Description("Reassign to another project")),
	)
}

func (t *updateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := newArgReader(req.GetArguments())

	patch := service.TaskPatch{
		Title:          args.optString("title"),
		Description:    args.optString("description"),
		Priority:       args.optString("priority"),
		Status:         args.optString("status"),
		Category:       args.optString("category"),
		DueDate:        args.optString("due_date"),
		EstimatedHours: args.optFloat("estimated_hours"),
		ActualHours:    args.optFloat("actual_hours"),
		Tags:           args.stringList("tags"),
		Assignee:       args.optString("assignee"),
		ProjectID:      args.optString("project_id"),
	}
	if err := args.Err(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := t.svc.UpdateTask(taskID, patch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TaskUpdated(task)), nil
}

type deleteTaskTool struct {
	svc *service.Service
}

func newDeleteTaskTool(svc *service.Service) *deleteTaskTool {
	return &deleteTaskTool{svc: svc}
}

func (t *deleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task permanently, along with all its time entries."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Task to delete")),
	)
}

func (t *deleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, removed, err := t.svc.DeleteTask(taskID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TaskDeleted(task, removed)), nil
}

type listTasksTool struct {
	svc *service.Service
}

func newListTasksTool(svc *service.Service) *listTasksTool {
	return &listTasksTool{svc: svc}
}

func (t *listTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks with filtering options, sorted by priority and due date."),
		mcp.WithString("status", mcp.Description("Filter by status")),
		mcp.WithString("priority", mcp.Description("Filter by priority")),
		mcp.WithString("category", mcp.Description("Filter by category")),
		mcp.WithString("assignee", mcp.Description("Filter by assignee")),
		mcp.WithString("project_id", mcp.Description("Filter by project")),
		mcp.WithNumber("limit", mcp.DefaultNumber(20), mcp.Description("Maximum number of tasks to return")),
	)
}

func (t *listTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var f query.Filter

	if v := req.GetString("status", ""); v != "" {
		status, err := models.ParseStatus(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Status = &status
	}
	if v := req.GetString("priority", ""); v != "" {
		priority, err := models.ParsePriority(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Priority = &priority
	}
	if v := req.GetString("category", ""); v != "" {
		category, err := models.ParseCategory(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Category = &category
	}
	if v := req.GetString("assignee", ""); v != "" {
		f.Assignee = &v
	}
	if v := req.GetString("project_id", ""); v != "" {
		f.ProjectID = &v
	}

	tasks, err := t.svc.ListTasks(f, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TaskList(tasks)), nil
}

type taskDetailsTool struct {
	svc *service.Service
}

func newTaskDetailsTool(svc *service.Service) *taskDetailsTool {
	return &taskDetailsTool{svc: svc}
}

func (t *taskDetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task_details",
		mcp.WithDescription("Get detailed information about a specific task, including its time entries."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Task to inspect")),
	)
}

func (t *taskDetailsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := t.svc.GetTaskDetail(taskID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TaskDetails(detail)), nil
}
