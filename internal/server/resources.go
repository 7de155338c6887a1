package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tempo/internal/report"
	"tempo/internal/service"
)

// resourceHandler serves the read-only overview resources.
type resourceHandler struct {
	svc *service.Service
}

func newResourceHandler(svc *service.Service) *resourceHandler {
	return &resourceHandler{svc: svc}
}

func (h *resourceHandler) AllTasks() mcp.Resource {
	return mcp.NewResource("tasks://all", "All Tasks",
		mcp.WithResourceDescription("A comprehensive overview of all tasks in the system"),
		mcp.WithMIMEType("text/markdown"),
	)
}

func (h *resourceHandler) HandleAllTasks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tasks, err := h.svc.TasksSnapshot()
	if err != nil {
		return nil, err
	}
	return h.markdown(req, report.Overview(tasks)), nil
}

func (h *resourceHandler) Productivity() mcp.Resource {
	return mcp.NewResource("analytics://productivity", "Productivity Analytics",
		mcp.WithResourceDescription("Productivity analytics and insights over the last 30 days"),
		mcp.WithMIMEType("text/markdown"),
	)
}

func (h *resourceHandler) HandleProductivity(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rep, err := h.svc.Analytics(service.AnalyticsParams{Days: 30})
	if err != nil {
		return nil, err
	}
	return h.markdown(req, report.Productivity(rep)), nil
}

func (h *resourceHandler) ProjectsOverview() mcp.Resource {
	return mcp.NewResource("projects://overview", "Projects Overview",
		mcp.WithResourceDescription("An overview of all projects and their status"),
		mcp.WithMIMEType("text/markdown"),
	)
}

func (h *resourceHandler) HandleProjectsOverview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		return nil, err
	}
	tasks, err := h.svc.TasksSnapshot()
	if err != nil {
		return nil, err
	}
	return h.markdown(req, report.ProjectsOverview(projects, tasks)), nil
}

func (h *resourceHandler) Help() mcp.Resource {
	return mcp.NewResource("help://task-management", "Task Management Help",
		mcp.WithResourceDescription("Comprehensive help guide for the task management system"),
		mcp.WithMIMEType("text/markdown"),
	)
}

func (h *resourceHandler) HandleHelp(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.markdown(req, report.HelpGuide()), nil
}

func (h *resourceHandler) markdown(req mcp.ReadResourceRequest, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}
}
