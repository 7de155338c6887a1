package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tempo/internal/report"
	"tempo/internal/service"
)

type createProjectTool struct {
	svc *service.Service
}

func newCreateProjectTool(svc *service.Service) *createProjectTool {
	return &createProjectTool{svc: svc}
}

func (t *createProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project with team and timeline."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("description", mcp.Description("What the project is about")),
		mcp.WithString("start_date", mcp.Description("Start date in ISO format")),
		mcp.WithString("end_date", mcp.Description("End date in ISO format")),
		mcp.WithNumber("budget", mcp.Description("Budget in dollars")),
		mcp.WithArray("team_members", mcp.Description("People on the project"), mcp.WithStringItems()),
	)
}

func (t *createProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := newArgReader(req.GetArguments())

	params := service.CreateProjectParams{
		Name:        name,
		Description: req.GetString("description", ""),
		StartDate:   req.GetString("start_date", ""),
		EndDate:     req.GetString("end_date", ""),
		Budget:      args.optFloat("budget"),
		TeamMembers: args.stringList("team_members"),
	}
	if err := args.Err(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := t.svc.CreateProject(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.ProjectCreated(project)), nil
}

type projectStatusTool struct {
	svc *service.Service
}

func newProjectStatusTool(svc *service.Service) *projectStatusTool {
	return &projectStatusTool{svc: svc}
}

func (t *projectStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_status",
		mcp.WithDescription("Get comprehensive project status: task progress, time spent and budget usage."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project to inspect")),
	)
}

func (t *projectStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := t.svc.GetProjectStatus(projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.ProjectStatus(status)), nil
}
