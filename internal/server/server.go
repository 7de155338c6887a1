// Package server wires the MCP surface: it registers one tool per core
// operation plus the overview resources and planning prompts, and injects
// the service into each handler. No business logic lives here.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"tempo/internal/service"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all tools, resources and prompts
// registered against the given service.
func New(svc *service.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"tempo",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	// Task management tools.

	createTask := newCreateTaskTool(svc)
	s.AddTool(createTask.Definition(), createTask.Handle)

	updateTask := newUpdateTaskTool(svc)
	s.AddTool(updateTask.Definition(), updateTask.Handle)

	deleteTask := newDeleteTaskTool(svc)
	s.AddTool(deleteTask.Definition(), deleteTask.Handle)

	listTasks := newListTasksTool(svc)
	s.AddTool(listTasks.Definition(), listTasks.Handle)

	taskDetails := newTaskDetailsTool(svc)
	s.AddTool(taskDetails.Definition(), taskDetails.Handle)

	// Time tracking tools.

	startTimer := newStartTimerTool(svc)
	s.AddTool(startTimer.Definition(), startTimer.Handle)

	stopTimer := newStopTimerTool(svc)
	s.AddTool(stopTimer.Definition(), stopTimer.Handle)

	logTime := newLogTimeTool(svc)
	s.AddTool(logTime.Definition(), logTime.Handle)

	analytics := newAnalyticsTool(svc)
	s.AddTool(analytics.Definition(), analytics.Handle)

	// Project management tools.

	createProject := newCreateProjectTool(svc)
	s.AddTool(createProject.Definition(), createProject.Handle)

	projectStatus := newProjectStatusTool(svc)
	s.AddTool(projectStatus.Definition(), projectStatus.Handle)

	// Resources and prompts.

	res := newResourceHandler(svc)
	s.AddResource(res.AllTasks(), res.HandleAllTasks)
	s.AddResource(res.Productivity(), res.HandleProductivity)
	s.AddResource(res.ProjectsOverview(), res.HandleProjectsOverview)
	s.AddResource(res.Help(), res.HandleHelp)

	registerPrompts(s)

	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
