package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tempo/internal/report"
	"tempo/internal/service"
)

type startTimerTool struct {
	svc *service.Service
}

func newStartTimerTool(svc *service.Service) *startTimerTool {
	return &startTimerTool{svc: svc}
}

func (t *startTimerTool) Definition() mcp.Tool {
	return mcp.NewTool("start_timer",
		mcp.WithDescription("Start tracking time for a specific task. If a timer is already running for the task, reports it instead of starting another."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Task to track")),
		mcp.WithString("description", mcp.Description("What is being worked on")),
	)
}

func (t *startTimerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := t.svc.StartTimer(taskID, req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TimerStarted(status)), nil
}

type stopTimerTool struct {
	svc *service.Service
}

func newStopTimerTool(svc *service.Service) *stopTimerTool {
	return &stopTimerTool{svc: svc}
}

func (t *stopTimerTool) Definition() mcp.Tool {
	return mcp.NewTool("stop_timer",
		mcp.WithDescription("Stop an active timer and record its duration. Select the timer by entry id, or by task id to stop that task's open timer."),
		mcp.WithString("time_entry_id", mcp.Description("Time entry to stop")),
		mcp.WithString("task_id", mcp.Description("Task whose open timer should stop")),
	)
}

func (t *stopTimerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.svc.StopTimer(req.GetString("time_entry_id", ""), req.GetString("task_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TimerStopped(res)), nil
}

type logTimeTool struct {
	svc *service.Service
}

func newLogTimeTool(svc *service.Service) *logTimeTool {
	return &logTimeTool{svc: svc}
}

func (t *logTimeTool) Definition() mcp.Tool {
	return mcp.NewTool("log_time",
		mcp.WithDescription("Log time manually for a task without using a timer."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Task to credit")),
		mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Minutes worked (whole, positive)")),
		mcp.WithString("start_time", mcp.Description("When the work started, in ISO format (defaults to now)")),
		mcp.WithString("description", mcp.Description("What was worked on")),
	)
}

func (t *logTimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	minutes, err := req.RequireInt("duration_minutes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := t.svc.LogTime(taskID, minutes, req.GetString("start_time", ""), req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.TimeLogged(res)), nil
}

type analyticsTool struct {
	svc *service.Service
}

func newAnalyticsTool(svc *service.Service) *analyticsTool {
	return &analyticsTool{svc: svc}
}

func (t *analyticsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_time_analytics",
		mcp.WithDescription("Get time tracking analytics over a trailing window: totals, category and daily breakdowns, top tasks, and the productivity ratio."),
		mcp.WithNumber("days", mcp.DefaultNumber(7), mcp.Description("Window size in days")),
		mcp.WithString("category", mcp.Description("Restrict to one task category")),
		mcp.WithString("project_id", mcp.Description("Restrict to one project")),
	)
}

func (t *analyticsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, err := t.svc.Analytics(service.AnalyticsParams{
		Days:      req.GetInt("days", 7),
		Category:  req.GetString("category", ""),
		ProjectID: req.GetString("project_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.Analytics(rep)), nil
}
