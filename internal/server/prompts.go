package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerPrompts adds the planning and coaching prompts. They are static
// templates; the data they refer to is reached through the tools.
func registerPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("plan_daily_tasks",
		mcp.WithPromptDescription("Generate a prompt for planning daily tasks."),
		mcp.WithArgument("date", mcp.ArgumentDescription("The day to plan, YYYY-MM-DD (defaults to today)")),
	), handlePlanDailyTasks)

	s.AddPrompt(mcp.NewPrompt("weekly_retrospective",
		mcp.WithPromptDescription("Generate a prompt for a weekly productivity review."),
	), handleWeeklyRetrospective)

	s.AddPrompt(mcp.NewPrompt("project_kickoff",
		mcp.WithPromptDescription("Generate a prompt for starting a new project."),
		mcp.WithArgument("project_name", mcp.ArgumentDescription("Name of the project"), mcp.RequiredArgument()),
		mcp.WithArgument("team_size", mcp.ArgumentDescription("Number of people on the team (defaults to 1)")),
	), handleProjectKickoff)

	s.AddPrompt(mcp.NewPrompt("time_management_coaching",
		mcp.WithPromptDescription("Generate a prompt for time management coaching."),
	), handleTimeManagementCoaching)

	s.AddPrompt(mcp.NewPrompt("task_delegation_helper",
		mcp.WithPromptDescription("Generate a prompt for delegating tasks to a team member."),
		mcp.WithArgument("team_member", mcp.ArgumentDescription("Who to delegate to"), mcp.RequiredArgument()),
	), handleTaskDelegation)
}

func userPrompt(description, content string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(content)),
	})
}

func handlePlanDailyTasks(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	date := req.Params.Arguments["date"]
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	content := fmt.Sprintf("Help me plan my tasks for %s. I want to:\n"+
		"1. Review my current task list\n"+
		"2. Prioritize tasks based on urgency and importance\n"+
		"3. Estimate time requirements\n"+
		"4. Create a realistic daily schedule\n"+
		"5. Identify any dependencies or blockers\n\n"+
		"Please use the task management tools to help me organize my day effectively.", date)

	return userPrompt("Daily task planning", content), nil
}

func handleWeeklyRetrospective(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	content := "Help me conduct a weekly productivity retrospective. I want to:\n" +
		"1. Review my completed tasks from the past week\n" +
		"2. Analyze my time tracking data and productivity metrics\n" +
		"3. Identify patterns in my work habits\n" +
		"4. Recognize achievements and areas for improvement\n" +
		"5. Plan adjustments for the upcoming week\n" +
		"6. Set goals and priorities\n\n" +
		"Please use the analytics tools to provide data-driven insights and recommendations."

	return userPrompt("Weekly productivity retrospective", content), nil
}

func handleProjectKickoff(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["project_name"]
	if name == "" {
		return nil, fmt.Errorf("project_name is required")
	}
	teamSize := req.Params.Arguments["team_size"]
	if teamSize == "" {
		teamSize = "1"
	}

	content := fmt.Sprintf("Help me kick off a new project called '%s' with a team of %s people. I need to:\n"+
		"1. Create the project in the system\n"+
		"2. Break down the project into manageable tasks\n"+
		"3. Estimate timelines and resource requirements\n"+
		"4. Assign tasks to team members\n"+
		"5. Set up milestones and checkpoints\n"+
		"6. Create a project timeline\n\n"+
		"Please guide me through setting up this project for success.", name, teamSize)

	return userPrompt("Project kickoff", content), nil
}

func handleTimeManagementCoaching(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	content := "I need help improving my time management skills. Please:\n" +
		"1. Analyze my current time tracking data\n" +
		"2. Identify time management patterns and inefficiencies\n" +
		"3. Suggest specific improvements based on my data\n" +
		"4. Help me set up better time tracking habits\n" +
		"5. Recommend productivity techniques that fit my work style\n" +
		"6. Create a personalized time management plan\n\n" +
		"Use my actual productivity data to provide tailored advice."

	return userPrompt("Time management coaching", content), nil
}

func handleTaskDelegation(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	member := req.Params.Arguments["team_member"]
	if member == "" {
		return nil, fmt.Errorf("team_member is required")
	}

	content := fmt.Sprintf("Help me delegate tasks effectively to %[1]s. I want to:\n"+
		"1. Review tasks that could be delegated\n"+
		"2. Assess %[1]s's current workload\n"+
		"3. Match tasks to their skills and availability\n"+
		"4. Create clear task assignments with expectations\n"+
		"5. Set up follow-up and progress tracking\n"+
		"6. Ensure proper handoff and communication\n\n"+
		"Please help me delegate responsibly and effectively.", member)

	return userPrompt("Task delegation", content), nil
}
