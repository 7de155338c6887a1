package server

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tempo/internal/config"
	"tempo/internal/service"
	"tempo/internal/store/memory"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	svc, err := service.New(memory.New(), config.Default())
	if err != nil {
		t.Fatalf("service.New() err=%v, want nil", err)
	}
	return svc
}

func TestArgReaderAbsentKeys(t *testing.T) {
	r := newArgReader(map[string]any{})

	if got := r.optString("title"); got != nil {
		t.Fatalf("optString(absent)=%v, want nil", *got)
	}
	if got := r.optFloat("budget"); got != nil {
		t.Fatalf("optFloat(absent)=%v, want nil", *got)
	}
	if got := r.stringList("tags"); got != nil {
		t.Fatalf("stringList(absent)=%v, want nil", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err()=%v for absent keys, want nil", err)
	}
}

func TestArgReaderValues(t *testing.T) {
	r := newArgReader(map[string]any{
		"title":           "ship it",
		"estimated_hours": 3.5,
		"tags":            []any{"infra", "urgent"},
	})

	if got := r.optString("title"); got == nil || *got != "ship it" {
		t.Fatalf("optString()=%v, want ship it", got)
	}
	if got := r.optFloat("estimated_hours"); got == nil || *got != 3.5 {
		t.Fatalf("optFloat()=%v, want 3.5", got)
	}
	if got := r.stringList("tags"); len(got) != 2 || got[0] != "infra" {
		t.Fatalf("stringList()=%v, want [infra urgent]", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err()=%v, want nil", err)
	}
}

func TestArgReaderWrongTypes(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		read func(*argReader)
	}{
		{"string for number", map[string]any{"estimated_hours": "3"}, func(r *argReader) { r.optFloat("estimated_hours") }},
		{"number for string", map[string]any{"title": 7.0}, func(r *argReader) { r.optString("title") }},
		{"string for array", map[string]any{"tags": "infra"}, func(r *argReader) { r.stringList("tags") }},
		{"mixed array", map[string]any{"tags": []any{"infra", 3.0}}, func(r *argReader) { r.stringList("tags") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newArgReader(tc.args)
			tc.read(r)
			if err := r.Err(); err == nil {
				t.Fatalf("Err()=nil for %s, want error", tc.name)
			}
		})
	}
}

func TestArgReaderKeepsFirstError(t *testing.T) {
	r := newArgReader(map[string]any{"title": 7.0, "budget": "lots"})

	r.optString("title")
	r.optFloat("budget")

	err := r.Err()
	if err == nil || !strings.Contains(err.Error(), "title") {
		t.Fatalf("Err()=%v, want first error naming title", err)
	}
}

func TestUpdateTaskRejectsMistypedField(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.CreateTask(service.CreateTaskParams{Title: "typed"})
	if err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}

	tool := newUpdateTaskTool(svc)
	req := mcp.CallToolRequest{}
	req.Params.Name = "update_task"
	req.Params.Arguments = map[string]any{
		"task_id":         task.ID,
		"estimated_hours": "3",
	}

	res, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle() err=%v, want nil", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("Handle() accepted a mistyped estimated_hours, want error result")
	}

	// The whole call fails; the mistyped field is not silently dropped.
	got, err := svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask() err=%v, want nil", err)
	}
	if got.EstimatedHours != nil {
		t.Fatalf("EstimatedHours=%v after rejected update, want nil", *got.EstimatedHours)
	}
}
