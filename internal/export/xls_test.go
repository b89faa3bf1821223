package export

import (
	"strings"
	"testing"

	"planner/internal/core"
)

func TestWriteCycleXLS(t *testing.T) {
	set := core.GenerateCycles("2024-01-01")
	task, err := set.AddTask(1)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	text := "launch <b>beta</b>"
	done := true
	if _, err := set.UpdateTask(1, task.ID, core.CycleTaskUpdate{Text: &text, Done: &done}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	var sb strings.Builder
	if err := WriteCycleXLS(&sb, set); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "1/1 - 1/10") {
		t.Fatal("first cycle range missing")
	}
	if !strings.Contains(out, "launch &lt;b&gt;beta&lt;/b&gt;") {
		t.Fatal("task text must be HTML-escaped")
	}
	if !strings.Contains(out, "<td>Yes</td>") {
		t.Fatal("done flag not rendered")
	}
	// Empty cycles still get a row so the sheet shows all 36.
	if got := strings.Count(out, "<tr>"); got != core.CycleCount+1 {
		t.Fatalf("row count: %d", got)
	}
}
