package core

import (
	"errors"
	"testing"
)

func TestGenerateCycles(t *testing.T) {
	set := GenerateCycles("2024-01-01")
	if len(set.Cycles) != CycleCount {
		t.Fatalf("expected %d cycles, got %d", CycleCount, len(set.Cycles))
	}
	if set.StartDate != "2024-01-01" {
		t.Fatalf("start date: %q", set.StartDate)
	}
	if set.Cycles[0].ID != 1 || set.Cycles[0].DateRange != "1/1 - 1/10" {
		t.Fatalf("first cycle: %+v", set.Cycles[0])
	}
	if set.Cycles[1].DateRange != "1/11 - 1/20" {
		t.Fatalf("second cycle: %+v", set.Cycles[1])
	}
	if set.Cycles[35].ID != 36 {
		t.Fatalf("last cycle id: %d", set.Cycles[35].ID)
	}
}

func TestGenerateCyclesBadStartFallsBack(t *testing.T) {
	set := GenerateCycles("not-a-date")
	if len(set.Cycles) != CycleCount {
		t.Fatalf("expected %d cycles, got %d", CycleCount, len(set.Cycles))
	}
	if set.StartDate == "not-a-date" || set.StartDate == "" {
		t.Fatalf("start date not defaulted: %q", set.StartDate)
	}
}

func TestCycleAddTaskCap(t *testing.T) {
	set := GenerateCycles("2024-01-01")
	for i := 0; i < CycleTaskCap; i++ {
		if _, err := set.AddTask(1); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if _, err := set.AddTask(1); !errors.Is(err, ErrCycleTaskCap) {
		t.Fatalf("expected ErrCycleTaskCap, got %v", err)
	}
	if got := len(set.Cycles[0].Tasks); got != CycleTaskCap {
		t.Fatalf("rejected add must leave exactly %d tasks, got %d", CycleTaskCap, got)
	}
	if _, err := set.AddTask(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad cycle, got %v", err)
	}
}

func TestCycleUpdateAndDeleteTask(t *testing.T) {
	set := GenerateCycles("2024-01-01")
	task, err := set.AddTask(3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	text := "ship the report"
	done := true
	got, err := set.UpdateTask(3, task.ID, CycleTaskUpdate{Text: &text, Done: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Text != text || !got.Done {
		t.Fatalf("update not applied: %+v", got)
	}
	if d, total := set.Progress(); d != 1 || total != 1 {
		t.Fatalf("progress: %d/%d", d, total)
	}
	if err := set.DeleteTask(3, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := set.DeleteTask(3, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
