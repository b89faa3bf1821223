package core

import (
	"errors"
	"testing"
)

func list(ids ...string) TaskList {
	l := make(TaskList, 0, len(ids))
	for _, id := range ids {
		l = append(l, Task{ID: id, Title: id, Date: "2024-01-01"})
	}
	return l
}

func ids(l TaskList) []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.ID
	}
	return out
}

func TestAddAssignsID(t *testing.T) {
	var l TaskList
	added, err := l.Add(Task{Title: "write report", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if added.Completed {
		t.Fatal("new task must start incomplete")
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	l := list("a")
	if _, err := l.Add(Task{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	l := list("a")
	got, err := l.Toggle("a")
	if err != nil || !got.Completed {
		t.Fatalf("toggle on: %+v, %v", got, err)
	}
	got, err = l.Toggle("a")
	if err != nil || got.Completed {
		t.Fatalf("toggle off: %+v, %v", got, err)
	}
	if _, err := l.Toggle("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	l := TaskList{{ID: "a", Title: "old", Category: "工作", Date: "2024-01-01"}}
	title := "new"
	done := true
	got, err := l.Update("a", TaskUpdate{Title: &title, Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "new" || !got.Completed {
		t.Fatalf("fields not applied: %+v", got)
	}
	if got.Category != "工作" || got.Date != "2024-01-01" {
		t.Fatalf("unset fields changed: %+v", got)
	}
}

func TestReorder(t *testing.T) {
	cases := []struct {
		name         string
		drag, target string
		pos          Position
		want         []string
	}{
		{"after recomputes index post-removal", "A", "C", PositionAfter, []string{"B", "C", "A", "D"}},
		{"before target", "D", "A", PositionBefore, []string{"D", "A", "B", "C"}},
		{"after when dragging backwards", "D", "A", PositionAfter, []string{"A", "D", "B", "C"}},
		{"before directly following target", "B", "A", PositionBefore, []string{"B", "A", "C", "D"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := list("A", "B", "C", "D")
			if err := l.Reorder(tc.drag, tc.target, tc.pos); err != nil {
				t.Fatalf("reorder: %v", err)
			}
			got := ids(l)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestReorderErrors(t *testing.T) {
	l := list("A", "B")
	if err := l.Reorder("A", "B", "sideways"); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if err := l.Reorder("X", "B", PositionAfter); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for drag, got %v", err)
	}
	if err := l.Reorder("A", "X", PositionAfter); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for target, got %v", err)
	}
	if err := l.Reorder("A", "A", PositionAfter); err != nil {
		t.Fatalf("self reorder should be a no-op, got %v", err)
	}
}

func TestTasksOnSortsByTimeWithTimelessLast(t *testing.T) {
	l := TaskList{
		{ID: "late", Date: "2024-01-02", Time: "18:00"},
		{ID: "untimed1", Date: "2024-01-02"},
		{ID: "early", Date: "2024-01-02", Time: "08:30"},
		{ID: "other-day", Date: "2024-01-03", Time: "09:00"},
		{ID: "untimed2", Date: "2024-01-02"},
	}
	got := ids(l.TasksOn("2024-01-02"))
	want := []string{"early", "late", "untimed1", "untimed2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCloneDay(t *testing.T) {
	l := TaskList{
		{ID: "1", Title: "a", Date: "2024-01-01", Completed: true},
		{ID: "2", Title: "b", Date: "2024-01-01"},
		{ID: "3", Title: "c", Date: "2024-01-01", Completed: true},
		{ID: "4", Title: "d", Date: "2024-01-05"},
	}
	n := l.CloneDay("2024-01-01", "2024-01-02")
	if n != 3 {
		t.Fatalf("expected 3 clones, got %d", n)
	}
	clones := l.TasksOn("2024-01-02")
	if len(clones) != 3 {
		t.Fatalf("expected 3 tasks on target day, got %d", len(clones))
	}
	seen := map[string]bool{"1": true, "2": true, "3": true, "4": true}
	for _, c := range clones {
		if seen[c.ID] {
			t.Fatalf("clone reused source id %s", c.ID)
		}
		if c.Completed {
			t.Fatalf("clone %s must start incomplete", c.ID)
		}
	}
	if got := l.CloneDay("2024-03-03", "2024-03-04"); got != 0 {
		t.Fatalf("empty source day should clone 0, got %d", got)
	}
}
