package core

import (
	"fmt"
	"sort"
)

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

type (
	Priority string

	// Position names where a dragged task lands relative to its target.
	Position string

	Task struct {
		ID        string   `json:"id"`
		Title     string   `json:"title"`
		Category  string   `json:"category"`
		Time      string   `json:"time,omitempty"` // "HH:MM", empty means unscheduled
		Date      string   `json:"date"`           // YYYY-MM-DD
		Completed bool     `json:"completed"`
		Priority  Priority `json:"priority,omitempty"`
	}

	// TaskUpdate is a field mask for partial updates; nil fields are untouched.
	TaskUpdate struct {
		Title     *string   `json:"title,omitempty"`
		Category  *string   `json:"category,omitempty"`
		Time      *string   `json:"time,omitempty"`
		Date      *string   `json:"date,omitempty"`
		Completed *bool     `json:"completed,omitempty"`
		Priority  *Priority `json:"priority,omitempty"`
	}

	// TaskList is the ordered task collection. Order is user-controlled via
	// Reorder, so every mutation preserves relative positions.
	TaskList []Task
)

func (p Position) Validate() error {
	switch p {
	case PositionBefore, PositionAfter:
		return nil
	}
	return ErrInvalidPosition
}

// Add appends t, assigning an id when none is set. Titles are not validated
// here; the boundary decides what counts as acceptable input. Duplicate ids
// are rejected so a task can always be addressed unambiguously.
func (l *TaskList) Add(t Task) (Task, error) {
	if t.ID == "" {
		t.ID = NewID()
	} else if l.index(t.ID) >= 0 {
		return Task{}, fmt.Errorf("add task %s: %w", t.ID, ErrDuplicateID)
	}
	*l = append(*l, t)
	return t, nil
}

// Toggle flips the completed flag of the task with the given id.
func (l TaskList) Toggle(id string) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle task %s: %w", id, ErrNotFound)
	}
	l[i].Completed = !l[i].Completed
	return l[i], nil
}

// Remove deletes the task with the given id.
func (l *TaskList) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("remove task %s: %w", id, ErrNotFound)
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	return nil
}

// Update applies the non-nil fields of u to the task with the given id.
func (l TaskList) Update(id string, u TaskUpdate) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("update task %s: %w", id, ErrNotFound)
	}
	t := &l[i]
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Time != nil {
		t.Time = *u.Time
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	return *t, nil
}

// Reorder moves the dragged task next to the target task. The drag element
// is removed first and the target index recomputed afterwards; inserting at
// the target's pre-removal index misplaces the task by one slot whenever the
// drag source sits above the target.
func (l *TaskList) Reorder(dragID, targetID string, pos Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	if dragID == targetID {
		return nil
	}
	from := l.index(dragID)
	if from < 0 {
		return fmt.Errorf("reorder: drag %s: %w", dragID, ErrNotFound)
	}
	dragged := (*l)[from]
	rest := append(append(TaskList{}, (*l)[:from]...), (*l)[from+1:]...)

	to := rest.index(targetID)
	if to < 0 {
		return fmt.Errorf("reorder: target %s: %w", targetID, ErrNotFound)
	}
	if pos == PositionAfter {
		to++
	}
	rest = append(rest, Task{})
	copy(rest[to+1:], rest[to:])
	rest[to] = dragged
	*l = rest
	return nil
}

// TasksOn returns the tasks scheduled on the given date key, ordered by
// ascending time. Tasks without a time sort to the end; ties keep their
// stored relative order.
func (l TaskList) TasksOn(dateKey string) []Task {
	var out []Task
	for _, t := range l {
		if t.Date == dateKey {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Time, out[j].Time
		switch {
		case ti == "":
			return false
		case tj == "":
			return true
		default:
			// "HH:MM" compares correctly as a string.
			return ti < tj
		}
	})
	return out
}

// CloneDay copies every task dated src onto dst with fresh ids and the
// completed flag cleared, and returns the number of tasks cloned. Zero is a
// valid outcome the caller should surface as a notice, not an error.
func (l *TaskList) CloneDay(src, dst string) int {
	var clones []Task
	for _, t := range *l {
		if t.Date != src {
			continue
		}
		c := t
		c.ID = NewID()
		c.Date = dst
		c.Completed = false
		clones = append(clones, c)
	}
	*l = append(*l, clones...)
	return len(clones)
}

func (l TaskList) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}
