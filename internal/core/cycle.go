package core

import (
	"fmt"
	"time"
)

// The year is planned as CycleCount periods of CycleDays days each. These
// are the only places either number is defined.
const (
	CycleCount = 36
	CycleDays  = 10

	// CycleTaskCap bounds the sub-tasks per cycle; the point of the tracker
	// is focus, not backlog.
	CycleTaskCap = 5
)

type (
	CycleTask struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Done     bool   `json:"done"`
		Plan     string `json:"plan"`
		Feedback string `json:"feedback"`
	}

	CycleTaskUpdate struct {
		Text     *string `json:"text,omitempty"`
		Done     *bool   `json:"done,omitempty"`
		Plan     *string `json:"plan,omitempty"`
		Feedback *string `json:"feedback,omitempty"`
	}

	Cycle struct {
		ID        int         `json:"id"` // 1..CycleCount
		DateRange string      `json:"dateRange"`
		Tasks     []CycleTask `json:"tasks"`
	}

	// CycleSet is the persisted cycle document: the full fixed-size list
	// plus the start date it was generated from.
	CycleSet struct {
		Cycles    []Cycle `json:"list"`
		StartDate string  `json:"startDate"`
	}
)

// DefaultCycleStart anchors a fresh tracker to Jan 1 of the current year.
func DefaultCycleStart(now time.Time) string {
	return fmt.Sprintf("%04d-01-01", now.Year())
}

// GenerateCycles builds the full CycleCount-entry tracker from a start date
// key. An unparseable start date falls back to Jan 1 of the current year.
func GenerateCycles(startKey string) CycleSet {
	start, err := ParseDateKey(startKey)
	if err != nil {
		startKey = DefaultCycleStart(time.Now())
		start, _ = ParseDateKey(startKey)
	}
	set := CycleSet{StartDate: startKey, Cycles: make([]Cycle, 0, CycleCount)}
	for i := 0; i < CycleCount; i++ {
		cs := start.AddDate(0, 0, i*CycleDays)
		ce := cs.AddDate(0, 0, CycleDays-1)
		set.Cycles = append(set.Cycles, Cycle{
			ID:        i + 1,
			DateRange: fmt.Sprintf("%d/%d - %d/%d", int(cs.Month()), cs.Day(), int(ce.Month()), ce.Day()),
		})
	}
	return set
}

// AddTask appends an empty sub-task to the cycle, refusing beyond the cap.
func (s *CycleSet) AddTask(cycleID int) (CycleTask, error) {
	c, err := s.cycle(cycleID)
	if err != nil {
		return CycleTask{}, err
	}
	if len(c.Tasks) >= CycleTaskCap {
		return CycleTask{}, fmt.Errorf("cycle %d: %w", cycleID, ErrCycleTaskCap)
	}
	t := CycleTask{ID: NewID()}
	c.Tasks = append(c.Tasks, t)
	return t, nil
}

// UpdateTask applies the non-nil fields of u to one sub-task.
func (s *CycleSet) UpdateTask(cycleID int, taskID string, u CycleTaskUpdate) (CycleTask, error) {
	c, err := s.cycle(cycleID)
	if err != nil {
		return CycleTask{}, err
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID != taskID {
			continue
		}
		t := &c.Tasks[i]
		if u.Text != nil {
			t.Text = *u.Text
		}
		if u.Done != nil {
			t.Done = *u.Done
		}
		if u.Plan != nil {
			t.Plan = *u.Plan
		}
		if u.Feedback != nil {
			t.Feedback = *u.Feedback
		}
		return *t, nil
	}
	return CycleTask{}, fmt.Errorf("cycle %d task %s: %w", cycleID, taskID, ErrNotFound)
}

// DeleteTask removes one sub-task from the cycle.
func (s *CycleSet) DeleteTask(cycleID int, taskID string) error {
	c, err := s.cycle(cycleID)
	if err != nil {
		return err
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cycle %d task %s: %w", cycleID, taskID, ErrNotFound)
}

// Progress returns overall done/total sub-task counts across all cycles.
func (s CycleSet) Progress() (done, total int) {
	for _, c := range s.Cycles {
		total += len(c.Tasks)
		for _, t := range c.Tasks {
			if t.Done {
				done++
			}
		}
	}
	return done, total
}

func (s *CycleSet) cycle(id int) (*Cycle, error) {
	for i := range s.Cycles {
		if s.Cycles[i].ID == id {
			return &s.Cycles[i], nil
		}
	}
	return nil, fmt.Errorf("cycle %d: %w", id, ErrNotFound)
}
