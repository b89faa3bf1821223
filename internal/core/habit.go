package core

import (
	"fmt"
	"strings"
	"time"
)

// Habit tracks a monthly target with per-day completion marks.
type Habit struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Target    int      `json:"target"`    // day-count goal per month
	Completed []string `json:"completed"` // date keys
	Reward    string   `json:"reward"`
}

type HabitList []Habit

// Add appends a habit with a fresh id.
func (l *HabitList) Add(name string, target int, reward string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, fmt.Errorf("add habit: %w", ErrEmptyLabel)
	}
	h := Habit{ID: NewID(), Name: name, Target: target, Reward: reward}
	*l = append(*l, h)
	return h, nil
}

// Remove deletes the habit with the given id.
func (l *HabitList) Remove(id string) error {
	for i := range *l {
		if (*l)[i].ID == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove habit %s: %w", id, ErrNotFound)
}

// Toggle marks or unmarks the habit as done on the given day.
func (l HabitList) Toggle(id, dateKey string) (Habit, error) {
	for i := range l {
		if l[i].ID != id {
			continue
		}
		h := &l[i]
		for j, d := range h.Completed {
			if d == dateKey {
				h.Completed = append(h.Completed[:j], h.Completed[j+1:]...)
				return *h, nil
			}
		}
		h.Completed = append(h.Completed, dateKey)
		return *h, nil
	}
	return Habit{}, fmt.Errorf("toggle habit %s: %w", id, ErrNotFound)
}

// MonthCount returns how many completion marks fall in the given month.
func (h Habit) MonthCount(year int, month time.Month) int {
	var n int
	for _, d := range h.Completed {
		if InMonth(d, year, month) {
			n++
		}
	}
	return n
}

// Progress returns the month's completion ratio against the target, with a
// zero target guarded to 0 rather than dividing.
func (h Habit) Progress(year int, month time.Month) float64 {
	if h.Target <= 0 {
		return 0
	}
	return float64(h.MonthCount(year, month)) / float64(h.Target)
}
