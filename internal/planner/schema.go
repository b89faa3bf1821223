package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"planner/internal/core"
)

// Persisted document decoding lives here so legacy shapes are normalized in
// exactly one place. Every decoder returns a usable value for absent or
// empty input.

// listDocument is the {list: [...]} envelope the list-shaped collections
// (tasks, categories, habits) are persisted in. Older documents written as
// bare arrays are still accepted on read.
type listDocument[T any] struct {
	List T `json:"list"`
}

// isEnveloped reports whether the document is object-shaped, meaning the
// list lives under a "list" key rather than at the top level.
func isEnveloped(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeTasks(data []byte) (core.TaskList, error) {
	if len(data) == 0 {
		return core.TaskList{}, nil
	}
	if isEnveloped(data) {
		var doc listDocument[core.TaskList]
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		if doc.List == nil {
			doc.List = core.TaskList{}
		}
		return doc.List, nil
	}
	var tasks core.TaskList
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// decodeCategories accepts the current {name, color} list and the legacy
// bare string list, which predates per-category colors. Both may arrive
// enveloped or bare.
func decodeCategories(data []byte) (core.CategoryList, error) {
	if len(data) == 0 {
		return core.DefaultCategories(), nil
	}
	var categories core.CategoryList
	var names []string
	if isEnveloped(data) {
		var doc listDocument[core.CategoryList]
		if err := json.Unmarshal(data, &doc); err == nil {
			if doc.List == nil {
				return core.DefaultCategories(), nil
			}
			return doc.List, nil
		}
		var legacy listDocument[[]string]
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
		names = legacy.List
	} else {
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
		if err := json.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}
	categories = make(core.CategoryList, 0, len(names))
	for _, name := range names {
		categories = append(categories, core.Category{Name: name})
	}
	return categories, nil
}

// decodeWealth accepts the current document and the legacy v1 shape, which
// was a bare jar-id to balance map with no config or ledger.
func decodeWealth(data []byte) (core.Wealth, error) {
	if len(data) == 0 {
		return core.DefaultWealth(), nil
	}
	var w core.Wealth
	if err := json.Unmarshal(data, &w); err != nil {
		return core.Wealth{}, fmt.Errorf("decode wealth: %w", err)
	}
	if w.Balances == nil && w.Transactions == nil && w.Config.Jars == nil {
		var balances map[string]float64
		if err := json.Unmarshal(data, &balances); err == nil && len(balances) > 0 {
			w = core.DefaultWealth()
			for id, balance := range balances {
				w.Balances[id] = balance
			}
			return w, nil
		}
	}
	if w.Balances == nil {
		w.Balances = make(map[string]float64)
	}
	if w.Config.Jars == nil {
		w.Config = core.DefaultWealth().Config
	}
	return w, nil
}

func decodeCycles(data []byte) (core.CycleSet, error) {
	if len(data) == 0 {
		return core.GenerateCycles(core.DefaultCycleStart(time.Now())), nil
	}
	var set core.CycleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return core.CycleSet{}, fmt.Errorf("decode cycles: %w", err)
	}
	if len(set.Cycles) == 0 {
		start := set.StartDate
		if start == "" {
			start = core.DefaultCycleStart(time.Now())
		}
		return core.GenerateCycles(start), nil
	}
	return set, nil
}

func decodeReviews(data []byte) (core.Reviews, error) {
	if len(data) == 0 {
		return core.NewReviews(), nil
	}
	var r core.Reviews
	if err := json.Unmarshal(data, &r); err != nil {
		return core.Reviews{}, fmt.Errorf("decode reviews: %w", err)
	}
	if r.Daily == nil {
		r.Daily = make(map[string]core.DailyReview)
	}
	if r.Cycle == nil {
		r.Cycle = make(map[int]core.CycleReview)
	}
	if r.Yearly == nil {
		r.Yearly = make(map[int]core.YearlyReview)
	}
	return r, nil
}

func decodeHabits(data []byte) (core.HabitList, error) {
	if len(data) == 0 {
		return core.HabitList{}, nil
	}
	if isEnveloped(data) {
		var doc listDocument[core.HabitList]
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode habits: %w", err)
		}
		if doc.List == nil {
			doc.List = core.HabitList{}
		}
		return doc.List, nil
	}
	var habits core.HabitList
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	return habits, nil
}
