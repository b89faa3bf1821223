package core

// CategoryStat counts tasks grouped under one category.
type CategoryStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Percent returns the completion percentage, 0 for an empty category so the
// caller never renders NaN.
func (s CategoryStat) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// CategoryStats groups tasks by category in a single pass.
func CategoryStats(tasks []Task) map[string]CategoryStat {
	stats := make(map[string]CategoryStat)
	for _, t := range tasks {
		s := stats[t.Category]
		s.Total++
		if t.Completed {
			s.Completed++
		}
		stats[t.Category] = s
	}
	return stats
}

// CategoryTotal is one chart slice of the spending breakdown.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryTotals sums signed transaction amounts per category, preserving
// first-seen order. Categories whose amounts cancel to exactly zero are
// dropped from the output.
func CategoryTotals(txs []Transaction) []CategoryTotal {
	sums := make(map[string]float64)
	var order []string
	for _, tx := range txs {
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount
	}
	var out []CategoryTotal
	for _, name := range order {
		if sums[name] == 0 {
			continue
		}
		out = append(out, CategoryTotal{Name: name, Value: sums[name]})
	}
	return out
}
