package core

import "testing"

func TestCategoryStats(t *testing.T) {
	tasks := []Task{
		{Category: "工作", Completed: true},
		{Category: "工作"},
		{Category: "生活", Completed: true},
	}
	stats := CategoryStats(tasks)
	if s := stats["工作"]; s.Total != 2 || s.Completed != 1 {
		t.Fatalf("工作: %+v", s)
	}
	if s := stats["生活"]; s.Total != 1 || s.Completed != 1 {
		t.Fatalf("生活: %+v", s)
	}
}

func TestCategoryStatPercentGuardsZero(t *testing.T) {
	if got := (CategoryStat{}).Percent(); got != 0 {
		t.Fatalf("empty category percent = %d, want 0", got)
	}
	if got := (CategoryStat{Total: 4, Completed: 1}).Percent(); got != 25 {
		t.Fatalf("percent = %d, want 25", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	txs := []Transaction{
		{Category: "Food", Amount: -30},
		{Category: "Transport", Amount: -12.5},
		{Category: "Food", Amount: -20},
		{Category: "Refund", Amount: 50},
		{Category: "Refund", Amount: -50}, // cancels to zero, dropped
	}
	got := CategoryTotals(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Food" || got[0].Value != -50 {
		t.Fatalf("first entry: %+v", got[0])
	}
	if got[1].Name != "Transport" || got[1].Value != -12.5 {
		t.Fatalf("second entry: %+v", got[1])
	}
}

func TestCategoryTotalsEmpty(t *testing.T) {
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
