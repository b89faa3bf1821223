package core

import (
	"testing"
	"time"
)

func TestCycleReviewID(t *testing.T) {
	cases := []struct {
		month time.Month
		sub   int
		want  int
	}{
		{time.January, 0, 1},
		{time.January, 2, 3},
		{time.February, 0, 4},
		{time.December, 2, 36},
	}
	for _, tc := range cases {
		if got := CycleReviewID(tc.month, tc.sub); got != tc.want {
			t.Fatalf("CycleReviewID(%v, %d) = %d, want %d", tc.month, tc.sub, got, tc.want)
		}
	}
}

func TestUnlockedCount(t *testing.T) {
	cases := []struct {
		name  string
		items []ChecklistItem
		want  int
	}{
		{"empty", nil, 0},
		{"nothing checked shows only first", []ChecklistItem{{}, {}, {}}, 1},
		{"first checked unlocks second", []ChecklistItem{{Checked: true}, {}, {}}, 2},
		{"run of three unlocks fourth", []ChecklistItem{{Checked: true}, {Checked: true}, {Checked: true}, {}, {}}, 4},
		{"gap stops the unlock", []ChecklistItem{{Checked: true}, {}, {Checked: true}}, 2},
		{"all checked caps at length", []ChecklistItem{{Checked: true}, {Checked: true}}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UnlockedCount(tc.items); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewYearlyReview(t *testing.T) {
	y := NewYearlyReview()
	if len(y.Categories) != len(YearlyGoalNames) {
		t.Fatalf("expected %d goal categories, got %d", len(YearlyGoalNames), len(y.Categories))
	}
	for i, c := range y.Categories {
		if c.Name != YearlyGoalNames[i] {
			t.Fatalf("category %d: %q", i, c.Name)
		}
	}
}
