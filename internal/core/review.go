package core

import "time"

type (
	// ChecklistItem is one line of a review list.
	ChecklistItem struct {
		Text    string `json:"text"`
		Checked bool   `json:"checked"`
	}

	// DailyReview is a keep/improve/start/stop retro for one day.
	DailyReview struct {
		Keep    []ChecklistItem `json:"keep"`
		Improve []ChecklistItem `json:"improve"`
		Start   []ChecklistItem `json:"start"`
		Stop    []ChecklistItem `json:"stop"`
	}

	// CycleReview is a plan/do/adjust/check reflection for one 10-day cycle
	// plus after-action notes.
	CycleReview struct {
		Plan   []ChecklistItem `json:"plan"`
		Do     []ChecklistItem `json:"do"`
		Adjust []ChecklistItem `json:"adjust"`
		Check  []ChecklistItem `json:"check"`
		AAR    []ChecklistItem `json:"aar"`
	}

	// GoalCategory is one long-term goal area with a sequentially unlocked
	// checklist.
	GoalCategory struct {
		Name  string          `json:"name"`
		Items []ChecklistItem `json:"items"`
	}

	YearlyReview struct {
		Categories []GoalCategory `json:"categories"`
	}

	// Reviews is the persisted journal document. Daily entries are keyed by
	// date key, cycle entries by computed cycle id, yearly entries by year.
	Reviews struct {
		Daily  map[string]DailyReview `json:"daily"`
		Cycle  map[int]CycleReview    `json:"cycle"`
		Yearly map[int]YearlyReview   `json:"yearly"`
	}
)

// YearlyGoalNames are the seven fixed goal areas of a yearly review.
var YearlyGoalNames = []string{
	"Health", "Career", "Finance", "Learning",
	"Relationships", "Experiences", "Contribution",
}

// NewReviews returns an empty journal.
func NewReviews() Reviews {
	return Reviews{
		Daily:  make(map[string]DailyReview),
		Cycle:  make(map[int]CycleReview),
		Yearly: make(map[int]YearlyReview),
	}
}

// NewYearlyReview seeds the seven goal categories.
func NewYearlyReview() YearlyReview {
	y := YearlyReview{Categories: make([]GoalCategory, 0, len(YearlyGoalNames))}
	for _, name := range YearlyGoalNames {
		y.Categories = append(y.Categories, GoalCategory{Name: name})
	}
	return y
}

// CycleReviewID maps a month and zero-based sub-cycle (0..2) to the journal
// key: three review slots per month, numbered 1..36 across the year.
func CycleReviewID(month time.Month, subCycle int) int {
	return (int(month)-1)*3 + subCycle + 1
}

// UnlockedCount implements sequential unlock: item N is visible only once
// items 1..N-1 are all checked, so the count is the length of the leading
// checked run plus one, capped at the list length.
func UnlockedCount(items []ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	n := 1
	for i := 0; i < len(items)-1 && items[i].Checked; i++ {
		n++
	}
	return n
}
