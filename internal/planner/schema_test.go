package planner

import (
	"testing"

	"planner/internal/core"
)

func TestDecodeTasksEnvelope(t *testing.T) {
	got, err := decodeTasks([]byte(`{"list":[{"id":"t1","title":"a","date":"2024-05-01"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestDecodeTasksBareArray(t *testing.T) {
	got, err := decodeTasks([]byte(`[{"id":"t1","title":"a","date":"2024-05-01"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestDecodeCategoriesLegacyStringList(t *testing.T) {
	for name, doc := range map[string]string{
		"bare":      `["工作","生活"]`,
		"enveloped": `{"list":["工作","生活"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := decodeCategories([]byte(doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != 2 || got[0].Name != "工作" || got[0].Color != "" {
				t.Fatalf("normalized: %+v", got)
			}
		})
	}
}

func TestDecodeCategoriesEnvelope(t *testing.T) {
	got, err := decodeCategories([]byte(`{"list":[{"name":"健康","color":"orange"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Color != "orange" {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestDecodeHabitsEnvelope(t *testing.T) {
	got, err := decodeHabits([]byte(`{"list":[{"id":"h1","name":"reading","target":20}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "reading" {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestDecodeCategoriesCurrentShape(t *testing.T) {
	got, err := decodeCategories([]byte(`[{"name":"健康","color":"orange"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Color != "orange" {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestDecodeCategoriesAbsentSeedsDefaults(t *testing.T) {
	got, err := decodeCategories(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 4 || got[0].Name != "工作" {
		t.Fatalf("defaults: %+v", got)
	}
}

func TestDecodeWealthUpgradesLegacyBalances(t *testing.T) {
	got, err := decodeWealth([]byte(`{"savings":1200,"investment":300}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Balances["savings"] != 1200 || got.Balances["investment"] != 300 {
		t.Fatalf("balances: %+v", got.Balances)
	}
	if len(got.Config.Jars) != 2 || got.Config.YearlyTarget != 100000 {
		t.Fatalf("config not defaulted: %+v", got.Config)
	}
}

func TestDecodeWealthCurrentShape(t *testing.T) {
	doc := `{"balances":{"a":5},"transactions":[],"config":{"yearlyTarget":9,"commitment":1,"showCommitment":false,"jars":[{"id":"a","label":"A","percent":100}]}}`
	got, err := decodeWealth([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Config.YearlyTarget != 9 || len(got.Config.Jars) != 1 {
		t.Fatalf("config: %+v", got.Config)
	}
}

func TestDecodeCyclesAbsentGenerates(t *testing.T) {
	got, err := decodeCycles(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Cycles) != core.CycleCount {
		t.Fatalf("cycles: %d", len(got.Cycles))
	}
}

func TestDecodeCyclesEmptyListRegeneratesFromStart(t *testing.T) {
	got, err := decodeCycles([]byte(`{"list":[],"startDate":"2023-03-01"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.StartDate != "2023-03-01" || len(got.Cycles) != core.CycleCount {
		t.Fatalf("regenerated: start=%q n=%d", got.StartDate, len(got.Cycles))
	}
}

func TestDecodeReviewsInitializesMaps(t *testing.T) {
	got, err := decodeReviews([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Daily == nil || got.Cycle == nil || got.Yearly == nil {
		t.Fatalf("maps not initialized: %+v", got)
	}
}
