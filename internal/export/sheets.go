package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"planner/internal/core"
)

// SheetsExporter mirrors a user's cycle tracker into a Google Sheets tab.
// Each export rewrites the whole tab; the tracker is small enough that a
// full rewrite beats tracking row-level diffs.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds the exporter from service account credentials.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string, credentialsJSON []byte) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if len(credentialsJSON) == 0 {
		return nil, errors.New("missing service account credentials")
	}
	if sheetName == "" {
		sheetName = "Cycles"
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// ExportCycles replaces the tab contents with the current tracker state.
func (e *SheetsExporter) ExportCycles(ctx context.Context, user string, set core.CycleSet) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:G", e.sheetName)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", e.sheetName, err)
	}

	values := [][]any{
		{"User", "Cycle", "Date Range", "Task", "Done", "Plan", "Feedback"},
	}
	for _, c := range set.Cycles {
		if len(c.Tasks) == 0 {
			values = append(values, []any{user, c.ID, c.DateRange, "", "", "", ""})
			continue
		}
		for _, t := range c.Tasks {
			done := "No"
			if t.Done {
				done = "Yes"
			}
			values = append(values, []any{user, c.ID, c.DateRange, t.Text, done, t.Plan, t.Feedback})
		}
	}

	vr := &gsheet.ValueRange{Values: values}
	writeRange := fmt.Sprintf("%s!A1", e.sheetName)
	if _, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update sheet %s: %w", e.sheetName, err)
	}

	slog.InfoContext(ctx, "Cycle tracker written to Google Sheets",
		"user", user,
		"rows", len(values)-1,
		"sheet", e.sheetName)
	return nil
}
