// Package export renders the cycle tracker for the outside world, either
// as a spreadsheet-compatible download or into Google Sheets.
package export

import (
	"fmt"
	"html/template"
	"io"

	"planner/internal/core"
)

// XLSContentType is the media type Excel expects for the HTML-table
// download format.
const XLSContentType = "application/vnd.ms-excel"

// Excel opens an HTML table saved as .xls without complaint, which keeps
// the export dependency-free.
var xlsTemplate = template.Must(template.New("cycles").Parse(`<html>
<head><meta charset="UTF-8"></head>
<body>
<table border="1">
<tr><th>Cycle</th><th>Date Range</th><th>Task</th><th>Done</th><th>Plan</th><th>Feedback</th></tr>
{{range .Cycles}}{{$c := .}}{{if .Tasks}}{{range .Tasks}}<tr><td>{{$c.ID}}</td><td>{{$c.DateRange}}</td><td>{{.Text}}</td><td>{{if .Done}}Yes{{else}}No{{end}}</td><td>{{.Plan}}</td><td>{{.Feedback}}</td></tr>
{{end}}{{else}}<tr><td>{{$c.ID}}</td><td>{{$c.DateRange}}</td><td></td><td></td><td></td><td></td></tr>
{{end}}{{end}}</table>
</body>
</html>
`))

// WriteCycleXLS writes the tracker as an Excel-compatible HTML table.
func WriteCycleXLS(w io.Writer, set core.CycleSet) error {
	if err := xlsTemplate.Execute(w, set); err != nil {
		return fmt.Errorf("render cycle export: %w", err)
	}
	return nil
}
