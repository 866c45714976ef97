package summary

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Render formats supported for a written summary artifact.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

var textTemplate = `> Test Summary: {{.Status}}
{{printf "%-14s | %-14s | %-14s | %-14s" "RUN" "PASSED" "FAILED" "SKIPPED"}}
{{printf "%-14d | %-14d | %-14d | %-14d" .TestsRun .TestsPassed .TestsFailed .TestsSkipped}}
{{if .IssuesDetected}}
Known issues:{{range $index, $issue := .IssuesDetected}}
 [{{$issue.Status}}] {{$issue.Title}}
   cause: {{$issue.Cause}}
   fix:   {{$issue.Fix}}{{end}}
{{end}}{{if .Runtime}}
Runtime: {{.Runtime.Samples}} samples, mean {{.Runtime.MeanMs}}ms, P50 {{.Runtime.P50Ms}}ms, P99 {{.Runtime.P99Ms}}ms
{{end}}`

// RenderText writes the terminal view of the summary.
func RenderText(s *Summary, w io.Writer) error {
	tmpl, err := template.New("summary").Parse(textTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse summary template")
	}
	return tmpl.Execute(w, s)
}

// RenderHTML saves a standalone HTML page with the outcome distribution
// chart to the target path.
func RenderHTML(s *Summary, saveTo string) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Test run outcomes",
			Subtitle: fmt.Sprintf("status=%s total=%d", s.Status, s.TestsRun),
		}),
	)
	pie.AddSeries("outcomes", []opts.PieData{
		{Name: OutcomePassed, Value: s.TestsPassed},
		{Name: OutcomeFailed, Value: s.TestsFailed},
		{Name: OutcomeSkipped, Value: s.TestsSkipped},
	})

	page := components.NewPage()
	page.AddCharts(pie)

	fd, err := os.Create(saveTo)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", saveTo)
	}
	defer fd.Close()
	if err := page.Render(fd); err != nil {
		return errors.Wrapf(err, "unable to render chart page to %s", saveTo)
	}
	return nil
}

// RenderXLSX exports the counts and the advisory catalog as a
// spreadsheet for the review workflow.
func RenderXLSX(s *Summary, saveTo string) error {
	sheet := excelize.NewFile()
	defer sheet.Close()

	sheetName := "summary"
	idx, err := sheet.NewSheet(sheetName)
	if err != nil {
		return errors.Wrapf(err, "unable to create sheet %s", sheetName)
	}
	sheet.SetActiveSheet(idx)

	header := map[string]interface{}{
		"A1": "Status", "B1": "Run", "C1": "Passed", "D1": "Failed", "E1": "Skipped",
	}
	for cell, value := range header {
		_ = sheet.SetCellValue(sheetName, cell, value)
	}
	_ = sheet.SetCellValue(sheetName, "A2", s.Status)
	_ = sheet.SetCellValue(sheetName, "B2", s.TestsRun)
	_ = sheet.SetCellValue(sheetName, "C2", s.TestsPassed)
	_ = sheet.SetCellValue(sheetName, "D2", s.TestsFailed)
	_ = sheet.SetCellValue(sheetName, "E2", s.TestsSkipped)

	issuesName := "issues"
	if _, err := sheet.NewSheet(issuesName); err != nil {
		return errors.Wrapf(err, "unable to create sheet %s", issuesName)
	}
	_ = sheet.SetCellValue(issuesName, "A1", "Title")
	_ = sheet.SetCellValue(issuesName, "B1", "Cause")
	_ = sheet.SetCellValue(issuesName, "C1", "Fix")
	_ = sheet.SetCellValue(issuesName, "D1", "Status")
	row := 2
	for _, issue := range s.IssuesDetected {
		_ = sheet.SetCellValue(issuesName, fmt.Sprintf("A%d", row), issue.Title)
		_ = sheet.SetCellValue(issuesName, fmt.Sprintf("B%d", row), issue.Cause)
		_ = sheet.SetCellValue(issuesName, fmt.Sprintf("C%d", row), issue.Fix)
		_ = sheet.SetCellValue(issuesName, fmt.Sprintf("D%d", row), issue.Status)
		row++
	}

	if err := sheet.SaveAs(saveTo); err != nil {
		return errors.Wrapf(err, "unable to save sheet to %s", saveTo)
	}
	return nil
}
