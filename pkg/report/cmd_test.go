package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pytest-kit/testsum/internal/summary"
)

func writeSummary(t *testing.T, dir string) string {
	t.Helper()
	s := summary.NewSummary()
	s.Populate(&summary.RawReport{Summary: map[string]int{"total": 5, "passed": 3, "failed": 2}})
	s.AttachAdvisories(summary.DefaultCatalog())

	path := filepath.Join(dir, "output.json")
	assert.NoError(t, summary.Write(s, path))
	return path
}

func TestProcessReportText(t *testing.T) {
	in := &Input{
		summaryFile: writeSummary(t, t.TempDir()),
		format:      summary.FormatText,
	}
	assert.NoError(t, processReport(in))
}

func TestProcessReportHTML(t *testing.T) {
	dir := t.TempDir()
	saveTo := filepath.Join(dir, "summary.html")
	in := &Input{
		summaryFile: writeSummary(t, dir),
		format:      summary.FormatHTML,
		saveTo:      saveTo,
	}
	assert.NoError(t, processReport(in))

	_, err := os.Stat(saveTo)
	assert.NoError(t, err)
}

func TestProcessReportUnsupportedFormat(t *testing.T) {
	in := &Input{
		summaryFile: writeSummary(t, t.TempDir()),
		format:      "pdf",
	}
	assert.Error(t, processReport(in))
}

func TestProcessReportMissingSummary(t *testing.T) {
	in := &Input{
		summaryFile: filepath.Join(t.TempDir(), "missing.json"),
		format:      summary.FormatText,
	}
	assert.Error(t, processReport(in))
}
