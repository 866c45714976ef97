package summarize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pytest-kit/testsum/internal/summary"
)

func TestProcessFailureRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_results.json")
	output := filepath.Join(dir, "output.json")
	payload := `{"summary": {"total": 5, "passed": 3, "failed": 2}, "tests": []}`
	assert.NoError(t, os.WriteFile(input, []byte(payload), 0644))

	assert.NoError(t, Process(NewInput(input, output)))

	got, err := summary.Read(output)
	assert.NoError(t, err)
	assert.Equal(t, 5, got.TestsRun)
	assert.Equal(t, 2, got.TestsFailed)
	assert.Equal(t, summary.StatusFailure, got.Status)
	assert.Len(t, got.IssuesDetected, 1)
}

func TestProcessSuccessRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_results.json")
	output := filepath.Join(dir, "output.json")
	payload := `{"summary": {"total": 10, "passed": 10, "failed": 0, "skipped": 0}, "tests": []}`
	assert.NoError(t, os.WriteFile(input, []byte(payload), 0644))

	assert.NoError(t, Process(NewInput(input, output)))

	got, err := summary.Read(output)
	assert.NoError(t, err)
	assert.Equal(t, summary.StatusSuccess, got.Status)
	assert.Len(t, got.IssuesDetected, len(summary.DefaultCatalog()))
}

// A missing raw report is recovered locally: the summary is still
// written, with zero counts and unknown status.
func TestProcessAbsentInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "output.json")

	assert.NoError(t, Process(NewInput(filepath.Join(dir, "missing.json"), output)))

	got, err := summary.Read(output)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.TestsRun)
	assert.Equal(t, summary.StatusUnknown, got.Status)
	assert.Empty(t, got.IssuesDetected)
}

// Malformed input aborts before anything is written.
func TestProcessMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_results.json")
	output := filepath.Join(dir, "output.json")
	assert.NoError(t, os.WriteFile(input, []byte("{broken"), 0644))

	assert.Error(t, Process(NewInput(input, output)))

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessCatalogOverride(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_results.json")
	output := filepath.Join(dir, "output.json")
	catalog := filepath.Join(dir, "catalog.yaml")
	assert.NoError(t, os.WriteFile(input, []byte(`{"summary": {"total": 1, "passed": 1}}`), 0644))
	assert.NoError(t, os.WriteFile(catalog, []byte("- title: custom\n  cause: c\n  fix: f\n  status: fixed\n"), 0644))

	in := NewInput(input, output)
	in.catalog = catalog
	assert.NoError(t, Process(in))

	got, err := summary.Read(output)
	assert.NoError(t, err)
	assert.Len(t, got.IssuesDetected, 1)
	assert.Equal(t, "custom", got.IssuesDetected[0].Title)
}

func TestProcessWithRuntime(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_results.json")
	output := filepath.Join(dir, "output.json")
	payload := `{"summary": {"total": 1, "passed": 1},
  "tests": [{"nodeid": "test_models.py::test_a", "outcome": "passed", "call": {"duration": 0.05}}]}`
	assert.NoError(t, os.WriteFile(input, []byte(payload), 0644))

	in := NewInput(input, output)
	in.withRuntime = true
	assert.NoError(t, Process(in))

	got, err := summary.Read(output)
	assert.NoError(t, err)
	assert.NotNil(t, got.Runtime)
	assert.Equal(t, 1, got.Runtime.Samples)
	assert.Equal(t, 50.0, got.Runtime.MeanMs)
}
