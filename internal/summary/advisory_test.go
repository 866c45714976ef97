package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Len(t, catalog, 3)
	for _, issue := range catalog {
		assert.NotEmpty(t, issue.Title)
		assert.NotEmpty(t, issue.Cause)
		assert.NotEmpty(t, issue.Fix)
		assert.Equal(t, AdvisoryStatusFixed, issue.Status)
	}

	// callers get their own copy
	catalog[0].Title = "mutated"
	assert.NotEqual(t, "mutated", DefaultCatalog()[0].Title)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	payload := `
- title: Missing index on lookup column
  cause: full table scan on every author lookup
  fix: add an index to the column
  status: open
`
	assert.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	catalog, err := LoadCatalog(path)
	assert.NoError(t, err)
	assert.Len(t, catalog, 1)
	assert.Equal(t, "Missing index on lookup column", catalog[0].Title)
	assert.Equal(t, AdvisoryStatusOpen, catalog[0].Status)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("title: not-a-list"), 0644))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}
