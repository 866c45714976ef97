// Package summary implements the data layer transforming a raw pytest
// JSON report artifact into the stable summary artifact consumed by
// the review process.
package summary

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Outcome keys emitted by pytest-json-report in the summary block.
const (
	OutcomeTotal   = "total"
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
	OutcomeError   = "error"
)

// ErrReportNotFound indicates the raw report artifact is missing on disk.
// Callers recover from it by reporting unknown status.
var ErrReportNotFound = errors.New("raw report not found")

// TestPhase holds the timing of a single pytest phase (setup/call/teardown).
type TestPhase struct {
	Duration float64 `json:"duration"`
	Outcome  string  `json:"outcome,omitempty"`
}

// TestRecord is one entry of the raw report 'tests' list. Only the fields
// mined by the summarizer are mapped; everything else is ignored on decode.
type TestRecord struct {
	NodeID   string     `json:"nodeid"`
	Outcome  string     `json:"outcome"`
	Duration float64    `json:"duration,omitempty"`
	Call     *TestPhase `json:"call,omitempty"`
}

// DurationSeconds resolves the record duration, preferring the top-level
// field and falling back to the call phase. Returns false when the record
// carries no timing at all.
func (t *TestRecord) DurationSeconds() (float64, bool) {
	if t.Duration > 0 {
		return t.Duration, true
	}
	if t.Call != nil && t.Call.Duration > 0 {
		return t.Call.Duration, true
	}
	return 0, false
}

// RawReport is the externally produced test-runner artifact. It is
// read-only to this package: counts come from Summary, the Tests list is
// passed through and optionally mined for runtime statistics.
type RawReport struct {
	Summary map[string]int `json:"summary"`
	Tests   []TestRecord   `json:"tests"`
}

// Count returns the count for an outcome kind. Absent keys and negative
// values from corrupt artifacts both resolve to zero: the summary counts
// are non-negative unconditionally.
func (r *RawReport) Count(outcome string) int {
	if r == nil || r.Summary == nil {
		return 0
	}
	if count := r.Summary[outcome]; count > 0 {
		return count
	}
	return 0
}

// Load reads and decodes the raw report at path. Artifacts compressed by
// the CI pipeline are decoded transparently based on the file extension
// (.gz and .xz). A missing file returns ErrReportNotFound; content that
// cannot be decoded into the expected shape is a hard failure.
func Load(path string) (*RawReport, error) {
	fd, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open raw report %s", path)
	}
	defer fd.Close()

	var reader io.Reader = fd
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create gzip reader for %s", path)
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create xz reader for %s", path)
		}
		reader = xzr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read raw report %s", path)
	}

	// The artifact must be a single JSON object. A lone 'null' or a list
	// would otherwise decode into an empty report and be summarized as a
	// passing run.
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Errorf("malformed raw report %s: top-level value is not an object", path)
	}

	report := &RawReport{}
	if err := json.Unmarshal(trimmed, report); err != nil {
		return nil, errors.Wrapf(err, "malformed raw report %s", path)
	}
	return report, nil
}

// IsNotFound reports whether err (possibly wrapped) is ErrReportNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrReportNotFound
}
