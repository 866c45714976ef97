package summary

// Run status derived from the raw report counts.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	// StatusUnknown is reported only when no raw report could be loaded.
	StatusUnknown = "unknown"
)

// Summary is the stable-shaped artifact written at the end of every
// invocation. The four counts are always present and non-negative even
// when the upstream summary block omits them.
type Summary struct {
	TestsRun     int    `json:"tests_run"`
	TestsPassed  int    `json:"tests_passed"`
	TestsFailed  int    `json:"tests_failed"`
	TestsSkipped int    `json:"tests_skipped"`
	Status       string `json:"status"`

	// IssuesDetected carries the static advisory catalog, not live
	// diagnostics. See AttachAdvisories.
	IssuesDetected []Advisory `json:"issues_detected"`

	// Runtime holds opt-in duration statistics mined from the tests list.
	Runtime *Runtime `json:"runtime,omitempty"`
}

// NewSummary returns a fresh summary value. Every invocation builds its
// own; there is no shared template to copy from.
func NewSummary() *Summary {
	return &Summary{
		Status:         StatusUnknown,
		IssuesDetected: []Advisory{},
	}
}

// Populate extracts the outcome counts from the raw report and derives
// the run status. A nil report means the input artifact was absent: all
// counts stay zero and the status stays unknown.
func (s *Summary) Populate(raw *RawReport) {
	if raw == nil {
		return
	}
	s.TestsRun = raw.Count(OutcomeTotal)
	s.TestsPassed = raw.Count(OutcomePassed)
	s.TestsFailed = raw.Count(OutcomeFailed)
	s.TestsSkipped = raw.Count(OutcomeSkipped)

	if s.TestsFailed > 0 {
		s.Status = StatusFailure
		return
	}
	s.Status = StatusSuccess
}

// AttachAdvisories fills IssuesDetected from the catalog based on the
// derived status: the full catalog on success, a single generic
// needs-attention entry on failure, nothing when the status is unknown.
func (s *Summary) AttachAdvisories(catalog []Advisory) {
	switch s.Status {
	case StatusSuccess:
		s.IssuesDetected = append([]Advisory{}, catalog...)
	case StatusFailure:
		s.IssuesDetected = []Advisory{GenericAdvisory()}
	default:
		s.IssuesDetected = []Advisory{}
	}
}

// AttachRuntime computes duration statistics from the raw tests list.
// No-op when the report is absent or carries no timing data.
func (s *Summary) AttachRuntime(raw *RawReport) {
	if raw == nil {
		return
	}
	s.Runtime = NewRuntime(raw.Tests)
}
