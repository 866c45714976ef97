package summary

import (
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
)

// Runtime aggregates per-test durations from the raw tests list.
// Records without timing data are skipped; Samples counts only the
// records that contributed to the statistics.
type Runtime struct {
	Samples     int      `json:"samples"`
	MeanMs      float64  `json:"mean_ms"`
	P50Ms       float64  `json:"p50_ms"`
	P99Ms       float64  `json:"p99_ms"`
	Slowest     string   `json:"slowest,omitempty"`
	FailedTests []string `json:"failed_tests,omitempty"`
}

// NewRuntime computes duration statistics for the test records,
// returning nil when no record carries timing data.
func NewRuntime(tests []TestRecord) *Runtime {
	rt := &Runtime{}
	durations := []float64{}
	slowest := 0.0
	for i := range tests {
		test := &tests[i]
		if test.Outcome == OutcomeFailed {
			rt.FailedTests = append(rt.FailedTests, test.NodeID)
		}
		secs, ok := test.DurationSeconds()
		if !ok {
			continue
		}
		durations = append(durations, secs*1000)
		if secs > slowest {
			slowest = secs
			rt.Slowest = test.NodeID
		}
	}
	if len(durations) == 0 && len(rt.FailedTests) == 0 {
		return nil
	}
	rt.Samples = len(durations)
	if rt.Samples == 0 {
		return rt
	}

	var err error
	if rt.MeanMs, err = roundedStat(stats.Mean, durations); err != nil {
		log.Warnf("unable to calculate mean duration: %v", err)
	}
	if rt.P50Ms, err = roundedPercentile(durations, 50); err != nil {
		log.Warnf("unable to calculate P50 duration: %v", err)
	}
	if rt.P99Ms, err = roundedPercentile(durations, 99); err != nil {
		log.Warnf("unable to calculate P99 duration: %v", err)
	}
	return rt
}

func roundedStat(fn func(stats.Float64Data) (float64, error), data []float64) (float64, error) {
	value, err := fn(data)
	if err != nil {
		return 0, err
	}
	return stats.Round(value, 3)
}

func roundedPercentile(data []float64, percent float64) (float64, error) {
	value, err := stats.Percentile(data, percent)
	if err != nil {
		return 0, err
	}
	return stats.Round(value, 3)
}
