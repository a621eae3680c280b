package domain

import (
	m "elmscope.dev/pkg/elmscope/internal/model"
	"elmscope.dev/pkg/elmscope/pkg"
)

// summaryFromReports tallies the run summary by ranging over the spilled
// reports without loading them all at once.
func summaryFromReports(reports pkg.FileSpill[m.CheckReport]) (m.RunSummary, error) {
	var summary m.RunSummary

	err := reports.Range(func(_ uint64, report m.CheckReport) error {
		tally(&summary, report)
		return nil
	})
	if err != nil {
		return m.RunSummary{}, err
	}

	return summary, nil
}

// summarize tallies an in-memory report slice.
func summarize(reports []m.CheckReport) m.RunSummary {
	var summary m.RunSummary

	for _, report := range reports {
		tally(&summary, report)
	}

	return summary
}

func tally(summary *m.RunSummary, report m.CheckReport) {
	summary.Modules++
	summary.Tests += len(report.Accepted)
	summary.MissingTests += len(report.Missing)

	switch report.Status {
	case m.StatusPassed:
		summary.Passed++
	case m.StatusUnexposed:
		summary.Unexposed++
	case m.StatusFailed:
		summary.Failed++
	}
}
