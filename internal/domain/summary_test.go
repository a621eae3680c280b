package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "elmscope.dev/pkg/elmscope/internal/model"
	"elmscope.dev/pkg/elmscope/pkg"
)

func TestSummaryFromReports(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.CheckReport]()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = spill.Close()
	})

	require.NoError(t, spill.AppendBatch([]m.CheckReport{
		{Module: "A", Status: m.StatusPassed, Accepted: []string{"a1", "a2"}},
		{Module: "B", Status: m.StatusUnexposed, Accepted: []string{"b1"}, Missing: []string{"b2"}},
		{Module: "C", Status: m.StatusFailed, Reason: "unreadable"},
	}))

	summary, err := summaryFromReports(spill)
	require.NoError(t, err)

	assert.Equal(t, m.RunSummary{
		Modules:      3,
		Passed:       1,
		Unexposed:    1,
		Failed:       1,
		Tests:        3,
		MissingTests: 1,
	}, summary)
}

func TestSummaryFromReports_Empty(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.CheckReport]()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = spill.Close()
	})

	summary, err := summaryFromReports(spill)
	require.NoError(t, err)
	assert.Equal(t, m.RunSummary{}, summary)
}

func TestSummaryFromReports_RangeError(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.CheckReport]()
	require.NoError(t, err)

	require.NoError(t, spill.Append(m.CheckReport{Module: "A"}))
	require.NoError(t, spill.Close())

	// Ranging over a closed spill cannot read the backing file.
	_, err = summaryFromReports(spill)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	summary := summarize([]m.CheckReport{
		{Module: "A", Status: m.StatusPassed, Accepted: []string{"a1"}},
		{Module: "B", Status: m.StatusPassed, Accepted: []string{"b1", "b2", "b3"}},
	})

	assert.Equal(t, m.RunSummary{Modules: 2, Passed: 2, Tests: 4}, summary)
}

func TestSummarize_UnknownStatusCountsModuleOnly(t *testing.T) {
	summary := summarize([]m.CheckReport{{Module: "A", Status: m.CheckStatus("bogus")}})

	assert.Equal(t, 1, summary.Modules)
	assert.Zero(t, summary.Passed+summary.Unexposed+summary.Failed)
}

func TestCollectReports_SortsByModule(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.CheckReport]()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = spill.Close()
	})

	require.NoError(t, spill.AppendBatch([]m.CheckReport{
		{Module: "Zulu"},
		{Module: "Alpha"},
		{Module: "Mike"},
	}))

	reports, err := collectReports(spill)
	require.NoError(t, err)

	require.Len(t, reports, 3)
	assert.Equal(t, "Alpha", reports[0].Module)
	assert.Equal(t, "Mike", reports[1].Module)
	assert.Equal(t, "Zulu", reports[2].Module)
}

func TestCompileExcludes_InvalidPattern(t *testing.T) {
	_, err := compileExcludes([]string{`[unterminated`})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}
