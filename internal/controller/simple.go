package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

var (
	passedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SimpleUI implements UI with plain sequential output on the command's
// writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayDiscovery prints the discovered test modules and their candidate
// counts as a table.
func (s *SimpleUI) DisplayDiscovery(ctx context.Context, modules []m.ModuleTests) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderDiscoveryTable(modules))

	return nil
}

// DisplayReports prints the per-module check table followed by detail lines
// for anything that needs attention.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.CheckReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportTable(reports))

	for _, line := range reportDetailLines(reports) {
		s.printf("%s\n", line)
	}

	return nil
}

// DisplaySummary prints the aggregated run outcome.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n", renderSummaryLine(summary))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderDiscoveryTable(modules []m.ModuleTests) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Tests"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	totalTests := 0

	for _, module := range modules {
		table.Append([]string{module.Module.Name, fmt.Sprintf("%d", len(module.Tests))})

		totalTests += len(module.Tests)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Modules %d", len(modules)),
		fmt.Sprintf("%d", totalTests),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportTable(reports []m.CheckReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Tests", "Missing", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	totalTests := 0
	totalMissing := 0

	for _, report := range reports {
		table.Append([]string{
			report.Module,
			fmt.Sprintf("%d", len(report.Accepted)),
			fmt.Sprintf("%d", len(report.Missing)),
			statusLabel(report.Status),
		})

		totalTests += len(report.Accepted)
		totalMissing += len(report.Missing)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Modules %d", len(reports)),
		fmt.Sprintf("%d", totalTests),
		fmt.Sprintf("%d", totalMissing),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// reportDetailLines renders one line per finding that the table cannot
// carry: the exact unexposed names, and scan failure reasons.
func reportDetailLines(reports []m.CheckReport) []string {
	var lines []string

	for _, report := range reports {
		switch report.Status {
		case m.StatusUnexposed:
			for _, name := range report.Missing {
				lines = append(lines, warnStyle.Render(
					fmt.Sprintf("warning: %s is a Test in %s but is not exposed", name, report.Module)))
			}
		case m.StatusFailed:
			lines = append(lines, failStyle.Render(
				fmt.Sprintf("error: %s: %s", report.Path, report.Reason)))
		case m.StatusPassed:
		}
	}

	return lines
}

func renderSummaryLine(summary m.RunSummary) string {
	line := fmt.Sprintf("Checked %d module(s): %d passed, %d with unexposed tests, %d failed (%d test(s) accepted, %d missing)",
		summary.Modules, summary.Passed, summary.Unexposed, summary.Failed, summary.Tests, summary.MissingTests)

	switch {
	case summary.Failed > 0:
		return failStyle.Render(line)
	case summary.Unexposed > 0:
		return warnStyle.Render(line)
	default:
		return passedStyle.Render(line)
	}
}

func statusLabel(status m.CheckStatus) string {
	switch status {
	case m.StatusPassed:
		return passedStyle.Render(string(status))
	case m.StatusUnexposed:
		return warnStyle.Render(string(status))
	case m.StatusFailed:
		return failStyle.Render(string(status))
	default:
		return string(status)
	}
}
