package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// TUI implements UI using Bubble Tea for interactive display. Short report
// lists are printed directly; long ones open a scrollable pager.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (t *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed. The pager runs synchronously inside
// DisplayReports, so there is nothing left to wait for.
func (t *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayDiscovery renders the discovery table directly; it is always short
// enough for plain output.
func (t *TUI) DisplayDiscovery(ctx context.Context, modules []m.ModuleTests) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.cmd.OutOrStdout(), "\n%s", renderDiscoveryTable(modules))

	return err
}

// DisplayReports shows the per-module results, paging when the list does not
// fit the terminal.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.CheckReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newReportListModel(reportLines(reports))

	out := t.cmd.OutOrStdout()

	if f, ok := out.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(out, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplaySummary prints the aggregated run outcome.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.cmd.OutOrStdout(), "\n%s\n", renderSummaryLine(summary))

	return err
}

// reportLines flattens reports into display lines for the pager.
func reportLines(reports []m.CheckReport) []string {
	lines := make([]string, 0, len(reports))

	for _, report := range reports {
		lines = append(lines, fmt.Sprintf("%s  %s (%d test(s))",
			statusLabel(report.Status), report.Module, len(report.Accepted)))

		switch report.Status {
		case m.StatusUnexposed:
			for _, name := range report.Missing {
				lines = append(lines, warnStyle.Render(fmt.Sprintf("    not exposed: %s", name)))
			}
		case m.StatusFailed:
			lines = append(lines, failStyle.Render(fmt.Sprintf("    %s", report.Reason)))
		case m.StatusPassed:
		}
	}

	return lines
}

// reportListModel is the Bubble Tea model paging through report lines.
type reportListModel struct {
	lines    []string
	height   int
	width    int
	offset   int
	quitting bool
}

func newReportListModel(lines []string) reportListModel {
	return reportListModel{lines: lines}
}

func (rm reportListModel) Init() tea.Cmd {
	return nil
}

func (rm reportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm reportListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset = clamp(rm.offset+1, 0, rm.maxOffset())
		return rm, nil

	case "up", "k":
		rm.offset = clamp(rm.offset-1, 0, rm.maxOffset())
		return rm, nil

	case "g", "home":
		rm.offset = 0
		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()
		return rm, nil

	case "d", "pgdown":
		rm.offset = clamp(rm.offset+rm.linesPerPage(), 0, rm.maxOffset())
		return rm, nil

	case "u", "pgup":
		rm.offset = clamp(rm.offset-rm.linesPerPage(), 0, rm.maxOffset())
		return rm, nil
	}

	return rm, nil
}

// linesPerPage calculates how many report lines fit on screen, leaving room
// for the header and the navigation footer.
func (rm reportListModel) linesPerPage() int {
	if rm.height == 0 {
		return 10
	}

	const reserved = 6

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (rm reportListModel) maxOffset() int {
	maxOff := len(rm.lines) - rm.linesPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination reports whether the list is too large to fit on screen.
func (rm reportListModel) needsPagination() bool {
	if len(rm.lines) == 0 {
		return false
	}

	return len(rm.lines) > rm.linesPerPage() && rm.height > 0
}

func (rm reportListModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("elmscope - exposed test check"))
	b.WriteString("\n\n")

	if len(rm.lines) == 0 {
		b.WriteString("  no test modules found\n")
		return b.String()
	}

	display := rm.lines

	if rm.needsPagination() {
		start := clamp(rm.offset, 0, rm.maxOffset())

		end := start + rm.linesPerPage()
		if end > len(rm.lines) {
			end = len(rm.lines)
		}

		display = rm.lines[start:end]
	}

	for _, line := range display {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if rm.needsPagination() {
		fmt.Fprintf(&b, "\n  %d-%d of %d  (j/k scroll, g/G jump, q quit)\n",
			rm.offset+1, rm.offset+len(display), len(rm.lines))
	}

	return b.String()
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}

	if value > high {
		return high
	}

	return value
}
