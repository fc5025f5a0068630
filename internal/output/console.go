package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console styles for the interactive report.
var (
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("14")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	treeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// PrintFrame writes text inside a bordered frame.
func PrintFrame(writer io.Writer, text string) {
	fmt.Fprintln(writer, frameStyle.Render(text))
}

// PrintHeading writes an emphasized heading line.
func PrintHeading(writer io.Writer, text string) {
	fmt.Fprintln(writer, headingStyle.Render(text))
}

// PrintTree writes a rendered directory tree in the tree color.
func PrintTree(writer io.Writer, treeText string) {
	fmt.Fprintln(writer, treeStyle.Render(treeText))
}

// PrintSummary writes a rendered summary block in the summary color.
func PrintSummary(writer io.Writer, summaryText string) {
	fmt.Fprintln(writer, summaryStyle.Render(summaryText))
}

// PrintNotice writes an attention-drawing notice line.
func PrintNotice(writer io.Writer, text string) {
	fmt.Fprintln(writer, noticeStyle.Render(text))
}

// PrintSuccess writes a success confirmation line.
func PrintSuccess(writer io.Writer, text string) {
	fmt.Fprintln(writer, successStyle.Render(text))
}
