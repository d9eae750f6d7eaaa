package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	pathStyle    = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().Faint(true)
)

// renderReport renders the failure report, styled when stderr is a
// terminal and plain otherwise.
func renderReport(list *errors.List) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return list.Report()
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("%d errors occurred:", list.Len())))
	b.WriteString("\n")

	for i, e := range list.Errors() {
		fmt.Fprintf(&b, "  err %02d at %s:\n", i, pathStyle.Render(e.Path))
		detail := e.Message
		if e.Wrapped != nil {
			detail = e.Wrapped.Error()
		}
		fmt.Fprintf(&b, "      %s\n", messageStyle.Render(fmt.Sprintf("[%s] %s", e.Code, detail)))
	}

	return strings.TrimRight(b.String(), "\n")
}
