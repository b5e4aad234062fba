package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aanand-mishra/student-list/internal/studentlist"
)

// Colors and styles shared by the interactive and printed views.
var (
	ColorTitle  = lipgloss.Color("63")
	ColorError  = lipgloss.Color("196")
	ColorHeader = lipgloss.Color("229")
	ColorBorder = lipgloss.Color("240")
	ColorHelp   = lipgloss.Color("241")

	TitleStyle   = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Padding(0, 1)
	CellStyle    = lipgloss.NewStyle().Padding(0, 1)
	BorderStyle  = lipgloss.NewStyle().Foreground(ColorBorder)
	HelpStyle    = lipgloss.NewStyle().Foreground(ColorHelp)
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorTitle)
)

// Columns is the header row of the student table.
var Columns = []string{"Name", "Email", "City"}

// RenderState renders s for a terminal, following the same branch order
// as the HTML view: loading, then error, then the table. With styled
// false the output carries no colour and an ASCII border, for pipes and
// log files.
func RenderState(s studentlist.State, styled bool) string {
	switch {
	case s.Loading:
		return studentlist.LoadingText
	case s.Failed:
		msg := "Error: " + s.Err
		if styled {
			return ErrorStyle.Render(msg)
		}
		return msg
	}

	var b strings.Builder
	if styled {
		b.WriteString(TitleStyle.Render(studentlist.Title))
	} else {
		b.WriteString(studentlist.Title)
	}
	b.WriteString("\n")
	b.WriteString(renderTable(s, styled))
	return b.String()
}

func renderTable(s studentlist.State, styled bool) string {
	rows := make([][]string, len(s.Students))
	for i, st := range s.Students {
		rows[i] = []string{st.Name, st.Email, st.City()}
	}

	t := table.New().
		Headers(Columns...).
		Rows(rows...)

	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(_, _ int) lipgloss.Style { return CellStyle }).
			String()
	}

	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		}).
		String()
}
