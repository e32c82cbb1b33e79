package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	stateStyles = map[models.State]lipgloss.Style{
		models.StateDraft:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		models.StateApproved:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		models.StateScheduled: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		models.StatePublished: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

func modeStyle(m Mode) string {
	if m == ModeOnline {
		return okStyle.Render(string(m))
	}
	return warnStyle.Render(string(m))
}

func stateLabel(s models.State) string {
	label := fmt.Sprintf("%-9s", string(s))
	if st, ok := stateStyles[s]; ok {
		return st.Render(label)
	}
	return label
}

// postcardLine renders one row of the list view.
func postcardLine(p models.Postcard) string {
	date := models.FormatDate(p.ScheduledDate)
	if date == "" {
		date = "-"
	}
	return fmt.Sprintf("%s  %s  %-10s  %s", dimStyle.Render(p.ID), stateLabel(p.State), date, p.Title())
}

func postcardDetail(p models.Postcard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(p.Title()))
	fmt.Fprintf(&b, "ID:        %s\n", p.ID)
	fmt.Fprintf(&b, "State:     %s\n", stateLabel(p.State))
	fmt.Fprintf(&b, "Template:  %s\n", p.Template)
	if p.ScheduledDate != nil {
		fmt.Fprintf(&b, "Scheduled: %s\n", models.FormatDate(p.ScheduledDate))
	}
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Updated:   %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "\n%s\n", p.PrimaryContent)
	if p.SecondaryContent != "" {
		fmt.Fprintf(&b, "\n%s\n", p.SecondaryContent)
	}
	return b.String()
}
