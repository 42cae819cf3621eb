package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
)

// renderSuccessCard renders a bordered summary card of label/value rows.
func renderSuccessCard(theme *ui.Theme, title string, rows [][2]string) string {
	labelStyle := theme.Style(theme.Colors.Muted)
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	lines := []string{theme.SuccessMark() + " " + theme.Style(theme.Colors.Success).Bold(!theme.NoColor).Render(title), ""}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r[0]))
		lines = append(lines, labelStyle.Render(r[0]+pad)+"  "+r[1])
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !theme.NoColor {
		card = card.BorderForeground(lipgloss.Color(theme.Colors.Success))
	}
	return card.Render(strings.Join(lines, "\n"))
}
