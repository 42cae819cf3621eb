package ui

import "github.com/charmbracelet/lipgloss"

// ThemeConfig selects the palette for NewTheme.
type ThemeConfig struct {
	NoColor bool
	Mode    string // "dark" (default) or "light"
}

// Colors holds hex colors for each role.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme is the resolved palette shared by every UI component.
type Theme struct {
	NoColor bool
	Mode    string
	Colors  Colors
}

var (
	darkColors = Colors{
		Primary:   "#DA7756",
		Secondary: "#F0A98B",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#6B7280",
	}
	lightColors = Colors{
		Primary:   "#C45A3C",
		Secondary: "#E08A6A",
		Success:   "#059669",
		Warning:   "#D97706",
		Error:     "#DC2626",
		Muted:     "#9CA3AF",
	}
)

// NewTheme resolves cfg into a Theme. Unknown modes fall back to dark.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{NoColor: cfg.NoColor, Mode: "dark", Colors: darkColors}
	if cfg.Mode == "light" {
		t.Mode = "light"
		t.Colors = lightColors
	}
	return t
}

// Style returns a foreground style for color, or a plain style when
// colors are disabled.
func (t *Theme) Style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// SuccessMark renders the check mark used for completed steps.
func (t *Theme) SuccessMark() string { return t.Style(t.Colors.Success).Render("✓") }

// ErrorMark renders the cross used for failed steps.
func (t *Theme) ErrorMark() string { return t.Style(t.Colors.Error).Render("✗") }

// WarningMark renders the marker used for warnings.
func (t *Theme) WarningMark() string { return t.Style(t.Colors.Warning).Render("!") }
