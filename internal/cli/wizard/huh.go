package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HuhAsker asks each question with its own huh.Form.
// Forms are not shared between questions to avoid the huh v0.8.x viewport
// scroll bug that occurs when multiple groups share a single viewport.
type HuhAsker struct {
	theme *huh.Theme
}

// NewHuhAsker creates a HuhAsker. noColor selects the unstyled base theme.
func NewHuhAsker(noColor bool) *HuhAsker {
	if noColor {
		return &HuhAsker{theme: huh.ThemeBase()}
	}
	return &HuhAsker{theme: newAptosTheme()}
}

// Ask runs one form for p. Aborting the form returns huh.ErrUserAborted.
func (h *HuhAsker) Ask(ctx context.Context, p Prompt) (string, error) {
	field, value := buildField(p)
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(h.theme).
		WithAccessible(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", err
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	return value(), nil
}

// buildField creates the huh field for p and a getter for its value.
func buildField(p Prompt) (huh.Field, func() string) {
	q := p.Question
	desc := q.Description
	if p.Retry != nil {
		desc = p.Retry.Error()
	}

	switch q.Type {
	case QuestionTypeSelect:
		selected := p.Default
		opts := make([]huh.Option[string], len(p.Options))
		for i, o := range p.Options {
			key := o.Label
			if o.Desc != "" {
				key = o.Label + " - " + o.Desc
			}
			opts[i] = huh.NewOption(key, o.Value)
		}
		sel := huh.NewSelect[string]().
			Title(q.Title).
			Description(desc).
			Options(opts...).
			Value(&selected)
		return sel, func() string { return selected }

	case QuestionTypeConfirm:
		confirmed, _ := strconv.ParseBool(p.Default)
		c := huh.NewConfirm().
			Title(q.Title).
			Description(desc).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed)
		return c, func() string { return strconv.FormatBool(confirmed) }

	default:
		var value string
		inp := huh.NewInput().
			Title(q.Title).
			Description(desc).
			Placeholder(p.Default).
			Value(&value)
		if q.Validate != nil {
			inp = inp.Validate(inputValidator(q.Validate, p.Default))
		}
		return inp, func() string { return value }
	}
}

// inputValidator checks blank input as the default, matching how the
// answer is recorded.
func inputValidator(validate func(string) error, def string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			v = def
		}
		return validate(v)
	}
}

// newAptosTheme creates a huh.Theme with the create-aptos-dapp palette.
func newAptosTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	return t
}
