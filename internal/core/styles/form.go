package styles

import (
	"image/color"

	lipglossv1 "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/huh"
)

// v1Color converts a palette color for huh, which still renders with
// lipgloss v1.
func v1Color(c color.Color) lipglossv1.TerminalColor {
	hex := colorHexPtr(c)
	if hex == nil {
		return lipglossv1.NoColor{}
	}
	return lipglossv1.Color(*hex)
}

// FormTheme returns a huh theme built from the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	var (
		primary = v1Color(CurrentPalette.Primary)
		accent  = v1Color(CurrentPalette.Accent)
		fg      = v1Color(CurrentPalette.Foreground)
		muted   = v1Color(CurrentPalette.Muted)
		surface = v1Color(CurrentPalette.Surface)
		bg      = v1Color(CurrentPalette.Background)
		success = v1Color(CurrentPalette.Success)
		errC    = v1Color(CurrentPalette.Error)
	)

	t.Focused.Base = t.Focused.Base.BorderForeground(surface)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(primary).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errC)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errC)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(accent)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(accent)
	t.Focused.Option = t.Focused.Option.Foreground(fg)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(success)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(bg).Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(fg).Background(surface)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipglossv1.NewStyle()
	t.Blurred.PrevIndicator = lipglossv1.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
