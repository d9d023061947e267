// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Yamikowu/studdy/internal/core/todo"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle  lipgloss.Style
	DividerStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Week strip.
	DayStyle         lipgloss.Style
	DaySelectedStyle lipgloss.Style
	DayTodayStyle    lipgloss.Style

	// Timeline rows.
	AnchorStyle    lipgloss.Style
	GapStyle       lipgloss.Style
	GroupBoxStyle  lipgloss.Style
	TimeLabelStyle lipgloss.Style
	DeadlineStyle  lipgloss.Style

	// Focus timer.
	FocusTitleStyle lipgloss.Style
	BreakTitleStyle lipgloss.Style
	ClockStyle      lipgloss.Style
	HelpStyle       lipgloss.Style

	quizStyle     lipgloss.Style
	homeworkStyle lipgloss.Style
	plainStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	DayStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	DaySelectedStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	DayTodayStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Underline(true).
		Padding(0, 1)

	AnchorStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	GapStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	GroupBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	TimeLabelStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	DeadlineStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Italic(true)

	FocusTitleStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	BreakTitleStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)
	ClockStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Surface)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	quizStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	homeworkStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	plainStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
}

// Category returns the style for items of category c. Unknown values get the
// uncategorized style.
func Category(c todo.Category) lipgloss.Style {
	switch c {
	case todo.Quiz:
		return quizStyle
	case todo.Homework:
		return homeworkStyle
	default:
		return plainStyle
	}
}

// CategoryIcon returns the icon shown next to an item of category c.
func CategoryIcon(c todo.Category) string {
	switch c {
	case todo.Quiz:
		return IconQuiz
	case todo.Homework:
		return IconHomework
	default:
		return IconTodo
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(CurrentPalette.Foreground)
	primary := colorHexPtr(CurrentPalette.Primary)
	secondary := colorHexPtr(CurrentPalette.Secondary)
	muted := colorHexPtr(CurrentPalette.Muted)
	warning := colorHexPtr(CurrentPalette.Warning)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = secondary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Strong.Color = warning

	cfg.Code.Color = secondary
	cfg.Table.Color = fg

	return cfg
}
