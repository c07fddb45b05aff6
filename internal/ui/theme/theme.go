package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Post status colors
	StatusInProgress lipgloss.Color
	StatusApproved   lipgloss.Color
	StatusCancelled  lipgloss.Color
	StatusOverdue    lipgloss.Color

	// Post type colors
	TypeVideo    lipgloss.Color
	TypeStatic   lipgloss.Color
	TypeCarousel lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Row styles
	RowNormal   lipgloss.Style
	RowSelected lipgloss.Style
	RowDraft    lipgloss.Style
	RowOverdue  lipgloss.Style

	// Period bar
	PeriodActive   lipgloss.Style
	PeriodInactive lipgloss.Style

	// Picker day cells
	DayNormal   lipgloss.Style
	DayOutside  lipgloss.Style
	DayDisabled lipgloss.Style
	DaySelected lipgloss.Style
	DayToday    lipgloss.Style
	DayEdge     lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Panel styles
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		RowNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		RowSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Bold(true),

		RowDraft: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		RowOverdue: lipgloss.NewStyle().
			Foreground(t.Error),

		PeriodActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),

		PeriodInactive: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		DayNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		DayOutside: lipgloss.NewStyle().
			Foreground(t.Subtle),

		DayDisabled: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Faint(true),

		DaySelected: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		DayToday: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		DayEdge: lipgloss.NewStyle().
			Foreground(t.Info).
			Underline(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
