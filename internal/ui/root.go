package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pullerize/postcal/internal/app"
	"github.com/pullerize/postcal/internal/ui/theme"
	"github.com/pullerize/postcal/internal/ui/views"
)

// errorTimeout is how long a surfaced error stays on screen
const errorTimeout = 4 * time.Second

// RootModel is the main application model
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	editor      views.EditorView
	helpVisible bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:    application,
		keys:   DefaultKeyMap(),
		help:   h,
		editor: views.NewEditorView(application.Backend, *application.Project),
	}
}

// refreshTick re-arms the once-a-second redisplay of time-dependent
// labels. It is cancelled automatically when the program exits.
func refreshTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t}
	})
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), refreshTick())
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Reserve space for header and footer
		m.editor = m.editor.SetSize(m.width, m.height-4)

	case RefreshTickMsg:
		m.editor = m.editor.SetToday(msg.Time.UTC())
		return m, refreshTick()

	case views.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, tea.Tick(errorTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})

	case clearErrorMsg:
		m.errorMsg = ""
		return m, nil

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, 'q' only outside input modes
			if msg.String() == "ctrl+c" || !m.editor.IsInputMode() {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if !m.editor.IsInputMode() && key.Matches(msg, m.keys.Help) {
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		}
	}

	// Delegate to the editor
	newEditor, cmd := m.editor.Update(msg)
	m.editor = newEditor.(views.EditorView)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		content = m.editor.View()
	}
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("postcal")

	infoStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	project := m.app.Project
	left := lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		infoStyle.Render(fmt.Sprintf("[%s]", project.Name)),
	)
	right := infoStyle.Render(fmt.Sprintf("posts: %d  theme: %s",
		m.editor.Engine().Project().PostsCount, t.Name))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	keyHint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	if m.editor.IsInputMode() {
		line1 = keyHint("enter", "confirm") + sep + keyHint("esc", "cancel")
	} else {
		line1 = keyHint("a", "add") + sep +
			keyHint("enter", "date") + sep +
			keyHint("s", "status") + sep +
			keyHint("t", "type") + sep +
			keyHint("e/+/-", "per day") + sep +
			keyHint("d", "del")
		line2 = keyHint("h/l", "month") + sep +
			keyHint("r", "reload") + sep +
			keyHint("ctrl+t", "theme") + sep +
			keyHint("?", "help") + sep +
			keyHint("q", "quit")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Postcal Help"))
	b.WriteString("\n\n")

	section := func(name string, entries [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range entries {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Navigation", [][]string{
		{"↑/k ↓/j", "Move between rows"},
		{"g / G", "Go to first/last row"},
		{"h / l", "Previous/next project month"},
	})
	section("Editing", [][]string{
		{"a", "Add a draft row"},
		{"enter", "Open the date picker"},
		{"s", "Cycle status (past dates offer overdue)"},
		{"t", "Cycle post type"},
		{"e / + / -", "Change posts per day"},
		{"d", "Delete row (with confirm)"},
	})
	section("Date picker", [][]string{
		{"h/j/k/l", "Move between days"},
		{"H / L", "Previous/next calendar month"},
		{"enter", "Select (in-range days only)"},
		{"esc", "Close without selecting"},
	})
	section("System", [][]string{
		{"r", "Reload posts from the backend"},
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))
	return b.String()
}

// cycleTheme switches to the next theme and reports the change
func (m RootModel) cycleTheme() tea.Cmd {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			return func() tea.Msg {
				return ThemeChangedMsg{ThemeName: next.Name}
			}
		}
	}
	return nil
}
