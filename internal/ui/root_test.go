package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pullerize/postcal/internal/app"
	"github.com/pullerize/postcal/internal/model"
	"github.com/pullerize/postcal/internal/ui/theme"
)

func TestThemeCycleReportsChange(t *testing.T) {
	theme.SetTheme(theme.Nord)
	defer theme.SetTheme(theme.Nord)

	m := NewRootModel(&app.App{Project: &model.Project{Name: "Acme"}})
	m.width, m.height = 80, 24

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(RootModel)
	if cmd == nil {
		t.Fatal("theme cycle produced no command")
	}
	msg, ok := cmd().(ThemeChangedMsg)
	if !ok {
		t.Fatalf("theme cycle produced %T, want ThemeChangedMsg", cmd())
	}
	if msg.ThemeName != "dracula" {
		t.Errorf("theme name = %q, want dracula", msg.ThemeName)
	}
	if theme.Current.Theme.Name != "dracula" {
		t.Errorf("active theme = %q, want dracula", theme.Current.Theme.Name)
	}

	next, _ = m.Update(msg)
	m = next.(RootModel)
	if m.statusMsg != "Theme: dracula" {
		t.Errorf("status line = %q after theme change", m.statusMsg)
	}
}
