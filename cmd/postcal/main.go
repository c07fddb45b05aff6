package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pullerize/postcal/internal/app"
	"github.com/pullerize/postcal/internal/config"
	"github.com/pullerize/postcal/internal/ui"
	"github.com/pullerize/postcal/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("postcal v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	projectFlag := flag.Int64("project", 0, "Project id to open (overrides POSTCAL_PROJECT_ID)")
	localFlag := flag.Bool("local", false, "Use the local database instead of the remote API")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula)")
	flag.Parse()

	cfg := config.Load()
	if *projectFlag != 0 {
		cfg.ProjectID = *projectFlag
	}
	if *localFlag {
		cfg.LocalMode = true
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `postcal - a content-posting calendar for client projects

Usage:
  postcal                   Start the TUI
  postcal version           Show version
  postcal help              Show this help

Options:
  --project <id>    Project to open
  --local           Use the local database (offline mode)
  --theme <name>    Theme (nord, dracula)

Configuration (.env or environment):
  POSTCAL_API_URL      Remote API base URL (empty = local mode)
  POSTCAL_API_TOKEN    Bearer token for the remote API
  POSTCAL_PROJECT_ID   Default project id
  POSTCAL_DATA_DIR     Local data directory
  POSTCAL_THEME        Theme name

Keybindings:
  j/k          Move between rows
  h/l          Previous/next project month
  a            Add a draft row
  enter        Open the date picker
  s / t        Cycle status / post type
  e, +, -      Change posts per day
  d            Delete (with confirm)
  ?            Help
  q            Quit`

	fmt.Println(help)
}

func runTUI(cfg *config.Config) error {
	// Stdout belongs to the TUI; debug output goes to a file when asked.
	if os.Getenv("POSTCAL_DEBUG") == "1" {
		f, err := tea.LogToFile(filepath.Join(cfg.DataDir, "debug.log"), "postcal")
		if err == nil {
			defer f.Close()
		}
	}

	if cfg.Theme != "" {
		if t, ok := theme.ByName(cfg.Theme); ok {
			theme.SetTheme(t)
		}
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	model := ui.NewRootModel(application)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
