package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pullerize/postcal/internal/api"
	"github.com/pullerize/postcal/internal/config"
	"github.com/pullerize/postcal/internal/model"
)

// App holds the application state and dependencies
type App struct {
	Backend api.Backend
	Config  *config.Config
	Project *model.Project

	sqlite   *api.SQLite
	lockFile *flock.Flock
}

// New creates a new application instance. Remote mode talks to the
// configured API; local mode opens the on-disk database and takes an
// exclusive lock so two instances cannot write the same file.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Load()
	}

	a := &App{Config: cfg}

	if cfg.LocalMode {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := a.acquireLock(); err != nil {
			return nil, err
		}

		db, err := api.OpenSQLite(cfg.DBPath)
		if err != nil {
			a.releaseLock()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.sqlite = db
		a.Backend = db

		project, err := db.EnsureProject(context.Background(), cfg.ProjectID, "My Project", nil, nil)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to prepare project: %w", err)
		}
		a.Project = project
		return a, nil
	}

	a.Backend = api.NewClient(cfg.APIBaseURL, cfg.APIToken)
	project, err := a.Backend.GetProject(context.Background(), cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d: %w", cfg.ProjectID, err)
	}
	a.Project = project
	return a, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple
// instances sharing the local database
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "postcal.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of postcal is already running")
	}
	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
