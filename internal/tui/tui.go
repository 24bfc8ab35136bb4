// Package tui is the interactive board: a bubbletea program that renders the
// board with lipgloss and feeds mouse gestures to the drag and drop
// controller.
package tui

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"dropboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run loads the board in s and runs the TUI until the user quits.
//
// Setting DROPBOARD_DEBUG routes the log to tui.log in the board directory.
func Run(ctx context.Context, s store.Store) error {
	b, err := s.Load(ctx)
	if err != nil {
		return err
	}
	state, err := s.LoadTUIState()
	if err != nil {
		return err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}

	opts := Options{Store: s, State: state, Config: cfg.TUI}
	if strings.TrimSpace(os.Getenv("DROPBOARD_DEBUG")) != "" {
		if err := s.Ensure(); err != nil {
			return err
		}
		f, err := tea.LogToFile(filepath.Join(s.Dir, "tui.log"), "dropboard")
		if err != nil {
			return err
		}
		defer f.Close()
		opts.Logger = log.Default()
	}

	applyThemePreference()
	applyColorProfilePreference()
	if cfg.TUI != nil {
		applyAppearance(cfg.TUI.Profile)
	}

	m := New(b, opts)
	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
