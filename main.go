package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maximkravchenko/fintui/financery"
)

func main() {
	Execute()
}

// rootAction starts the full-screen TUI.
func rootAction(ctx context.Context, cfg Config, client *financery.Client) error {
	if cfg.Debug {
		f, err := tea.LogToFile("fintui.log", "fintui")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	m := newModel(client, cfg)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("fintui ran into an error: %w", err)
	}

	return nil
}
