package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daybookhq/daybook/internal/backup"
	"github.com/daybookhq/daybook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Snapshot before an interactive session; a bad edit is easier to walk
	// back that way.
	mgr := backup.NewManager(ctx.Config.DataPath, ctx.Config.BackupKeep)
	if _, err := mgr.Create(); err != nil {
		ctx.Log.Warn().Err(err).Msg("automatic backup failed")
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Rollover), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
