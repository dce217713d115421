package cli

import (
	"fmt"

	"github.com/daybookhq/daybook/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Config.DataPath, ctx.Config.BackupKeep)
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Config.DataPath, ctx.Config.BackupKeep)
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %8d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup path to restore from."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Config.DataPath, ctx.Config.BackupKeep)
	if err := mgr.Restore(c.Path); err != nil {
		return err
	}
	fmt.Printf("Restored from %s\n", c.Path)
	return nil
}
