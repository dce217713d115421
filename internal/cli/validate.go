package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybookhq/daybook/internal/storage"
	"github.com/daybookhq/daybook/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *Context) error {
	result, err := runStoreCheck(ctx)
	if err != nil {
		return err
	}
	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}

func runStoreCheck(ctx *Context) (validation.Result, error) {
	view := validation.StoreView{}

	var err error
	if view.Entries, err = ctx.Store.ListEntries(); err != nil {
		return validation.Result{}, err
	}
	if view.Notes, err = ctx.Store.ListNotes(); err != nil {
		return validation.Result{}, err
	}
	if view.Calendar, err = ctx.Store.GetCalendar(); err != nil {
		return validation.Result{}, err
	}
	if view.Goals, err = ctx.Store.ListGoals(); err != nil {
		return validation.Result{}, err
	}

	if ctx.Bridge != nil {
		view.HasDocument = func(rel string) bool {
			_, err := ctx.Bridge.ReadDocument(rel)
			return err == nil
		}
		view.Attachments = func(dir string) []string {
			names, err := ctx.Bridge.ListDirectory(dir)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				ctx.Log.Warn().Err(err).Msg("failed to list attachments")
			}
			return names
		}
	} else {
		// SQLite backend keeps payloads beside the database file.
		root := filepath.Dir(ctx.Config.DataPath)
		view.HasDocument = func(rel string) bool {
			_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
			return err == nil
		}
		view.Attachments = func(dir string) []string {
			entries, err := os.ReadDir(filepath.Join(root, dir))
			if err != nil {
				return nil
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			return names
		}
	}

	return validation.New().Check(view), nil
}
