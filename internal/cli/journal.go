package cli

import (
	"fmt"
	"strings"
)

type JournalListCmd struct {
	Limit int `short:"n" help:"Show at most this many entries." default:"0"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.ListEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, e := range entries {
		preview := e.Content
		if i := strings.IndexByte(preview, '\n'); i >= 0 {
			preview = preview[:i]
		}
		if len(preview) > 60 {
			preview = preview[:60] + "..."
		}
		fmt.Printf("%s  %-20s  %s  (id %d, %s)\n", e.Date, e.Title, preview, e.ID, formatHours(e.Hours))
	}
	return nil
}

type JournalShowCmd struct {
	Date string `arg:"" help:"Entry date (YYYY-MM-DD)."`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListEntries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Date == date {
			fmt.Printf("%s (%s)\n\n%s\n", e.Title, formatHours(e.Hours), e.Content)
			return nil
		}
	}
	return fmt.Errorf("no journal entry for %s", date)
}

type JournalDeleteCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEntry(id); err != nil {
		return err
	}
	fmt.Printf("Deleted journal entry %d\n", id)
	return nil
}
