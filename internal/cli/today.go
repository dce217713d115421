package cli

import (
	"fmt"

	"github.com/daybookhq/daybook/internal/validation"
)

type TodayShowCmd struct{}

func (c *TodayShowCmd) Run(ctx *Context) error {
	// Reading today's draft is what triggers rollover after midnight.
	draft, err := ctx.Rollover.GetToday()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", draft.Date, formatHours(draft.Hours))
	if draft.Content == "" {
		fmt.Println("(empty)")
		return nil
	}
	fmt.Println()
	fmt.Println(draft.Content)
	return nil
}

type TodayWriteCmd struct {
	Content string   `arg:"" help:"Draft content for today."`
	Job     *float64 `short:"j" help:"Job hours for today."`
	Class   *float64 `short:"c" help:"Class hours for today."`
}

func (c *TodayWriteCmd) Run(ctx *Context) error {
	draft, err := ctx.Rollover.GetToday()
	if err != nil {
		return err
	}

	hours := draft.Hours
	if c.Job != nil {
		hours.Job = *c.Job
	}
	if c.Class != nil {
		hours.Class = *c.Class
	}
	if err := validation.ValidateHours(hours); err != nil {
		return err
	}

	if err := ctx.Rollover.SaveToday(c.Content, hours); err != nil {
		return err
	}
	fmt.Printf("Saved draft for %s\n", draft.Date)
	return nil
}

type TodayHoursCmd struct {
	Job   *float64 `short:"j" help:"Job hours for today."`
	Class *float64 `short:"c" help:"Class hours for today."`
}

func (c *TodayHoursCmd) Run(ctx *Context) error {
	if c.Job == nil && c.Class == nil {
		return fmt.Errorf("nothing to set: pass --job and/or --class")
	}

	draft, err := ctx.Rollover.GetToday()
	if err != nil {
		return err
	}

	hours := draft.Hours
	if c.Job != nil {
		hours.Job = *c.Job
	}
	if c.Class != nil {
		hours.Class = *c.Class
	}
	if err := validation.ValidateHours(hours); err != nil {
		return err
	}

	if err := ctx.Rollover.SaveToday(draft.Content, hours); err != nil {
		return err
	}
	fmt.Printf("Hours for %s: %s\n", draft.Date, formatHours(hours))
	return nil
}
