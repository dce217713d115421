package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/validation"
)

type GoalsListCmd struct {
	History bool `short:"H" help:"Show recent progress history."`
}

func (c *GoalsListCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.ListGoals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No financial goals yet.")
		return nil
	}

	for _, g := range goals {
		fmt.Printf("%d  %s\n", g.ID, g.Name)
		fmt.Printf("    $%.2f / $%.2f (%.1f%%, $%.2f remaining)\n", g.CurrentAmount, g.TargetAmount, g.Percent(), g.Remaining())
		if g.Deadline != "" {
			fmt.Printf("    deadline %s\n", g.Deadline)
		}
		if c.History {
			for _, p := range g.RecentHistory(10) {
				fmt.Printf("    %s  $%.2f\n", p.Date, p.Amount)
			}
		}
	}
	return nil
}

type GoalsAddCmd struct {
	Name     string  `arg:"" help:"Goal name."`
	Target   float64 `arg:"" help:"Target amount."`
	Current  float64 `short:"a" help:"Starting amount." default:"0"`
	Deadline string  `short:"d" help:"Deadline (YYYY-MM-DD)."`
}

func (c *GoalsAddCmd) Run(ctx *Context) error {
	existing, err := ctx.Store.ListGoals()
	if err != nil {
		return err
	}
	goal := models.Goal{
		Name:          strings.TrimSpace(c.Name),
		TargetAmount:  c.Target,
		CurrentAmount: c.Current,
		Deadline:      c.Deadline,
	}
	// The three-goal cap lives here, before any store write.
	if err := validation.ValidateGoalCreate(existing, goal); err != nil {
		return err
	}

	saved, err := ctx.Store.CreateGoal(goal)
	if err != nil {
		return err
	}
	fmt.Printf("Created goal: %s (id %d)\n", saved.Name, saved.ID)
	return nil
}

type GoalsEditCmd struct {
	ID       string   `arg:"" help:"Goal id."`
	Name     string   `help:"New name."`
	Target   *float64 `help:"New target amount."`
	Deadline *string  `help:"New deadline (YYYY-MM-DD), empty to clear."`
}

func (c *GoalsEditCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	goals, err := ctx.Store.ListGoals()
	if err != nil {
		return err
	}

	for _, g := range goals {
		if g.ID != id {
			continue
		}
		if c.Name != "" {
			g.Name = c.Name
		}
		if c.Target != nil {
			g.TargetAmount = *c.Target
		}
		if c.Deadline != nil {
			g.Deadline = *c.Deadline
		}
		// Editing an existing goal is always allowed; only creation is
		// capped.
		if err := validation.ValidateGoal(g); err != nil {
			return err
		}
		if err := ctx.Store.UpdateGoal(g); err != nil {
			return err
		}
		fmt.Printf("Updated goal %d\n", id)
		return nil
	}
	return fmt.Errorf("goal not found: %d", id)
}

type GoalsDepositCmd struct {
	ID     string `arg:"" help:"Goal id."`
	Amount string `arg:"" help:"Amount to add (negative to subtract)."`
}

func (c *GoalsDepositCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	delta, err := strconv.ParseFloat(c.Amount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %q", c.Amount)
	}

	goal, err := ctx.Store.AdjustGoalAmount(id, delta)
	if err != nil {
		return err
	}
	fmt.Printf("%s: $%.2f / $%.2f (%.1f%%)\n", goal.Name, goal.CurrentAmount, goal.TargetAmount, goal.Percent())
	return nil
}

type GoalsDeleteCmd struct {
	ID string `arg:"" help:"Goal id."`
}

func (c *GoalsDeleteCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteGoal(id); err != nil {
		return err
	}
	fmt.Printf("Deleted goal %d\n", id)
	return nil
}
