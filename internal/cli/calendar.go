package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/validation"
)

type CalendarShowCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM), defaults to the current one."`
}

func (c *CalendarShowCmd) Run(ctx *Context) error {
	month := c.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("invalid month %q, want YYYY-MM", c.Month)
	}

	cal, err := ctx.Store.GetCalendar()
	if err != nil {
		return err
	}

	var dates []string
	var totalJob, totalClass float64
	for date, day := range cal {
		if strings.HasPrefix(date, month) {
			dates = append(dates, date)
			totalJob += day.Job
			totalClass += day.Class
		}
	}
	if len(dates) == 0 {
		fmt.Printf("No hours tracked in %s.\n", month)
		return nil
	}
	sort.Strings(dates)

	for _, date := range dates {
		day := cal[date]
		fmt.Printf("%s  %s  (total %.1fh)\n", date, formatHours(models.Hours{Job: day.Job, Class: day.Class}), day.Total())
	}
	fmt.Printf("\n%s totals: job %.1fh, class %.1fh, combined %.1fh\n", month, totalJob, totalClass, totalJob+totalClass)
	return nil
}

type CalendarSetCmd struct {
	Date  string  `arg:"" help:"Date (YYYY-MM-DD) or 'today'."`
	Job   float64 `short:"j" help:"Job hours." default:"0"`
	Class float64 `short:"c" help:"Class hours." default:"0"`
}

func (c *CalendarSetCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	if err := validation.ValidateHours(models.Hours{Job: c.Job, Class: c.Class}); err != nil {
		return err
	}

	// Whole-day overwrite: no merge with any prior value for the date.
	day := models.CalendarDay{Job: c.Job, Class: c.Class}
	if err := ctx.Store.SaveCalendarDay(date, day); err != nil {
		return err
	}
	fmt.Printf("Set %s: job %.1fh, class %.1fh\n", date, day.Job, day.Class)
	return nil
}
