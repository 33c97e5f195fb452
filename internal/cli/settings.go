package cli

import (
	"fmt"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/validation"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetCalendarSettings(ctx.UserID)
	if err != nil {
		return err
	}
	models.ApplyDefaultSettings(&settings)

	fmt.Printf("Workday:      %s - %s\n", settings.WorkdayStart, settings.WorkdayEnd)
	fmt.Printf("Working days: %s\n", FormatWorkingDays(settings.WorkingDays))
	return nil
}

type SettingsSetCmd struct {
	DayStart    string `help:"Workday start (HH:MM)."`
	DayEnd      string `help:"Workday end (HH:MM)."`
	WorkingDays string `help:"Comma-separated working days (e.g. mon,tue,wed,thu,fri)."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetCalendarSettings(ctx.UserID)
	if err != nil {
		return err
	}
	models.ApplyDefaultSettings(&settings)

	if c.DayStart != "" {
		settings.WorkdayStart = c.DayStart
	}
	if c.DayEnd != "" {
		settings.WorkdayEnd = c.DayEnd
	}
	if c.WorkingDays != "" {
		days, err := ParseWorkingDays(c.WorkingDays)
		if err != nil {
			return err
		}
		settings.WorkingDays = days
	}

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveCalendarSettings(ctx.UserID, settings); err != nil {
		return err
	}

	fmt.Printf("Saved settings: %s - %s on %s\n",
		settings.WorkdayStart, settings.WorkdayEnd, FormatWorkingDays(settings.WorkingDays))
	return nil
}
