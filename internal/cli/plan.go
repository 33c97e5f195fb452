package cli

import (
	"encoding/json"
	"os"

	"github.com/julianstephens/weekwise/internal/scheduler"
)

type PlanCmd struct {
	Start       string `help:"Window start date (YYYY-MM-DD). Defaults to the Monday of the current week."`
	Days        int    `short:"n" help:"Window length in days (1-14)." default:"7"`
	Granularity int    `short:"g" help:"Slot granularity in minutes (5-60)." default:"15"`
	Buffer      int    `short:"b" help:"Buffer minutes around busy blocks (0-120)." default:"10"`
	JSON        bool   `help:"Emit the plan as JSON."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := ctx.Scheduler.BuildWeekPlan(ctx.UserID, scheduler.Options{
		StartDate:      c.Start,
		Days:           c.Days,
		GranularityMin: c.Granularity,
		BufferMin:      c.Buffer,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	PrintPlan(plan)
	return nil
}
