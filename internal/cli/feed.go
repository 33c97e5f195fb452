package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/weekwise/internal/scheduler"
)

type FeedCmd struct {
	Start       string `help:"Window start date (YYYY-MM-DD). Defaults to the Monday of the current week."`
	Days        int    `short:"n" help:"Window length in days (1-14)." default:"7"`
	Granularity int    `short:"g" help:"Slot granularity in minutes (5-60)." default:"15"`
	Buffer      int    `short:"b" help:"Buffer minutes around busy blocks (0-120)." default:"10"`
	Output      string `short:"o" help:"Write the ICS document to a file instead of stdout." type:"path"`
}

func (c *FeedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	feed, err := ctx.Scheduler.BuildICSFeed(ctx.UserID, scheduler.Options{
		StartDate:      c.Start,
		Days:           c.Days,
		GranularityMin: c.Granularity,
		BufferMin:      c.Buffer,
	})
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(feed.ICS), 0644); err != nil {
			return fmt.Errorf("failed to write feed: %w", err)
		}
		fmt.Printf("Wrote feed (revision %s) to %s\n", feed.Revision, c.Output)
		return nil
	}

	fmt.Print(feed.ICS)
	return nil
}
