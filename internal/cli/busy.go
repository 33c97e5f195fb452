package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
	"github.com/julianstephens/weekwise/internal/validation"
)

type BusyAddCmd struct {
	Start  string `arg:"" help:"Block start (RFC 3339 or 'YYYY-MM-DD HH:MM' UTC)."`
	End    string `arg:"" help:"Block end (RFC 3339 or 'YYYY-MM-DD HH:MM' UTC)."`
	Source string `short:"s" help:"Calendar source name."`
	AllDay bool   `help:"Treat as an all-day block (no buffer padding)."`
}

func (c *BusyAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	start, err := ParseInstant(c.Start)
	if err != nil {
		return err
	}
	end, err := ParseInstant(c.End)
	if err != nil {
		return err
	}

	block := models.BusyBlock{
		StartAt:    start,
		EndAt:      end,
		AllDay:     c.AllDay,
		SourceName: c.Source,
	}
	if err := validation.ValidateBusyBlock(block); err != nil {
		return err
	}

	if err := ctx.Store.AddBusyBlock(ctx.UserID, block); err != nil {
		return err
	}
	fmt.Printf("Added busy block %s .. %s\n",
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	return nil
}

type BusyListCmd struct {
	Start string `help:"Window start date (YYYY-MM-DD). Defaults to today."`
	Days  int    `short:"n" help:"Window length in days." default:"7"`
}

func (c *BusyListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var start time.Time
	if c.Start != "" {
		var err error
		start, err = utils.ParseYMDAsUTC(c.Start)
		if err != nil {
			return err
		}
	} else {
		start = utils.StartOfDayUTC(time.Now().UTC())
	}
	end := utils.AddDays(start, c.Days)

	blocks, err := ctx.Store.ListBusyBlocks(ctx.UserID, start, end)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		fmt.Println("No busy blocks in window.")
		return nil
	}

	for _, b := range blocks {
		kind := ""
		if b.AllDay {
			kind = " (all-day)"
		}
		src := b.SourceName
		if src == "" {
			src = "-"
		}
		fmt.Printf("%s .. %s  %s%s\n",
			b.StartAt.Format("2006-01-02 15:04"), b.EndAt.Format("2006-01-02 15:04"), src, kind)
	}
	return nil
}

type SourceListCmd struct{}

func (c *SourceListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	sources, err := ctx.Store.ListSources(ctx.UserID)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No calendar sources registered.")
		return nil
	}
	for _, s := range sources {
		state := "enabled"
		if !s.Enabled {
			state = "disabled"
		}
		fmt.Printf("%-30s  %s\n", s.Name, state)
	}
	return nil
}

type SourceEnableCmd struct {
	Name string `arg:"" help:"Source name."`
}

func (c *SourceEnableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SetSourceEnabled(ctx.UserID, c.Name, true); err != nil {
		return err
	}
	fmt.Printf("Enabled source: %s\n", c.Name)
	return nil
}

type SourceDisableCmd struct {
	Name string `arg:"" help:"Source name."`
}

func (c *SourceDisableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SetSourceEnabled(ctx.UserID, c.Name, false); err != nil {
		return err
	}
	fmt.Printf("Disabled source: %s\n", c.Name)
	return nil
}
