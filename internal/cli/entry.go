package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/validation"
)

type EntryAddCmd struct {
	Path     string `arg:"" help:"Unique entry path, e.g. projects/site-redesign or tasks/write-report."`
	Title    string `arg:"" help:"Display title."`
	Category string `short:"c" help:"Entry category (task|project)." default:"task"`
	Duration int    `short:"d" help:"Estimated duration in minutes." required:""`
	DueDate  string `help:"Due date (YYYY-MM-DD)."`
	DueAt    string `help:"Due instant (RFC 3339 or 'YYYY-MM-DD HH:MM' UTC). Overrides --due-date precision."`
	FixedAt  string `help:"Fixed appointment start (RFC 3339 or 'YYYY-MM-DD HH:MM' UTC)."`
	Priority int    `short:"p" help:"Task priority (0-5, higher is more urgent)." default:"3"`
	Source   string `short:"s" help:"Originating calendar/source name."`
	Status   string `help:"Initial status (pending|active|waiting|blocked|done)."`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entry := models.Entry{
		Path:        c.Path,
		Category:    models.Category(c.Category),
		Title:       c.Title,
		DurationMin: c.Duration,
		DueDate:     c.DueDate,
		Priority:    c.Priority,
		SourceName:  c.Source,
		CreatedAt:   time.Now().UTC(),
	}

	if c.Status != "" {
		entry.Status = models.EntryStatus(c.Status)
	} else if entry.Category == models.CategoryProject {
		entry.Status = models.StatusActive
	} else {
		entry.Status = models.StatusPending
	}

	if c.DueAt != "" {
		t, err := ParseInstant(c.DueAt)
		if err != nil {
			return err
		}
		entry.DueAt = &t
	}
	if c.FixedAt != "" {
		t, err := ParseInstant(c.FixedAt)
		if err != nil {
			return err
		}
		entry.FixedAt = &t
	}

	if err := validation.ValidateEntry(entry); err != nil {
		return err
	}

	if err := ctx.Store.AddEntry(ctx.UserID, entry); err != nil {
		return err
	}

	fmt.Printf("Added %s: %s\n", entry.Category, entry.Path)
	return nil
}

type EntryListCmd struct {
	Candidates bool `help:"Only show entries eligible for scheduling."`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetAllEntries(ctx.UserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	for _, e := range entries {
		if c.Candidates && !isCandidateStatus(e) {
			continue
		}
		due := ""
		switch {
		case e.DueAt != nil:
			due = "due " + e.DueAt.UTC().Format("2006-01-02 15:04")
		case e.DueDate != "":
			due = "due " + e.DueDate
		}
		fixed := ""
		if e.FixedAt != nil {
			fixed = "fixed " + e.FixedAt.UTC().Format("2006-01-02 15:04")
		}
		fmt.Printf("%-40s  %-7s  %-8s  %3dm  p%d  %s %s\n",
			e.Path, e.Category, e.Status, e.DurationMin, e.Priority, due, fixed)
	}
	return nil
}

func isCandidateStatus(e models.Entry) bool {
	switch e.Category {
	case models.CategoryTask:
		return e.Status == models.StatusPending
	case models.CategoryProject:
		return e.Status == models.StatusActive || e.Status == models.StatusWaiting || e.Status == models.StatusBlocked
	}
	return false
}

type EntryStatusCmd struct {
	Path   string `arg:"" help:"Entry path."`
	Status string `arg:"" help:"New status (pending|active|waiting|blocked|done)."`
}

func (c *EntryStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	status := models.EntryStatus(c.Status)
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s", c.Status)
	}
	if err := ctx.Store.UpdateEntryStatus(ctx.UserID, c.Path, status); err != nil {
		return err
	}
	fmt.Printf("Updated %s -> %s\n", c.Path, status)
	return nil
}

type EntryDeleteCmd struct {
	Path string `arg:"" help:"Entry path."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteEntry(ctx.UserID, c.Path); err != nil {
		return err
	}
	fmt.Printf("Deleted entry: %s\n", c.Path)
	return nil
}
