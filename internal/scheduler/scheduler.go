package scheduler

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/logger"
	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
	"github.com/julianstephens/weekwise/internal/validation"
)

// CandidateSource provides schedulable candidates for a planning window:
// pending tasks plus active, waiting, or blocked projects.
type CandidateSource interface {
	ListCandidates(userID, startDate, endDate string) ([]models.Candidate, error)
}

// SettingsSource provides a user's calendar settings. Implementations may
// return zero-value settings; defaults are applied here.
type SettingsSource interface {
	GetCalendarSettings(userID string) (models.CalendarSettings, error)
}

// BusySource provides imported busy intervals from enabled calendar sources.
type BusySource interface {
	ListBusyBlocks(userID string, start, end time.Time) ([]models.BusyBlock, error)
}

// Options controls a single planning run.
type Options struct {
	// StartDate pins the window start (YYYY-MM-DD). When empty the window
	// anchors to the Monday of the current week and "now"-aware behavior
	// (missed-slot rescheduling, today's start-time floor) is enabled.
	StartDate      string
	Days           int
	GranularityMin int
	BufferMin      int
}

func (o Options) withDefaults() Options {
	if o.Days == 0 {
		o.Days = constants.DefaultPlanDays
	}
	if o.GranularityMin == 0 {
		o.GranularityMin = constants.DefaultGranularityMin
	}
	return o
}

// Scheduler derives conflict-free week plans from candidates, settings, and
// busy intervals. A planning run is a pure computation: identical inputs and
// an explicit start date yield an identical plan and revision.
type Scheduler struct {
	candidates CandidateSource
	settings   SettingsSource
	busy       BusySource
	now        func() time.Time
}

// New creates a Scheduler over the given read-only sources.
func New(candidates CandidateSource, settings SettingsSource, busy BusySource) *Scheduler {
	return &Scheduler{
		candidates: candidates,
		settings:   settings,
		busy:       busy,
		now:        time.Now,
	}
}

// WithClock overrides the scheduler's time source. Used by tests to pin the
// "now" reference without wall-clock mocking.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// BuildWeekPlan produces a conflict-free day-by-day schedule for the user.
// Individual candidates that cannot be placed land in Unscheduled with a
// reason code; the plan as a whole still succeeds.
func (s *Scheduler) BuildWeekPlan(userID string, opts Options) (models.WeekPlan, error) {
	opts = opts.withDefaults()
	if err := validation.ValidatePlanOptions(opts.Days, opts.GranularityMin, opts.BufferMin); err != nil {
		return models.WeekPlan{}, err
	}
	if err := validation.ValidateStartDate(opts.StartDate); err != nil {
		return models.WeekPlan{}, err
	}

	wall := s.now().UTC()

	var windowStart time.Time
	var nowRef *time.Time
	if opts.StartDate != "" {
		windowStart, _ = utils.ParseYMDAsUTC(opts.StartDate)
	} else {
		windowStart = utils.StartOfWeekMondayUTC(wall)
		ref := wall
		nowRef = &ref
	}
	windowEnd := utils.AddDays(windowStart, opts.Days-1)

	// The three fetches are independent read operations; issue them in
	// parallel before the synchronous packing run.
	var (
		candidates []models.Candidate
		settings   models.CalendarSettings
		blocks     []models.BusyBlock
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		candidates, err = s.candidates.ListCandidates(userID, utils.ToYMD(windowStart), utils.ToYMD(windowEnd))
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.GetCalendarSettings(userID)
		if err != nil {
			return fmt.Errorf("failed to get calendar settings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		blocks, err = s.busy.ListBusyBlocks(userID, windowStart, utils.AddDays(windowStart, opts.Days))
		if err != nil {
			return fmt.Errorf("failed to list busy blocks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.WeekPlan{}, err
	}

	models.ApplyDefaultSettings(&settings)
	if err := validation.ValidateSettings(settings); err != nil {
		return models.WeekPlan{}, err
	}

	plan, err := buildPlan(candidates, settings, blocks, opts, windowStart, nowRef, wall)
	if err != nil {
		return models.WeekPlan{}, err
	}

	logger.Debug("generated week plan",
		"user", userID,
		"window", plan.StartDate+".."+plan.EndDate,
		"placed", len(plan.Items),
		"unscheduled", len(plan.Unscheduled),
		"revision", plan.Revision)

	return plan, nil
}

// buildPlan is the pure packing pipeline: score, build the busy grid, place
// fixed appointments, pack flexible items, assemble.
func buildPlan(candidates []models.Candidate, settings models.CalendarSettings, blocks []models.BusyBlock, opts Options, windowStart time.Time, nowRef *time.Time, wall time.Time) (models.WeekPlan, error) {
	workStart, err := utils.ParseTimeToMinutes(settings.WorkdayStart)
	if err != nil {
		return models.WeekPlan{}, err
	}
	workEnd, err := utils.ParseTimeToMinutes(settings.WorkdayEnd)
	if err != nil {
		return models.WeekPlan{}, err
	}

	windowEnd := utils.AddDays(windowStart, opts.Days-1)
	scoreCandidates(candidates, windowStart, windowEnd)

	grid := newDayGrid(windowStart, opts.Days, workStart, workEnd, settings.WorkingDays)
	grid.addBusyBlocks(blocks, opts.BufferMin)

	p := &planner{
		windowStart: windowStart,
		days:        opts.Days,
		granularity: opts.GranularityMin,
		workStart:   workStart,
		workEnd:     workEnd,
		grid:        grid,
		now:         nowRef,
		notes:       make(map[string]string),
	}

	var fixed, flexible []models.Candidate
	for _, c := range sortByScore(candidates) {
		if c.FixedAt != nil {
			fixed = append(fixed, c)
		} else {
			flexible = append(flexible, c)
		}
	}

	demoted := p.placeFixed(fixed)
	// Demoted missed appointments compete with ordinary flexible candidates
	// at their original score.
	flexible = sortByScore(append(flexible, demoted...))
	p.placeFlexible(flexible)

	return assemble(p, opts, windowStart, windowEnd, wall), nil
}
