package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

// planner accumulates placements over the fixed and flexible phases of one
// planning run.
type planner struct {
	windowStart time.Time // UTC midnight of day index 0
	days        int
	granularity int
	workStart   int
	workEnd     int
	grid        *dayGrid
	now         *time.Time // nil when the window start is pinned
	items       []models.WeekPlanItem
	unscheduled []models.WeekPlanUnscheduledItem
	notes       map[string]string // entryPath -> reschedule note for demoted items
}

// placeFixed processes candidates with an explicit fixed start time, in
// priority order. Missed appointments (when a "now" reference applies) are
// demoted and returned for the flexible pass instead of being rejected.
func (p *planner) placeFixed(candidates []models.Candidate) []models.Candidate {
	var demoted []models.Candidate

	for _, c := range candidates {
		fixedAt := c.FixedAt.UTC()
		day := utils.DayIndexUTC(fixedAt, p.windowStart)
		if day < 0 || day >= p.days {
			p.reject(c, models.ReasonOutsideWindow,
				fmt.Sprintf("fixed time %s is outside the planning window", utils.ToYMD(fixedAt)))
			continue
		}
		if !p.grid.isWorkingDay(day) {
			p.reject(c, models.ReasonOutsideWorkingHours,
				fmt.Sprintf("%s is not a working day", utils.ToYMD(fixedAt)))
			continue
		}

		startMin := utils.MinuteOfDayUTC(fixedAt)
		endMin := startMin + c.DurationMin

		if p.now != nil {
			slotEnd := fixedAt.Add(time.Duration(c.DurationMin+constants.MissedSlotGraceMin) * time.Minute)
			if p.now.After(slotEnd) {
				flexible := c
				flexible.FixedAt = nil
				p.notes[c.EntryPath] = fmt.Sprintf("rescheduled from missed %s slot", utils.FormatMinutes(startMin))
				demoted = append(demoted, flexible)
				continue
			}
		}

		if startMin < p.workStart || endMin > p.workEnd {
			p.reject(c, models.ReasonOutsideWorkingHours,
				fmt.Sprintf("fixed slot %s-%s falls outside working hours", utils.FormatMinutes(startMin), utils.FormatMinutes(endMin)))
			continue
		}
		if p.grid.overlaps(day, startMin, endMin) {
			p.reject(c, models.ReasonFixedConflict,
				fmt.Sprintf("fixed slot %s-%s conflicts with an existing appointment", utils.FormatMinutes(startMin), utils.FormatMinutes(endMin)))
			continue
		}

		p.commit(c, day, startMin, fmt.Sprintf("fixed at %s", utils.FormatMinutes(startMin)))
	}

	return demoted
}

// commit inserts the interval, accumulates the day's load, and records the
// placed item.
func (p *planner) commit(c models.Candidate, day, startMin int, reason string) {
	endMin := startMin + c.DurationMin
	p.grid.insert(day, interval{start: startMin, end: endMin})
	p.grid.load[day] += c.DurationMin

	dayDate := utils.AddDays(p.windowStart, day)
	p.items = append(p.items, models.WeekPlanItem{
		EntryPath:   c.EntryPath,
		Category:    c.Category,
		Title:       c.Title,
		SourceName:  c.SourceName,
		Start:       dayDate.Add(time.Duration(startMin) * time.Minute),
		End:         dayDate.Add(time.Duration(endMin) * time.Minute),
		DurationMin: c.DurationMin,
		Reason:      reason,
	})
}

// reject records an unscheduled entry. Every non-placed candidate surfaces
// exactly once; nothing silently disappears.
func (p *planner) reject(c models.Candidate, code models.ReasonCode, reason string) {
	if note, ok := p.notes[c.EntryPath]; ok {
		reason = note + "; " + reason
	}
	p.unscheduled = append(p.unscheduled, models.WeekPlanUnscheduledItem{
		EntryPath:  c.EntryPath,
		Category:   c.Category,
		Title:      c.Title,
		ReasonCode: code,
		Reason:     reason,
	})
}
