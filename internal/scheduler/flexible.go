package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

// placeFlexible packs all remaining candidates (including fixed ones demoted
// by the missed-slot rule) with a first-fit search at the configured
// granularity, trying candidate days in deadline or load-balanced order.
func (p *planner) placeFlexible(candidates []models.Candidate) {
	for _, c := range candidates {
		dayOrder := p.candidateDayOrder(c)
		if len(dayOrder) == 0 {
			p.reject(c, models.ReasonOutsideWorkingHours, "no working day available in the planning window")
			continue
		}

		placed := false
		for _, day := range dayOrder {
			startMin, ok := p.firstFit(c, day)
			if !ok {
				continue
			}
			p.commit(c, day, startMin, p.flexibleReason(c))
			placed = true
			break
		}

		if !placed {
			p.reject(c, models.ReasonNoFreeSlot,
				fmt.Sprintf("no free %d-minute slot in the planning window", c.DurationMin))
		}
	}
}

// candidateDayOrder determines which working days to try, in order:
// deadline-bounded ascending days for due candidates, least-loaded-first for
// undated ones.
func (p *planner) candidateDayOrder(c models.Candidate) []int {
	floor := 0
	if p.now != nil {
		if f := utils.DayIndexUTC(*p.now, p.windowStart); f > 0 {
			floor = f
		}
	}

	var working []int
	for day := floor; day < p.days; day++ {
		if p.grid.isWorkingDay(day) {
			working = append(working, day)
		}
	}
	if len(working) == 0 {
		return nil
	}

	if due := dueInstant(c); due != nil {
		dueDay := utils.DayIndexUTC(*due, p.windowStart)
		if dueDay < p.days {
			if dueDay >= floor {
				// Attempt as early as possible, never past the deadline
				var out []int
				for _, day := range working {
					if day > dueDay {
						break
					}
					out = append(out, day)
				}
				return out
			}
			// Deadline already behind the floor: any remaining day beats
			// dropping the item
			return working
		}
		// Due beyond the window: no day is better deadline-wise, fall
		// through to load balancing
	}

	out := make([]int, len(working))
	copy(out, working)
	sort.SliceStable(out, func(i, j int) bool {
		return p.grid.load[out[i]] < p.grid.load[out[j]]
	})
	return out
}

// firstFit scans a day for the earliest free window of the candidate's
// duration, stepping at the configured granularity.
func (p *planner) firstFit(c models.Candidate, day int) (int, bool) {
	latestEnd := p.workEnd
	if c.DueAt != nil {
		// A same-day due instant with a real time-of-day caps the latest
		// end; date-only (midnight-stamped) deadlines never constrain a
		// specific time.
		if m := utils.MinuteOfDayUTC(*c.DueAt); m != 0 && utils.DayIndexUTC(*c.DueAt, p.windowStart) == day {
			if m < latestEnd {
				latestEnd = m
			}
		}
	}

	minStart := p.workStart
	if p.now != nil && utils.DayIndexUTC(*p.now, p.windowStart) == day {
		floor := utils.AlignUpToStep(utils.MinuteOfDayUTC(*p.now)+constants.MissedSlotGraceMin, p.granularity)
		if floor > minStart {
			minStart = floor
		}
		if minStart > p.workEnd {
			minStart = p.workEnd
		}
	}

	for cursor := minStart; cursor+c.DurationMin <= latestEnd; cursor += p.granularity {
		if !p.grid.overlaps(day, cursor, cursor+c.DurationMin) {
			return cursor, true
		}
	}
	return 0, false
}

func (p *planner) flexibleReason(c models.Candidate) string {
	if note, ok := p.notes[c.EntryPath]; ok {
		return note
	}
	if c.DueAt != nil {
		return fmt.Sprintf("due %s %s", utils.ToYMD(*c.DueAt), utils.FormatMinutes(utils.MinuteOfDayUTC(*c.DueAt)))
	}
	if c.DueDate != "" {
		return fmt.Sprintf("due by %s", c.DueDate)
	}
	return "scheduled by priority"
}
