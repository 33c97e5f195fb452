package scheduler

import (
	"time"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

// interval is a blocked [start,end) minute-of-day range on one day.
type interval struct {
	start int
	end   int
}

// dayGrid is the mutable per-invocation placement state: per-day blocked
// intervals (kept sorted by start minute) and per-day load counters. Fixed
// placements mutate the grid before flexible packing reads it; no concurrent
// access ever occurs.
type dayGrid struct {
	windowStart time.Time // UTC midnight of day index 0
	days        int
	workStart   int // minutes from midnight
	workEnd     int
	workingDays map[time.Weekday]bool
	intervals   [][]interval
	load        []int // placed minutes per day, busy blocks excluded
}

func newDayGrid(windowStart time.Time, days, workStart, workEnd int, workingDays []int) *dayGrid {
	wd := make(map[time.Weekday]bool, len(workingDays))
	for _, d := range workingDays {
		wd[time.Weekday(d)] = true
	}
	return &dayGrid{
		windowStart: utils.StartOfDayUTC(windowStart),
		days:        days,
		workStart:   workStart,
		workEnd:     workEnd,
		workingDays: wd,
		intervals:   make([][]interval, days),
		load:        make([]int, days),
	}
}

// isWorkingDay reports whether the given day index falls on a configured
// working day. Day membership is a UTC calendar-date concept.
func (g *dayGrid) isWorkingDay(day int) bool {
	if day < 0 || day >= g.days {
		return false
	}
	weekday := utils.AddDays(g.windowStart, day).Weekday()
	return g.workingDays[weekday]
}

// overlaps reports whether [start,end) intersects any blocked interval on the
// given day.
func (g *dayGrid) overlaps(day, start, end int) bool {
	for _, iv := range g.intervals[day] {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}

// insert adds a blocked interval, keeping the day's list ordered by start.
func (g *dayGrid) insert(day int, iv interval) {
	list := g.intervals[day]
	pos := len(list)
	for i, existing := range list {
		if existing.start > iv.start {
			pos = i
			break
		}
	}
	list = append(list, interval{})
	copy(list[pos+1:], list[pos:])
	list[pos] = iv
	g.intervals[day] = list
}

// addBusyBlocks converts external busy blocks into clipped per-day blocked
// intervals: pad by the buffer, skip non-working days, clip to the day
// boundary and then to the working window.
func (g *dayGrid) addBusyBlocks(blocks []models.BusyBlock, bufferMin int) {
	for _, block := range blocks {
		start := block.StartAt.UTC()
		end := block.EndAt.UTC()
		// All-day blocks already span full days; padding them would only
		// leak into adjacent days' working hours.
		if !block.AllDay {
			start = start.Add(-time.Duration(bufferMin) * time.Minute)
			end = end.Add(time.Duration(bufferMin) * time.Minute)
		}

		for day := 0; day < g.days; day++ {
			if !g.isWorkingDay(day) {
				continue
			}
			dayStart := utils.AddDays(g.windowStart, day)
			dayEnd := utils.AddDays(g.windowStart, day+1)
			if !end.After(dayStart) || !start.Before(dayEnd) {
				continue
			}

			startMin := 0
			if start.After(dayStart) {
				startMin = utils.MinuteOfDayUTC(start)
			}
			endMin := 24 * 60
			if end.Before(dayEnd) {
				endMin = utils.MinuteOfDayUTC(end)
			}

			if startMin < g.workStart {
				startMin = g.workStart
			}
			if endMin > g.workEnd {
				endMin = g.workEnd
			}
			if endMin > startMin {
				g.insert(day, interval{start: startMin, end: endMin})
			}
		}
	}
}
