package scheduler

import (
	"time"

	"github.com/julianstephens/weekwise/internal/ics"
)

// Feed is a rendered calendar export plus the metadata feed consumers use
// for change detection.
type Feed struct {
	ICS         string
	GeneratedAt time.Time
	Revision    string
}

// BuildICSFeed builds the week plan and renders it as an ICS document.
func (s *Scheduler) BuildICSFeed(userID string, opts Options) (Feed, error) {
	plan, err := s.BuildWeekPlan(userID, opts)
	if err != nil {
		return Feed{}, err
	}
	return Feed{
		ICS:         ics.Render(plan),
		GeneratedAt: plan.GeneratedAt,
		Revision:    plan.Revision,
	}, nil
}
