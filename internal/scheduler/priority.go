package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

const (
	taskBaseScore     = 120
	projectBaseScore  = 90
	overdueBonus      = 80
	beyondWindowBonus = 5
	morningDueBonus   = 8
)

// scoreCandidates assigns the derived urgency score to every candidate.
// Higher scores schedule first; ties are broken by input order (stable sort).
func scoreCandidates(candidates []models.Candidate, windowStart, windowEnd time.Time) {
	for i := range candidates {
		candidates[i].Score = scoreCandidate(candidates[i], windowStart, windowEnd)
	}
}

func scoreCandidate(c models.Candidate, windowStart, windowEnd time.Time) int {
	base := projectBaseScore
	if c.Category == models.CategoryTask {
		base = taskBaseScore + (clampPriority(c.TaskPriority)-3)*25
	}

	due := dueInstant(c)
	if due == nil {
		return base
	}

	daysUntil := utils.DayIndexUTC(*due, windowStart)
	windowDays := utils.DayIndexUTC(windowEnd, windowStart)

	switch {
	case daysUntil < 0:
		// Already overdue
		return base + overdueBonus
	case daysUntil <= windowDays:
		bonus := 60 - daysUntil*8
		if bonus < 10 {
			bonus = 10
		}
		// Tasks with a morning deadline on the window's first day get an
		// extra nudge ahead of same-day afternoon work.
		if c.Category == models.CategoryTask && daysUntil == 0 && c.DueAt != nil && c.DueAt.UTC().Hour() < 12 {
			bonus += morningDueBonus
		}
		return base + bonus
	default:
		return base + beyondWindowBonus
	}
}

func clampPriority(p int) int {
	if p == 0 {
		return 3 // unset task priority defaults to the middle band
	}
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

// dueInstant resolves a candidate's deadline: the exact due instant when set,
// otherwise UTC midnight of the due date.
func dueInstant(c models.Candidate) *time.Time {
	if c.DueAt != nil {
		return c.DueAt
	}
	if c.DueDate != "" {
		if t, err := utils.ParseYMDAsUTC(c.DueDate); err == nil {
			return &t
		}
	}
	return nil
}

// sortByScore orders candidates by score descending, preserving input order
// for equal scores.
func sortByScore(candidates []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
