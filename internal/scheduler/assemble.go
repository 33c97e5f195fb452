package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/weekwise/internal/logger"
	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

// Digest mirrors of the plan body for revision hashing. Instants are
// rendered as strings because hashstructure only sees exported fields and
// time.Time carries its value in unexported ones.
type itemDigest struct {
	EntryPath   string
	Category    string
	Title       string
	Start       string
	End         string
	DurationMin int
	Reason      string
}

type unscheduledDigest struct {
	EntryPath  string
	ReasonCode string
	Reason     string
}

type planDigest struct {
	StartDate      string
	EndDate        string
	GranularityMin int
	BufferMin      int
	Items          []itemDigest
	Unscheduled    []unscheduledDigest
}

// assemble sorts, totals, and fingerprints the plan. GeneratedAt is excluded
// from the revision hash so identical inputs always yield an identical
// revision.
func assemble(p *planner, opts Options, windowStart, windowEnd, generatedAt time.Time) models.WeekPlan {
	items := p.items
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Start.Before(items[j].Start)
	})

	total := 0
	for _, item := range items {
		total += item.DurationMin
	}

	var warnings []string
	for _, u := range p.unscheduled {
		warnings = append(warnings, fmt.Sprintf("%s: %s", u.Title, u.Reason))
	}

	plan := models.WeekPlan{
		StartDate:      utils.ToYMD(windowStart),
		EndDate:        utils.ToYMD(windowEnd),
		GranularityMin: opts.GranularityMin,
		BufferMin:      opts.BufferMin,
		Items:          items,
		Unscheduled:    p.unscheduled,
		TotalMinutes:   total,
		Warnings:       warnings,
		GeneratedAt:    generatedAt,
	}
	plan.Revision = revisionHash(plan)
	return plan
}

// revisionHash computes the stable short fingerprint of the plan body, used
// as the ICS SEQUENCE source and as a change-detection marker for feed
// consumers.
func revisionHash(plan models.WeekPlan) string {
	digest := planDigest{
		StartDate:      plan.StartDate,
		EndDate:        plan.EndDate,
		GranularityMin: plan.GranularityMin,
		BufferMin:      plan.BufferMin,
	}
	for _, item := range plan.Items {
		digest.Items = append(digest.Items, itemDigest{
			EntryPath:   item.EntryPath,
			Category:    string(item.Category),
			Title:       item.Title,
			Start:       item.Start.UTC().Format(time.RFC3339),
			End:         item.End.UTC().Format(time.RFC3339),
			DurationMin: item.DurationMin,
			Reason:      item.Reason,
		})
	}
	for _, u := range plan.Unscheduled {
		digest.Unscheduled = append(digest.Unscheduled, unscheduledDigest{
			EntryPath:  u.EntryPath,
			ReasonCode: string(u.ReasonCode),
			Reason:     u.Reason,
		})
	}

	hash, err := hashstructure.Hash(digest, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing a plain value struct cannot fail in practice
		logger.Error("failed to hash plan body", "error", err)
		return "000000000000"
	}
	return fmt.Sprintf("%016x", hash)[:12]
}
