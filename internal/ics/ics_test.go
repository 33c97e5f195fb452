package ics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
)

func testPlan() models.WeekPlan {
	return models.WeekPlan{
		StartDate:      "2026-01-05",
		EndDate:        "2026-01-11",
		GranularityMin: 15,
		BufferMin:      10,
		Items: []models.WeekPlanItem{
			{
				EntryPath:   "tasks/write-report",
				Category:    models.CategoryTask,
				Title:       "Write report",
				Start:       time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
				End:         time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
				DurationMin: 30,
				Reason:      "scheduled by priority",
			},
			{
				EntryPath:   "projects/site-redesign",
				Category:    models.CategoryProject,
				Title:       "Plan, review; ship",
				SourceName:  "work",
				Start:       time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC),
				End:         time.Date(2026, 1, 6, 11, 30, 0, 0, time.UTC),
				DurationMin: 90,
				Reason:      "due by 2026-01-09",
			},
		},
		GeneratedAt: time.Date(2026, 1, 4, 18, 0, 0, 0, time.UTC),
		Revision:    "a1b2c3d4e5f6",
	}
}

func TestRender_Structure(t *testing.T) {
	out := Render(testPlan())

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatal("expected VCALENDAR envelope with CRLF line endings")
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		if strings.ContainsAny(line, "\r\n") {
			t.Fatalf("bare CR or LF inside line %q", line)
		}
	}

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
	for _, want := range []string{
		"VERSION:2.0",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:weekwise",
		"DTSTART:20260105T090000Z",
		"DTEND:20260105T093000Z",
		"DTSTART:20260106T100000Z",
		"DTSTAMP:20260104T180000Z",
		"SUMMARY:Write report",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRender_EscapesText(t *testing.T) {
	out := Render(testPlan())

	if !strings.Contains(out, `SUMMARY:Plan\, review\; ship`) {
		t.Error("expected comma and semicolon escaped in summary")
	}
	// Description folds reason and source with an escaped newline.
	if !strings.Contains(out, `DESCRIPTION:due by 2026-01-09\nwork`) {
		t.Error("expected newline-escaped description with source name")
	}
}

func TestRender_StableUIDs(t *testing.T) {
	plan := testPlan()
	first := Render(plan)

	// Moving the item keeps its UID so feed consumers update in place.
	plan.Items[0].Start = plan.Items[0].Start.Add(2 * time.Hour)
	plan.Items[0].End = plan.Items[0].End.Add(2 * time.Hour)
	second := Render(plan)

	uid := "UID:" + ItemUID("tasks/write-report")
	if !strings.Contains(first, uid) || !strings.Contains(second, uid) {
		t.Errorf("expected stable UID %q in both renders", uid)
	}
	if ItemUID("tasks/write-report") == ItemUID("tasks/other") {
		t.Error("expected distinct entry paths to yield distinct UIDs")
	}
	if !strings.HasSuffix(ItemUID("tasks/write-report"), "@weekwise") {
		t.Errorf("expected @weekwise UID suffix, got %s", ItemUID("tasks/write-report"))
	}
}

func TestRender_SequenceTracksRevision(t *testing.T) {
	plan := testPlan()
	out := Render(plan)

	want := fmt.Sprintf("SEQUENCE:%d", SequenceFromRevision(plan.Revision))
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in output", want)
	}

	if SequenceFromRevision(plan.Revision) == SequenceFromRevision("ffffffffffff") {
		t.Error("expected different revisions to map to different sequences")
	}
	if got := SequenceFromRevision("not-hex"); got != 0 {
		t.Errorf("expected 0 for unparseable revision, got %d", got)
	}
	if got := SequenceFromRevision("ffffffffffff"); got < 0 || got > 0x7fffffff {
		t.Errorf("expected sequence within the positive int32 range, got %d", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	plan := testPlan()
	if Render(plan) != Render(plan) {
		t.Error("expected identical plans to render identically")
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b;c", `a\,b\;c`},
		{"back\\slash", `back\\slash`},
		{"line1\nline2", `line1\nline2`},
		{"line1\r\nline2", `line1\nline2`},
	}
	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
