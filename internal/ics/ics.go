// Package ics renders an assembled week plan as an RFC 5545 calendar
// document. It is a pure transform: no unscheduled items are emitted, and
// the same plan always renders to the same document.
package ics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/models"
)

const (
	prodID    = "-//weekwise//Week Planner//EN"
	timestamp = "20060102T150405Z"

	// refreshInterval keeps consumers polling for revision changes
	refreshInterval = "PT30M"
)

// uidNamespace seeds the deterministic per-item UIDs. Re-publishing the same
// entry keeps the same UID across runs so consumers update instead of
// duplicating events.
var uidNamespace = uuid.MustParse("8f9b6ad0-55e4-4c2c-9d3f-0c4a4fb3a8e1")

// Render serializes the plan's placed items as a VCALENDAR document.
func Render(plan models.WeekPlan) string {
	var b strings.Builder

	line(&b, "BEGIN:VCALENDAR")
	line(&b, "VERSION:2.0")
	line(&b, "PRODID:"+prodID)
	line(&b, "CALSCALE:GREGORIAN")
	line(&b, "METHOD:PUBLISH")
	line(&b, "X-WR-CALNAME:"+constants.AppName)
	line(&b, "REFRESH-INTERVAL;VALUE=DURATION:"+refreshInterval)
	line(&b, "X-PUBLISHED-TTL:"+refreshInterval)

	stamp := plan.GeneratedAt.UTC().Format(timestamp)
	seq := SequenceFromRevision(plan.Revision)

	for _, item := range plan.Items {
		line(&b, "BEGIN:VEVENT")
		line(&b, "UID:"+ItemUID(item.EntryPath))
		line(&b, "DTSTAMP:"+stamp)
		line(&b, "LAST-MODIFIED:"+stamp)
		line(&b, "DTSTART:"+item.Start.UTC().Format(timestamp))
		line(&b, "DTEND:"+item.End.UTC().Format(timestamp))
		line(&b, "SUMMARY:"+EscapeText(item.Title))
		line(&b, "DESCRIPTION:"+EscapeText(description(item)))
		line(&b, fmt.Sprintf("SEQUENCE:%d", seq))
		line(&b, "END:VEVENT")
	}

	line(&b, "END:VCALENDAR")
	return b.String()
}

// ItemUID derives the stable UID for an entry path.
func ItemUID(entryPath string) string {
	return uuid.NewSHA1(uidNamespace, []byte(entryPath)).String() + "@" + constants.AppName
}

// SequenceFromRevision maps a plan revision to a VEVENT sequence number. Any
// change in the plan body changes the revision and therefore the sequence.
func SequenceFromRevision(revision string) int64 {
	if len(revision) > 8 {
		revision = revision[:8]
	}
	n, err := strconv.ParseInt(revision, 16, 64)
	if err != nil {
		return 0
	}
	return n & 0x7fffffff
}

// EscapeText applies RFC 5545 text escaping: backslash, newline, comma, and
// semicolon.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}

func description(item models.WeekPlanItem) string {
	if item.SourceName != "" {
		return item.Reason + "\n" + item.SourceName
	}
	return item.Reason
}

// Calendar lines are CRLF-terminated per RFC 5545.
func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteString("\r\n")
}
