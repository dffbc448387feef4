package services

import "time"

// DueStatus classifies how close an obligation is to its due date. It is
// recomputed from the current clock on every scan and never stored.
type DueStatus string

const (
	StatusNotDue  DueStatus = "NOT_DUE"
	StatusDueSoon DueStatus = "DUE_SOON"
	StatusOverdue DueStatus = "OVERDUE"
)

// dueSoonHorizon is how far ahead of the due date reminders start.
const dueSoonHorizon = 3 * 24 * time.Hour

// ClassifyDue places a due date relative to now. A date exactly on the
// horizon still counts as due soon; a date even one second in the past is
// overdue.
func ClassifyDue(due, now time.Time) DueStatus {
	switch {
	case due.Before(now):
		return StatusOverdue
	case !due.After(now.Add(dueSoonHorizon)):
		return StatusDueSoon
	default:
		return StatusNotDue
	}
}

// dueInDays reports the whole days between now and the due date, floored at
// zero so same-day items read as "0 day(s)".
func dueInDays(due, now time.Time) int {
	d := int(due.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// overdueDays reports the whole days the due date lies in the past, with a
// floor of one so a just-missed item reads as "1 day(s) overdue".
func overdueDays(due, now time.Time) int {
	d := int(now.Sub(due).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}
