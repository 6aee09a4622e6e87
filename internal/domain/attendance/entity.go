package attendance

import (
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/pkg/worktime"
)

// Status is the approval state of an attendance record. The integer
// values are persisted; all four variants exist in stored data even
// though normal flow only ever moves Entered/Approved -> Unapproved
// -> Approved. Rejected is a legal state with no trigger wired.
type Status int

const (
	StatusEntered    Status = 0 // freshly clocked, never edited
	StatusUnapproved Status = 1 // correction submitted, pending review
	StatusApproved   Status = 2
	StatusRejected   Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusEntered:
		return "entered"
	case StatusUnapproved:
		return "unapproved"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Label returns the display label shown on list and detail screens.
func (s Status) Label() string {
	switch s {
	case StatusEntered:
		return "入力済"
	case StatusUnapproved:
		return "承認前"
	case StatusApproved:
		return "承認済"
	case StatusRejected:
		return "差戻し"
	}
	return ""
}

// CanSelfCorrect reports whether the owning user may submit a
// correction from this status. A record already waiting for review is
// locked until an admin acts; admins are exempt from this guard.
func (s Status) CanSelfCorrect() bool {
	return s != StatusUnapproved
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	StartTime  *time.Time
	EndTime    *time.Time
	Status     Status
	Note       *string
	ApproverID *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join fields
	UserName *string
}

type Breaktime struct {
	ID           string
	AttendanceID string
	UserID       string
	StartTime    time.Time
	EndTime      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BreakIntervals converts break rows to worktime intervals.
func BreakIntervals(breaks []Breaktime) []worktime.Interval {
	intervals := make([]worktime.Interval, 0, len(breaks))
	for _, b := range breaks {
		intervals = append(intervals, worktime.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return intervals
}

// DayStatus is the derived display state of "today", recomputed on
// every view and never stored.
type DayStatus string

const (
	DayInitial  DayStatus = "initial"
	DayWorking  DayStatus = "working"
	DayOnBreak  DayStatus = "onBreak"
	DayFinished DayStatus = "finished"
)

// DeriveDayStatus projects a record (possibly absent) and the presence
// of an open break interval onto the display state.
func DeriveDayStatus(att *Attendance, hasOpenBreak bool) DayStatus {
	if att == nil {
		return DayInitial
	}
	if att.EndTime != nil {
		return DayFinished
	}
	if hasOpenBreak {
		return DayOnBreak
	}
	return DayWorking
}
