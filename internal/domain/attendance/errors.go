package attendance

import "errors"

// Clock action errors. Each maps to a user-facing conflict message,
// never a server fault.
var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("not clocked in yet")
	ErrOnBreak           = errors.New("on break: end the break before clocking out")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrAlreadyOnBreak    = errors.New("already on break")
	ErrNoOpenBreak       = errors.New("no break in progress")
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotOwner           = errors.New("attendance record belongs to another user")
	// ErrPendingApproval blocks a non-admin owner from re-submitting a
	// correction while the previous one awaits review.
	ErrPendingApproval = errors.New("correction pending approval, record is locked")
)
