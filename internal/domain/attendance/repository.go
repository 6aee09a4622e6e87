package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new record. A duplicate (user_id, date) pair is
	// rejected by the database and surfaces as ErrAlreadyClockedIn, so
	// two racing clock-ins cannot both succeed.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record with the owner's name joined in.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns nil (no error) when the user has no
	// record for the date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, att Attendance) error

	// ListByUserAndRange returns the user's records with date in
	// [from, to], ascending by date.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListByStatus returns records in a status bucket, most recently
	// touched first. userID narrows to one user's own requests.
	ListByStatus(ctx context.Context, status Status, userID *string) ([]Attendance, error)
}

type BreaktimeRepository interface {
	Create(ctx context.Context, bt Breaktime) (Breaktime, error)

	Update(ctx context.Context, bt Breaktime) error

	// GetOpen returns the break with no end time for a record, or nil.
	// At most one can exist per record.
	GetOpen(ctx context.Context, attendanceID string) (*Breaktime, error)

	// ListByAttendance returns a record's breaks sorted by start time.
	ListByAttendance(ctx context.Context, attendanceID string) ([]Breaktime, error)

	// ListByAttendanceIDs batches break lookup for calendar building,
	// keyed by attendance id, each list sorted by start time.
	ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]Breaktime, error)

	// DeleteByAttendance removes every break of a record. Corrections
	// replace the whole list inside one transaction.
	DeleteByAttendance(ctx context.Context, attendanceID string) error
}
