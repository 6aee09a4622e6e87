package attendance

import "context"

// AttendanceService is the daily clock plus the correction/approval
// workflow. Identity comes from the JWT claims in ctx.
type AttendanceService interface {
	// TodayStatus projects today's record onto the display state.
	TodayStatus(ctx context.Context) (DayStatusResponse, error)

	// ClockIn creates today's record with start = now.
	ClockIn(ctx context.Context) (ClockResponse, error)

	// ClockOut stamps end = now on today's open record.
	ClockOut(ctx context.Context) (ClockResponse, error)

	// BreakStart opens a break interval on today's record.
	BreakStart(ctx context.Context) (ClockResponse, error)

	// BreakEnd closes the open break interval.
	BreakEnd(ctx context.Context) (ClockResponse, error)

	// GetDetail returns a record with breaks; non-admins may only see
	// their own records.
	GetDetail(ctx context.Context, id string) (DetailResponse, error)

	// SubmitCorrection overwrites a day's times, note, and breaks in
	// one transaction and flips status to Unapproved.
	SubmitCorrection(ctx context.Context, req CorrectionRequest) (DetailResponse, error)

	// ListRequests returns the correction queue. Non-admins see only
	// their own submissions.
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestListItem, error)

	// Approve transitions a record to Approved. Idempotent: approving
	// an approved record succeeds without change.
	Approve(ctx context.Context, id string) (DetailResponse, error)
}
