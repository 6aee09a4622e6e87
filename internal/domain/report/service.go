package report

import (
	"context"
	"time"
)

// ReportService builds read-side aggregations of attendance data.
// Month navigation is unbounded: a distant month simply yields a full
// set of empty rows.
type ReportService interface {
	// BuildMonth returns one row per calendar day of the user's month.
	BuildMonth(ctx context.Context, q MonthQuery) (MonthCalendar, error)

	// BuildDailyRoster returns one row per known user for a date,
	// sorted by user name.
	BuildDailyRoster(ctx context.Context, date time.Time) (DailyRoster, error)

	// ExportMonthCSV renders a user's month as a CSV download.
	ExportMonthCSV(ctx context.Context, q MonthQuery) (CSVExport, error)
}
