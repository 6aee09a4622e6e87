package report

import "github.com/kintai-app/kintai-backend-go/internal/pkg/validator"

// DayRow is one calendar day of a user's month. Days without a record
// keep every value nil so the month always has a full set of rows.
type DayRow struct {
	Date     string  `json:"date"`     // MM/DD(曜) display form
	RawDate  string  `json:"raw_date"` // YYYY-MM-DD
	ID       *string `json:"id"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Break    *string `json:"break"`
	Total    *string `json:"total"`
	IsFuture bool    `json:"is_future"`
}

type MonthCalendar struct {
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name"`
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	PrevYear  int      `json:"prev_year"`
	PrevMonth int      `json:"prev_month"`
	NextYear  int      `json:"next_year"`
	NextMonth int      `json:"next_month"`
	Days      []DayRow `json:"days"`
}

// RosterRow is one user's aggregation for the admin daily view.
type RosterRow struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	ID     *string `json:"id"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
	Break  *string `json:"break"`
	Total  *string `json:"total"`
}

type DailyRoster struct {
	Date string      `json:"date"` // YYYY-MM-DD
	Rows []RosterRow `json:"rows"`
}

// CSVExport carries the rendered file. Content starts with a UTF-8 BOM
// so spreadsheet tools pick up the encoding.
type CSVExport struct {
	Filename string
	Content  []byte
}

type MonthQuery struct {
	UserID string
	Year   int
	Month  int
}

func (q *MonthQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if q.Year < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
