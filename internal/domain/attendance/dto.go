package attendance

import (
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

// BreakInput is one break row of a correction form. Rows with either
// end missing are ignored on save; fully empty rows are how the form
// deletes a break.
type BreakInput struct {
	Start *string `json:"start,omitempty"` // HH:MM
	End   *string `json:"end,omitempty"`   // HH:MM
}

// CorrectionRequest resubmits a day's times, note, and breaks. The
// whole break list replaces the stored one.
type CorrectionRequest struct {
	ID        string       `json:"-"`
	StartTime string       `json:"start_time"`         // HH:MM, required
	EndTime   *string      `json:"end_time,omitempty"` // HH:MM, after start
	Note      string       `json:"note"`               // required, <= 500 chars
	Breaks    []BreakInput `json:"breaks,omitempty"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if _, ok := validator.IsValidTimeHM(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && *r.EndTime != "" {
		if _, ok := validator.IsValidTimeHM(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		} else if *r.EndTime <= r.StartTime {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		}
	}

	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	} else if len([]rune(r.Note)) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	for i, b := range r.Breaks {
		field := "breaks." + validator.Itoa(i)
		start, end := "", ""
		if b.Start != nil {
			start = *b.Start
		}
		if b.End != nil {
			end = *b.End
		}

		if start != "" {
			if _, ok := validator.IsValidTimeHM(start); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".start",
					Message: "break start must be in HH:MM format",
				})
				continue
			}
		}
		if end != "" {
			if _, ok := validator.IsValidTimeHM(end); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".end",
					Message: "break end must be in HH:MM format",
				})
				continue
			}
		}

		if start != "" && end != "" {
			if end <= start {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".end",
					Message: "break end must be after break start",
				})
			}
			// Cross-field rule: a break may not run past clock-out.
			if r.EndTime != nil && *r.EndTime != "" && end > *r.EndTime {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".end",
					Message: "break end must not exceed end_time",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ClosedBreaks returns only the rows with both ends filled, the ones a
// correction actually persists.
func (r *CorrectionRequest) ClosedBreaks() []BreakInput {
	var closed []BreakInput
	for _, b := range r.Breaks {
		if b.Start != nil && *b.Start != "" && b.End != nil && *b.End != "" {
			closed = append(closed, b)
		}
	}
	return closed
}

type BreakResponse struct {
	ID        string  `json:"id"`
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   *string `json:"end_time,omitempty"`
}

type DetailResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
	StartTime   *string         `json:"start_time,omitempty"`
	EndTime     *string         `json:"end_time,omitempty"`
	Note        string          `json:"note"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	IsEditable  bool            `json:"is_editable"`
	Breaks      []BreakResponse `json:"breaks"`
}

type DayStatusResponse struct {
	Status DayStatus       `json:"status"`
	Date   string          `json:"date"` // YYYY-MM-DD
	Today  *DetailResponse `json:"today,omitempty"`
}

type ClockResponse struct {
	Message string          `json:"message"`
	Status  DayStatus       `json:"status"`
	Today   *DetailResponse `json:"today,omitempty"`
}

// RequestListItem is one row of the correction-request queue.
type RequestListItem struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Date        string `json:"date"`
	Note        string `json:"note"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	UpdatedAt   string `json:"updated_at"`
}

// RequestFilter selects a status bucket of the approval queue.
// "pending" maps to Unapproved, "approved" to Approved; anything else
// is rejected at validation.
type RequestFilter struct {
	Status string  `json:"status"`
	UserID *string `json:"-"` // nil = all users (admin scope)
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status == "" {
		f.Status = "pending"
	}
	if !validator.IsInSlice(f.Status, []string{"pending", "approved"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TargetStatus resolves the filter keyword to the stored status value.
func (f *RequestFilter) TargetStatus() Status {
	if f.Status == "approved" {
		return StatusApproved
	}
	return StatusUnapproved
}

func formatHMPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

// ToDetailResponse builds the detail view of a record with its breaks
// already sorted by start time. isAdmin lifts the Unapproved edit lock.
func ToDetailResponse(att Attendance, breaks []Breaktime, isAdmin bool) DetailResponse {
	note := ""
	if att.Note != nil {
		note = *att.Note
	}
	userName := ""
	if att.UserName != nil {
		userName = *att.UserName
	}

	breakResponses := make([]BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		start := b.StartTime.Format("15:04")
		breakResponses = append(breakResponses, BreakResponse{
			ID:        b.ID,
			StartTime: start,
			EndTime:   formatHMPtr(b.EndTime),
		})
	}

	return DetailResponse{
		ID:          att.ID,
		UserID:      att.UserID,
		UserName:    userName,
		Date:        att.Date.Format("2006-01-02"),
		StartTime:   formatHMPtr(att.StartTime),
		EndTime:     formatHMPtr(att.EndTime),
		Note:        note,
		Status:      att.Status.String(),
		StatusLabel: att.Status.Label(),
		IsEditable:  isAdmin || att.Status.CanSelfCorrect(),
		Breaks:      breakResponses,
	}
}

// ToRequestListItem builds one approval-queue row.
func ToRequestListItem(att Attendance) RequestListItem {
	note := ""
	if att.Note != nil {
		note = *att.Note
	}
	userName := ""
	if att.UserName != nil {
		userName = *att.UserName
	}
	return RequestListItem{
		ID:          att.ID,
		UserID:      att.UserID,
		UserName:    userName,
		Date:        att.Date.Format("2006-01-02"),
		Note:        note,
		Status:      att.Status.String(),
		StatusLabel: att.Status.Label(),
		UpdatedAt:   att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
