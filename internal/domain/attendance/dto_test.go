package attendance

import (
	"testing"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCorrectionRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CorrectionRequest
		wantErr   bool
		wantField string
	}{
		{
			name: "valid full day",
			req: CorrectionRequest{
				StartTime: "09:00",
				EndTime:   strPtr("18:00"),
				Note:      "通常勤務",
				Breaks: []BreakInput{
					{Start: strPtr("12:00"), End: strPtr("13:00")},
				},
			},
		},
		{
			name: "valid without end time",
			req: CorrectionRequest{
				StartTime: "09:00",
				Note:      "打刻漏れのため",
			},
		},
		{
			name:      "missing start time",
			req:       CorrectionRequest{Note: "x"},
			wantErr:   true,
			wantField: "start_time",
		},
		{
			name:      "malformed start time",
			req:       CorrectionRequest{StartTime: "9時", Note: "x"},
			wantErr:   true,
			wantField: "start_time",
		},
		{
			name: "end before start",
			req: CorrectionRequest{
				StartTime: "18:00",
				EndTime:   strPtr("09:00"),
				Note:      "x",
			},
			wantErr:   true,
			wantField: "end_time",
		},
		{
			name:      "non-padded start time",
			req:       CorrectionRequest{StartTime: "9:00", Note: "x"},
			wantErr:   true,
			wantField: "start_time",
		},
		{
			name: "non-padded end time cannot slip past the ordering check",
			req: CorrectionRequest{
				StartTime: "09:00",
				EndTime:   strPtr("8:00"),
				Note:      "x",
			},
			wantErr:   true,
			wantField: "end_time",
		},
		{
			name: "missing note",
			req: CorrectionRequest{
				StartTime: "09:00",
			},
			wantErr:   true,
			wantField: "note",
		},
		{
			name: "note too long",
			req: CorrectionRequest{
				StartTime: "09:00",
				Note:      string(make([]rune, 501)),
			},
			wantErr:   true,
			wantField: "note",
		},
		{
			name: "break end before break start",
			req: CorrectionRequest{
				StartTime: "09:00",
				EndTime:   strPtr("18:00"),
				Note:      "x",
				Breaks: []BreakInput{
					{Start: strPtr("13:00"), End: strPtr("12:00")},
				},
			},
			wantErr:   true,
			wantField: "breaks.0.end",
		},
		{
			name: "break end past clock out",
			req: CorrectionRequest{
				StartTime: "09:00",
				EndTime:   strPtr("18:00"),
				Note:      "x",
				Breaks: []BreakInput{
					{Start: strPtr("17:00"), End: strPtr("19:00")},
				},
			},
			wantErr:   true,
			wantField: "breaks.0.end",
		},
		{
			name: "half-open break rows are tolerated",
			req: CorrectionRequest{
				StartTime: "09:00",
				Note:      "x",
				Breaks: []BreakInput{
					{Start: strPtr("12:00")},
					{},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}

func TestCorrectionRequest_ClosedBreaks(t *testing.T) {
	req := CorrectionRequest{
		Breaks: []BreakInput{
			{Start: strPtr("12:00"), End: strPtr("13:00")},
			{Start: strPtr("15:00")},
			{End: strPtr("16:00")},
			{},
			{Start: strPtr(""), End: strPtr("")},
		},
	}

	closed := req.ClosedBreaks()
	require.Len(t, closed, 1)
	assert.Equal(t, "12:00", *closed[0].Start)
	assert.Equal(t, "13:00", *closed[0].End)
}

func TestRequestFilter_Validate(t *testing.T) {
	f := RequestFilter{}
	assert.NoError(t, f.Validate())
	assert.Equal(t, "pending", f.Status)
	assert.Equal(t, StatusUnapproved, f.TargetStatus())

	f = RequestFilter{Status: "approved"}
	assert.NoError(t, f.Validate())
	assert.Equal(t, StatusApproved, f.TargetStatus())

	f = RequestFilter{Status: "rejected"}
	assert.Error(t, f.Validate())
}

func TestToDetailResponse(t *testing.T) {
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	start := date.Add(9 * time.Hour)
	end := date.Add(18 * time.Hour)
	breakEnd := date.Add(13 * time.Hour)

	att := Attendance{
		ID:        "att-1",
		UserID:    "user-1",
		Date:      date,
		StartTime: &start,
		EndTime:   &end,
		Status:    StatusUnapproved,
		Note:      strPtr("残業の要請があったため"),
		UserName:  strPtr("田中太郎"),
	}
	breaks := []Breaktime{
		{ID: "bt-1", StartTime: date.Add(12 * time.Hour), EndTime: &breakEnd},
	}

	resp := ToDetailResponse(att, breaks, false)

	assert.Equal(t, "2026-04-15", resp.Date)
	assert.Equal(t, "09:00", *resp.StartTime)
	assert.Equal(t, "18:00", *resp.EndTime)
	assert.Equal(t, "unapproved", resp.Status)
	assert.Equal(t, "承認前", resp.StatusLabel)
	assert.Equal(t, "田中太郎", resp.UserName)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, "12:00", resp.Breaks[0].StartTime)
	assert.Equal(t, "13:00", *resp.Breaks[0].EndTime)

	// Unapproved locks self-correction but not admin edits.
	assert.False(t, resp.IsEditable)
	assert.True(t, ToDetailResponse(att, breaks, true).IsEditable)

	att.Status = StatusEntered
	assert.True(t, ToDetailResponse(att, breaks, false).IsEditable)
}
