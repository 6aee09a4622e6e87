package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "entered", StatusEntered.String())
	assert.Equal(t, "unapproved", StatusUnapproved.String())
	assert.Equal(t, "approved", StatusApproved.String())
	assert.Equal(t, "rejected", StatusRejected.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "入力済", StatusEntered.Label())
	assert.Equal(t, "承認前", StatusUnapproved.Label())
	assert.Equal(t, "承認済", StatusApproved.Label())
	assert.Equal(t, "差戻し", StatusRejected.Label())
}

func TestStatus_CanSelfCorrect(t *testing.T) {
	assert.True(t, StatusEntered.CanSelfCorrect())
	assert.False(t, StatusUnapproved.CanSelfCorrect())
	assert.True(t, StatusApproved.CanSelfCorrect())
	assert.True(t, StatusRejected.CanSelfCorrect())
}

func TestDeriveDayStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		att          *Attendance
		hasOpenBreak bool
		want         DayStatus
	}{
		{
			name: "no record",
			att:  nil,
			want: DayInitial,
		},
		{
			name: "clocked in only",
			att:  &Attendance{StartTime: &now},
			want: DayWorking,
		},
		{
			name:         "open break",
			att:          &Attendance{StartTime: &now},
			hasOpenBreak: true,
			want:         DayOnBreak,
		},
		{
			name: "clocked out",
			att:  &Attendance{StartTime: &now, EndTime: &now},
			want: DayFinished,
		},
		{
			name: "clocked out wins over break flag",
			att:  &Attendance{StartTime: &now, EndTime: &now},
			// An open break should be impossible once end is set, but
			// the projection still has to pick a single state.
			hasOpenBreak: true,
			want:         DayFinished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDayStatus(tt.att, tt.hasOpenBreak))
		})
	}
}

func TestBreakIntervals(t *testing.T) {
	start := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	intervals := BreakIntervals([]Breaktime{
		{StartTime: start, EndTime: &end},
		{StartTime: end},
	})

	assert.Len(t, intervals, 2)
	assert.Equal(t, start, intervals[0].Start)
	assert.Equal(t, &end, intervals[0].End)
	assert.Nil(t, intervals[1].End)
}
