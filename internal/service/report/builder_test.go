package report

import (
	"strings"
	"testing"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDisplayDate(t *testing.T) {
	// 2026-04-15 is a Wednesday.
	assert.Equal(t, "04/15(水)", displayDate(time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)))
	// 2026-04-05 is a Sunday.
	assert.Equal(t, "04/05(日)", displayDate(time.Date(2026, 4, 5, 0, 0, 0, 0, time.Local)))
}

func TestBuildDayRow(t *testing.T) {
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	today := time.Date(2026, 4, 20, 0, 0, 0, 0, time.Local)

	t.Run("no record still yields a row", func(t *testing.T) {
		row := buildDayRow(date, today, nil, nil)
		assert.Equal(t, "04/15(水)", row.Date)
		assert.Equal(t, "2026-04-15", row.RawDate)
		assert.Nil(t, row.ID)
		assert.Nil(t, row.Start)
		assert.Nil(t, row.End)
		assert.Nil(t, row.Break)
		assert.Nil(t, row.Total)
		assert.False(t, row.IsFuture)
	})

	t.Run("future day", func(t *testing.T) {
		row := buildDayRow(today.AddDate(0, 0, 1), today, nil, nil)
		assert.True(t, row.IsFuture)
	})

	t.Run("full day with one break", func(t *testing.T) {
		start := date.Add(9 * time.Hour)
		end := date.Add(18 * time.Hour)
		breakStart := date.Add(12 * time.Hour)
		breakEnd := date.Add(13 * time.Hour)

		att := attendance.Attendance{ID: "att-1", StartTime: &start, EndTime: &end}
		breaks := []attendance.Breaktime{{StartTime: breakStart, EndTime: &breakEnd}}

		row := buildDayRow(date, today, &att, breaks)
		assert.Equal(t, "09:00", *row.Start)
		assert.Equal(t, "18:00", *row.End)
		assert.Equal(t, "1:00", *row.Break)
		assert.Equal(t, "8:00", *row.Total)
	})

	t.Run("open day has break total but no net total", func(t *testing.T) {
		start := date.Add(9 * time.Hour)
		att := attendance.Attendance{ID: "att-1", StartTime: &start}

		row := buildDayRow(date, today, &att, nil)
		assert.Equal(t, "09:00", *row.Start)
		assert.Nil(t, row.End)
		assert.Equal(t, "0:00", *row.Break)
		assert.Nil(t, row.Total)
	})

	t.Run("open break contributes nothing", func(t *testing.T) {
		start := date.Add(9 * time.Hour)
		end := date.Add(18 * time.Hour)
		att := attendance.Attendance{ID: "att-1", StartTime: &start, EndTime: &end}
		breaks := []attendance.Breaktime{{StartTime: date.Add(12 * time.Hour)}}

		row := buildDayRow(date, today, &att, breaks)
		assert.Equal(t, "0:00", *row.Break)
		assert.Equal(t, "9:00", *row.Total)
	})
}

func TestBuildRosterRow(t *testing.T) {
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	start := date.Add(9 * time.Hour)
	end := date.Add(18 * time.Hour)

	t.Run("absent user", func(t *testing.T) {
		row := buildRosterRow("u1", "田中太郎", nil, nil)
		assert.Equal(t, "田中太郎", row.Name)
		assert.Nil(t, row.ID)
		assert.Nil(t, row.Break)
	})

	t.Run("zero break minutes stay empty", func(t *testing.T) {
		att := attendance.Attendance{ID: "a1", StartTime: &start, EndTime: &end}
		row := buildRosterRow("u1", "田中太郎", &att, nil)
		assert.Nil(t, row.Break)
		assert.Equal(t, "9:00", *row.Total)
	})
}

func TestMonthBounds(t *testing.T) {
	first, last := monthBounds(2026, 2)
	assert.Equal(t, "2026-02-01", first.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", last.Format("2006-01-02"))

	first, last = monthBounds(2024, 2)
	assert.Equal(t, "2024-02-29", last.Format("2006-01-02"))
	assert.Equal(t, "2024-02-01", first.Format("2006-01-02"))
}

func TestAdjacentMonths(t *testing.T) {
	prevYear, prevMonth, nextYear, nextMonth := adjacentMonths(2026, 1)
	assert.Equal(t, 2025, prevYear)
	assert.Equal(t, 12, prevMonth)
	assert.Equal(t, 2026, nextYear)
	assert.Equal(t, 2, nextMonth)

	prevYear, prevMonth, nextYear, nextMonth = adjacentMonths(2025, 12)
	assert.Equal(t, 2025, prevYear)
	assert.Equal(t, 11, prevMonth)
	assert.Equal(t, 2026, nextYear)
	assert.Equal(t, 1, nextMonth)
}

func TestBuildCSV(t *testing.T) {
	days := []report.DayRow{
		{
			Date:  "04/01(水)",
			Start: strPtr("09:00"),
			End:   strPtr("18:00"),
			Break: strPtr("1:00"),
			Total: strPtr("8:00"),
		},
		{
			Date:  "04/02(木)",
			Start: strPtr("09:00"),
			Break: strPtr("0:00"),
		},
		{Date: "04/03(金)"},
	}

	content, err := buildCSV(days)
	require.NoError(t, err)

	// UTF-8 BOM prefix for spreadsheet tools.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "日付,出勤,退勤,休憩,合計", lines[0])
	assert.Equal(t, "04/01(水),09:00,18:00,1:00,8:00", lines[1])
	// Zero break totals render as the placeholder in the download.
	assert.Equal(t, "04/02(木),09:00,-,-,-", lines[2])
	assert.Equal(t, "04/03(金),-,-,-,-", lines[3])
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "田中太郎_2026年04月_勤怠.csv", csvFilename("田中太郎", 2026, 4))
	assert.Equal(t, "管理者_2025年12月_勤怠.csv", csvFilename("管理者", 2025, 12))
}
