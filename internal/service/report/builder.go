package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/report"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/worktime"
)

var weekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// displayDate renders a date as "MM/DD(曜)" with the Japanese weekday.
func displayDate(date time.Time) string {
	return fmt.Sprintf("%02d/%02d(%s)", date.Month(), date.Day(), weekdayLabels[date.Weekday()])
}

// dayTotals sums closed break minutes and derives the net worked total.
// The break total is always present when a record exists; the net total
// only when the day has both ends and the subtraction is not negative.
func dayTotals(att attendance.Attendance, breaks []attendance.Breaktime) (breakMinutes int, netMinutes *int) {
	breakMinutes = worktime.SumClosed(attendance.BreakIntervals(breaks))
	if att.StartTime == nil {
		return breakMinutes, nil
	}
	netMinutes = worktime.NetWorked(*att.StartTime, att.EndTime, breakMinutes)
	return breakMinutes, netMinutes
}

// buildDayRow renders one calendar day. att is nil for days without a
// record, which still produce a row with every value absent.
func buildDayRow(date, today time.Time, att *attendance.Attendance, breaks []attendance.Breaktime) report.DayRow {
	row := report.DayRow{
		Date:     displayDate(date),
		RawDate:  date.Format("2006-01-02"),
		IsFuture: date.After(today),
	}
	if att == nil {
		return row
	}

	row.ID = &att.ID
	if att.StartTime != nil {
		s := att.StartTime.Format("15:04")
		row.Start = &s
	}
	if att.EndTime != nil {
		e := att.EndTime.Format("15:04")
		row.End = &e
	}

	breakMinutes, netMinutes := dayTotals(*att, breaks)
	b := worktime.FormatHM(breakMinutes)
	row.Break = &b
	if netMinutes != nil {
		t := worktime.FormatHM(*netMinutes)
		row.Total = &t
	}
	return row
}

// buildRosterRow renders one user's line of the admin daily view. The
// break cell stays empty at zero minutes, unlike the monthly calendar.
func buildRosterRow(userID, name string, att *attendance.Attendance, breaks []attendance.Breaktime) report.RosterRow {
	row := report.RosterRow{UserID: userID, Name: name}
	if att == nil {
		return row
	}

	row.ID = &att.ID
	if att.StartTime != nil {
		s := att.StartTime.Format("15:04")
		row.Start = &s
	}
	if att.EndTime != nil {
		e := att.EndTime.Format("15:04")
		row.End = &e
	}

	breakMinutes, netMinutes := dayTotals(*att, breaks)
	if breakMinutes > 0 {
		b := worktime.FormatHM(breakMinutes)
		row.Break = &b
	}
	if netMinutes != nil {
		t := worktime.FormatHM(*netMinutes)
		row.Total = &t
	}
	return row
}

func monthBounds(year, month int) (first, last time.Time) {
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last = first.AddDate(0, 1, -1)
	return first, last
}

func adjacentMonths(year, month int) (prevYear, prevMonth, nextYear, nextMonth int) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return prev.Year(), int(prev.Month()), next.Year(), int(next.Month())
}

const csvPlaceholder = "-"

// buildCSV renders the month's rows as CSV bytes with a UTF-8 BOM
// prefix. Zero break or net totals render as the placeholder, matching
// the download format of the monthly screen.
func buildCSV(days []report.DayRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"日付", "出勤", "退勤", "休憩", "合計"}); err != nil {
		return nil, err
	}

	for _, day := range days {
		record := []string{
			day.Date,
			csvCell(day.Start),
			csvCell(day.End),
			csvCell(day.Break),
			csvCell(day.Total),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvCell(v *string) string {
	if v == nil || *v == "" || *v == "0:00" {
		return csvPlaceholder
	}
	return *v
}

func csvFilename(userName string, year, month int) string {
	return fmt.Sprintf("%s_%d年%02d月_勤怠.csv", userName, year, month)
}
