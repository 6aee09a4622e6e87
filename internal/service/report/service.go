package report

import (
	"context"
	"sort"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/report"
	"github.com/kintai-app/kintai-backend-go/internal/domain/user"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/clock"
)

type ReportServiceImpl struct {
	clk clock.Clock
	user.UserRepository
	attendance.AttendanceRepository
	attendance.BreaktimeRepository
}

func NewReportService(clk clock.Clock, userRepository user.UserRepository, attendanceRepository attendance.AttendanceRepository, breaktimeRepository attendance.BreaktimeRepository) report.ReportService {
	return &ReportServiceImpl{
		clk:                  clk,
		UserRepository:       userRepository,
		AttendanceRepository: attendanceRepository,
		BreaktimeRepository:  breaktimeRepository,
	}
}

// monthDays loads a user's records for the month and renders one row
// per calendar day.
func (s *ReportServiceImpl) monthDays(ctx context.Context, q report.MonthQuery) ([]report.DayRow, error) {
	first, last := monthBounds(q.Year, q.Month)

	records, err := s.AttendanceRepository.ListByUserAndRange(ctx, q.UserID, first, last)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]attendance.Attendance, len(records))
	ids := make([]string, 0, len(records))
	for _, att := range records {
		byDate[att.Date.Format("2006-01-02")] = att
		ids = append(ids, att.ID)
	}

	breaksByID, err := s.BreaktimeRepository.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := s.clk.Today()
	days := make([]report.DayRow, 0, last.Day())
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		var att *attendance.Attendance
		var breaks []attendance.Breaktime
		if record, ok := byDate[date.Format("2006-01-02")]; ok {
			att = &record
			breaks = breaksByID[record.ID]
		}
		days = append(days, buildDayRow(date, today, att, breaks))
	}
	return days, nil
}

// BuildMonth implements report.ReportService.
func (s *ReportServiceImpl) BuildMonth(ctx context.Context, q report.MonthQuery) (report.MonthCalendar, error) {
	if err := q.Validate(); err != nil {
		return report.MonthCalendar{}, err
	}

	owner, err := s.UserRepository.GetByID(ctx, q.UserID)
	if err != nil {
		return report.MonthCalendar{}, err
	}

	days, err := s.monthDays(ctx, q)
	if err != nil {
		return report.MonthCalendar{}, err
	}

	prevYear, prevMonth, nextYear, nextMonth := adjacentMonths(q.Year, q.Month)
	return report.MonthCalendar{
		UserID:    owner.ID,
		UserName:  owner.Name,
		Year:      q.Year,
		Month:     q.Month,
		PrevYear:  prevYear,
		PrevMonth: prevMonth,
		NextYear:  nextYear,
		NextMonth: nextMonth,
		Days:      days,
	}, nil
}

// BuildDailyRoster implements report.ReportService.
func (s *ReportServiceImpl) BuildDailyRoster(ctx context.Context, date time.Time) (report.DailyRoster, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return report.DailyRoster{}, err
	}

	rows := make([]report.RosterRow, 0, len(users))
	for _, u := range users {
		att, err := s.AttendanceRepository.GetByUserAndDate(ctx, u.ID, date)
		if err != nil {
			return report.DailyRoster{}, err
		}

		var breaks []attendance.Breaktime
		if att != nil {
			breaks, err = s.BreaktimeRepository.ListByAttendance(ctx, att.ID)
			if err != nil {
				return report.DailyRoster{}, err
			}
		}
		rows = append(rows, buildRosterRow(u.ID, u.Name, att, breaks))
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	return report.DailyRoster{
		Date: date.Format("2006-01-02"),
		Rows: rows,
	}, nil
}

// ExportMonthCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthCSV(ctx context.Context, q report.MonthQuery) (report.CSVExport, error) {
	if err := q.Validate(); err != nil {
		return report.CSVExport{}, err
	}

	owner, err := s.UserRepository.GetByID(ctx, q.UserID)
	if err != nil {
		return report.CSVExport{}, err
	}

	days, err := s.monthDays(ctx, q)
	if err != nil {
		return report.CSVExport{}, err
	}

	content, err := buildCSV(days)
	if err != nil {
		return report.CSVExport{}, err
	}

	return report.CSVExport{
		Filename: csvFilename(owner.Name, q.Year, q.Month),
		Content:  content,
	}, nil
}
