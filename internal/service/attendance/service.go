package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db  *database.DB
	clk clock.Clock
	attendance.AttendanceRepository
	attendance.BreaktimeRepository
}

func NewAttendanceService(db *database.DB, clk clock.Clock, attendanceRepository attendance.AttendanceRepository, breaktimeRepository attendance.BreaktimeRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		clk:                  clk,
		AttendanceRepository: attendanceRepository,
		BreaktimeRepository:  breaktimeRepository,
	}
}

// callerFromContext extracts the authenticated user's id and admin flag
// from the JWT claims in ctx.
func callerFromContext(ctx context.Context) (userID string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false, fmt.Errorf("user_id not found in token")
	}

	isAdmin, _ = claims["is_admin"].(bool)
	return userID, isAdmin, nil
}

// today returns the caller's record for the current date, nil when the
// user has not clocked in yet.
func (s *AttendanceServiceImpl) today(ctx context.Context, userID string) (*attendance.Attendance, error) {
	return s.AttendanceRepository.GetByUserAndDate(ctx, userID, s.clk.Today())
}

func (s *AttendanceServiceImpl) dayStatus(ctx context.Context, att *attendance.Attendance) (attendance.DayStatus, error) {
	hasOpenBreak := false
	if att != nil && att.EndTime == nil {
		open, err := s.BreaktimeRepository.GetOpen(ctx, att.ID)
		if err != nil {
			return "", err
		}
		hasOpenBreak = open != nil
	}
	return attendance.DeriveDayStatus(att, hasOpenBreak), nil
}

func (s *AttendanceServiceImpl) detail(ctx context.Context, att attendance.Attendance, isAdmin bool) (attendance.DetailResponse, error) {
	breaks, err := s.BreaktimeRepository.ListByAttendance(ctx, att.ID)
	if err != nil {
		return attendance.DetailResponse{}, err
	}
	return attendance.ToDetailResponse(att, breaks, isAdmin), nil
}

func (s *AttendanceServiceImpl) clockResponse(ctx context.Context, userID string, isAdmin bool, message string) (attendance.ClockResponse, error) {
	att, err := s.today(ctx, userID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	status, err := s.dayStatus(ctx, att)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	resp := attendance.ClockResponse{Message: message, Status: status}
	if att != nil {
		d, err := s.detail(ctx, *att, isAdmin)
		if err != nil {
			return attendance.ClockResponse{}, err
		}
		resp.Today = &d
	}
	return resp, nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context) (attendance.DayStatusResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	att, err := s.today(ctx, userID)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	status, err := s.dayStatus(ctx, att)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	resp := attendance.DayStatusResponse{
		Status: status,
		Date:   s.clk.Today().Format("2006-01-02"),
	}
	if att != nil {
		d, err := s.detail(ctx, *att, isAdmin)
		if err != nil {
			return attendance.DayStatusResponse{}, err
		}
		resp.Today = &d
	}
	return resp, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.ClockResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	existing, err := s.today(ctx, userID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if existing != nil {
		return attendance.ClockResponse{}, attendance.ErrAlreadyClockedIn
	}

	now := s.clk.Now()
	_, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:    userID,
		Date:      s.clk.Today(),
		StartTime: &now,
	})
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	return s.clockResponse(ctx, userID, isAdmin, "出勤打刻が完了しました")
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.ClockResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	att, err := s.today(ctx, userID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if att == nil {
		return attendance.ClockResponse{}, attendance.ErrNotClockedIn
	}

	open, err := s.BreaktimeRepository.GetOpen(ctx, att.ID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if open != nil {
		return attendance.ClockResponse{}, attendance.ErrOnBreak
	}
	if att.EndTime != nil {
		return attendance.ClockResponse{}, attendance.ErrAlreadyClockedOut
	}

	now := s.clk.Now()
	att.EndTime = &now
	if err := s.AttendanceRepository.Update(ctx, *att); err != nil {
		return attendance.ClockResponse{}, err
	}

	return s.clockResponse(ctx, userID, isAdmin, "退勤打刻が完了しました")
}

// BreakStart implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.ClockResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	att, err := s.today(ctx, userID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if att == nil {
		return attendance.ClockResponse{}, attendance.ErrNotClockedIn
	}

	open, err := s.BreaktimeRepository.GetOpen(ctx, att.ID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if open != nil {
		return attendance.ClockResponse{}, attendance.ErrAlreadyOnBreak
	}

	_, err = s.BreaktimeRepository.Create(ctx, attendance.Breaktime{
		AttendanceID: att.ID,
		UserID:       userID,
		StartTime:    s.clk.Now(),
	})
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	return s.clockResponse(ctx, userID, isAdmin, "休憩開始")
}

// BreakEnd implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.ClockResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	att, err := s.today(ctx, userID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if att == nil {
		return attendance.ClockResponse{}, attendance.ErrNoOpenBreak
	}

	open, err := s.BreaktimeRepository.GetOpen(ctx, att.ID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if open == nil {
		return attendance.ClockResponse{}, attendance.ErrNoOpenBreak
	}

	now := s.clk.Now()
	open.EndTime = &now
	if err := s.BreaktimeRepository.Update(ctx, *open); err != nil {
		return attendance.ClockResponse{}, err
	}

	return s.clockResponse(ctx, userID, isAdmin, "休憩終了")
}

// GetDetail implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDetail(ctx context.Context, id string) (attendance.DetailResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	if !isAdmin && att.UserID != userID {
		return attendance.DetailResponse{}, attendance.ErrNotOwner
	}

	return s.detail(ctx, att, isAdmin)
}

// onDate pins an HH:MM wall-clock string onto the record's date.
func onDate(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// SubmitCorrection implements attendance.AttendanceService. The record
// update and the break-list replacement commit or roll back together.
func (s *AttendanceServiceImpl) SubmitCorrection(ctx context.Context, req attendance.CorrectionRequest) (attendance.DetailResponse, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.DetailResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	if !isAdmin {
		if att.UserID != userID {
			return attendance.DetailResponse{}, attendance.ErrNotOwner
		}
		if !att.Status.CanSelfCorrect() {
			return attendance.DetailResponse{}, attendance.ErrPendingApproval
		}
	}

	start, err := onDate(att.Date, req.StartTime)
	if err != nil {
		return attendance.DetailResponse{}, fmt.Errorf("failed to parse start_time: %w", err)
	}
	att.StartTime = &start

	att.EndTime = nil
	if req.EndTime != nil && *req.EndTime != "" {
		end, err := onDate(att.Date, *req.EndTime)
		if err != nil {
			return attendance.DetailResponse{}, fmt.Errorf("failed to parse end_time: %w", err)
		}
		att.EndTime = &end
	}

	note := req.Note
	att.Note = &note
	att.Status = attendance.StatusUnapproved

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.AttendanceRepository.Update(txCtx, att); err != nil {
			return err
		}

		if err := s.BreaktimeRepository.DeleteByAttendance(txCtx, att.ID); err != nil {
			return err
		}

		for _, b := range req.ClosedBreaks() {
			bStart, err := onDate(att.Date, *b.Start)
			if err != nil {
				return fmt.Errorf("failed to parse break start: %w", err)
			}
			bEnd, err := onDate(att.Date, *b.End)
			if err != nil {
				return fmt.Errorf("failed to parse break end: %w", err)
			}

			// Breaks stay attributed to the record's owner even when an
			// admin submits the correction.
			_, err = s.BreaktimeRepository.Create(txCtx, attendance.Breaktime{
				AttendanceID: att.ID,
				UserID:       att.UserID,
				StartTime:    bStart,
				EndTime:      &bEnd,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	return s.detail(ctx, att, isAdmin)
}

// ListRequests implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRequests(ctx context.Context, filter attendance.RequestFilter) ([]attendance.RequestListItem, error) {
	userID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if !isAdmin {
		filter.UserID = &userID
	}

	records, err := s.AttendanceRepository.ListByStatus(ctx, filter.TargetStatus(), filter.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]attendance.RequestListItem, 0, len(records))
	for _, att := range records {
		items = append(items, attendance.ToRequestListItem(att))
	}
	return items, nil
}

// Approve implements attendance.AttendanceService. Approving an already
// approved record succeeds without change.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.DetailResponse, error) {
	adminID, isAdmin, err := callerFromContext(ctx)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	if att.Status != attendance.StatusApproved {
		now := s.clk.Now()
		att.Status = attendance.StatusApproved
		att.ApproverID = &adminID
		att.ApprovedAt = &now
		if err := s.AttendanceRepository.Update(ctx, att); err != nil {
			return attendance.DetailResponse{}, err
		}
	}

	return s.detail(ctx, att, isAdmin)
}
