package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-app/kintai-backend-go/internal/domain/report"
	"github.com/kintai-app/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/clock"
)

type AttendanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
	MonthList(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	SubmitCorrection(w http.ResponseWriter, r *http.Request)
	Requests(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	clk               clock.Clock
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
}

func NewAttendanceHandler(clk clock.Clock, attendanceService attendance.AttendanceService, reportService report.ReportService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		clk:               clk,
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}

// userIDFromRequest pulls the caller's id out of the verified JWT.
func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// yearMonthFromRequest reads the {year}/{month} path params, defaulting
// to the current month when absent.
func (a *AttendanceHandlerImpl) yearMonthFromRequest(r *http.Request) (int, int) {
	today := a.clk.Today()
	year, month := today.Year(), int(today.Month())

	if y, err := strconv.Atoi(chi.URLParam(r, "year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(chi.URLParam(r, "month")); err == nil {
		month = m
	}
	return year, month
}

func (a *AttendanceHandlerImpl) clockAction(w http.ResponseWriter, r *http.Request, action func() (attendance.ClockResponse, error)) {
	resp, err := action()
	if err != nil {
		slog.Error("Clock action error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, resp.Message, resp)
}

// Status implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	resp, err := a.attendanceService.TodayStatus(r.Context())
	if err != nil {
		slog.Error("Status error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	a.clockAction(w, r, func() (attendance.ClockResponse, error) {
		return a.attendanceService.ClockIn(r.Context())
	})
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	a.clockAction(w, r, func() (attendance.ClockResponse, error) {
		return a.attendanceService.ClockOut(r.Context())
	})
}

// BreakStart implements AttendanceHandler.
func (a *AttendanceHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	a.clockAction(w, r, func() (attendance.ClockResponse, error) {
		return a.attendanceService.BreakStart(r.Context())
	})
}

// BreakEnd implements AttendanceHandler.
func (a *AttendanceHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	a.clockAction(w, r, func() (attendance.ClockResponse, error) {
		return a.attendanceService.BreakEnd(r.Context())
	})
}

// MonthList implements AttendanceHandler. The caller always sees their
// own calendar.
func (a *AttendanceHandlerImpl) MonthList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month := a.yearMonthFromRequest(r)
	calendar, err := a.reportService.BuildMonth(r.Context(), report.MonthQuery{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		slog.Error("MonthList error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, calendar)
}

// Detail implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.attendanceService.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Detail error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// SubmitCorrection implements AttendanceHandler.
func (a *AttendanceHandlerImpl) SubmitCorrection(w http.ResponseWriter, r *http.Request) {
	var correctionReq attendance.CorrectionRequest

	if err := json.NewDecoder(r.Body).Decode(&correctionReq); err != nil {
		slog.Error("SubmitCorrection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	correctionReq.ID = chi.URLParam(r, "id")

	detail, err := a.attendanceService.SubmitCorrection(r.Context(), correctionReq)
	if err != nil {
		slog.Error("SubmitCorrection service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "修正申請を送信しました", detail)
}

// Requests implements AttendanceHandler. Non-admins only ever see their
// own submissions; the service enforces the scope.
func (a *AttendanceHandlerImpl) Requests(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RequestFilter{Status: r.URL.Query().Get("status")}

	items, err := a.attendanceService.ListRequests(r.Context(), filter)
	if err != nil {
		slog.Error("Requests error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}
