package http

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/report"
	"github.com/kintai-app/kintai-backend-go/internal/domain/user"
	"github.com/kintai-app/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/clock"
)

type AdminHandler interface {
	DailyRoster(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
	UserMonth(w http.ResponseWriter, r *http.Request)
	UserMonthCSV(w http.ResponseWriter, r *http.Request)
	Requests(w http.ResponseWriter, r *http.Request)
	RequestDetail(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	SubmitCorrection(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	clk               clock.Clock
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
	userService       user.UserService
}

func NewAdminHandler(clk clock.Clock, attendanceService attendance.AttendanceService, reportService report.ReportService, userService user.UserService) AdminHandler {
	return &AdminHandlerImpl{
		clk:               clk,
		attendanceService: attendanceService,
		reportService:     reportService,
		userService:       userService,
	}
}

// DailyRoster implements AdminHandler. ?date=YYYY-MM-DD, default today.
func (a *AdminHandlerImpl) DailyRoster(w http.ResponseWriter, r *http.Request) {
	date := a.clk.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, date.Location())
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	roster, err := a.reportService.BuildDailyRoster(r.Context(), date)
	if err != nil {
		slog.Error("DailyRoster error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, roster)
}

// Users implements AdminHandler.
func (a *AdminHandlerImpl) Users(w http.ResponseWriter, r *http.Request) {
	users, err := a.userService.List(r.Context())
	if err != nil {
		slog.Error("Users error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

func (a *AdminHandlerImpl) monthQueryFromPath(r *http.Request) report.MonthQuery {
	today := a.clk.Today()
	q := report.MonthQuery{
		UserID: chi.URLParam(r, "id"),
		Year:   today.Year(),
		Month:  int(today.Month()),
	}
	if y, err := strconv.Atoi(chi.URLParam(r, "year")); err == nil {
		q.Year = y
	}
	if m, err := strconv.Atoi(chi.URLParam(r, "month")); err == nil {
		q.Month = m
	}
	return q
}

// UserMonth implements AdminHandler.
func (a *AdminHandlerImpl) UserMonth(w http.ResponseWriter, r *http.Request) {
	calendar, err := a.reportService.BuildMonth(r.Context(), a.monthQueryFromPath(r))
	if err != nil {
		slog.Error("UserMonth error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, calendar)
}

// UserMonthCSV implements AdminHandler. Year and month come from query
// parameters to match the download link on the monthly screen.
func (a *AdminHandlerImpl) UserMonthCSV(w http.ResponseWriter, r *http.Request) {
	today := a.clk.Today()
	q := report.MonthQuery{
		UserID: chi.URLParam(r, "id"),
		Year:   today.Year(),
		Month:  int(today.Month()),
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		q.Year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		q.Month = m
	}

	export, err := a.reportService.ExportMonthCSV(r.Context(), q)
	if err != nil {
		slog.Error("UserMonthCSV error", "error", err)
		response.HandleError(w, err)
		return
	}

	// The filename carries non-ASCII characters, so it goes out
	// RFC 2231 encoded.
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename})
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

// Requests implements AdminHandler. Admin scope sees every user's
// submissions.
func (a *AdminHandlerImpl) Requests(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RequestFilter{Status: r.URL.Query().Get("status")}

	items, err := a.attendanceService.ListRequests(r.Context(), filter)
	if err != nil {
		slog.Error("Admin requests error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// RequestDetail implements AdminHandler.
func (a *AdminHandlerImpl) RequestDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.attendanceService.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("RequestDetail error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// Approve implements AdminHandler.
func (a *AdminHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	detail, err := a.attendanceService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Approve error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "承認しました", detail)
}

// Detail implements AdminHandler.
func (a *AdminHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.attendanceService.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Admin detail error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// SubmitCorrection implements AdminHandler. Admin corrections follow
// the same flow as self-service ones but skip the ownership and
// pending-approval guards.
func (a *AdminHandlerImpl) SubmitCorrection(w http.ResponseWriter, r *http.Request) {
	var correctionReq attendance.CorrectionRequest

	if err := json.NewDecoder(r.Body).Decode(&correctionReq); err != nil {
		slog.Error("Admin correction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	correctionReq.ID = chi.URLParam(r, "id")

	detail, err := a.attendanceService.SubmitCorrection(r.Context(), correctionReq)
	if err != nil {
		slog.Error("Admin correction service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "勤怠情報を修正しました", detail)
}
