package response

import (
	"errors"
	"net/http"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-app/kintai-backend-go/internal/domain/user"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Clock-guard
// conflicts carry the Japanese flash message shown to the user.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "ログイン情報が登録されていません")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Clock state guards
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "すでに出勤打刻済みです")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "出勤打刻がされていません")
	case errors.Is(err, attendance.ErrOnBreak):
		Conflict(w, "休憩中です。先に休憩を終了してください")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "すでに退勤済です")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "すでに休憩中です")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "休憩開始打刻がされていません")

	// Record access and workflow
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotOwner):
		Forbidden(w, "You may only view your own attendance records")
	case errors.Is(err, attendance.ErrPendingApproval):
		Conflict(w, "承認待ちのため修正はできません。")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
