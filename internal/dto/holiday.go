package dto

// ── 节假日模块 DTO ──

// CreateHolidayRequest 新增节假日请求
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"` // "2006-01-02"
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	ID   uint   `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
