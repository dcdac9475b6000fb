package dto

// ── 请假模块 DTO ──

// ApplyLeaveRequest 请假申请请求
type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	FromDate  string `json:"from_date"  binding:"required"` // "2006-01-02"
	ToDate    string `json:"to_date"    binding:"required"` // 闭区间
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// LeaveResponse 请假单响应
type LeaveResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name,omitempty"` // 管理员待审列表附带
	LeaveType string `json:"leave_type"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	Reason    string `json:"reason,omitempty"`
	Status    string `json:"status"`
	AppliedAt string `json:"applied_at"`
}

// LeaveActionRequest 审批请求（GET 兼容端点以 query 传参）
type LeaveActionRequest struct {
	LeaveID uint   `form:"leave_id" json:"leave_id" binding:"required"`
	Action  string `form:"action"   json:"action"   binding:"required"`
}

// LeaveActionResponse 审批结果响应
type LeaveActionResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}
