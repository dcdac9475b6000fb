package model

import "time"

// Holiday 公司级节假日表 — 对应 holidays，按日期唯一
type Holiday struct {
	ID   uint      `gorm:"primaryKey"                     json:"id"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Name string    `gorm:"type:varchar(100);not null"     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
