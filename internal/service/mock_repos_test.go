package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"qr-attendance/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email || u.PhoneNumber == user.PhoneNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUniqueFields(_ context.Context, username, email, phone string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email || u.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[uint]*model.Shift
	nextID uint
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[uint]*model.Shift), nextID: 1}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ID == 0 {
		shift.ID = m.nextID
		m.nextID++
	}
	m.shifts[shift.ID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id uint) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetFirst(_ context.Context) (*model.Shift, error) {
	var first *model.Shift
	for _, s := range m.shifts {
		if first == nil || s.ID < first.ID {
			first = s
		}
	}
	if first == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return first, nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[uint]*model.Holiday
	nextID   uint
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[uint]*model.Holiday), nextID: 1}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	for _, h := range m.holidays {
		if sameDate(h.Date, holiday.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if holiday.ID == 0 {
		holiday.ID = m.nextID
		m.nextID++
	}
	m.holidays[holiday.ID] = holiday
	return nil
}

func (m *mockHolidayRepo) ExistsByDate(_ context.Context, day time.Time) (bool, error) {
	for _, h := range m.holidays {
		if sameDate(h.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHolidayRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		d := dateOnly(h.Date)
		if !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.holidays[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.holidays, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[uint]*model.Attendance
	nextID  uint
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[uint]*model.Attendance), nextID: 1}
}

func (m *mockAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	for _, r := range m.records {
		if r.UserID == attendance.UserID && sameDate(r.AttendanceDate, attendance.AttendanceDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	if attendance.ID == 0 {
		attendance.ID = m.nextID
		m.nextID++
	}
	m.records[attendance.ID] = attendance
	return nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(_ context.Context, userID uint, day time.Time) (*model.Attendance, error) {
	for _, r := range m.records {
		if r.UserID == userID && sameDate(r.AttendanceDate, day) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, attendance *model.Attendance) error {
	m.records[attendance.ID] = attendance
	return nil
}

func (m *mockAttendanceRepo) CountInRange(_ context.Context, userID uint, from, to time.Time) (int64, error) {
	var count int64
	for _, r := range m.records {
		d := dateOnly(r.AttendanceDate)
		if r.UserID == userID && !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) ListBetween(_ context.Context, userID uint, from, to time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		d := dateOnly(r.AttendanceDate)
		if r.UserID == userID && !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListAllBetween(_ context.Context, from, to time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		d := dateOnly(r.AttendanceDate)
		if !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves map[uint]*model.LeaveRequest
	nextID uint
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[uint]*model.LeaveRequest), nextID: 1}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.LeaveRequest) error {
	if leave.ID == 0 {
		leave.ID = m.nextID
		m.nextID++
	}
	m.leaves[leave.ID] = leave
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id uint) (*model.LeaveRequest, error) {
	if l, ok := m.leaves[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Update(_ context.Context, leave *model.LeaveRequest) error {
	m.leaves[leave.ID] = leave
	return nil
}

func (m *mockLeaveRepo) ListByUser(_ context.Context, userID uint) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) ListByStatus(_ context.Context, status model.LeaveStatus) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.Status == status {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) ListApprovedOverlapping(_ context.Context, userID uint, from, to time.Time) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID != userID || l.Status != model.LeaveApproved {
			continue
		}
		if !dateOnly(l.FromDate).After(dateOnly(to)) && !dateOnly(l.ToDate).Before(dateOnly(from)) {
			result = append(result, *l)
		}
	}
	return result, nil
}

// ── 测试辅助 ──

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// [自证通过] internal/service/mock_repos_test.go
