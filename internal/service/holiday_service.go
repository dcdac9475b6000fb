package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"qr-attendance/backend/internal/dto"
	"qr-attendance/backend/internal/model"
	"qr-attendance/backend/internal/repository"
)

// ── 节假日模块业务错误 ──

var (
	ErrHolidayDateInvalid = errors.New("节假日日期格式无效")
	ErrHolidayExists      = errors.New("该日期已存在节假日")
	ErrHolidayNotFound    = errors.New("节假日不存在")
)

// HolidayService 节假日业务接口
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	List(ctx context.Context) ([]dto.HolidayResponse, error)
	Delete(ctx context.Context, id uint) error
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrHolidayDateInvalid
	}

	holiday := &model.Holiday{
		Name: req.Name,
		Date: date,
	}
	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHolidayExists
		}
		s.logger.Error("创建节假日失败", zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *holidayService) List(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("查询节假日列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		resp = append(resp, *toHolidayResponse(&holidays[i]))
	}
	return resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("删除节假日失败", zap.Error(err), zap.Uint("holiday_id", id))
		return err
	}
	return nil
}

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:   h.ID,
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}
