package model

import "time"

// Quote 报价单表 — 对应 quotes
// 计算结果（subtotal/margin/retention/total）随明细行一并落库：
// 审计重放用持久化数字对账，而不是信任每次的重新计算
type Quote struct {
	QuoteID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"quote_id"`
	EventID          string  `gorm:"type:uuid;not null"                             json:"event_id"`
	Status           string  `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | confirmed | cancelled
	MarginMode       string  `gorm:"type:varchar(20);not null;default:'global'"     json:"margin_mode"`
	MarginPct        float64 `gorm:"type:numeric(6,2);not null;default:0"           json:"margin_pct"`
	RetentionEnabled bool    `gorm:"not null;default:false"                         json:"retention_enabled"`
	RetentionPct     *float64 `gorm:"type:numeric(6,2)"                             json:"retention_pct,omitempty"`

	Subtotal        float64 `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	MarginAmount    float64 `gorm:"type:numeric(14,2);not null;default:0" json:"margin_amount"`
	RetentionAmount float64 `gorm:"type:numeric(14,2);not null;default:0" json:"retention_amount"`
	Total           float64 `gorm:"type:numeric(14,2);not null;default:0" json:"total"`

	TransportMode     *string `gorm:"type:varchar(20)"                      json:"transport_mode,omitempty"` // automatic | manual
	TransportUnits    int     `gorm:"not null;default:0"                    json:"transport_units"`
	TransportUnitCost float64 `gorm:"type:numeric(14,2);not null;default:0" json:"transport_unit_cost"`
	TransportState    *string `gorm:"type:varchar(20)"                      json:"transport_state,omitempty"` // deficit | exact | excess
	VersionedModel

	// 关联
	Event         *Event              `gorm:"foreignKey:EventID;references:EventID" json:"event,omitempty"`
	LaborLines    []QuoteLaborLine    `gorm:"foreignKey:QuoteID"                    json:"labor_lines,omitempty"`
	BillableLines []QuoteBillableLine `gorm:"foreignKey:QuoteID"                    json:"billable_lines,omitempty"`
	Allocations   []TransportAllocation `gorm:"foreignKey:QuoteID"                  json:"allocations,omitempty"`
}

// TableName 指定表名
func (Quote) TableName() string { return "quotes" }

// QuoteLaborLine 人工报价行表 — 对应 quote_labor_lines
type QuoteLaborLine struct {
	LineID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"line_id"`
	QuoteID         string  `gorm:"type:uuid;not null"                             json:"quote_id"`
	WorkerID        string  `gorm:"type:uuid;not null"                             json:"worker_id"`
	Hours           float64 `gorm:"type:numeric(8,2);not null;default:0"           json:"hours"`
	BaseCost        float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"base_cost"`
	Surcharge       bool    `gorm:"not null;default:false"                         json:"surcharge"`
	SurchargeAmount float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"surcharge_amount"`
	ExtraCost       float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"extra_cost"`
	ExtraCostReason string  `gorm:"type:varchar(300)"                              json:"extra_cost_reason,omitempty"`
	TotalCost       float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"total_cost"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"           json:"created_at"`

	// 关联
	Worker *Worker `gorm:"foreignKey:WorkerID;references:WorkerID" json:"worker,omitempty"`
}

// TableName 指定表名
func (QuoteLaborLine) TableName() string { return "quote_labor_lines" }

// QuoteBillableLine 计费行表 — 对应 quote_billable_lines（产品/机械/分包）
type QuoteBillableLine struct {
	LineID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"line_id"`
	QuoteID     string   `gorm:"type:uuid;not null"                             json:"quote_id"`
	LineKind    string   `gorm:"type:varchar(20);not null"                      json:"line_kind"` // product | machinery | subcontract
	Description string   `gorm:"type:varchar(300);not null"                     json:"description"`
	Quantity    float64  `gorm:"type:numeric(10,2);not null;default:1"          json:"quantity"`
	UnitPrice   float64  `gorm:"type:numeric(14,2);not null;default:0"          json:"unit_price"`
	MarginPct   *float64 `gorm:"type:numeric(6,2)"                              json:"margin_pct,omitempty"`
	Amount      float64  `gorm:"type:numeric(14,2);not null;default:0"          json:"amount"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
}

// TableName 指定表名
func (QuoteBillableLine) TableName() string { return "quote_billable_lines" }

// TransportAllocation 运输分摊行表 — 对应 transport_allocations
type TransportAllocation struct {
	AllocationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"allocation_id"`
	QuoteID      string  `gorm:"type:uuid;not null"                             json:"quote_id"`
	LineID       string  `gorm:"type:uuid;not null"                             json:"line_id"`
	Quantity     int     `gorm:"not null;default:0"                             json:"quantity"`
	Cost         float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"cost"`
}

// TableName 指定表名
func (TransportAllocation) TableName() string { return "transport_allocations" }

// [自证通过] internal/model/quote.go
