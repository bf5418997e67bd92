package model

import "time"

// Event 活动表 — 对应 events
// 单日活动（StartDate == EndDate）以扁平 StartTime/EndTime 为准，Days 必须为空；
// 多日活动的每个选中日在 event_days 各有一行
type Event struct {
	EventID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Name       string    `gorm:"type:varchar(200);not null"                     json:"name"`
	ClientName string    `gorm:"type:varchar(200)"                              json:"client_name,omitempty"`
	Location   string    `gorm:"type:varchar(300)"                              json:"location,omitempty"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	StartTime  *string   `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime    *string   `gorm:"type:time"                                      json:"end_time,omitempty"`
	VersionedModel

	// 关联
	Days []EventDay `gorm:"foreignKey:EventID" json:"days,omitempty"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }

// SingleDay 是否单日活动
func (e *Event) SingleDay() bool {
	return e.StartDate.Equal(e.EndDate)
}

// EventDay 活动日程表 — 对应 event_days
// 选中某日时创建，编辑时间时更新，取消选中或活动收缩为单日时删除
type EventDay struct {
	EventDayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_day_id"`
	EventID    string    `gorm:"type:uuid;not null"                             json:"event_id"`
	DayDate    time.Time `gorm:"type:date;not null"                             json:"day_date"`
	StartTime  *string   `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime    *string   `gorm:"type:time"                                      json:"end_time,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (EventDay) TableName() string { return "event_days" }

// [自证通过] internal/model/event.go
