package pricing

import (
	"math"
	"time"
)

const (
	// hourGranularity 工时计费粒度（半小时）
	hourGranularity = 0.5
	// minBillableHours 单日最低计费工时
	minBillableHours = 0.5

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DaySpan 单日工时计算结果
// Complete=false 表示时间缺失或无法解析，此时 Hours 恒为 0，
// 调用方据此提示补录而不是让整个报价失败
type DaySpan struct {
	Hours    float64
	Complete bool
}

// DayTimes 活动中某一天的起止时间
type DayTimes struct {
	Date      string // 2006-01-02
	StartTime string // 15:04，可为空
	EndTime   string // 15:04，可为空
}

// EventWindow 活动时间窗口
// 单日活动（StartDate == EndDate）以扁平 StartTime/EndTime 为准，Days 必须为空；
// 多日活动以 Days 为准，Days 即选中日集合 —— 工时计算只遍历 Days，
// 绝不按日历逐日枚举 StartDate..EndDate
type EventWindow struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Days      []DayTimes
}

// SingleDay 是否单日活动
func (w EventWindow) SingleDay() bool {
	return w.StartDate == w.EndDate
}

// DayHours 多日活动中单日的计算明细
type DayHours struct {
	Date     string
	Hours    float64
	Complete bool
}

// EventHours 活动总工时计算结果
type EventHours struct {
	TotalHours     float64
	PerDay         []DayHours
	SelectedDays   int  // 选中天数
	ConfiguredDays int  // 起止时间均已配置的天数
	Complete       bool // 所有选中日均已配置
}

// ComputeDaySpan 由起止时间计算单日计费工时
// 结束早于开始视为跨夜（+24h）；结果不足半小时按半小时计；
// 四舍五入到最近的 0.5
func ComputeDaySpan(startTime, endTime string) DaySpan {
	start, err1 := time.Parse(timeLayout, startTime)
	end, err2 := time.Parse(timeLayout, endTime)
	if err1 != nil || err2 != nil {
		return DaySpan{Hours: 0, Complete: false}
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	diff := endMin - startMin
	if diff < 0 {
		diff += 24 * 60 // 跨夜活动
	}

	hours := float64(diff) / 60.0
	hours = math.Round(hours/hourGranularity) * hourGranularity
	if hours < minBillableHours {
		hours = minBillableHours
	}

	return DaySpan{Hours: hours, Complete: true}
}

// ComputeEventHours 计算活动总工时
//
// 多日活动逐日独立计算后求和 —— 不允许"平均×天数"：各日时段可以不同，
// 平均值会在变长日程下静默多扣或少扣费
func ComputeEventHours(w EventWindow) EventHours {
	if w.SingleDay() {
		span := ComputeDaySpan(w.StartTime, w.EndTime)
		result := EventHours{
			TotalHours:   span.Hours,
			SelectedDays: 1,
			Complete:     span.Complete && validDate(w.StartDate),
		}
		if result.Complete {
			result.ConfiguredDays = 1
			result.PerDay = []DayHours{{Date: w.StartDate, Hours: span.Hours, Complete: true}}
		} else {
			result.TotalHours = 0
		}
		return result
	}

	result := EventHours{SelectedDays: len(w.Days)}
	for _, d := range w.Days {
		day := DayHours{Date: d.Date}
		if validDate(d.Date) && d.StartTime != "" && d.EndTime != "" {
			span := ComputeDaySpan(d.StartTime, d.EndTime)
			day.Hours = span.Hours
			day.Complete = span.Complete
		}
		// 未配置完整时间的选中日贡献 0 工时且不计入已配置天数
		if day.Complete {
			result.ConfiguredDays++
			result.TotalHours += day.Hours
		}
		result.PerDay = append(result.PerDay, day)
	}
	result.Complete = len(w.Days) > 0 && result.ConfiguredDays == result.SelectedDays
	return result
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// [自证通过] internal/pricing/dayspan.go
