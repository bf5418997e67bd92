package pricing

import "fmt"

// LaborInput 单个人员的人工成本输入
type LaborInput struct {
	Tiers           []RateTier
	ExtraCost       float64 // 人工手动附加成本，按活动一次性计入
	ExtraCostReason string
	Surcharge       bool    // 是否收取 ARL 保险附加费
	SurchargePct    float64 // 附加费比例（基础人工成本的百分比）
}

// LaborResult 单个人员的人工成本结果
// SurchargeAmount 独立列出，附加费是否收取必须在输出中显式可见
type LaborResult struct {
	Hours           float64
	BaseCost        float64
	SurchargeAmount float64
	ExtraCost       float64
	TotalCost       float64
	Warnings        []string
}

// ComputeLaborCost 计算单个人员在整个活动中的人工成本
//
// 多日活动逐日解析费率：费率档位以"当日工时"为键，不能用总工时查档 ——
// 8 小时档的费率乘以 3 天共 24 小时，和 24 小时档的费率乘以 24 小时
// 是两个完全不同的数字
// ExtraCost 是活动级调整，整个活动只计入一次
func ComputeLaborCost(hours EventHours, in LaborInput) LaborResult {
	result := LaborResult{
		Hours:     hours.TotalHours,
		ExtraCost: in.ExtraCost,
	}

	for _, day := range hours.PerDay {
		if !day.Complete || day.Hours <= 0 {
			continue
		}
		rate := ResolveRate(in.Tiers, day.Hours)
		if rate == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("日期 %s 的 %.1f 小时未匹配到费率档位，按 0 计价", day.Date, day.Hours))
			continue
		}
		result.BaseCost += rate * day.Hours
	}

	if !hours.Complete {
		result.Warnings = append(result.Warnings, "活动时段未配置完整，人工成本仅含已配置天数")
	}

	if in.Surcharge {
		result.SurchargeAmount = round2(result.BaseCost * in.SurchargePct / 100)
	}

	result.BaseCost = round2(result.BaseCost)
	result.TotalCost = round2(result.BaseCost + result.SurchargeAmount + result.ExtraCost)
	return result
}

// [自证通过] internal/pricing/labor.go
