package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/service"
	"github.com/watchied/67011380-Todo/pkg/response"
)

// RequestHandler 支持请求与草稿工单模块 HTTP 处理器
type RequestHandler struct {
	triageSvc service.TriageService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(triageSvc service.TriageService) *RequestHandler {
	return &RequestHandler{triageSvc: triageSvc}
}

// SubmitRequest 提交支持请求（先回执，后台异步分类）
// POST /api/v1/requests
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.triageSvc.SubmitRequest(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListMyRequests 我的支持请求列表
// GET /api/v1/requests
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	requests, total, err := h.triageSvc.ListMyRequests(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, requests, total, page.GetPage(), page.GetPageSize())
}

// GetRequest 查询支持请求状态（本人或管理员）
// GET /api/v1/requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.triageSvc.GetRequest(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, 30001, "支持请求不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权访问")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// RetryTriage 管理员重跑分类（仅限 received 状态的请求）
// POST /api/v1/requests/:id/retry
func (h *RequestHandler) RetryTriage(c *gin.Context) {
	err := h.triageSvc.RetryTriage(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, 30001, "支持请求不存在")
		case errors.Is(err, service.ErrRequestNotPending):
			response.Conflict(c, 30002, "支持请求不在待分类状态")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// GetDraft 查询草稿工单
// GET /api/v1/drafts/:id
func (h *RequestHandler) GetDraft(c *gin.Context) {
	result, err := h.triageSvc.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, 30003, "草稿工单不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ApproveDraft 审批通过草稿工单并生成任务
// POST /api/v1/drafts/:id/approve
func (h *RequestHandler) ApproveDraft(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.triageSvc.ApproveDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			response.NotFound(c, 30003, "草稿工单不存在")
		case errors.Is(err, service.ErrDraftAlreadyDecided):
			response.Conflict(c, 30004, "草稿工单已审批")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// RejectDraft 驳回草稿工单
// POST /api/v1/drafts/:id/reject
func (h *RequestHandler) RejectDraft(c *gin.Context) {
	result, err := h.triageSvc.RejectDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			response.NotFound(c, 30003, "草稿工单不存在")
		case errors.Is(err, service.ErrDraftAlreadyDecided):
			response.Conflict(c, 30004, "草稿工单已审批")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
