package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/service"
	"github.com/watchied/67011380-Todo/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.BadRequest(c, 40002, "团队不存在")
		case errors.Is(err, service.ErrInvalidAssignee):
			response.BadRequest(c, 40003, "受理人不合法")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// ListTasks 任务列表（按可见性过滤；管理员全量）
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tasks, total, err := h.taskSvc.List(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, tasks, total, page.GetPage(), page.GetPageSize())
}

// ChangeStatus 修改任务状态
// PUT /api/v1/tasks/:id/status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.SetStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 40001, "任务不存在")
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, 40004, "任务状态取值无效")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ChangeAssignee 修改任务受理人（管理员）
// PUT /api/v1/tasks/:id/assignee
func (h *TaskHandler) ChangeAssignee(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeTaskAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.SetAssignee(c.Request.Context(), userID, c.Param("id"), req.AssigneeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 40001, "任务不存在")
		case errors.Is(err, service.ErrInvalidAssignee):
			response.BadRequest(c, 40003, "受理人不合法")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// AddAttachment 追加附件引用
// POST /api/v1/tasks/:id/attachments
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.AddAttachment(c.Request.Context(), userID, c.Param("id"), req.Ref)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 40001, "任务不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// DeleteTask 删除任务（创建者或管理员）
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.taskSvc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 40001, "任务不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
