package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/service"
	"github.com/watchied/67011380-Todo/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc      service.UserService
	directorySvc service.DirectoryService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, directorySvc service.DirectoryService) *UserHandler {
	return &UserHandler{userSvc: userSvc, directorySvc: directorySvc}
}

// CreateUser 管理员创建用户（可指定角色与技能分类）
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 11002, "用户名已存在")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 20002, "角色不合法")
		case errors.Is(err, service.ErrUnknownCategory):
			response.BadRequest(c, 20003, "技能分类不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// ListAssignees 受理人目录
// GET /api/v1/assignees
func (h *UserHandler) ListAssignees(c *gin.Context) {
	assignees, err := h.directorySvc.ListAssignees(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, assignees)
}
