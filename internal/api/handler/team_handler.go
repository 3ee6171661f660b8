package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/service"
	"github.com/watchied/67011380-Todo/pkg/response"
)

// TeamHandler 团队模块 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// CreateTeam 创建团队（管理员）
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teamSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.BadRequest(c, 20001, "团队管理员用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListTeams 团队列表
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, teams)
}
