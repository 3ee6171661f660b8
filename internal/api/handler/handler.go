package handler

import "github.com/watchied/67011380-Todo/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Request  *RequestHandler
	Task     *TaskHandler
	Team     *TeamHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User, svc.Directory),
		Category: NewCategoryHandler(svc.Category),
		Request:  NewRequestHandler(svc.Triage),
		Task:     NewTaskHandler(svc.Task),
		Team:     NewTeamHandler(svc.Team),
	}
}
