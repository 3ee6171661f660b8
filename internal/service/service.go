package service

import (
	"go.uber.org/zap"

	"github.com/watchied/67011380-Todo/config"
	"github.com/watchied/67011380-Todo/internal/classifier"
	"github.com/watchied/67011380-Todo/internal/repository"
	"github.com/watchied/67011380-Todo/pkg/jwt"
	"github.com/watchied/67011380-Todo/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Directory DirectoryService
	Category  CategoryService
	Triage    TriageService
	Task      TaskService
	Team      TeamService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	clf classifier.Classifier,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	directory := NewDirectoryService(repo, logger)
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Directory: directory,
		Category:  NewCategoryService(repo, rdb, logger),
		Triage:    NewTriageService(cfg, repo, clf, directory, logger),
		Task:      NewTaskService(repo, logger),
		Team:      NewTeamService(repo, logger),
	}
}
