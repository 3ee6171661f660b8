package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// TeamService 团队业务接口（成员增删由外部系统负责）
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	List(ctx context.Context) ([]dto.TeamResponse, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

// Create 创建团队；指定的团队管理员必须是已存在用户
func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.AdminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	team := &model.Team{
		Name:    req.Name,
		AdminID: req.AdminID,
	}

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("创建团队失败", zap.Error(err))
		return nil, err
	}

	return &dto.TeamResponse{
		ID:      team.TeamID,
		Name:    team.Name,
		AdminID: team.AdminID,
	}, nil
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		s.logger.Error("列出团队失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		result = append(result, dto.TeamResponse{
			ID:      t.TeamID,
			Name:    t.Name,
			AdminID: t.AdminID,
		})
	}
	return result, nil
}
