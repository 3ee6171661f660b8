package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrInvalidRole     = errors.New("角色取值无效")
	ErrUnknownCategory = errors.New("技能分类不存在")
)

// UserService 用户管理业务接口（管理员创建 assignee/admin 账号）
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// CreateUser 管理员创建用户，可指定角色与技能分类
func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// 检查用户名唯一性
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 技能分类必须指向已存在的 Category
	if len(req.SkillCategoryIDs) > 0 {
		categories, err := s.repo.Category.List(ctx)
		if err != nil {
			return nil, err
		}
		known := make(map[int64]bool, len(categories))
		for _, c := range categories {
			known[c.CategoryID] = true
		}
		for _, id := range req.SkillCategoryIDs {
			if !known[id] {
				return nil, ErrUnknownCategory
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Username:         req.Username,
		PasswordHash:     string(hash),
		Role:             req.Role,
		SkillCategoryIDs: model.IntArray(req.SkillCategoryIDs),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserResponse{
		ID:               user.UserID,
		Username:         user.Username,
		Role:             user.Role,
		SkillCategoryIDs: user.SkillCategoryIDs,
	}, nil
}
