package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/watchied/67011380-Todo/internal/classifier"
	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ErrDirectoryUnavailable 受理人目录读取失败（瞬态，调用方按可重试处理）
var ErrDirectoryUnavailable = errors.New("受理人目录不可用")

// DirectoryService 受理人目录只读接口
type DirectoryService interface {
	ListAssignees(ctx context.Context) ([]dto.AssigneeResponse, error)
	// Snapshot 构造送入分类器的目录快照
	Snapshot(ctx context.Context) ([]classifier.Assignee, error)
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

func (s *directoryService) ListAssignees(ctx context.Context) ([]dto.AssigneeResponse, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AssigneeResponse, 0, len(snapshot))
	for _, a := range snapshot {
		result = append(result, dto.AssigneeResponse{
			ID:        a.ID,
			Name:      a.Name,
			Expertise: a.Expertise,
		})
	}
	return result, nil
}

// Snapshot 读取 assignee 角色用户并把技能分类 id 解析为名称
func (s *directoryService) Snapshot(ctx context.Context) ([]classifier.Assignee, error) {
	users, err := s.repo.User.ListAssignees(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	categories, err := s.repo.Category.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}

	directory := make([]classifier.Assignee, 0, len(users))
	for _, u := range users {
		expertise := make([]string, 0, len(u.SkillCategoryIDs))
		for _, id := range u.SkillCategoryIDs {
			if name, ok := names[id]; ok {
				expertise = append(expertise, name)
			}
		}
		directory = append(directory, classifier.Assignee{
			ID:        u.UserID,
			Name:      u.Username,
			Expertise: expertise,
		})
	}
	return directory, nil
}
