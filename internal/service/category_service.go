package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/repository"
	"github.com/watchied/67011380-Todo/pkg/redis"
)

const (
	categoryCacheKey = "ref:categories"
	categoryCacheTTL = 10 * time.Minute
)

// CategoryService 分类参考数据业务接口
type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, rdb: rdb, logger: logger}
}

// List 返回全部分类；静态参考数据经 Redis 缓存，缓存异常时直查数据库
func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	if s.rdb != nil {
		if data, err := s.rdb.CacheGet(ctx, categoryCacheKey); err == nil && data != nil {
			var cached []dto.CategoryResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("查询分类失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.CategoryResponse{ID: c.CategoryID, Name: c.Name})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.rdb.CacheSet(ctx, categoryCacheKey, data, categoryCacheTTL); err != nil {
				s.logger.Warn("写入分类缓存失败", zap.Error(err))
			}
		}
	}

	return result, nil
}
