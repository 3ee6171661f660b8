package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
)

// CategoryRepository 分类参考数据访问接口
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
}

// categoryRepo CategoryRepository 的 GORM 实现
type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo 创建 CategoryRepository 实例
func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Order("category_id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByName 按名称精确查找（分类解析不做模糊匹配）
func (r *categoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
