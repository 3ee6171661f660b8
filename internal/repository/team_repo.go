package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
)

// TeamRepository 团队数据访问接口
// 成员增删由外部系统负责，本服务仅在建队时落一条管理员成员记录
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
}

// teamRepo TeamRepository 的 GORM 实现
type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo 创建 TeamRepository 实例
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

// Create 创建团队并在同一事务内写入管理员成员记录
func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		member := &model.TeamMember{
			TeamID:   team.TeamID,
			UserID:   team.AdminID,
			TeamRole: model.TeamRoleAdmin,
		}
		return tx.Create(member).Error
	})
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
