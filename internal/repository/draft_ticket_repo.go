package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
)

// DraftTicketRepository 草稿工单数据访问接口
type DraftTicketRepository interface {
	Create(ctx context.Context, draft *model.DraftTicket) error
	GetByID(ctx context.Context, id string) (*model.DraftTicket, error)
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
}

// draftTicketRepo DraftTicketRepository 的 GORM 实现
type draftTicketRepo struct {
	db *gorm.DB
}

// NewDraftTicketRepo 创建 DraftTicketRepository 实例
func NewDraftTicketRepo(db *gorm.DB) DraftTicketRepository {
	return &draftTicketRepo{db: db}
}

func (r *draftTicketRepo) Create(ctx context.Context, draft *model.DraftTicket) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftTicketRepo) GetByID(ctx context.Context, id string) (*model.DraftTicket, error) {
	var draft model.DraftTicket
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("draft_ticket_id = ?", id).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// UpdateStatus 条件状态更新（仅从 fromStatus 出发时生效），避免重复审批
func (r *draftTicketRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.DraftTicket{}).
		Where("draft_ticket_id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
