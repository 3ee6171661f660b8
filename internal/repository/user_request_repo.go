package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
)

// UserRequestRepository 支持请求数据访问接口
type UserRequestRepository interface {
	Create(ctx context.Context, req *model.UserRequest) error
	GetByID(ctx context.Context, id string) (*model.UserRequest, error)
	GetByDraftID(ctx context.Context, draftTicketID string) (*model.UserRequest, error)
	ListByRequester(ctx context.Context, requesterID string, offset, limit int) ([]model.UserRequest, int64, error)
	MarkDrafted(ctx context.Context, id, draftTicketID string) (bool, error)
	MarkResolved(ctx context.Context, id string) (bool, error)
}

// userRequestRepo UserRequestRepository 的 GORM 实现
type userRequestRepo struct {
	db *gorm.DB
}

// NewUserRequestRepo 创建 UserRequestRepository 实例
func NewUserRequestRepo(db *gorm.DB) UserRequestRepository {
	return &userRequestRepo{db: db}
}

func (r *userRequestRepo) Create(ctx context.Context, req *model.UserRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *userRequestRepo) GetByID(ctx context.Context, id string) (*model.UserRequest, error) {
	var req model.UserRequest
	err := r.db.WithContext(ctx).
		Preload("DraftTicket").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *userRequestRepo) GetByDraftID(ctx context.Context, draftTicketID string) (*model.UserRequest, error) {
	var req model.UserRequest
	err := r.db.WithContext(ctx).
		Where("draft_ticket_id = ?", draftTicketID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *userRequestRepo) ListByRequester(ctx context.Context, requesterID string, offset, limit int) ([]model.UserRequest, int64, error) {
	var reqs []model.UserRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.UserRequest{}).
		Where("requester_id = ?", requesterID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("DraftTicket").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

// MarkDrafted 条件更新 received → draft 并关联草稿工单
// 仅当请求仍处于 received 时生效；重复或迟到的完成信号是空操作
func (r *userRequestRepo) MarkDrafted(ctx context.Context, id, draftTicketID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.UserRequest{}).
		Where("request_id = ? AND status = ?", id, model.RequestStatusReceived).
		Updates(map[string]interface{}{
			"status":          model.RequestStatusDraft,
			"draft_ticket_id": draftTicketID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkResolved 条件更新 draft → resolved（草稿审批通过时）
func (r *userRequestRepo) MarkResolved(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.UserRequest{}).
		Where("request_id = ? AND status = ?", id, model.RequestStatusDraft).
		Update("status", model.RequestStatusResolved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
