package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
)

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.Task, int64, error)
	ListVisible(ctx context.Context, actorID string, offset, limit int) ([]model.Task, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateAssignee(ctx context.Context, id, assigneeID string) error
	AppendAttachment(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

// taskRepo TaskRepository 的 GORM 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListAll 管理员列表：不过滤
func (r *taskRepo) ListAll(ctx context.Context, offset, limit int) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Task{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListVisible 非管理员列表：创建者、受理人或所属团队成员可见
// 与 access.CanView 的谓词保持一致
func (r *taskRepo) ListVisible(ctx context.Context, actorID string, offset, limit int) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	visible := "creator_id = @actor OR assignee_id = @actor OR " +
		"team_id IN (SELECT team_id FROM team_members WHERE user_id = @actor)"

	db := r.db.WithContext(ctx).Model(&model.Task{}).
		Where(visible, map[string]interface{}{"actor": actorID})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("task_id = ?", id).
		Update("status", status).Error
}

func (r *taskRepo) UpdateAssignee(ctx context.Context, id, assigneeID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("task_id = ?", id).
		Update("assignee_id", assigneeID).Error
}

func (r *taskRepo) AppendAttachment(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("task_id = ?", task.TaskID).
		Update("attachments", task.Attachments).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.Task{}).Error
}
