package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/access"
	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound    = errors.New("任务不存在")
	ErrInvalidStatus   = errors.New("任务状态取值无效")
	ErrInvalidAssignee = errors.New("受理人必须具有 assignee 或 admin 角色")
	ErrTeamNotFound    = errors.New("团队不存在")
)

// TaskService 任务业务接口
// 读路径按可见性静默过滤；写路径鉴权失败显式报错，不做部分变更
type TaskService interface {
	Create(ctx context.Context, actorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, actorID string, page *dto.PaginationRequest) ([]dto.TaskResponse, int64, error)
	SetStatus(ctx context.Context, actorID, taskID, status string) (*dto.TaskResponse, error)
	SetAssignee(ctx context.Context, actorID, taskID, assigneeID string) (*dto.TaskResponse, error)
	AddAttachment(ctx context.Context, actorID, taskID, ref string) (*dto.TaskResponse, error)
	Delete(ctx context.Context, actorID, taskID string) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

// actorFor 以数据库为准构造鉴权主体（角色与成员关系不信任 Token 缓存值）
func (s *taskService) actorFor(ctx context.Context, actorID string) (access.Actor, error) {
	user, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Actor{}, ErrUserNotFound
		}
		return access.Actor{}, err
	}

	memberships, err := s.repo.User.ListMemberships(ctx, actorID)
	if err != nil {
		return access.Actor{}, err
	}

	return access.NewActor(user, memberships), nil
}

// ────────────────────── Create ──────────────────────

// Create 任意已认证用户可建任务；指定团队时须为其成员（管理员除外）
func (s *taskService) Create(ctx context.Context, actorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		if _, err := s.repo.Team.GetByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		if !actor.IsAdmin() && !actor.IsTeamMember(*req.TeamID) {
			return nil, ErrNoPermission
		}
	}

	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return nil, err
		}
		// 指派初始受理人属于指派变更，仅限管理员
		if !access.CanAssign(actor) {
			return nil, ErrNoPermission
		}
	}

	task := &model.Task{
		CreatorID:      actorID,
		Description:    req.Description,
		Status:         model.TaskStatusTodo,
		TargetDatetime: req.TargetDatetime,
		AssigneeID:     req.AssigneeID,
		TeamID:         req.TeamID,
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── List ──────────────────────

// List 管理员不过滤；其余按可见性谓词过滤（读路径静默缺席，不报错）
func (s *taskService) List(ctx context.Context, actorID string, page *dto.PaginationRequest) ([]dto.TaskResponse, int64, error) {
	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	var total int64
	if actor.IsAdmin() {
		tasks, total, err = s.repo.Task.ListAll(ctx, page.GetOffset(), page.GetPageSize())
	} else {
		tasks, total, err = s.repo.Task.ListVisible(ctx, actorID, page.GetOffset(), page.GetPageSize())
	}
	if err != nil {
		s.logger.Error("列出任务失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, total, nil
}

// ────────────────────── SetStatus ──────────────────────

// SetStatus 状态机：取值校验先于鉴权与持久化；方向不受限；重复写同值无副作用
func (s *taskService) SetStatus(ctx context.Context, actorID, taskID, status string) (*dto.TaskResponse, error) {
	if !model.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !access.CanChangeStatus(actor, task) {
		return nil, ErrNoPermission
	}

	if task.Status != status {
		if err := s.repo.Task.UpdateStatus(ctx, taskID, status); err != nil {
			s.logger.Error("更新任务状态失败", zap.String("task_id", taskID), zap.Error(err))
			return nil, err
		}
		task.Status = status
	}

	return toTaskResponse(task), nil
}

// ────────────────────── SetAssignee ──────────────────────

// SetAssignee 指派变更仅限管理员；目标用户须可被指派
func (s *taskService) SetAssignee(ctx context.Context, actorID, taskID, assigneeID string) (*dto.TaskResponse, error) {
	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !access.CanAssign(actor) {
		return nil, ErrNoPermission
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignee(ctx, assigneeID); err != nil {
		return nil, err
	}

	if err := s.repo.Task.UpdateAssignee(ctx, taskID, assigneeID); err != nil {
		s.logger.Error("更新任务受理人失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}
	task.AssigneeID = &assigneeID

	return toTaskResponse(task), nil
}

// ────────────────────── AddAttachment ──────────────────────

// AddAttachment 附件引用为外部存储签发的不透明字符串；鉴权与状态变更同口径
func (s *taskService) AddAttachment(ctx context.Context, actorID, taskID, ref string) (*dto.TaskResponse, error) {
	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !access.CanChangeStatus(actor, task) {
		return nil, ErrNoPermission
	}

	task.Attachments = append(task.Attachments, ref)
	if err := s.repo.Task.AppendAttachment(ctx, task); err != nil {
		s.logger.Error("添加任务附件失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 仅创建者或管理员
func (s *taskService) Delete(ctx context.Context, actorID, taskID string) error {
	actor, err := s.actorFor(ctx, actorID)
	if err != nil {
		return err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}

	if !access.CanDelete(actor, task) {
		return ErrNoPermission
	}

	if err := s.repo.Task.Delete(ctx, taskID); err != nil {
		s.logger.Error("删除任务失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *taskService) getTask(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// checkAssignee 指派目标必须存在且角色可被指派
func (s *taskService) checkAssignee(ctx context.Context, assigneeID string) error {
	assignee, err := s.repo.User.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return err
	}
	if !assignee.CanBeAssignee() {
		return ErrInvalidAssignee
	}
	return nil
}

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	attachments := task.Attachments
	if attachments == nil {
		attachments = model.StringArray{}
	}
	return &dto.TaskResponse{
		ID:             task.TaskID,
		CreatorID:      task.CreatorID,
		Description:    task.Description,
		Status:         task.Status,
		TargetDatetime: task.TargetDatetime,
		AssigneeID:     task.AssigneeID,
		TeamID:         task.TeamID,
		Attachments:    attachments,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
	}
}
