package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/config"
	"github.com/watchied/67011380-Todo/internal/classifier"
	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ── 请求分流模块业务错误 ──

var (
	ErrRequestNotFound     = errors.New("支持请求不存在")
	ErrRequestNotPending   = errors.New("支持请求不在待分类状态")
	ErrDraftNotFound       = errors.New("草稿工单不存在")
	ErrDraftAlreadyDecided = errors.New("草稿工单已审批")
	ErrNoPermission        = errors.New("无权操作")
)

// TriageService 支持请求分流业务接口
// 提交路径先应答：调用方同步拿到 received 状态的请求 id，
// 分类在独立的后台单元中进行，不保证完成时间
type TriageService interface {
	SubmitRequest(ctx context.Context, requesterID string, req *dto.SubmitRequestRequest) (*dto.SubmitRequestResponse, error)
	GetRequest(ctx context.Context, actorID, actorRole, requestID string) (*dto.UserRequestResponse, error)
	ListMyRequests(ctx context.Context, requesterID string, page *dto.PaginationRequest) ([]dto.UserRequestResponse, int64, error)
	RetryTriage(ctx context.Context, requestID string) error
	GetDraft(ctx context.Context, draftID string) (*dto.DraftTicketResponse, error)
	ApproveDraft(ctx context.Context, actorID, draftID string) (*dto.ApproveDraftResponse, error)
	RejectDraft(ctx context.Context, draftID string) (*dto.DraftTicketResponse, error)
}

type triageService struct {
	repo      *repository.Repository
	clf       classifier.Classifier
	directory DirectoryService
	timeout   time.Duration
	logger    *zap.Logger
}

// NewTriageService 创建 TriageService 实例
func NewTriageService(
	cfg *config.Config,
	repo *repository.Repository,
	clf classifier.Classifier,
	directory DirectoryService,
	logger *zap.Logger,
) TriageService {
	return &triageService{
		repo:      repo,
		clf:       clf,
		directory: directory,
		timeout:   cfg.Classifier.Timeout,
		logger:    logger,
	}
}

// ────────────────────── SubmitRequest ──────────────────────

// SubmitRequest 同步落库 received 请求并立即应答；分类在后台进行
func (s *triageService) SubmitRequest(ctx context.Context, requesterID string, req *dto.SubmitRequestRequest) (*dto.SubmitRequestResponse, error) {
	userReq := &model.UserRequest{
		RequesterID: requesterID,
		Message:     req.Message,
		Status:      model.RequestStatusReceived,
	}

	if err := s.repo.UserRequest.Create(ctx, userReq); err != nil {
		s.logger.Error("保存支持请求失败", zap.Error(err))
		return nil, err
	}

	// 独立后台单元，不随请求上下文取消
	go s.runTriage(userReq.RequestID, userReq.Message)

	return &dto.SubmitRequestResponse{
		RequestID: userReq.RequestID,
		Status:    userReq.Status,
	}, nil
}

// runTriage 后台分类流程：目录 → 分类 → 草稿落库 → 条件关联。
// 任何一步失败都只记日志，请求保持 received，可由管理员手动重试。
func (s *triageService) runTriage(requestID, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log := s.logger.With(zap.String("request_id", requestID))

	directory, err := s.directory.Snapshot(ctx)
	if err != nil {
		log.Warn("获取受理人目录失败，请求保持待分类", zap.Error(err))
		return
	}

	result, err := s.clf.Classify(ctx, message, directory)
	if err != nil {
		log.Warn("分类失败，请求保持待分类", zap.Error(err))
		return
	}

	// 分类名仅做精确匹配；未命中时保持 NULL，不做模糊猜测
	var categoryID *int64
	cat, err := s.repo.Category.GetByName(ctx, result.Category)
	switch {
	case err == nil:
		categoryID = &cat.CategoryID
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Info("分类名未命中参考数据", zap.String("category", result.Category))
	default:
		log.Warn("解析分类失败，请求保持待分类", zap.Error(err))
		return
	}

	// 首位优先：取第一个建议分类 id（既定策略，非质量排序）
	var suggested *int64
	if len(result.AssigneeCategoryIDs) > 0 {
		suggested = &result.AssigneeCategoryIDs[0]
	}

	draft := &model.DraftTicket{
		Title:               result.Title,
		CategoryID:          categoryID,
		Summary:             result.Summary,
		ResolutionSteps:     model.StringArray(result.ResolutionSteps),
		SuggestedAssigneeID: suggested,
		Status:              model.DraftStatusDraft,
		CreatedByClassifier: true,
	}

	if err := s.repo.DraftTicket.Create(ctx, draft); err != nil {
		// 草稿未持久化成功，请求绝不前进到 draft
		log.Warn("保存草稿工单失败，请求保持待分类", zap.Error(err))
		return
	}

	linked, err := s.repo.UserRequest.MarkDrafted(ctx, requestID, draft.DraftTicketID)
	if err != nil {
		log.Warn("关联草稿工单失败", zap.Error(err))
		return
	}
	if !linked {
		// 重复或迟到的完成信号：请求已不在 received，按空操作处理
		log.Info("请求已离开 received 状态，跳过关联", zap.String("draft_ticket_id", draft.DraftTicketID))
		return
	}

	log.Info("后台分类完成",
		zap.String("draft_ticket_id", draft.DraftTicketID),
		zap.String("category", result.Category),
	)
}

// ────────────────────── 查询 ──────────────────────

// GetRequest 请求详情；仅请求人本人或管理员可见
func (s *triageService) GetRequest(ctx context.Context, actorID, actorRole, requestID string) (*dto.UserRequestResponse, error) {
	req, err := s.repo.UserRequest.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询支持请求失败", zap.String("id", requestID), zap.Error(err))
		return nil, err
	}

	if req.RequesterID != actorID && actorRole != model.RoleAdmin {
		return nil, ErrNoPermission
	}

	return s.toRequestResponse(req), nil
}

func (s *triageService) ListMyRequests(ctx context.Context, requesterID string, page *dto.PaginationRequest) ([]dto.UserRequestResponse, int64, error) {
	reqs, total, err := s.repo.UserRequest.ListByRequester(ctx, requesterID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出支持请求失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, *s.toRequestResponse(&reqs[i]))
	}
	return result, total, nil
}

// ────────────────────── RetryTriage ──────────────────────

// RetryTriage 管理员对仍处于 received 的请求重新发起后台分类
func (s *triageService) RetryTriage(ctx context.Context, requestID string) error {
	req, err := s.repo.UserRequest.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if req.Status != model.RequestStatusReceived {
		return ErrRequestNotPending
	}

	go s.runTriage(req.RequestID, req.Message)
	return nil
}

// ────────────────────── 草稿审批 ──────────────────────

func (s *triageService) GetDraft(ctx context.Context, draftID string) (*dto.DraftTicketResponse, error) {
	draft, err := s.repo.DraftTicket.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return toDraftResponse(draft), nil
}

// ApproveDraft 审批通过：草稿 → approved，生成正式任务，原请求 → resolved
func (s *triageService) ApproveDraft(ctx context.Context, actorID, draftID string) (*dto.ApproveDraftResponse, error) {
	draft, err := s.repo.DraftTicket.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	approved, err := s.repo.DraftTicket.UpdateStatus(ctx, draftID, model.DraftStatusDraft, model.DraftStatusApproved)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, ErrDraftAlreadyDecided
	}
	draft.Status = model.DraftStatusApproved

	task := &model.Task{
		CreatorID:   actorID,
		Description: draft.Title + "\n\n" + draft.Summary,
		Status:      model.TaskStatusTodo,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("由草稿创建任务失败", zap.String("draft_ticket_id", draftID), zap.Error(err))
		return nil, err
	}

	// 原请求前进到 resolved；请求可能不存在（草稿被手工创建）或已 resolved，均非错误
	if req, err := s.repo.UserRequest.GetByDraftID(ctx, draftID); err == nil {
		if _, err := s.repo.UserRequest.MarkResolved(ctx, req.RequestID); err != nil {
			s.logger.Warn("标记请求已解决失败", zap.String("request_id", req.RequestID), zap.Error(err))
		}
	}

	return &dto.ApproveDraftResponse{
		Draft: *toDraftResponse(draft),
		Task:  *toTaskResponse(task),
	}, nil
}

// RejectDraft 审批驳回：草稿 → rejected；请求状态只进不退，保持 draft
func (s *triageService) RejectDraft(ctx context.Context, draftID string) (*dto.DraftTicketResponse, error) {
	draft, err := s.repo.DraftTicket.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	rejected, err := s.repo.DraftTicket.UpdateStatus(ctx, draftID, model.DraftStatusDraft, model.DraftStatusRejected)
	if err != nil {
		return nil, err
	}
	if !rejected {
		return nil, ErrDraftAlreadyDecided
	}
	draft.Status = model.DraftStatusRejected

	return toDraftResponse(draft), nil
}

// ────────────────────── DTO 转换 ──────────────────────

func (s *triageService) toRequestResponse(req *model.UserRequest) *dto.UserRequestResponse {
	resp := &dto.UserRequestResponse{
		ID:            req.RequestID,
		RequesterID:   req.RequesterID,
		Message:       req.Message,
		Status:        req.Status,
		DraftTicketID: req.DraftTicketID,
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
	}
	if req.DraftTicket != nil {
		resp.DraftTicket = toDraftResponse(req.DraftTicket)
	}
	return resp
}

func toDraftResponse(draft *model.DraftTicket) *dto.DraftTicketResponse {
	resp := &dto.DraftTicketResponse{
		ID:                  draft.DraftTicketID,
		Title:               draft.Title,
		CategoryID:          draft.CategoryID,
		Summary:             draft.Summary,
		ResolutionSteps:     draft.ResolutionSteps,
		SuggestedAssigneeID: draft.SuggestedAssigneeID,
		Status:              draft.Status,
		CreatedByClassifier: draft.CreatedByClassifier,
	}
	if draft.Category != nil {
		resp.CategoryName = draft.Category.Name
	}
	return resp
}
