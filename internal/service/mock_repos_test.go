package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users       map[string]*model.User
	memberships []model.TeamMember
	getErr      error
	listErr     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%03d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListAssignees(_ context.Context) ([]model.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.User
	for _, u := range m.users {
		if u.CanBeAssignee() {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListMemberships(_ context.Context, userID string) ([]model.TeamMember, error) {
	var result []model.TeamMember
	for _, tm := range m.memberships {
		if tm.UserID == userID {
			result = append(result, tm)
		}
	}
	return result, nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[int64]*model.Category
	listErr    error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[int64]*model.Category)}
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = fmt.Sprintf("team-%03d", len(m.teams)+1)
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		result = append(result, *t)
	}
	return result, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks     map[string]*model.Task
	createErr error
	updateErr error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	if task.TaskID == "" {
		task.TaskID = fmt.Sprintf("task-%03d", len(m.tasks)+1)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListAll(_ context.Context, offset, limit int) ([]model.Task, int64, error) {
	var result []model.Task
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockTaskRepo) ListVisible(_ context.Context, actorID string, offset, limit int) ([]model.Task, int64, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.CreatorID == actorID ||
			(t.AssigneeID != nil && *t.AssigneeID == actorID) {
			result = append(result, *t)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	t, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (m *mockTaskRepo) UpdateAssignee(_ context.Context, id, assigneeID string) error {
	t, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.AssigneeID = &assigneeID
	return nil
}

func (m *mockTaskRepo) AppendAttachment(_ context.Context, task *model.Task) error {
	t, ok := m.tasks[task.TaskID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Attachments = task.Attachments
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

// ── Mock UserRequestRepository ──

type mockUserRequestRepo struct {
	requests  map[string]*model.UserRequest
	createErr error
	markErr   error
}

func newMockUserRequestRepo() *mockUserRequestRepo {
	return &mockUserRequestRepo{requests: make(map[string]*model.UserRequest)}
}

func (m *mockUserRequestRepo) Create(_ context.Context, req *model.UserRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("req-%03d", len(m.requests)+1)
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockUserRequestRepo) GetByID(_ context.Context, id string) (*model.UserRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRequestRepo) GetByDraftID(_ context.Context, draftTicketID string) (*model.UserRequest, error) {
	for _, r := range m.requests {
		if r.DraftTicketID != nil && *r.DraftTicketID == draftTicketID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRequestRepo) ListByRequester(_ context.Context, requesterID string, offset, limit int) ([]model.UserRequest, int64, error) {
	var result []model.UserRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRequestRepo) MarkDrafted(_ context.Context, id, draftTicketID string) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	r, ok := m.requests[id]
	if !ok || r.Status != model.RequestStatusReceived {
		return false, nil
	}
	r.Status = model.RequestStatusDraft
	r.DraftTicketID = &draftTicketID
	return true, nil
}

func (m *mockUserRequestRepo) MarkResolved(_ context.Context, id string) (bool, error) {
	r, ok := m.requests[id]
	if !ok || r.Status != model.RequestStatusDraft {
		return false, nil
	}
	r.Status = model.RequestStatusResolved
	return true, nil
}

// ── Mock DraftTicketRepository ──

type mockDraftTicketRepo struct {
	drafts    map[string]*model.DraftTicket
	createErr error
}

func newMockDraftTicketRepo() *mockDraftTicketRepo {
	return &mockDraftTicketRepo{drafts: make(map[string]*model.DraftTicket)}
}

func (m *mockDraftTicketRepo) Create(_ context.Context, draft *model.DraftTicket) error {
	if m.createErr != nil {
		return m.createErr
	}
	if draft.DraftTicketID == "" {
		draft.DraftTicketID = fmt.Sprintf("draft-%03d", len(m.drafts)+1)
	}
	m.drafts[draft.DraftTicketID] = draft
	return nil
}

func (m *mockDraftTicketRepo) GetByID(_ context.Context, id string) (*model.DraftTicket, error) {
	if d, ok := m.drafts[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDraftTicketRepo) UpdateStatus(_ context.Context, id, fromStatus, toStatus string) (bool, error) {
	d, ok := m.drafts[id]
	if !ok || d.Status != fromStatus {
		return false, nil
	}
	d.Status = toStatus
	return true, nil
}

// ── 测试用聚合 ──

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:        newMockUserRepo(),
		Category:    newMockCategoryRepo(),
		Team:        newMockTeamRepo(),
		Task:        newMockTaskRepo(),
		UserRequest: newMockUserRequestRepo(),
		DraftTicket: newMockDraftTicketRepo(),
	}
}
