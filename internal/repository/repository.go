package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Category    CategoryRepository
	Team        TeamRepository
	Task        TaskRepository
	UserRequest UserRequestRepository
	DraftTicket DraftTicketRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Category:    NewCategoryRepo(db),
		Team:        NewTeamRepo(db),
		Task:        NewTaskRepo(db),
		UserRequest: NewUserRequestRepo(db),
		DraftTicket: NewDraftTicketRepo(db),
	}
}
