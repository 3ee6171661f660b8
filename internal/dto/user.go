package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求（可指定角色与技能分类）
type CreateUserRequest struct {
	Username         string  `json:"username"           binding:"required,min=2,max=50"`
	Password         string  `json:"password"           binding:"required,min=8,max=72"`
	Role             string  `json:"role"               binding:"required,oneof=user assignee admin"`
	SkillCategoryIDs []int64 `json:"skill_category_ids" binding:"omitempty,dive,min=1"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Role             string  `json:"role"`
	SkillCategoryIDs []int64 `json:"skill_category_ids,omitempty"`
}

// TeamMembershipResponse 团队成员关系
type TeamMembershipResponse struct {
	TeamID   string `json:"team_id"`
	TeamRole string `json:"team_role"`
}

// UserDetailResponse 用户详细信息（GET /auth/me）
type UserDetailResponse struct {
	ID               string                   `json:"id"`
	Username         string                   `json:"username"`
	Role             string                   `json:"role"`
	SkillCategoryIDs []int64                  `json:"skill_category_ids,omitempty"`
	TeamMemberships  []TeamMembershipResponse `json:"team_memberships,omitempty"`
	CreatedAt        string                   `json:"created_at"`
}

// AssigneeResponse 受理人目录条目（含技能分类名称）
type AssigneeResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Expertise []string `json:"expertise"`
}
