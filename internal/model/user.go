package model

// ── 角色 ──

const (
	RoleUser     = "user"
	RoleAssignee = "assignee"
	RoleAdmin    = "admin"
)

// ValidRole 检查角色取值
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssignee || role == RoleAdmin
}

// User 用户表 — 对应 users
type User struct {
	UserID           string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username         string   `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash     string   `gorm:"type:varchar(255);not null"                     json:"-"`
	Role             string   `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	SkillCategoryIDs IntArray `gorm:"type:int[];not null;default:'{}'"               json:"skill_category_ids"`
	BaseModel

	// 关联
	TeamMemberships []TeamMember `gorm:"foreignKey:UserID;references:UserID" json:"team_memberships,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// CanBeAssignee 仅 assignee 与 admin 可被指派任务
func (u *User) CanBeAssignee() bool {
	return u.Role == RoleAssignee || u.Role == RoleAdmin
}
