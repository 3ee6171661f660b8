package model

// ── 团队内角色 ──

const (
	TeamRoleAdmin  = "admin"
	TeamRoleMember = "member"
)

// Team 团队表 — 对应 teams
type Team struct {
	TeamID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	AdminID string `gorm:"type:uuid;not null"                             json:"admin_id"`
	BaseModel

	// 关联
	Members []TeamMember `gorm:"foreignKey:TeamID;references:TeamID" json:"members,omitempty"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// TeamMember 团队成员表 — 对应 team_members
// 成员维护由外部系统负责，本服务只读
type TeamMember struct {
	TeamID   string `gorm:"type:uuid;primaryKey"                       json:"team_id"`
	UserID   string `gorm:"type:uuid;primaryKey"                       json:"user_id"`
	TeamRole string `gorm:"type:varchar(20);not null;default:'member'" json:"team_role"`
}

// TableName 指定表名
func (TeamMember) TableName() string { return "team_members" }
