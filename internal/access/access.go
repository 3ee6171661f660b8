// Package access 集中实现可见性与变更鉴权规则。
// 所有读路径（列表过滤）与写路径（状态/指派/删除）都经由本包判定，
// 避免各端点各自散落角色检查产生口径漂移。
package access

import "github.com/watchied/67011380-Todo/internal/model"

// Actor 发起操作的主体（由认证中间件与成员关系查询构造）
type Actor struct {
	ID        string
	Role      string
	TeamRoles map[string]string // teamID → 团队内角色
}

// NewActor 从用户与成员关系构造 Actor
func NewActor(user *model.User, memberships []model.TeamMember) Actor {
	roles := make(map[string]string, len(memberships))
	for _, m := range memberships {
		roles[m.TeamID] = m.TeamRole
	}
	return Actor{ID: user.UserID, Role: user.Role, TeamRoles: roles}
}

// IsAdmin 全局管理员
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// IsTeamMember 是否属于指定团队
func (a Actor) IsTeamMember(teamID string) bool {
	_, ok := a.TeamRoles[teamID]
	return ok
}

// IsTeamAdmin 是否为指定团队的管理员
func (a Actor) IsTeamAdmin(teamID string) bool {
	return a.TeamRoles[teamID] == model.TeamRoleAdmin
}

// CanView 读路径可见性：
// 管理员全可见；其余仅创建者、受理人或所属团队成员可见
func CanView(actor Actor, task *model.Task) bool {
	if actor.IsAdmin() {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == actor.ID {
		return true
	}
	if task.TeamID != nil && actor.IsTeamMember(*task.TeamID) {
		return true
	}
	return false
}

// Filter 返回 actor 可见的任务子集（读路径静默过滤，不报错）
func Filter(actor Actor, tasks []model.Task) []model.Task {
	if actor.IsAdmin() {
		return tasks
	}
	visible := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if CanView(actor, &tasks[i]) {
			visible = append(visible, tasks[i])
		}
	}
	return visible
}

// CanChangeStatus 状态变更鉴权：
// 管理员 / 当前受理人 / 个人任务（无团队）的创建者 / 所属团队的团队管理员
func CanChangeStatus(actor Actor, task *model.Task) bool {
	if actor.IsAdmin() {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == actor.ID {
		return true
	}
	if task.CreatorID == actor.ID && task.TeamID == nil {
		return true
	}
	if task.TeamID != nil && actor.IsTeamAdmin(*task.TeamID) {
		return true
	}
	return false
}

// CanAssign 指派变更仅限全局管理员
func CanAssign(actor Actor) bool {
	return actor.IsAdmin()
}

// CanDelete 删除仅限创建者或全局管理员
func CanDelete(actor Actor, task *model.Task) bool {
	return actor.IsAdmin() || task.CreatorID == actor.ID
}
