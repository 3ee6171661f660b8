package dto

import "time"

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Description    string     `json:"description"     binding:"required,max=4000"`
	TargetDatetime *time.Time `json:"target_datetime" binding:"omitempty"`
	AssigneeID     *string    `json:"assignee_id"     binding:"omitempty,uuid"`
	TeamID         *string    `json:"team_id"         binding:"omitempty,uuid"`
}

// ChangeTaskStatusRequest 修改任务状态请求
// 取值合法性在 Service 层校验（todo/doing/done，方向不限）
type ChangeTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeTaskAssigneeRequest 修改任务受理人请求（管理员）
type ChangeTaskAssigneeRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required,uuid"`
}

// AddAttachmentRequest 添加附件引用请求（引用为不透明字符串，由外部存储系统签发）
type AddAttachmentRequest struct {
	Ref string `json:"ref" binding:"required,max=512"`
}

// TaskResponse 任务信息
type TaskResponse struct {
	ID             string     `json:"id"`
	CreatorID      string     `json:"creator_id"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	TargetDatetime *time.Time `json:"target_datetime,omitempty"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	TeamID         *string    `json:"team_id,omitempty"`
	Attachments    []string   `json:"attachments"`
	CreatedAt      string     `json:"created_at"`
}
