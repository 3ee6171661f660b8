package model

import "time"

// ── 任务状态 ──

const (
	TaskStatusTodo  = "todo"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

// ValidTaskStatus 检查任务状态取值
// 状态机方向不受限制（done 可回退），仅校验取值集合
func ValidTaskStatus(status string) bool {
	return status == TaskStatusTodo || status == TaskStatusDoing || status == TaskStatusDone
}

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID         string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	CreatorID      string      `gorm:"type:uuid;not null"                             json:"creator_id"`
	Description    string      `gorm:"type:text;not null"                             json:"description"`
	Status         string      `gorm:"type:varchar(20);not null;default:'todo'"       json:"status"`
	TargetDatetime *time.Time  `json:"target_datetime,omitempty"`
	AssigneeID     *string     `gorm:"type:uuid"                                      json:"assignee_id,omitempty"`
	TeamID         *string     `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	Attachments    StringArray `gorm:"type:text[];not null;default:'{}'"              json:"attachments"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }
