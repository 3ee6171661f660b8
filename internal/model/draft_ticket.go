package model

// ── 草稿工单状态 ──

const (
	DraftStatusDraft    = "draft"
	DraftStatusApproved = "approved"
	DraftStatusRejected = "rejected"
)

// DraftTicket 分类器生成的草稿工单表 — 对应 draft_tickets
// CategoryID 仅在分类名精确命中 categories 表时填充，否则为 NULL
type DraftTicket struct {
	DraftTicketID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"draft_ticket_id"`
	Title               string      `gorm:"type:varchar(255);not null"                     json:"title"`
	CategoryID          *int64      `json:"category_id,omitempty"`
	Summary             string      `gorm:"type:text;not null"                             json:"summary"`
	ResolutionSteps     StringArray `gorm:"type:text[];not null;default:'{}'"              json:"resolution_steps"`
	SuggestedAssigneeID *int64      `json:"suggested_assignee_id,omitempty"`
	Status              string      `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	CreatedByClassifier bool        `gorm:"not null;default:false"                         json:"created_by_classifier"`
	BaseModel

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (DraftTicket) TableName() string { return "draft_tickets" }
