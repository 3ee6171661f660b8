package model

// ── 请求状态（只进不退：received → draft → resolved）──

const (
	RequestStatusReceived = "received"
	RequestStatusDraft    = "draft"
	RequestStatusResolved = "resolved"
)

// UserRequest 用户支持请求表 — 对应 user_requests
// status=draft 时 DraftTicketID 必然指向已持久化的 DraftTicket
type UserRequest struct {
	RequestID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	RequesterID   string  `gorm:"type:uuid;not null"                             json:"requester_id"`
	Message       string  `gorm:"type:text;not null"                             json:"message"`
	Status        string  `gorm:"type:varchar(20);not null;default:'received'"   json:"status"`
	DraftTicketID *string `gorm:"type:uuid"                                      json:"draft_ticket_id,omitempty"`
	BaseModel

	// 关联
	DraftTicket *DraftTicket `gorm:"foreignKey:DraftTicketID;references:DraftTicketID" json:"draft_ticket,omitempty"`
}

// TableName 指定表名
func (UserRequest) TableName() string { return "user_requests" }
