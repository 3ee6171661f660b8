package dto

// ── 支持请求 / 草稿工单 DTO ──

// SubmitRequestRequest 提交支持请求
type SubmitRequestRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

// SubmitRequestResponse 提交确认（先应答，分类在后台进行）
type SubmitRequestResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// UserRequestResponse 支持请求详情
type UserRequestResponse struct {
	ID            string               `json:"id"`
	RequesterID   string               `json:"requester_id"`
	Message       string               `json:"message"`
	Status        string               `json:"status"`
	DraftTicketID *string              `json:"draft_ticket_id,omitempty"`
	DraftTicket   *DraftTicketResponse `json:"draft_ticket,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

// DraftTicketResponse 草稿工单详情
type DraftTicketResponse struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	CategoryID          *int64   `json:"category_id,omitempty"`
	CategoryName        string   `json:"category_name,omitempty"`
	Summary             string   `json:"summary"`
	ResolutionSteps     []string `json:"resolution_steps"`
	SuggestedAssigneeID *int64   `json:"suggested_assignee_id,omitempty"`
	Status              string   `json:"status"`
	CreatedByClassifier bool     `json:"created_by_classifier"`
}

// ApproveDraftResponse 审批通过响应（返回由草稿生成的任务）
type ApproveDraftResponse struct {
	Draft DraftTicketResponse `json:"draft"`
	Task  TaskResponse        `json:"task"`
}
