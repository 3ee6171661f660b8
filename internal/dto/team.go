package dto

// ── 团队模块 DTO ──

// CreateTeamRequest 创建团队请求（管理员）
type CreateTeamRequest struct {
	Name    string `json:"name"     binding:"required,min=2,max=100"`
	AdminID string `json:"admin_id" binding:"required,uuid"`
}

// TeamResponse 团队信息
type TeamResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AdminID string `json:"admin_id"`
}
