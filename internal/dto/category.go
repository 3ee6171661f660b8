package dto

// ── 分类模块 DTO ──

// CategoryResponse 分类参考数据
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
