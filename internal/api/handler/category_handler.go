package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/watchied/67011380-Todo/internal/service"
	"github.com/watchied/67011380-Todo/pkg/response"
)

// CategoryHandler 工单分类模块 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ListCategories 分类列表
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categorySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, categories)
}
