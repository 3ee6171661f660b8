package classifier

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable 分类服务不可达或超时（瞬态，可由上层重试）
	ErrUnavailable = errors.New("分类服务不可用")
	// ErrParse 分类服务响应无法按约定结构解析
	ErrParse = errors.New("分类结果解析失败")
)

// Assignee 受理人目录条目，随消息一并送入分类器
type Assignee struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Expertise []string `json:"expertise"`
}

// Result 分类器输出约定
// 约定之外的字段一律忽略；必填字段缺失视为解析失败
type Result struct {
	Title               string   `json:"title"`
	Category            string   `json:"category"`
	Summary             string   `json:"summary"`
	ResolutionSteps     []string `json:"resolution_steps"`
	AssigneeCategoryIDs []int64  `json:"assignee_category_ids"`
	AssignedToID        *string  `json:"assigned_to_id"`
}

// Validate 校验必填字段
func (r *Result) Validate() error {
	if r.Title == "" || r.Category == "" || r.Summary == "" {
		return ErrParse
	}
	return nil
}

// Classifier 外部分类能力边界
// 实现不做内部重试；重试策略属于调用方
type Classifier interface {
	Classify(ctx context.Context, message string, directory []Assignee) (*Result, error)
}
