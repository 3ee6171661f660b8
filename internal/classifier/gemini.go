package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/watchied/67011380-Todo/config"
)

// GeminiClassifier 基于 Gemini generateContent REST API 的分类实现
type GeminiClassifier struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiClassifier 创建 GeminiClassifier
func NewGeminiClassifier(cfg *config.ClassifierConfig, logger *zap.Logger) *GeminiClassifier {
	return &GeminiClassifier{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// ── Gemini 请求/响应结构 ──

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const promptTemplate = `You are an AI that creates draft support tickets.

User message:
%q

Available assignees (with expertise category names):
%s

Return ONLY a JSON object with this exact shape:
{
  "title": "",
  "category": "",
  "summary": "",
  "resolution_steps": [],
  "assignee_category_ids": [],
  "assigned_to_id": null
}
"category" must be the single best matching expertise category name.
"assignee_category_ids" lists matching category ids in descending relevance.
`

// Classify 调用 Gemini 将自由文本请求转换为结构化草稿工单字段
// 不可达/超时 → ErrUnavailable；响应不符合约定 → ErrParse。不做内部重试。
func (g *GeminiClassifier) Classify(ctx context.Context, message string, directory []Assignee) (*Result, error) {
	dirJSON, err := json.Marshal(directory)
	if err != nil {
		return nil, fmt.Errorf("序列化受理人目录失败: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, message, dirJSON)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("序列化分类请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造分类请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: 上游返回 %d", ErrUnavailable, resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: 响应为空", ErrParse)
	}

	return parseResult(gr.Candidates[0].Content.Parts[0].Text)
}

// parseResult 从模型输出文本中提取并校验约定 JSON
// 模型常把 JSON 包在 markdown 代码块里，先剥掉围栏
func parseResult(text string) (*Result, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}
