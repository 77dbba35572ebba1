package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
)

// Ensure OpenRouterProofreader implements Proofreader
var _ driven.Proofreader = (*OpenRouterProofreader)(nil)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "z-ai/glm-4.7"

	promptCacheTTL = 5 * time.Minute
)

// fallbackSystemPrompt is used when no remote prompt source is
// configured or reachable.
const fallbackSystemPrompt = `あなたは日本語の小説校正の専門家です。出版社の校正担当として、以下のテキストを校正してください。

以下のカテゴリで問題を指摘してください:
- 誤字脱字: 明らかな誤字・脱字・変換ミス
- 表記ゆれ: 同一単語の表記が統一されていない
- 文法: 助詞・活用・係り受けの誤り
- 句読点: 不適切な読点の位置、句読点の過不足
- 表現改善: より適切な表現への提案
- 文体統一: 文体の不統一（である調/ですます調の混在等）

必ず以下のJSON形式のみで回答してください（コードブロック等は不要）:
{
  "issues": [
    {
      "category": "誤字脱字",
      "severity": "error",
      "original": "問題のある原文テキスト（該当箇所のみ）",
      "suggestion": "修正後のテキスト",
      "reason": "修正理由の説明",
      "context": "前後の文脈を含むテキスト（1文程度）"
    }
  ],
  "summary": "全体的な校正所見（2-3文）"
}

重要なルール:
- originalには問題のある箇所の原文テキストをそのまま含めること
- 問題がない場合はissuesを空配列にすること
- severityは error（明確な誤り）、warning（改善推奨）、info（提案）で使い分けること
- JSON以外のテキストは一切出力しないこと`

// OpenRouterProofreader implements Proofreader against the OpenRouter
// chat completions API. The system prompt can optionally be fetched
// from a remote prompt service and is cached for five minutes.
type OpenRouterProofreader struct {
	apiKey    string
	model     string
	baseURL   string
	promptURL string
	client    *http.Client

	mu              sync.Mutex
	cachedPrompt    string
	promptFetchedAt time.Time
}

// Option configures an OpenRouterProofreader
type Option func(*OpenRouterProofreader)

// WithModel overrides the default model
func WithModel(model string) Option {
	return func(p *OpenRouterProofreader) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL overrides the API base URL (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(p *OpenRouterProofreader) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithPromptURL sets a remote source for the system prompt. When unset
// or unreachable the built-in prompt is used.
func WithPromptURL(url string) Option {
	return func(p *OpenRouterProofreader) {
		p.promptURL = url
	}
}

// NewOpenRouterProofreader creates a new OpenRouter proofreading client
func NewOpenRouterProofreader(apiKey string, opts ...Option) (*OpenRouterProofreader, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}

	p := &OpenRouterProofreader{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// chatRequest is the request body for the chat completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Proofread analyses the given text and returns any issues found
func (p *OpenRouterProofreader) Proofread(ctx context.Context, text string) (*domain.ProofreadingResult, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.systemPrompt(ctx)},
			{Role: "user", Content: "以下のテキストを校正してください:\n\n" + text},
		},
		MaxTokens:   4096,
		Temperature: 0.3,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrServiceUnavailable, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrMalformedResponse)
	}

	return parseResult(chatResp.Choices[0].Message.Content)
}

// Model returns the model identifier in use
func (p *OpenRouterProofreader) Model() string {
	return p.model
}

// Ping checks that the upstream service is reachable
func (p *OpenRouterProofreader) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// systemPrompt returns the remote prompt when configured and fresh,
// falling back to the built-in prompt
func (p *OpenRouterProofreader) systemPrompt(ctx context.Context) string {
	if p.promptURL == "" {
		return fallbackSystemPrompt
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedPrompt != "" && time.Since(p.promptFetchedAt) < promptCacheTTL {
		return p.cachedPrompt
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, "GET", p.promptURL, nil)
	if err != nil {
		return p.stalePromptOrFallback()
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.stalePromptOrFallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return p.stalePromptOrFallback()
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Prompt == "" {
		return p.stalePromptOrFallback()
	}

	p.cachedPrompt = payload.Prompt
	p.promptFetchedAt = time.Now()
	return p.cachedPrompt
}

// stalePromptOrFallback serves a previously fetched prompt past its TTL
// rather than failing over to the fallback while the source is down
func (p *OpenRouterProofreader) stalePromptOrFallback() string {
	if p.cachedPrompt != "" {
		return p.cachedPrompt
	}
	return fallbackSystemPrompt
}

// parseResult extracts the proofreading JSON from a completion,
// stripping markdown code fences if the model wrapped its output
func parseResult(content string) (*domain.ProofreadingResult, error) {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var raw struct {
		Issues  []domain.ProofreadingIssue `json:"issues"`
		Summary string                     `json:"summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if raw.Issues == nil {
		return nil, fmt.Errorf("%w: missing issues array", domain.ErrMalformedResponse)
	}

	for i := range raw.Issues {
		if raw.Issues[i].ID == "" {
			raw.Issues[i].ID = fmt.Sprintf("issue-%d", i+1)
		}
	}

	return &domain.ProofreadingResult{
		Issues:  raw.Issues,
		Summary: raw.Summary,
	}, nil
}
