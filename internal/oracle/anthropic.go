package oracle

import (
	"context"
	"net/http"
	"strings"
)

const (
	defaultAnthropicURL       = "https://api.anthropic.com/v1"
	defaultAnthropicModel     = "claude-sonnet-4-20250514"
	defaultAnthropicMaxTokens = 4096
	anthropicVersion          = "2023-06-01"
)

// Anthropic chats through the messages API
type Anthropic struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

type anthropicRequest struct {
	Model     string    `json:"model"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropic creates an Anthropic client. The API requires max_tokens, so
// a non-positive value uses the default.
func NewAnthropic(baseURL, apiKey, model string, maxTokens int, client *http.Client) *Anthropic {
	if baseURL == "" {
		baseURL = defaultAnthropicURL
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Anthropic{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		client:    client,
	}
}

// Chat implements Chatter. System messages are folded into the top-level
// system field, joined by blank lines.
func (a *Anthropic) Chat(ctx context.Context, messages []Message) (string, error) {
	req := anthropicRequest{Model: a.model, MaxTokens: a.maxTokens}

	var system []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		req.Messages = append(req.Messages, m)
	}
	req.System = strings.Join(system, "\n\n")

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	if err := postJSON(ctx, a.client, "Anthropic", a.baseURL+"/messages", headers, req, &resp); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
