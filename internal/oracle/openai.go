package oracle

import (
	"context"
	"net/http"
	"strings"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAI chats through the chat completions API
type OpenAI struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

type openAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewOpenAI creates an OpenAI client
func NewOpenAI(baseURL, apiKey, model string, maxTokens int, client *http.Client) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAI{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		client:    client,
	}
}

// Chat implements Chatter
func (o *OpenAI) Chat(ctx context.Context, messages []Message) (string, error) {
	var resp openAIResponse
	req := openAIRequest{Model: o.model, Messages: messages, MaxTokens: o.maxTokens}
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}

	if err := postJSON(ctx, o.client, "OpenAI", o.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
