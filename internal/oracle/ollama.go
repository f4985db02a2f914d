package oracle

import (
	"context"
	"net/http"
)

const (
	defaultOllamaURL   = "http://localhost:11434/api/chat"
	defaultOllamaModel = "qwen2.5:1.5b"
)

// Ollama chats with a local Ollama server through /api/chat
type Ollama struct {
	url    string
	model  string
	client *http.Client
}

type ollamaRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaResponse struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
}

// NewOllama creates an Ollama client. Empty url and model fall back to the
// local defaults.
func NewOllama(url, model string, client *http.Client) *Ollama {
	if url == "" {
		url = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Ollama{url: url, model: model, client: client}
}

// Chat implements Chatter. A response without a message yields "".
func (o *Ollama) Chat(ctx context.Context, messages []Message) (string, error) {
	var resp ollamaResponse
	req := ollamaRequest{Model: o.model, Messages: messages, Stream: false}
	if err := postJSON(ctx, o.client, "Ollama", o.url, nil, req, &resp); err != nil {
		return "", err
	}
	if resp.Message == nil {
		return "", nil
	}
	return resp.Message.Content, nil
}
