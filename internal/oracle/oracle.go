// Package oracle talks to the language model that drafts plans and
// explanations. The rest of the system sees it only as a Chatter: an ordered
// list of messages in, one string out.
package oracle

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/felixgeelhaar/uiforge/internal/config"
	"github.com/felixgeelhaar/uiforge/internal/errors"
)

// Role is the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Chatter sends a transcript and returns the model's reply text.
type Chatter interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ChatFunc adapts a function to the Chatter interface
type ChatFunc func(ctx context.Context, messages []Message) (string, error)

// Chat calls f
func (f ChatFunc) Chat(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}

// TransportError is a non-success HTTP response from a provider. It is never
// retried.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}

// New builds the Chatter selected by cfg.Provider. Requests carry the
// caller's trace context.
func New(cfg config.OracleConfig) (Chatter, error) {
	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllama(cfg.URL, cfg.Model, client), nil

	case config.ProviderOpenAI:
		key := cfg.APIKey()
		if key == "" {
			return nil, errors.NewOracleConfigError("openai requires an API key").
				WithSuggestion("Set OPENAI_API_KEY or oracle.api_key_env")
		}
		return NewOpenAI(cfg.URL, key, cfg.Model, cfg.MaxTokens, client), nil

	case config.ProviderAnthropic:
		key := cfg.APIKey()
		if key == "" {
			return nil, errors.NewOracleConfigError("anthropic requires an API key").
				WithSuggestion("Set ANTHROPIC_API_KEY or oracle.api_key_env")
		}
		return NewAnthropic(cfg.URL, key, cfg.Model, cfg.MaxTokens, client), nil

	default:
		return nil, errors.NewOracleConfigError(fmt.Sprintf("unknown provider %q", cfg.Provider))
	}
}

// DisplayName is the provider label used in transport errors
func DisplayName(provider string) string {
	switch provider {
	case config.ProviderOllama:
		return "Ollama"
	case config.ProviderOpenAI:
		return "OpenAI"
	case config.ProviderAnthropic:
		return "Anthropic"
	default:
		return provider
	}
}

// Endpoint returns the URL New would talk to for cfg
func Endpoint(cfg config.OracleConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return defaultOpenAIURL
	case config.ProviderAnthropic:
		return defaultAnthropicURL
	default:
		return defaultOllamaURL
	}
}
