package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/3469335/referent-n/internal/config"
	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

// OpenRouterClient implements ports.TextGenerator against OpenRouter's
// OpenAI-compatible chat-completions endpoint.
type OpenRouterClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ ports.TextGenerator = (*OpenRouterClient)(nil)

// NewOpenRouterClient builds a client from configuration.
func NewOpenRouterClient(cfg config.OpenRouterConfig, logger *slog.Logger) *OpenRouterClient {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{referer: cfg.Referer, title: cfg.AppTitle},
	}

	return &OpenRouterClient{
		client: openai.NewClientWithConfig(apiCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Complete issues a single chat completion and returns the generated text.
// The caller owns the timeout budget via ctx.
func (c *OpenRouterClient) Complete(ctx context.Context, req ports.ChatRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", c.classify(err)
	}

	if len(resp.Choices) == 0 {
		// A 200 with no usable content is the orchestrator's empty_result.
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenRouterClient) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.warn("provider rejected completion", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		return &domain.Error{
			Kind:    domain.KindOfStatus(apiErr.HTTPStatusCode),
			Status:  apiErr.HTTPStatusCode,
			Message: "AI processing failed: " + apiErr.Message,
			Err:     err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		c.warn("provider request failed", "status", reqErr.HTTPStatusCode)
		return &domain.Error{
			Kind:    domain.KindOfStatus(reqErr.HTTPStatusCode),
			Status:  reqErr.HTTPStatusCode,
			Message: "AI processing failed: " + reqErr.Error(),
			Err:     err,
		}
	}

	return domain.WrapError(domain.KindUpstream, err, "AI processing failed")
}

func (c *OpenRouterClient) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// attributionTransport injects the attribution headers OpenRouter uses to
// identify calling applications.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.referer != "" {
		clone.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		clone.Header.Set("X-Title", t.title)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
