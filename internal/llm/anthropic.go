package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicMaxTokens caps each response.
const DefaultAnthropicMaxTokens = 1024

// AnthropicProvider talks to the Anthropic messages API. The messages API has
// no response format switch, so a schema is passed as JSON-only instructions.
type AnthropicProvider struct {
	client    anthropic.Client
	maxTokens int64
}

// AnthropicOption configures an AnthropicProvider.
type AnthropicOption func(*anthropicConfig)

type anthropicConfig struct {
	baseURL    string
	httpClient *http.Client
	maxTokens  int64
}

// WithAnthropicBaseURL points the client at a different endpoint.
func WithAnthropicBaseURL(baseURL string) AnthropicOption {
	return func(c *anthropicConfig) {
		c.baseURL = baseURL
	}
}

// WithAnthropicHTTPClient sets the HTTP client used for requests.
func WithAnthropicHTTPClient(hc *http.Client) AnthropicOption {
	return func(c *anthropicConfig) {
		c.httpClient = hc
	}
}

// WithMaxTokens overrides DefaultAnthropicMaxTokens.
func WithMaxTokens(n int64) AnthropicOption {
	return func(c *anthropicConfig) {
		c.maxTokens = n
	}
}

// NewAnthropicProvider creates a provider. An empty key falls back to ANTHROPIC_API_KEY.
func NewAnthropicProvider(apiKey string, opts ...AnthropicOption) (*AnthropicProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
	}

	cfg := &anthropicConfig{maxTokens: DefaultAnthropicMaxTokens}
	for _, opt := range opts {
		opt(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(reqOpts...),
		maxTokens: cfg.maxTokens,
	}, nil
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	system := req.System
	if req.Schema != nil {
		schema, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return "", fmt.Errorf("encode schema: %w", err)
		}
		system += "\nRespond with a single JSON object and nothing else. It must match this JSON schema:\n" + string(schema)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("messages: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
