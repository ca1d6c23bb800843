package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"trip-planner/config"
	"trip-planner/utils"
)

// ErrMissingAPIKey is returned when no key is configured for the endpoint
var ErrMissingAPIKey = errors.New("llm api key is not configured")

// ErrEmptyResponse is returned when the model produced no choices
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Client sends single-turn chat completions to an OpenAI-compatible endpoint
type Client struct {
	model  llms.Model
	name   string
	logger *utils.Logger
}

// NewClient connects to the endpoint described by cfg
func NewClient(cfg config.LLMConfig, logger *utils.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return NewClientWithModel(model, cfg.Model, logger), nil
}

// NewClientWithModel wraps an existing langchaingo model
func NewClientWithModel(model llms.Model, name string, logger *utils.Logger) *Client {
	return &Client{model: model, name: name, logger: logger}
}

// Generate runs one deterministic completion with no output cap
func (c *Client) Generate(ctx context.Context, instructions, content string) (string, error) {
	return c.Complete(ctx, instructions, content, 0)
}

// Complete runs one deterministic completion. maxTokens <= 0 leaves the
// output length to the endpoint.
func (c *Client) Complete(ctx context.Context, instructions, content string, maxTokens int) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, instructions),
		llms.TextParts(schema.ChatMessageTypeHuman, content),
	}
	opts := []llms.CallOption{llms.WithTemperature(0)}
	if maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		c.logger.WithContext(ctx).Warn("llm completion failed", "model", c.name, "error", err)
		return "", fmt.Errorf("llm completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Content)
	c.logger.WithContext(ctx).Debug("llm completion done", "model", c.name, "chars", len(text))
	return text, nil
}
