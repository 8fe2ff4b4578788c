package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"rpmdiag/config"
)

// Anthropic talks to the Anthropic Messages API through the official SDK.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates a Messages API client. SDK retries are turned off.
func NewAnthropic(cfg config.BackendConfig) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(newHTTPClient(cfg)),
		option.WithMaxRetries(0),
	}
	if cfg.APIRoot != "" {
		opts = append(opts, option.WithBaseURL(cfg.APIRoot+"/"))
	}
	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

// Complete sends the rubric as the system prompt and userText as the only user turn.
func (c *Anthropic) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userText)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{
				Provider:   "anthropic",
				StatusCode: apiErr.StatusCode,
				Message:    upstreamMessage([]byte(apiErr.RawJSON())),
			}
		}
		return "", fmt.Errorf("anthropic request: %w", err)
	}

	var sb strings.Builder
	found := false
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
			found = true
		}
	}
	if !found {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
