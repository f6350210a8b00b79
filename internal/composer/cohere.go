package composer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/core"
	"github.com/cohere-ai/cohere-go/v2/option"
)

const (
	DefaultCohereBaseURL = "https://api.cohere.com"
	DefaultCohereModel   = "command-r-plus"
)

// CompletionRequest is a single-prompt completion.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer is the remote language model.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CohereClient talks to the Cohere v2 chat API.
type CohereClient struct {
	apiKey string
	model  string
	client *cohereclient.Client
}

func NewCohereClient(apiKey, model, baseURL string, timeout time.Duration) *CohereClient {
	if model == "" {
		model = DefaultCohereModel
	}
	if baseURL == "" {
		baseURL = DefaultCohereBaseURL
	}
	// Fallbacks are handled by the composer, so the SDK makes a single attempt.
	client := cohereclient.NewClient(
		option.WithToken(apiKey),
		option.WithBaseURL(strings.TrimRight(baseURL, "/")),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxAttempts(1),
	)
	return &CohereClient{apiKey: apiKey, model: model, client: client}
}

func (c *CohereClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("cohere api key is not configured")
	}

	chatReq := &cohere.V2ChatRequest{
		Model: c.model,
		Messages: cohere.ChatMessages{{
			Role: "user",
			User: &cohere.UserMessageV2{
				Content: &cohere.UserMessageV2Content{String: req.Prompt},
			},
		}},
		Temperature: &req.Temperature,
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = &req.MaxTokens
	}

	resp, err := c.client.V2.Chat(ctx, chatReq)
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("cohere api error (%d): %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("failed to send cohere request: %w", err)
	}

	var text strings.Builder
	if msg := resp.GetMessage(); msg != nil {
		for _, part := range msg.Content {
			if part != nil && part.Text != nil {
				text.WriteString(part.Text.Text)
			}
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no content returned from cohere")
	}
	return text.String(), nil
}
