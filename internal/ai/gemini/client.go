package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 20 * time.Second
	defaultMaxLog  = 200
)

// Client implements ai.Completer on top of the Gemini API backend.
type Client struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// NewClient creates a Completer configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration, maxLogLength int, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLog
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		client:    client,
		modelName: model,
		timeout:   timeout,
		maxLogLen: maxLogLength,
		logger:    log,
	}, nil
}

// Complete sends the prompt to Gemini and returns the first textual response.
// Every failure, including the per-call timeout, is surfaced as *ai.ServiceError.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c == nil || c.client == nil {
		return "", &ai.ServiceError{Provider: "gemini", Err: errors.New("client is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ai.ServiceError{Provider: "gemini", Err: errors.New("prompt must not be empty")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var cfg *genai.GenerateContentConfig
	if maxTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(maxTokens)}
	}

	c.logger.Debug("gemini completion request",
		zap.String("model", c.modelName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, c.maxLogLen)),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", &ai.ServiceError{Provider: "gemini", Err: err}
	}

	output := extractText(resp)
	if output == "" {
		return "", &ai.ServiceError{Provider: "gemini", Err: errors.New("api returned empty response")}
	}

	c.logger.Debug("gemini completion response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.Truncate(output, c.maxLogLen)),
	)

	return output, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

// extractText flattens all textual parts of all candidates into one string.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
