package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash-latest"

	chatTemperature = 0.7
	chatMaxTokens   = 300

	// The legacy direct endpoint allows longer answers.
	directTemperature = 0.7
	directMaxTokens   = 500
)

// Client wraps the Gemini SDK behind the narrow generation contract the
// pipeline needs: one prompt in, one best-candidate text out.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model, logger: logger}, nil
}

func (c *Client) Close() {
	if c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		c.logger.Warn("error closing GenAI client", zap.Error(err))
	}
}

// Generate issues a single completion for the chat pipeline. The caller owns
// the deadline on ctx; on expiry the in-flight request is cancelled and the
// context error is returned.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, chatTemperature, chatMaxTokens)
}

// GenerateDirect issues a completion for the legacy direct-chat endpoint,
// which permits longer responses.
func (c *Client) GenerateDirect(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, directTemperature, directMaxTokens)
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temperature,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		} else {
			c.logger.Debug("skipping non-text response part", zap.String("type", fmt.Sprintf("%T", part)))
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text parts")
	}
	return text.String(), nil
}
