// Package gemini implements the quote-generation client over Google's
// Gemini API. It performs a single generation call per invocation; retry
// responsibility belongs to the caller.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/dailymentor/dailymentor/internal/config"
	"github.com/dailymentor/dailymentor/internal/errs"
)

// Client defines the interface for quote generation used by the pipeline.
type Client interface {
	GenerateQuote(ctx context.Context) (string, error)
}

type sdkClient struct {
	genaiClient   *genai.Client
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
	prompt        string
}

// NewClient creates a new Gemini client with the provided configuration.
// It initializes the connection to the Gemini API and sets up generation
// parameters.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errs.NewConfigError("gemini API key is required", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.NewConfigError("failed to create genai client", err)
	}

	temperature := cfg.Temperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)
	return &sdkClient{
		genaiClient:   gi,
		log:           logger,
		contentConfig: contentConfig,
		modelName:     cfg.Model,
		prompt:        cfg.Prompt,
	}, nil
}

// GenerateQuote performs one generation call and returns the quote text,
// trimmed of whitespace and surrounding quote punctuation.
func (c *sdkClient) GenerateQuote(ctx context.Context) (string, error) {
	c.log.DebugContext(ctx, "Requesting quote", "model", c.modelName)

	contents := []*genai.Content{genai.NewContentFromText(c.prompt, genai.RoleUser)}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.modelName, contents, c.contentConfig)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", classifyError(err)
	}

	text, err := c.extractTextFromResponse(ctx, resp)
	if err != nil {
		return "", err
	}

	quote := cleanQuote(text)
	if quote == "" {
		c.log.WarnContext(ctx, "Gemini returned blank quote text")
		return "", errs.NewEmptyResponseError("gemini returned blank quote text", nil)
	}

	c.log.InfoContext(ctx, "Quote generated", "length", len(quote))
	return quote, nil
}

func (c *sdkClient) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", errs.NewEmptyResponseError(fmt.Sprintf("generation blocked by safety filter: %s", reasonMsg), nil)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", errs.NewEmptyResponseError(fmt.Sprintf("gemini returned no content, finish reason: %s", finishReason), nil)
	}

	return resp.Text(), nil
}

// classifyError maps SDK errors onto the application error taxonomy.
// Non-API failures (DNS, TLS, connection resets) are treated as the
// provider being unavailable.
func classifyError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return errs.NewAuthError("gemini rejected the API key", err)
		case apiErr.Code == 429:
			return errs.NewUnavailableError("gemini rate limit exceeded", err)
		case apiErr.Code >= 500:
			return errs.NewUnavailableError(fmt.Sprintf("gemini server error (code %d)", apiErr.Code), err)
		default:
			return errs.NewUnavailableError(fmt.Sprintf("gemini API error (code %d)", apiErr.Code), err)
		}
	}
	return errs.NewUnavailableError("failed to reach gemini", err)
}

// cleanQuote trims whitespace and strips one matching pair of surrounding
// quote characters, which models frequently add around a requested quote.
func cleanQuote(s string) string {
	s = strings.TrimSpace(s)

	pairs := [][2]string{
		{`"`, `"`},
		{`'`, `'`},
		{"“", "”"}, // curly double quotes
		{"‘", "’"}, // curly single quotes
		{"«", "»"}, // guillemets
	}
	for _, p := range pairs {
		if len(s) > len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			s = strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
			break
		}
	}
	return s
}
