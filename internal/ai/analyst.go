package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/tracepoint/tracepoint/internal/model"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const maxTokens = 1024

// ErrNoAPIKey is returned when an Analyst is constructed without a key.
var ErrNoAPIKey = errors.New("ai: no API key configured")

// chatCompleter is the slice of the OpenAI client the Analyst needs.
// Narrowed to an interface so tests can run without network access.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyst turns a scan result into a short narrative a non-technical
// user can act on.
type Analyst struct {
	client chatCompleter
	model  string
	logger *slog.Logger
}

// Option configures an Analyst.
type Option func(*Analyst)

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(a *Analyst) {
		a.model = model
	}
}

// WithLogger sets the Analyst's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyst) {
		a.logger = logger
	}
}

// withClient replaces the OpenAI client. Test-only.
func withClient(client chatCompleter) Option {
	return func(a *Analyst) {
		a.client = client
	}
}

// NewAnalyst creates an Analyst backed by the OpenAI API.
func NewAnalyst(apiKey string, opts ...Option) (*Analyst, error) {
	a := &Analyst{model: DefaultModel}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.client == nil {
		if apiKey == "" {
			return nil, ErrNoAPIKey
		}
		a.client = openai.NewClient(apiKey)
	}

	return a, nil
}

// Summarize produces a short plain-language narrative of the result.
// Failures are the caller's to absorb; the scan result stands on its
// own without the narrative.
func (a *Analyst) Summarize(ctx context.Context, result *model.ScanResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal scan result: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(payload)},
		},
		MaxTokens: maxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ai: empty completion response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.logger.Debug("analyst summary generated", "target", result.Target, "length", len(summary))

	return summary, nil
}

// systemPrompt keeps the narrative short, actionable, and free of raw
// sensitive values. The scanner already masks values in compliance
// records; the narrative must not undo that.
const systemPrompt = `You are a privacy analyst explaining a personal data exposure report to its subject. ` +
	`Write 3-5 plain sentences: what was found, how severe it is, and the two most urgent actions to take. ` +
	`Never repeat raw identifiers, numbers, or credentials from the report; refer to them by type only. ` +
	`No markdown, no lists, no preamble.`

// userPrompt wraps the report JSON for the chat request.
func userPrompt(payload []byte) string {
	return "Summarize this exposure scan result:\n" + string(payload)
}
