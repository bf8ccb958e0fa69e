package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Generation defaults. Overridable through OpenAIConfig.
const (
	DefaultModel       = openai.ChatModelGPT4oMini
	defaultTemperature = 0.6
	defaultMaxTokens   = 600
)

// OpenAIConfig configures the OpenAI-backed generator.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIGenerator narrates actions through the OpenAI chat completions API.
type OpenAIGenerator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIGenerator builds an OpenAI-backed generator.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := DefaultModel
	if strings.TrimSpace(cfg.Model) != "" {
		model = openai.ChatModel(strings.TrimSpace(cfg.Model))
	}

	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Narrate sends the table context as a chat conversation: the DM prompt and
// game state as the system message, the history window as alternating
// user/assistant pairs, and the live action as the final user message.
func (g *OpenAIGenerator) Narrate(ctx context.Context, req Request) (Result, error) {
	if g == nil {
		return Result{}, fmt.Errorf("generator is not configured")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2*len(req.History)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt(req)))
	for _, exchange := range req.History {
		messages = append(messages, openai.UserMessage(actLine(exchange.Actor, exchange.Action)))
		messages = append(messages, openai.AssistantMessage(exchange.Narration))
	}
	messages = append(messages, openai.UserMessage(actLine(req.Actor, req.Action)))

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    messages,
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Result{}, fmt.Errorf("no completion choices returned")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return Result{}, fmt.Errorf("empty completion content")
	}

	return Result{Text: text}, nil
}
