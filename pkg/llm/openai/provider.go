package openai

import (
	"context"
	"fmt"
	"time"

	"knowthee-be/pkg/llm"
	"knowthee-be/pkg/retry"

	goopenai "github.com/sashabaranov/go-openai"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

type Provider struct {
	client *goopenai.Client
	cfg    Config
}

func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: goopenai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{Model: p.cfg.Model}
	for _, o := range options {
		o(&opts)
	}
	if opts.Model == "" {
		opts.Model = p.cfg.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, m := range history {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	var resp goopenai.ChatCompletionResponse
	err := retry.Do(ctx, p.cfg.MaxRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()

		var callErr error
		resp, callErr = p.client.CreateChatCompletion(callCtx, req)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, options...)
}
