package openai

import (
	"context"
	"fmt"
	"time"

	"knowthee-be/pkg/embedding"
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

var _ embedding.EmbeddingProvider = (*Provider)(nil)

func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = string(goopenai.SmallEmbedding3)
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

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := goopenai.EmbeddingRequest{
		Input: texts,
		Model: goopenai.EmbeddingModel(p.cfg.Model),
	}

	var resp goopenai.EmbeddingResponse
	err := retry.Do(ctx, p.cfg.MaxRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()

		var callErr error
		resp, callErr = p.client.CreateEmbeddings(callCtx, req)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response size mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
