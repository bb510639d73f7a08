package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini embeds text through the Google Gemini embedding API.
type Gemini struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGemini creates a Gemini embedder. The API key is read from the given
// environment variable.
func NewGemini(ctx context.Context, apiKeyEnv, model string) (*Gemini, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = "embedding-001"
	}

	return &Gemini{
		client:    client,
		model:     model,
		dimension: 768,
	}, nil
}

func (e *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	model := e.client.EmbeddingModel(e.model)
	rsp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}

	if rsp == nil || rsp.Embedding == nil || len(rsp.Embedding.Values) == 0 {
		return nil, errors.New("no embedding in response")
	}

	return rsp.Embedding.Values, nil
}

func (e *Gemini) Dimension() int {
	return e.dimension
}

func (e *Gemini) ModelName() string {
	return e.model
}

// Close releases the underlying API client.
func (e *Gemini) Close() error {
	return e.client.Close()
}
