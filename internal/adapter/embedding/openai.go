package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// OpenAI embeds text through the OpenAI embeddings API.
type OpenAI struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAI creates an OpenAI embedder. The API key is read from the given
// environment variable.
func NewOpenAI(apiKeyEnv, model string) (*OpenAI, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	if model == "" {
		model = "text-embedding-3-small"
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	case "text-embedding-ada-002":
		dimension = 1536
	}

	return &OpenAI{
		client:    openai.NewClient(apiKey),
		model:     model,
		dimension: dimension,
	}, nil
}

func (e *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, err
	}

	if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding in response")
	}

	return rsp.Data[0].Embedding, nil
}

func (e *OpenAI) Dimension() int {
	return e.dimension
}

func (e *OpenAI) ModelName() string {
	return e.model
}
