// Package llm talks to an OpenAI-compatible backend for embeddings and abstract summaries.
package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/demajh/research-listener/pkg/config"
)

// Client wraps the OpenAI API for the two calls the pipeline needs
type Client struct {
	client *openai.Client
	config config.LLMConfig
}

// NewClient creates a new backend client
func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

const summaryPrompt = `You are an expert technical writer.
Summarise the core contribution of the following arXiv abstract in 3 concise bullet points (max ~120 words total). Focus on what is new and why it matters.

Abstract:
%s

Summary:`

// Embed returns one vector per input, in input order
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: openai.EmbeddingModel(c.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	// the api reports positions explicitly, don't rely on response order
	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	res := make([][]float32, len(data))
	for i, d := range data {
		res[i] = d.Embedding
	}
	return res, nil
}

// Summarize asks the chat model for a short bullet summary of an abstract
func (c *Client) Summarize(ctx context.Context, abstract string) (string, error) {
	temperature := float32(c.config.Temperature)
	if temperature == 0 {
		// zero is dropped from the request by omitempty
		temperature = math.SmallestNonzeroFloat32
	}
	req := openai.ChatCompletionRequest{
		Model:       c.config.ChatModel,
		Temperature: temperature,
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(summaryPrompt, abstract),
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty summary from llm")
	}
	return text, nil
}
