// Package insights turns a scored answer set into a short written analysis
// using the OpenAI chat completion API.
package insights

import (
	"context"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
	}
}

const MaxTokens = 1024

func (c *Client) SyncCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo1106,
			MaxTokens: MaxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return openai.ChatCompletionResponse{}, errors.Wrap(err, "create chat completion")
	}
	return completion, nil
}

func (c *Client) StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionStream, error) {
	completion, err := c.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:    openai.GPT3Dot5Turbo,
			Messages: messages,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion stream")
	}
	return completion, nil
}
