package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxTokens = 1024

// Client implements both the text and vision model collaborators against the
// Anthropic API.
type Client struct {
	client      *anthropic.Client
	textModel   string
	visionModel string
}

func New(apiKey, textModel, visionModel string) *Client {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Client{
		client:      &client,
		textModel:   textModel,
		visionModel: visionModel,
	}
}

// Complete sends a text-only prompt and returns the raw response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.textModel),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("call text model: %w", err)
	}
	return extractText(message)
}

// CompleteWithImage sends a prompt together with one base64-encoded image.
func (c *Client) CompleteWithImage(ctx context.Context, prompt, imageBase64, mediaType string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.visionModel),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, imageBase64),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("call vision model: %w", err)
	}
	return extractText(message)
}

func extractText(message *anthropic.Message) (string, error) {
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("model returned no text content")
}
