// Package gemini is a thin wrapper around the official genai client,
// narrowed to the single JSON-generation call the extractor needs.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// ErrInvalidResponse marks a model reply with no usable JSON payload.
var ErrInvalidResponse = errors.New("gemini: empty or invalid response")

type Client struct {
	cli   *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

func (c *Client) Name() string { return "gemini:" + c.model }

// GenerateJSON sends the prompt and requests an application/json reply.
// One attempt only; the caller owns timeout and fallback policy.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrInvalidResponse
	}
	txt := resp.Candidates[0].Content.Parts[0].Text
	if !json.Valid([]byte(txt)) {
		return nil, ErrInvalidResponse
	}
	return json.RawMessage(txt), nil
}
