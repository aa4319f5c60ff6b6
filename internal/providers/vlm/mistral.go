package vlm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lariskan-server/internal/domain"
)

const (
	mistralDefaultTimeout = 60 * time.Second
	mistralDefaultModel   = "pixtral-12b-2409"
	mistralDefaultBaseURL = "https://api.mistral.ai/v1"
)

type MistralOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// MistralGenerator submits the image by reference (URL) plus the prompt to
// Mistral's OpenAI-compatible chat completions endpoint.
type MistralGenerator struct {
	client *openai.Client
	model  string
}

func NewMistralGenerator(opts MistralOptions) (*MistralGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("mistral api key is required")
	}
	cfg := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = mistralDefaultBaseURL
	}
	cfg.BaseURL = baseURL
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{Timeout: mistralDefaultTimeout}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = mistralDefaultModel
	}
	return &MistralGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (m *MistralGenerator) Generate(ctx context.Context, imageURL, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
				},
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: mistral request: %v", domain.ErrProviderFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: mistral returned no choices", domain.ErrProviderFailure)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: mistral returned non-text content", domain.ErrProviderFailure)
	}
	return content, nil
}

var _ Generator = (*MistralGenerator)(nil)
