package summarize

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider summarizes text via the OpenAI chat completions API.
type OpenAIProvider struct {
	Model  string
	apiKey string
}

// NewOpenAIProvider creates an OpenAI provider reading its key from the
// given environment variable.
func NewOpenAIProvider(model, apiKeyEnv string) *OpenAIProvider {
	return &OpenAIProvider{
		Model:  model,
		apiKey: os.Getenv(apiKeyEnv),
	}
}

// IsConfigured checks if the API key is set.
func (p *OpenAIProvider) IsConfigured() bool {
	return p.apiKey != ""
}

// Summarize asks the chat model for a short neutral summary.
func (p *OpenAIProvider) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	runes := []rune(text)
	if len(runes) > hfMaxInputChars {
		text = string(runes[:hfMaxInputChars])
	}

	client := openai.NewClient(p.apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Summarize the news article provided by the user in at most %d characters. Stay neutral and factual; do not add commentary.",
					maxLength),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}
	return resp.Choices[0].Message.Content, nil
}
