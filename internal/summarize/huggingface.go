package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	hfInferenceBaseURL = "https://api-inference.huggingface.co/models"

	// The inference endpoint rejects overly long inputs, so requests
	// carry at most this many characters.
	hfMaxInputChars = 1000

	hfMinSummaryLength = 50
)

// HuggingFaceProvider summarizes text via the Hugging Face inference API.
type HuggingFaceProvider struct {
	Model   string
	BaseURL string
	apiKey  string
	client  *http.Client
}

// NewHuggingFaceProvider creates a Hugging Face provider reading its
// token from the given environment variable.
func NewHuggingFaceProvider(model, apiKeyEnv string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		Model:   model,
		BaseURL: hfInferenceBaseURL,
		apiKey:  os.Getenv(apiKeyEnv),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured checks if the API token is set.
func (p *HuggingFaceProvider) IsConfigured() bool {
	return p.apiKey != ""
}

// Summarize sends the text to the summarization model and returns the
// generated summary.
func (p *HuggingFaceProvider) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	runes := []rune(text)
	if len(runes) > hfMaxInputChars {
		text = string(runes[:hfMaxInputChars])
	}

	body := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"max_length": maxLength,
			"min_length": hfMinSummaryLength,
			"do_sample":  false,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/"+p.Model, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hugging face API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("hugging face API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result) == 0 || result[0].SummaryText == "" {
		return "", fmt.Errorf("empty summary in response")
	}

	return result[0].SummaryText, nil
}
