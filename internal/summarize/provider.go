package summarize

import (
	"context"
	"log"
	"strings"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
)

// Provider is the interface for remote summarization backends.
type Provider interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
	IsConfigured() bool
}

// CreateProvider creates a summarization provider based on configuration.
// Returns nil when no provider is usable; the summarizer then relies on
// the extractive fallback alone.
func CreateProvider(cfg config.Summarizer) Provider {
	if strings.ToLower(cfg.Provider) == "openai" {
		p := NewOpenAIProvider(cfg.OpenAIModel, cfg.OpenAIKeyEnv)
		if p.IsConfigured() {
			log.Printf("Using OpenAI summarization with model: %s", cfg.OpenAIModel)
			return p
		}
		log.Println("OpenAI not configured, trying Hugging Face...")
	}

	p := NewHuggingFaceProvider(cfg.HFModel, cfg.HFAPIKeyEnv)
	if p.IsConfigured() {
		log.Printf("Using Hugging Face summarization with model: %s", cfg.HFModel)
		return p
	}

	log.Println("No summarization provider configured; falling back to extractive summaries.")
	return nil
}
