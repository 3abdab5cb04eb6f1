package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/collect"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/credibility"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/database"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/fetch"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/summarize"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline orchestrates the 4-step ingestion pipeline: collect feeds,
// fetch thin content, score credibility, summarize.
type Pipeline struct {
	cfg        *config.Config
	db         *database.DB
	summarizer *summarize.Summarizer
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	provider := summarize.CreateProvider(cfg.Summarizer)
	return &Pipeline{
		cfg:        cfg,
		db:         db,
		summarizer: summarize.New(provider, cfg.Summarizer.MaxLength),
	}
}

// Run executes the full 4-step pipeline.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}

	step := p.runCollect()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Steps = append(r.Steps, p.runFetch())
	r.Steps = append(r.Steps, p.runScore())
	r.Steps = append(r.Steps, p.runSummarize(ctx))

	return r
}

func (p *Pipeline) runCollect() StepResult {
	log.Println("Step 1/4: Collecting articles...")
	collector := collect.NewCollector(p.cfg, p.db)
	result := collector.Collect()
	return StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("Found %d new articles (%d total, %d duplicates)", result.NewArticles, result.TotalFound, result.Duplicates),
	}
}

func (p *Pipeline) runFetch() StepResult {
	log.Println("Step 2/4: Fetching article content...")
	fetcher := fetch.NewContentFetcher(p.db, 15*time.Second, p.cfg.Ingest.MinContentChars)
	result := fetcher.FetchMissingContent()
	return StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("Fetched %d articles, %d failed", result.Fetched, result.Failed),
	}
}

func (p *Pipeline) runScore() StepResult {
	log.Println("Step 3/4: Scoring credibility...")

	articles, err := p.db.GetUnscoredArticles()
	if err != nil {
		return StepResult{Name: "Score", Err: err}
	}

	scored := 0
	for _, article := range articles {
		content := ""
		if article.Content != nil {
			content = *article.Content
		}

		result := credibility.Detect(article.Title, content)
		if err := p.db.UpdateArticleScore(article.ID, result.Score, result.Confidence); err != nil {
			log.Printf("Error storing score for article %d: %v", article.ID, err)
			continue
		}
		scored++
	}

	return StepResult{
		Name:    "Score",
		Summary: fmt.Sprintf("Scored %d articles", scored),
	}
}

func (p *Pipeline) runSummarize(ctx context.Context) StepResult {
	log.Println("Step 4/4: Summarizing articles...")

	articles, err := p.db.GetUnsummarizedArticles()
	if err != nil {
		return StepResult{Name: "Summarize", Err: err}
	}

	// Pace requests so the remote inference API isn't hammered.
	pace := time.Duration(p.cfg.Ingest.PaceMs) * time.Millisecond
	if pace <= 0 {
		pace = 500 * time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(pace), 1)

	summarized := 0
	for _, article := range articles {
		text := article.Title
		if article.Content != nil && *article.Content != "" {
			text = *article.Content
		}

		if err := limiter.Wait(ctx); err != nil {
			return StepResult{
				Name:    "Summarize",
				Summary: fmt.Sprintf("Summarized %d of %d articles before cancellation", summarized, len(articles)),
				Err:     err,
			}
		}

		summary := p.summarizer.Summarize(ctx, text)
		if err := p.db.UpdateArticleSummary(article.ID, summary); err != nil {
			log.Printf("Error storing summary for article %d: %v", article.ID, err)
			continue
		}
		summarized++
	}

	return StepResult{
		Name:    "Summarize",
		Summary: fmt.Sprintf("Summarized %d articles", summarized),
	}
}
