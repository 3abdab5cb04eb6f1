package collect

import (
	"log"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/database"
)

// Result holds the results of a collection run.
type Result struct {
	TotalFound  int
	NewArticles int
	Duplicates  int
	Sources     map[string]int
}

// Collector pulls articles from the configured RSS feeds into the store.
type Collector struct {
	db         *database.DB
	feedParser *FeedParser
}

// NewCollector creates a new article collector.
func NewCollector(cfg *config.Config, db *database.DB) *Collector {
	c := &Collector{db: db}

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]FeedConfig, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = FeedConfig{URL: f.URL, Name: f.Name}
		}
		c.feedParser = NewFeedParser(feeds, cfg.Ingest.PerFeedLimit)
	}

	return c
}

// Collect collects articles from all configured feeds. Articles already
// in the store (by URL) count as duplicates.
func (c *Collector) Collect() *Result {
	r := &Result{Sources: make(map[string]int)}

	if c.feedParser == nil {
		log.Println("No feeds configured")
		return r
	}

	log.Println("Collecting from RSS feeds...")
	entries := c.feedParser.ParseAll()
	r.TotalFound = len(entries)

	for _, entry := range entries {
		id, _ := c.db.InsertArticle(entryToArticle(entry))
		if id > 0 {
			r.NewArticles++
			r.Sources[entry.Source]++
		} else {
			r.Duplicates++
		}
	}

	log.Printf("Collection complete: %d found, %d new, %d duplicates", r.TotalFound, r.NewArticles, r.Duplicates)
	return r
}

func entryToArticle(e FeedEntry) database.Article {
	a := database.Article{
		URL:   e.URL,
		Title: e.Title,
		Tags:  e.Tags,
	}
	if e.Source != "" {
		a.Source = &e.Source
	}
	if e.Author != "" {
		a.Author = &e.Author
	}
	if e.Category != "" {
		a.Category = &e.Category
	}
	if e.ImageURL != "" {
		a.ImageURL = &e.ImageURL
	}
	if e.PublishedDate != "" {
		a.PublishedDate = &e.PublishedDate
	}
	if e.Content != "" {
		a.Content = &e.Content
	}
	return a
}
